package rolegraph

// ScoreTerraphimGraph is the graph-native scorer (spec §4.3.3
// terraphim-graph): it blends a structural graph_score, derived from the
// global rank of the query's matched concepts and the co-occurrence
// edges between them inside doc, with the plain tfidf_score, weighted by
// g.Alpha. queryIDs is the concept id sequence produced by matching the
// query text against the role's thesaurus/automaton (spec §4.3.2 step
// 2's matching, reused here for the query side).
func (g *RoleGraph) ScoreTerraphimGraph(queryIDs []uint64, queryTokens []string, docID string) (float64, bool) {
	g.mu.RLock()
	doc, ok := g.documents[docID]
	if !ok {
		g.mu.RUnlock()
		return 0, false
	}
	graphScore := g.graphScoreLocked(docID, queryIDs, doc)
	g.mu.RUnlock()

	tfidfScore, _ := g.ScoreTFIDF(queryTokens, docID)

	return g.Alpha*graphScore + (1-g.Alpha)*tfidfScore, true
}

// graphScoreLocked must be called with g.mu held for reading. It computes
// spec §4.3.3's literal graph_score(d) as a plain sum, with no
// normalization:
//
//	Σ_{a ∈ M} nodes[a].rank · [a ∈ d.matched_terms]
//	  + Σ_{(a,b) ∈ M×M, a<b} edges[pair_encode(a,b)].rank · [d ∈ edges[…].documents]
//	  + d.rank
//
// The node term is an indicator, not multiplied by tf: a present query
// concept contributes its full node rank once, regardless of how many
// times it occurs in doc. The edge term only counts an edge whose
// Documents set actually contains docID — an edge with the same concept
// pair formed entirely by other documents must not leak its rank into
// this one.
func (g *RoleGraph) graphScoreLocked(docID string, queryIDs []uint64, doc *IndexedDocument) float64 {
	if len(queryIDs) == 0 {
		return 0
	}
	queryIDs = dedupeUint64(queryIDs)
	present := make(map[uint64]bool, len(doc.MatchedTerms))
	for _, tf := range doc.MatchedTerms {
		present[tf.NodeID] = true
	}

	var nodeTotal float64
	for _, id := range queryIDs {
		if !present[id] {
			continue
		}
		if node, ok := g.nodes[id]; ok {
			nodeTotal += float64(node.Rank)
		}
	}

	var edgeTotal float64
	for i := 0; i < len(queryIDs); i++ {
		for j := i + 1; j < len(queryIDs); j++ {
			a, b := queryIDs[i], queryIDs[j]
			if !present[a] || !present[b] {
				continue
			}
			if a > b {
				a, b = b, a
			}
			if edgeID, err := PairEncode(a, b); err == nil {
				if e, ok := g.edges[edgeID]; ok && e.Documents[docID] {
					edgeTotal += float64(e.Rank)
				}
			}
		}
	}

	return nodeTotal + edgeTotal + float64(doc.Rank)
}

// ScoreTitleScorer scores doc purely on the fraction of distinct query
// tokens found in its "title" field (spec §4.3.3 title-scorer) — it never
// looks at body text, so it is cheap to run over a large candidate set
// before falling back to a body-aware scorer.
func (g *RoleGraph) ScoreTitleScorer(query []string, docID string) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	doc, ok := g.documents[docID]
	if !ok {
		return 0, false
	}
	terms := make([]string, 0, len(query))
	for _, t := range query {
		if t = normalizeQueryTerm(t); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return 0, true
	}

	titleTokens := uniqueSet(tokenizeField(doc.Fields["title"]))
	hits := 0
	for _, t := range terms {
		if titleTokens[t] {
			hits++
		}
	}
	return float64(hits) / float64(len(terms)), true
}
