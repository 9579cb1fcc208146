package rolegraph

import "encoding/json"

// snapshot is the JSON-serializable form of a RoleGraph (spec §9: "graph
// JSON serialize+hydrate"). The bound automaton is never serialized — it
// is rebuilt from the thesaurus by Hydrate after Deserialize, since
// ahocorasick.AhoCorasick has no stable wire encoding of its own.
type snapshot struct {
	Role         string             `json:"role"`
	ThesaurusRef string             `json:"thesaurusRef"`
	Alpha        float64            `json:"alpha"`
	Nodes        []Node             `json:"nodes"`
	Edges        []edgeSnapshot     `json:"edges"`
	Documents    []IndexedDocument  `json:"documents"`
}

type edgeSnapshot struct {
	ID        uint64   `json:"id"`
	Source    uint64   `json:"source"`
	Target    uint64   `json:"target"`
	Rank      uint64   `json:"rank"`
	Documents []string `json:"documents"`
}

// Serialize encodes g's nodes, edges, and documents as JSON. The result
// must be paired with Hydrate on the receiving end before it is queried
// again, since no automaton travels with it.
func (g *RoleGraph) Serialize() ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := snapshot{
		Role:         g.Role,
		ThesaurusRef: g.ThesaurusRef,
		Alpha:        g.Alpha,
		Nodes:        make([]Node, 0, len(g.nodes)),
		Edges:        make([]edgeSnapshot, 0, len(g.edges)),
		Documents:    make([]IndexedDocument, 0, len(g.documents)),
	}
	for _, n := range g.nodes {
		snap.Nodes = append(snap.Nodes, *n)
	}
	for _, e := range g.edges {
		docs := make([]string, 0, len(e.Documents))
		for d := range e.Documents {
			docs = append(docs, d)
		}
		snap.Edges = append(snap.Edges, edgeSnapshot{
			ID: e.ID, Source: e.Source, Target: e.Target, Rank: e.Rank, Documents: docs,
		})
	}
	for _, d := range g.documents {
		snap.Documents = append(snap.Documents, *d)
	}
	return json.Marshal(snap)
}

// Deserialize populates an empty RoleGraph (as returned by BuildGraph)
// from data produced by Serialize, rebuilding the derived docFreq/
// fieldStats/termDocs indexes from the restored documents. Callers must
// call Hydrate afterward to rebuild the bound automaton before issuing
// queries or further InsertDocument calls.
func (g *RoleGraph) Deserialize(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.Role = snap.Role
	g.ThesaurusRef = snap.ThesaurusRef
	g.Alpha = snap.Alpha

	g.nodes = make(map[uint64]*Node, len(snap.Nodes))
	for i := range snap.Nodes {
		n := snap.Nodes[i]
		g.nodes[n.ID] = &n
	}

	g.edges = make(map[uint64]*Edge, len(snap.Edges))
	for _, e := range snap.Edges {
		docs := make(map[string]bool, len(e.Documents))
		for _, d := range e.Documents {
			docs[d] = true
		}
		g.edges[e.ID] = &Edge{ID: e.ID, Source: e.Source, Target: e.Target, Rank: e.Rank, Documents: docs}
	}

	g.documents = make(map[string]*IndexedDocument, len(snap.Documents))
	g.docFreq = make(map[string]int)
	g.fieldStatsBy = make(map[string]*fieldStats)
	g.termDocs = make(map[uint64]map[string]bool)
	g.docTokens = make(map[string]map[string]bool)
	g.docFieldLengths = make(map[string]map[string]int)
	g.totalDocuments = 0

	for i := range snap.Documents {
		d := snap.Documents[i]
		g.documents[d.ID] = &d
		g.totalDocuments++
		for _, tf := range d.MatchedTerms {
			g.addTermDoc(tf.NodeID, d.ID)
		}
		tokens := make(map[string]bool)
		lengths := make(map[string]int, len(d.Fields))
		for name, value := range d.Fields {
			fieldTokens := tokenizeField(value)
			fs, ok := g.fieldStatsBy[name]
			if !ok {
				fs = &fieldStats{}
				g.fieldStatsBy[name] = fs
			}
			fs.totalLength += len(fieldTokens)
			fs.docCount++
			lengths[name] = len(fieldTokens)
			for _, tok := range fieldTokens {
				tokens[tok] = true
			}
		}
		for tok := range tokens {
			g.docFreq[tok]++
		}
		g.docTokens[d.ID] = tokens
		g.docFieldLengths[d.ID] = lengths
	}

	return nil
}
