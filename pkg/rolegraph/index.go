package rolegraph

import (
	"context"
	"strings"

	"github.com/kittclouds/rolegraph/internal/logging"
	"github.com/kittclouds/rolegraph/pkg/automaton"
)

// InsertDocument indexes a document's fields into g (spec §4.3.2
// insert_document). body is split into paragraphs on blank lines
// (DESIGN.md Open Question #1); each paragraph is matched independently
// so co-occurrence edges only ever connect concepts appearing in the same
// paragraph. Re-inserting the same id accumulates term frequencies and
// re-derives rank rather than overwriting — insertion is commutative
// across repeated calls for the same document content, but not
// idempotent against changed content (the old matched_terms are not
// subtracted first). It is InsertDocumentContext with a background
// context; callers indexing very large documents should call
// InsertDocumentContext directly.
func (g *RoleGraph) InsertDocument(id string, fields map[string]string) {
	_ = g.InsertDocumentContext(context.Background(), id, fields)
}

// InsertDocumentContext is InsertDocument with cooperative cancellation:
// the paragraph scan polls ctx at queryCancelCheckInterval boundaries and
// returns ErrCancelled without touching doc's MatchedTerms or the
// corpus-wide field stats, which are only folded in once every paragraph
// has been processed (spec §5, §7). Node and edge updates already applied
// from paragraphs processed before cancellation are not rolled back.
func (g *RoleGraph) InsertDocumentContext(ctx context.Context, id string, fields map[string]string) error {
	body := fields["body"]
	paragraphs := splitParagraphs(body)

	g.mu.Lock()
	defer g.mu.Unlock()

	doc, exists := g.documents[id]
	if !exists {
		doc = &IndexedDocument{ID: id}
	}

	tf := make(map[uint64]int, len(doc.MatchedTerms))
	for _, t := range doc.MatchedTerms {
		tf[t.NodeID] = t.TF
	}

	for i, para := range paragraphs {
		if i%queryCancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ErrCancelled
			default:
			}
		}
		seq := g.matchSequence(para)
		g.indexParagraph(id, seq, tf)
	}

	if !exists {
		g.documents[id] = doc
		g.totalDocuments++
	}
	doc.Fields = fields

	doc.MatchedTerms = doc.MatchedTerms[:0]
	var tfSum int
	for nodeID, count := range tf {
		doc.MatchedTerms = append(doc.MatchedTerms, TermFrequency{NodeID: nodeID, TF: count})
		tfSum += count
		g.addTermDoc(nodeID, id)
	}
	doc.Rank = 1 + uint64(tfSum)

	g.reindexFieldStats(id, fields)
	return nil
}

// matchSequence returns the in-order sequence of matched concept ids for
// a paragraph, one entry per match, preserving repeats (spec §4.3.2 step
// 2: "the matched node id sequence, in order of appearance").
func (g *RoleGraph) matchSequence(paragraph string) []uint64 {
	if g.automaton == nil {
		return nil
	}
	matches := automaton.FindMatches(paragraph, g.automaton)
	seq := make([]uint64, len(matches))
	for i, m := range matches {
		seq[i] = m.Normalized.ID
	}
	return seq
}

// indexParagraph folds one paragraph's matched concept sequence into the
// graph's nodes and edges, and into tf (the running per-document term
// frequency table), per spec §4.3.2 steps 3-4. Node rank is bumped once
// per pair-membership, not once per position: a paragraph with 3+ matched
// concepts gives an interior concept rank += 2 (once as the first of a
// pair, once as the second), matching step 3's literal
// `nodes[a].rank += 1 and nodes[b].rank += 1` inside the pair loop. A
// single-match paragraph (no pairs) is the one case that still bumps rank
// by 1, per the notes on paragraphs shorter than 2.
func (g *RoleGraph) indexParagraph(docID string, seq []uint64, tf map[uint64]int) {
	if len(seq) == 0 {
		return
	}
	for _, id := range seq {
		g.ensureNode(id)
		tf[id]++
	}
	if len(seq) == 1 {
		g.bumpNodeRank(seq[0])
		return
	}

	for i := 0; i+1 < len(seq); i++ {
		source, target := seq[i], seq[i+1]
		g.bumpNodeRank(source)
		g.bumpNodeRank(target)

		edgeID, err := PairEncode(source, target)
		if err != nil {
			logging.L().Warnw("rolegraph: skipping edge, pair encoding overflow",
				"source", source, "target", target)
			continue
		}
		edge, ok := g.edges[edgeID]
		if !ok {
			edge = &Edge{ID: edgeID, Source: source, Target: target, Documents: make(map[string]bool)}
			g.edges[edgeID] = edge
		}
		edge.Rank++
		edge.Documents[docID] = true
	}
}

func (g *RoleGraph) ensureNode(id uint64) {
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = &Node{ID: id}
	}
}

func (g *RoleGraph) bumpNodeRank(id uint64) {
	g.nodes[id].Rank++
}

func (g *RoleGraph) addTermDoc(nodeID uint64, docID string) {
	set, ok := g.termDocs[nodeID]
	if !ok {
		set = make(map[string]bool)
		g.termDocs[nodeID] = set
	}
	set[docID] = true
}

// splitParagraphs splits text on runs of blank lines (DESIGN.md Open
// Question #1), trimming and dropping empty segments so stray trailing
// newlines never produce a phantom empty paragraph.
func splitParagraphs(text string) []string {
	raw := strings.Split(text, "\n\n")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 && strings.TrimSpace(text) != "" {
		out = append(out, strings.TrimSpace(text))
	}
	return out
}

// reindexFieldStats updates the per-field total-length/doc-count tallies
// the non-graph scorers need for average field length normalization, and
// the corpus-wide docFreq table their IDF components need (spec §4.3.3).
// On re-insertion of an existing document the prior field lengths and
// token set are first subtracted so both stay accurate.
func (g *RoleGraph) reindexFieldStats(id string, fields map[string]string) {
	if oldTokens, ok := g.docTokens[id]; ok {
		for tok := range oldTokens {
			g.docFreq[tok]--
			if g.docFreq[tok] <= 0 {
				delete(g.docFreq, tok)
			}
		}
	}
	if oldLengths, ok := g.docFieldLengths[id]; ok {
		for name, n := range oldLengths {
			if fs, ok := g.fieldStatsBy[name]; ok {
				fs.totalLength -= n
				fs.docCount--
			}
		}
	}

	newTokens := make(map[string]bool)
	newLengths := make(map[string]int, len(fields))
	for name, value := range fields {
		tokens := tokenizeField(value)
		fs, ok := g.fieldStatsBy[name]
		if !ok {
			fs = &fieldStats{}
			g.fieldStatsBy[name] = fs
		}
		fs.totalLength += len(tokens)
		fs.docCount++
		newLengths[name] = len(tokens)
		for _, tok := range tokens {
			newTokens[tok] = true
		}
	}
	for tok := range newTokens {
		g.docFreq[tok]++
	}
	g.docTokens[id] = newTokens
	g.docFieldLengths[id] = newLengths
}
