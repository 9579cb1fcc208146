package rolegraph

import "math"

// idf computes Inverse Document Frequency with the standard BM25
// half-point smoothing, grounded on resorank.CalculateIDF: ln(1 + (N -
// df + 0.5) / (df + 0.5)), with the ratio clamped at zero when it would
// go negative (df > N + 0.5). A term with df == 0 scores 0.
func idf(totalDocs float64, docFreq int) float64 {
	if docFreq == 0 {
		return 0
	}
	df := float64(docFreq)
	ratio := (totalDocs - df + 0.5) / (df + 0.5)
	if ratio < 0 {
		ratio = 0
	}
	return math.Log(1.0 + ratio)
}

// normalizedTF applies BM25's length-normalized term frequency: tf / (1 -
// b + b*(len/avgLen)), grounded on resorank.NormalizedTermFrequency.
func normalizedTF(tf int, fieldLen int, avgFieldLen float64, b float64) float64 {
	if avgFieldLen <= 0 || tf == 0 {
		return 0
	}
	denom := 1.0 - b + b*(float64(fieldLen)/avgFieldLen)
	if denom <= 0 {
		return 0
	}
	return float64(tf) / denom
}

// saturate applies the BM25 saturation curve: (k1+1)*score / (k1+score),
// grounded on resorank.Saturate.
func saturate(score, k1 float64) float64 {
	if score <= 0 {
		return 0
	}
	if k1 <= 0 {
		return score
	}
	return ((k1 + 1.0) * score) / (k1 + score)
}

// BM25Params tunes the BM25-family scorers (spec §4.3.3).
type BM25Params struct {
	K1 float64
	B  float64
	// Delta is BM25Plus's lower-bound term, added after saturation so a
	// single occurrence of a rare term never scores zero.
	Delta float64
	// FieldWeights assigns per-field weight in BM25F; fields absent from
	// the map default to 1.0.
	FieldWeights map[string]float64
}

// DefaultBM25Params mirrors resorank.DefaultSearchConfig's BM25 knobs.
func DefaultBM25Params() BM25Params {
	return BM25Params{K1: 1.2, B: 0.75, Delta: 1.0, FieldWeights: map[string]float64{}}
}

// ScoreBM25 scores doc against query's tokens using the single-field BM25
// formula over doc's "body" field (spec §4.3.3 bm25).
func (g *RoleGraph) ScoreBM25(query []string, docID string, params BM25Params) (float64, bool) {
	return g.scoreBMFamily(query, docID, params, false, 0)
}

// ScoreBM25F scores doc using the field-weighted BM25F variant: each
// field's normalized term frequency is combined with its configured
// weight before saturation (spec §4.3.3 bm25f).
func (g *RoleGraph) ScoreBM25F(query []string, docID string, params BM25Params) (float64, bool) {
	return g.scoreBMFamily(query, docID, params, true, 0)
}

// ScoreBM25Plus is BM25 with a constant delta added to every matched
// term's saturated score, so rare single occurrences are never scored to
// zero (spec §4.3.3 bm25plus).
func (g *RoleGraph) ScoreBM25Plus(query []string, docID string, params BM25Params) (float64, bool) {
	return g.scoreBMFamily(query, docID, params, false, params.Delta)
}

func (g *RoleGraph) scoreBMFamily(query []string, docID string, params BM25Params, fieldWeighted bool, delta float64) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	doc, ok := g.documents[docID]
	if !ok {
		return 0, false
	}
	n := float64(g.totalDocuments)
	fieldTokens := make(map[string][]string, len(doc.Fields))
	for name, value := range doc.Fields {
		fieldTokens[name] = tokenizeField(value)
	}

	var score float64
	for _, term := range query {
		term = normalizeQueryTerm(term)
		if term == "" {
			continue
		}
		termIDF := idf(n, g.docFreq[term])
		if termIDF == 0 {
			continue
		}

		if fieldWeighted {
			var tfStar float64
			for name, tokens := range fieldTokens {
				tf := countToken(tokens, term)
				if tf == 0 {
					continue
				}
				weight := 1.0
				if w, ok := params.FieldWeights[name]; ok {
					weight = w
				}
				avgLen := g.averageFieldLength(name)
				tfStar += weight * normalizedTF(tf, len(tokens), avgLen, params.B)
			}
			score += termIDF * (saturate(tfStar, params.K1) + delta*boolToFloat(tfStar > 0))
			continue
		}

		bodyTokens := fieldTokens["body"]
		tf := countToken(bodyTokens, term)
		avgLen := g.averageFieldLength("body")
		tfStar := normalizedTF(tf, len(bodyTokens), avgLen, params.B)
		score += termIDF * (saturate(tfStar, params.K1) + delta*boolToFloat(tfStar > 0))
	}
	return score, true
}

// ScoreTFIDF scores doc by the unnormalized sum of idf(t) * tf(t, doc)
// across the body field (spec §4.3.3 tfidf) — no BM25 saturation or
// length normalization.
func (g *RoleGraph) ScoreTFIDF(query []string, docID string) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	doc, ok := g.documents[docID]
	if !ok {
		return 0, false
	}
	n := float64(g.totalDocuments)
	bodyTokens := tokenizeField(doc.Fields["body"])

	var score float64
	for _, term := range query {
		term = normalizeQueryTerm(term)
		if term == "" {
			continue
		}
		score += idf(n, g.docFreq[term]) * float64(countToken(bodyTokens, term))
	}
	return score, true
}

// ScoreJaccard computes the Jaccard similarity between the query's unique
// token set and doc's unique body-token set (spec §4.3.3 jaccard).
func (g *RoleGraph) ScoreJaccard(query []string, docID string) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	doc, ok := g.documents[docID]
	if !ok {
		return 0, false
	}
	queryCopy := make([]string, 0, len(query))
	for _, t := range query {
		if t = normalizeQueryTerm(t); t != "" {
			queryCopy = append(queryCopy, t)
		}
	}
	querySet := uniqueSet(queryCopy)
	docSet := uniqueSet(tokenizeField(doc.Fields["body"]))
	if len(querySet) == 0 && len(docSet) == 0 {
		return 0, true
	}

	intersection := 0
	for t := range querySet {
		if docSet[t] {
			intersection++
		}
	}
	union := len(querySet) + len(docSet) - intersection
	if union == 0 {
		return 0, true
	}
	return float64(intersection) / float64(union), true
}

// ScoreQueryRatio is the fraction of distinct query terms present
// anywhere in doc's fields (spec §4.3.3 query-ratio) — a cheap recall
// proxy with no IDF weighting.
func (g *RoleGraph) ScoreQueryRatio(query []string, docID string) (float64, bool) {
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

	docTokens := make(map[string]bool)
	for _, value := range doc.Fields {
		for _, tok := range tokenizeField(value) {
			docTokens[tok] = true
		}
	}

	hits := 0
	for _, t := range terms {
		if docTokens[t] {
			hits++
		}
	}
	return float64(hits) / float64(len(terms)), true
}

func (g *RoleGraph) averageFieldLength(field string) float64 {
	fs, ok := g.fieldStatsBy[field]
	if !ok || fs.docCount == 0 {
		return 0
	}
	return float64(fs.totalLength) / float64(fs.docCount)
}

func normalizeQueryTerm(term string) string {
	tokens := tokenizeField(term)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

func countToken(tokens []string, term string) int {
	n := 0
	for _, t := range tokens {
		if t == term {
			n++
		}
	}
	return n
}

func uniqueSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
