package rolegraph

import (
	"context"
	"sort"
	"strings"

	"github.com/kittclouds/rolegraph/pkg/automaton"
)

// ScoredDocument is one result row from Query (spec §4.3.3). Rank is the
// document's own d.rank at scoring time, carried along purely to break
// score ties (spec §4.3.3 step 4).
type ScoredDocument struct {
	DocID string  `json:"docId"`
	Score float64 `json:"score"`
	Rank  uint64  `json:"rank"`
}

// sortScoredDocuments orders results by descending score, ties broken by
// descending document rank, then ascending DocID — spec §4.3.3 step 4's
// exact, total, deterministic order.
func sortScoredDocuments(results []ScoredDocument) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Rank != results[j].Rank {
			return results[i].Rank > results[j].Rank
		}
		return results[i].DocID < results[j].DocID
	})
}

// queryCancelCheckInterval bounds how often QueryContext polls ctx.Done()
// while scanning documents, matching automaton's cancelCheckInterval
// convention (spec §5: "full-graph queries" are named explicitly as a
// cancellable operation).
const queryCancelCheckInterval = 256

// Query runs the named relevance function over every indexed document
// and returns the matches sorted per sortScoredDocuments — descending
// score, then descending document rank, then ascending DocID — for
// determinism (spec §4.3.3 query step 4, grounded on qgram.Search's
// sort-then-limit tail). It is QueryContext with a background context;
// callers needing cancellation over a large corpus should call
// QueryContext directly.
func (g *RoleGraph) Query(queryText string, fn RelevanceFunction, limit int) []ScoredDocument {
	results, _ := g.QueryContext(context.Background(), queryText, fn, limit)
	return results
}

// QueryContext is Query with cooperative cancellation: the document scan
// polls ctx at queryCancelCheckInterval boundaries and returns
// ErrCancelled with no partial results on cancellation (spec §5, §7).
func (g *RoleGraph) QueryContext(ctx context.Context, queryText string, fn RelevanceFunction, limit int) ([]ScoredDocument, error) {
	tokens := tokenizeField(queryText)
	queryIDs := g.queryConceptIDs(queryText)

	g.mu.RLock()
	docIDs := make([]string, 0, len(g.documents))
	ranks := make(map[string]uint64, len(g.documents))
	for id, doc := range g.documents {
		docIDs = append(docIDs, id)
		ranks[id] = doc.Rank
	}
	g.mu.RUnlock()

	results := make([]ScoredDocument, 0, len(docIDs))
	for i, docID := range docIDs {
		if i%queryCancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ErrCancelled
			default:
			}
		}
		score, ok := g.scoreOne(fn, tokens, queryIDs, docID)
		if !ok || score <= 0 {
			continue
		}
		results = append(results, ScoredDocument{DocID: docID, Score: score, Rank: ranks[docID]})
	}

	sortScoredDocuments(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// scoreOne dispatches a single document to fn's scoring function. BM25
// and BM25F/BM25Plus use default-tuned parameters; callers who need
// custom tuning should call the Score* methods directly.
func (g *RoleGraph) scoreOne(fn RelevanceFunction, tokens []string, queryIDs []uint64, docID string) (float64, bool) {
	switch fn {
	case TitleScorer:
		return g.ScoreTitleScorer(tokens, docID)
	case TerraphimGraph:
		return g.ScoreTerraphimGraph(queryIDs, tokens, docID)
	case BM25:
		return g.ScoreBM25(tokens, docID, DefaultBM25Params())
	case BM25F:
		return g.ScoreBM25F(tokens, docID, DefaultBM25Params())
	case BM25Plus:
		return g.ScoreBM25Plus(tokens, docID, DefaultBM25Params())
	case TFIDF:
		return g.ScoreTFIDF(tokens, docID)
	case Jaccard:
		return g.ScoreJaccard(tokens, docID)
	case QueryRatio:
		return g.ScoreQueryRatio(tokens, docID)
	default:
		return g.ScoreBM25(tokens, docID, DefaultBM25Params())
	}
}

// queryConceptIDs matches queryText against the role's bound automaton,
// returning the matched concept id sequence — the same representation
// InsertDocument derives from indexed paragraphs — for use by the
// graph-native scorer.
func (g *RoleGraph) queryConceptIDs(queryText string) []uint64 {
	g.mu.RLock()
	a := g.automaton
	g.mu.RUnlock()
	if a == nil {
		return nil
	}
	matches := automaton.FindMatches(queryText, a)
	ids := make([]uint64, len(matches))
	for i, m := range matches {
		ids[i] = m.Normalized.ID
	}
	return ids
}

// BooleanOperator combines per-term result sets in QueryWithOperators
// (spec §9 supplemented operation).
type BooleanOperator string

const (
	// OperatorAnd keeps only documents scoring positively against every
	// term.
	OperatorAnd BooleanOperator = "AND"
	// OperatorOr keeps documents scoring positively against any term,
	// summing their per-term scores.
	OperatorOr BooleanOperator = "OR"
)

// QueryWithOperators splits queryText on whitespace into independent
// terms, scores each term against every document with fn, then combines
// the per-term results with op (spec §9: "query_with_operators — AND/OR
// combination over individually-matched terms", added to support
// multi-concept boolean search without changing Query's single-string
// contract).
func (g *RoleGraph) QueryWithOperators(queryText string, op BooleanOperator, fn RelevanceFunction, limit int) []ScoredDocument {
	terms := strings.Fields(queryText)
	if len(terms) == 0 {
		return nil
	}

	perTerm := make([]map[string]float64, len(terms))
	ranks := make(map[string]uint64)
	for i, term := range terms {
		matches := g.Query(term, fn, 0)
		scores := make(map[string]float64, len(matches))
		for _, m := range matches {
			scores[m.DocID] = m.Score
			ranks[m.DocID] = m.Rank
		}
		perTerm[i] = scores
	}

	combined := make(map[string]float64)
	switch op {
	case OperatorAnd:
		for docID, score := range perTerm[0] {
			total := score
			matchedAll := true
			for i := 1; i < len(perTerm); i++ {
				s, ok := perTerm[i][docID]
				if !ok {
					matchedAll = false
					break
				}
				total += s
			}
			if matchedAll {
				combined[docID] = total
			}
		}
	default: // OperatorOr
		for _, scores := range perTerm {
			for docID, s := range scores {
				combined[docID] += s
			}
		}
	}

	results := make([]ScoredDocument, 0, len(combined))
	for docID, score := range combined {
		results = append(results, ScoredDocument{DocID: docID, Score: score, Rank: ranks[docID]})
	}
	sortScoredDocuments(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
