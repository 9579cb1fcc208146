// Package rolegraph implements the per-role concept co-occurrence graph
// (spec §4.3): indexing documents through a bound matcher automaton,
// scoring and ranking query results, and deciding path-connectivity of a
// matched concept set.
//
// The graph is an arena of flat maps keyed by uint64 id (nodes, edges)
// plus a map of documents keyed by caller-supplied string id — the
// "arena-plus-index" representation spec §9 calls for, generalized from
// the teacher's pkg/graph.ConceptGraph (a directed label graph with
// pointer adjacency) into a ranked, undirected-for-connectivity structure.
package rolegraph

import (
	"sync"

	"github.com/kittclouds/rolegraph/pkg/automaton"
	"github.com/kittclouds/rolegraph/pkg/thesaurus"
)

// RelevanceFunction selects the scoring policy a RoleGraph query runs
// (spec §3 Role, §4.3.3, §9 design note: modeled as a tagged variant, not
// subtype dispatch, so non-graph scorers are unit-testable without a
// graph).
type RelevanceFunction string

const (
	TitleScorer    RelevanceFunction = "title-scorer"
	TerraphimGraph RelevanceFunction = "terraphim-graph"
	BM25           RelevanceFunction = "bm25"
	BM25F          RelevanceFunction = "bm25f"
	BM25Plus       RelevanceFunction = "bm25plus"
	TFIDF          RelevanceFunction = "tfidf"
	Jaccard        RelevanceFunction = "jaccard"
	QueryRatio     RelevanceFunction = "query-ratio"
)

// Node is a concept with its aggregated rank (spec §3).
type Node struct {
	ID   uint64 `json:"id"`
	Rank uint64 `json:"rank"`
}

// Edge is a directed co-occurrence relation between two concepts observed
// within a paragraph (spec §3). Documents lists every document id in
// which the edge was observed; membership is monotone.
type Edge struct {
	ID        uint64          `json:"id"`
	Source    uint64          `json:"source"`
	Target    uint64          `json:"target"`
	Rank      uint64          `json:"rank"`
	Documents map[string]bool `json:"documents"`
}

// TermFrequency pairs a matched concept with how many times it occurred
// in a document.
type TermFrequency struct {
	NodeID uint64 `json:"nodeId"`
	TF     int    `json:"tf"`
}

// IndexedDocument is one entry in a RoleGraph, produced by InsertDocument
// and returned by GetDocument (spec §3). Query returns ScoredDocument
// rows, which carry a document's id and rank but not this struct.
type IndexedDocument struct {
	ID           string            `json:"id"`
	Rank         uint64            `json:"rank"`
	MatchedTerms []TermFrequency   `json:"matchedTerms"`
	Fields       map[string]string `json:"fields,omitempty"`
}

// fieldStats accumulates the running length totals needed for the
// non-graph scorers' average-field-length normalization (spec §4.3.3
// bullet 2), rebuilt incrementally at InsertDocument time rather than
// recomputed per query.
type fieldStats struct {
	totalLength int
	docCount    int
}

// RoleGraph is the per-role concept co-occurrence graph: nodes, edges and
// indexed documents, plus the automaton bound to it for indexing and
// querying (spec §3 RoleGraph, §4.3).
type RoleGraph struct {
	Role         string
	ThesaurusRef string
	// Alpha is the TerraphimGraph blend coefficient between the graph
	// score and the TF-IDF score (spec §4.3.3, default 0.7 — decision
	// recorded in DESIGN.md Open Question #2).
	Alpha float64

	mu sync.RWMutex

	nodes     map[uint64]*Node
	edges     map[uint64]*Edge
	documents map[string]*IndexedDocument

	// docFreq/fieldStatsBy back the non-graph (BM25-family) scorers'
	// corpus-wide document-frequency table, maintained incrementally.
	docFreq       map[string]int // tokenized term -> number of docs containing it
	fieldStatsBy  map[string]*fieldStats
	totalDocuments int

	// termDocs is the reverse index from matched concept id to the set of
	// document ids it was matched in (spec §4.3.5
	// find_document_ids_for_term).
	termDocs map[uint64]map[string]bool

	// docTokens remembers the unique token set counted into docFreq for
	// each document, so re-insertion can subtract the old set before
	// adding the new one instead of double-counting.
	docTokens map[string]map[string]bool

	// docFieldLengths remembers, per document, the token count last added
	// to each field's fieldStats, mirroring docTokens for fs.totalLength.
	docFieldLengths map[string]map[string]int

	// thesaurusSize is th.Len() at the last BuildGraph/Hydrate call,
	// surfaced verbatim as GraphStats.ThesaurusSize (spec §4.3.5).
	thesaurusSize int

	automaton *automaton.Automaton
}

// DefaultAlpha is the default TerraphimGraph blend coefficient (spec
// §4.3.3; see DESIGN.md Open Question #2).
const DefaultAlpha = 0.7

// BuildGraph compiles th's automaton and returns an empty, queryable
// RoleGraph bound to role (spec §6.2 build_graph). IsGraphPopulated is
// false until at least one document has been indexed.
func BuildGraph(role string, th *thesaurus.Thesaurus) (*RoleGraph, error) {
	a, err := automaton.Compile(th)
	if err != nil {
		return nil, err
	}
	return &RoleGraph{
		Role:          role,
		ThesaurusRef:  th.Name,
		Alpha:         DefaultAlpha,
		nodes:         make(map[uint64]*Node),
		edges:         make(map[uint64]*Edge),
		documents:     make(map[string]*IndexedDocument),
		docFreq:       make(map[string]int),
		fieldStatsBy:  make(map[string]*fieldStats),
		termDocs:        make(map[uint64]map[string]bool),
		docTokens:       make(map[string]map[string]bool),
		docFieldLengths: make(map[string]map[string]int),
		thesaurusSize:   th.Len(),
		automaton:       a,
	}, nil
}

// Hydrate rebuilds g's bound automaton from th after g has been restored
// from a JSON snapshot (spec §9: "hydrate graph then compile automaton").
// The graph's node/edge/document state must not be mutated between
// deserialization and this call.
func (g *RoleGraph) Hydrate(th *thesaurus.Thesaurus) error {
	a, err := automaton.Compile(th)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.automaton = a
	g.ThesaurusRef = th.Name
	g.thesaurusSize = th.Len()
	return nil
}
