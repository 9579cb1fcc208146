package rolegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rolegraph/pkg/thesaurus"
)

func buildTestGraph(t *testing.T, entries map[string]thesaurus.NormalizedTerm) *RoleGraph {
	t.Helper()
	th := thesaurus.New("test-role")
	for surface, term := range entries {
		th.Insert(surface, term)
	}
	g, err := BuildGraph("test-role", th)
	require.NoError(t, err)
	return g
}

// S3 — basic document insertion builds nodes, edges and document rank.
func TestInsertDocumentBuildsNodesAndEdges(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"rust":     {ID: 1, Value: "Rust"},
		"async":    {ID: 2, Value: "Async"},
		"tokio":    {ID: 3, Value: "Tokio"},
	})

	g.InsertDocument("doc1", map[string]string{
		"title": "Rust async basics",
		"body":   "Rust is great for async programming. Tokio powers async Rust code.",
	})

	stats := g.GetGraphStats()
	assert.Equal(t, 3, stats.NodeCount)
	assert.Equal(t, 1, stats.DocumentCount)
	assert.Greater(t, stats.EdgeCount, 0)

	doc, err := g.GetDocument("doc1")
	require.NoError(t, err)
	assert.Greater(t, doc.Rank, uint64(0))
	assert.NotEmpty(t, doc.MatchedTerms)
}

func TestInsertDocumentSingleMatchBumpsNodeOnly(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust"},
	})
	g.InsertDocument("doc1", map[string]string{"body": "Rust"})

	stats := g.GetGraphStats()
	assert.Equal(t, 1, stats.NodeCount)
	assert.Equal(t, 0, stats.EdgeCount)
}

// I4 — re-inserting a document accumulates rather than overwrites.
func TestInsertDocumentReinsertAccumulates(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust"},
	})
	g.InsertDocument("doc1", map[string]string{"body": "Rust"})
	first, _ := g.GetDocument("doc1")

	g.InsertDocument("doc1", map[string]string{"body": "Rust"})
	second, _ := g.GetDocument("doc1")

	assert.Greater(t, second.Rank, first.Rank)
}

func TestInsertDocumentParagraphsDoNotCrossEdges(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust"},
		"go":   {ID: 2, Value: "Go"},
	})
	g.InsertDocument("doc1", map[string]string{
		"body": "Rust is a language.\n\nGo is a language.",
	})

	stats := g.GetGraphStats()
	assert.Equal(t, 2, stats.NodeCount)
	assert.Equal(t, 0, stats.EdgeCount, "terms in different paragraphs must not form a co-occurrence edge")
}

func TestInsertDocumentSelfPairCreatesSelfLoop(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust"},
	})
	g.InsertDocument("doc1", map[string]string{"body": "Rust and Rust again"})

	stats := g.GetGraphStats()
	assert.Equal(t, 1, stats.EdgeCount, "two matches of the same concept in a paragraph form a self-loop edge")
}

func TestFindDocumentIdsForTerm(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust"},
	})
	g.InsertDocument("doc1", map[string]string{"body": "Rust code"})
	g.InsertDocument("doc2", map[string]string{"body": "no match here"})

	ids := g.FindDocumentIdsForTerm(1)
	assert.ElementsMatch(t, []string{"doc1"}, ids)
}

func TestValidateDocuments(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust"},
	})
	g.InsertDocument("doc1", map[string]string{"body": "Rust"})

	missing := g.ValidateDocuments([]string{"doc1", "doc2"})
	assert.Equal(t, []string{"doc2"}, missing)
}

func TestIsGraphPopulated(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust"},
	})
	assert.False(t, g.IsGraphPopulated())
	g.InsertDocument("doc1", map[string]string{"body": "Rust"})
	assert.True(t, g.IsGraphPopulated())
}
