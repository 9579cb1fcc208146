package rolegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kittclouds/rolegraph/pkg/thesaurus"
)

// I6 — connectivity check reflects edge-disjoint walk coverage.
func TestIsAllTermsConnectedByPathLinearChain(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"aa": {ID: 1, Value: "A"},
		"bb": {ID: 2, Value: "B"},
		"cc": {ID: 3, Value: "C"},
	})
	g.InsertDocument("doc1", map[string]string{"body": "aa bb cc"})

	assert.True(t, g.IsAllTermsConnectedByPath([]uint64{1, 2, 3}))
}

func TestIsAllTermsConnectedByPathDisconnected(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"aa": {ID: 1, Value: "A"},
		"bb": {ID: 2, Value: "B"},
		"cc": {ID: 3, Value: "C"},
	})
	g.InsertDocument("doc1", map[string]string{"body": "aa bb\n\ncc alone"})

	assert.False(t, g.IsAllTermsConnectedByPath([]uint64{1, 2, 3}))
}

func TestIsAllTermsConnectedByPathUnknownNode(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"aa": {ID: 1, Value: "A"},
	})
	g.InsertDocument("doc1", map[string]string{"body": "aa"})

	assert.False(t, g.IsAllTermsConnectedByPath([]uint64{1, 999}))
}

func TestIsAllTermsConnectedByPathSingleTerm(t *testing.T) {
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"aa": {ID: 1, Value: "A"},
	})
	g.InsertDocument("doc1", map[string]string{"body": "aa"})

	assert.True(t, g.IsAllTermsConnectedByPath([]uint64{1}))
}

func TestIsAllTermsConnectedByPathStarTopology(t *testing.T) {
	// hub co-occurs with three spokes in three different paragraphs; no
	// single edge-disjoint walk can reach all three spokes because every
	// walk must re-enter the hub through an edge already used.
	g := buildTestGraph(t, map[string]thesaurus.NormalizedTerm{
		"hub": {ID: 1, Value: "Hub"},
		"xx":  {ID: 2, Value: "X"},
		"yy":  {ID: 3, Value: "Y"},
		"zz":  {ID: 4, Value: "Z"},
	})
	g.InsertDocument("doc1", map[string]string{"body": "hub xx\n\nhub yy\n\nhub zz"})

	assert.False(t, g.IsAllTermsConnectedByPath([]uint64{2, 3, 4}))
	assert.True(t, g.IsAllTermsConnectedByPath([]uint64{1, 2, 3}))
}
