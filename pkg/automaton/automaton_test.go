package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rolegraph/pkg/thesaurus"
)

func buildThesaurus(t *testing.T, entries map[string]thesaurus.NormalizedTerm) *thesaurus.Thesaurus {
	t.Helper()
	th := thesaurus.New("test")
	for surface, term := range entries {
		th.Insert(surface, term)
	}
	return th
}

// S1 — Basic match and replace.
func TestFindMatchesBasic(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"rust":              {ID: 1, Value: "Rust", Payload: "r"},
		"async programming": {ID: 2, Value: "Async", Payload: "a"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	text := "Rust is great for async programming tasks."
	matches := FindMatches(text, a)

	require.Len(t, matches, 2)
	assert.Equal(t, [2]int{0, 4}, matches[0].Span)
	assert.Equal(t, uint64(1), matches[0].Normalized.ID)
	assert.Equal(t, [2]int{17, 36}, matches[1].Span)
	assert.Equal(t, uint64(2), matches[1].Normalized.ID)
}

func TestReplaceMatchesMarkdown(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"rust":              {ID: 1, Value: "Rust", Payload: "r"},
		"async programming": {ID: 2, Value: "Async", Payload: "a"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	text := "Rust is great for async programming tasks."
	got := ReplaceMatches(text, a, FormatMarkdown)
	assert.Equal(t, "[Rust](r) is great for [async programming](a) tasks.", got)
}

func TestReplaceMatchesMissingPayloadFallsBackToPlain(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	got := ReplaceMatches("Rust rocks", a, FormatMarkdown)
	assert.Equal(t, "Rust rocks", got)
}

func TestReplaceMatchesIdempotentPlain(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust", Payload: "r"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	text := "Rust is great."
	once := ReplaceMatches(text, a, FormatPlain)
	twice := ReplaceMatches(once, a, FormatPlain)
	assert.Equal(t, once, twice)
}

func TestReplaceMatchesWiki(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	got := ReplaceMatches("I love Rust", a, FormatWiki)
	assert.Equal(t, "I love [[Rust]]", got)
}

// S2 — Leftmost-longest resolution.
func TestFindMatchesLeftmostLongest(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"knowledge":        {ID: 10, Value: "Knowledge"},
		"knowledge graph":  {ID: 11, Value: "Knowledge Graph"},
		"graph embeddings": {ID: 12, Value: "Graph Embeddings"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	matches := FindMatches("knowledge graph embeddings", a)
	require.Len(t, matches, 2)
	assert.Equal(t, [2]int{0, 15}, matches[0].Span)
	assert.Equal(t, uint64(11), matches[0].Normalized.ID)
	assert.Equal(t, [2]int{16, 32}, matches[1].Span)
	assert.Equal(t, uint64(12), matches[1].Normalized.ID)
}

func TestFindMatchesEmptyInput(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"rust": {ID: 1, Value: "Rust"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	assert.Empty(t, FindMatches("", a))
}

func TestFindMatchesDisjointOrdering(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"foo": {ID: 1, Value: "Foo"},
		"bar": {ID: 2, Value: "Bar"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	matches := FindMatches("bar and foo and bar again", a)
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i-1].Span[1], matches[i].Span[0])
		assert.Less(t, matches[i-1].Span[0], matches[i].Span[0])
	}
}

// S5 — Autocomplete fuzzy.
func TestAutocompleteFuzzyJaroWinkler(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"terraphim-graph":  {ID: 1, Value: "Terraphim Graph"},
		"graph embeddings": {ID: 2, Value: "Graph Embeddings"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	results := Autocomplete("terraphm", a, Options{Mode: ModeFuzzyJaroWinkler, Threshold: 0.7, Limit: 10})
	require.NotEmpty(t, results)
	assert.Equal(t, "terraphim-graph", results[0].Surface)
	assert.Greater(t, results[0].Similarity, 0.7)
}

func TestAutocompleteFuzzyHighThresholdEmpty(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"terraphim-graph": {ID: 1, Value: "Terraphim Graph"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	results := Autocomplete("terraphm", a, Options{Mode: ModeFuzzyJaroWinkler, Threshold: 0.99})
	assert.Empty(t, results)
}

// I7 — fuzzy monotonicity.
func TestAutocompleteFuzzyMonotonicity(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"terraphim-graph":  {ID: 1, Value: "Terraphim Graph"},
		"graph embeddings": {ID: 2, Value: "Graph Embeddings"},
		"haystack":         {ID: 3, Value: "Haystack"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	low := Autocomplete("graph", a, Options{Mode: ModeFuzzyJaroWinkler, Threshold: 0.3, Limit: 100})
	high := Autocomplete("graph", a, Options{Mode: ModeFuzzyJaroWinkler, Threshold: 0.8, Limit: 100})

	highSet := make(map[string]bool, len(high))
	for _, s := range high {
		highSet[s.Surface] = true
	}
	lowSet := make(map[string]bool, len(low))
	for _, s := range low {
		lowSet[s.Surface] = true
	}
	for surface := range highSet {
		assert.Truef(t, lowSet[surface], "raising threshold added %q that a lower threshold excluded", surface)
	}
}

func TestAutocompletePrefixOrdering(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"graph":            {ID: 1, Value: "Graph"},
		"graph embeddings": {ID: 2, Value: "Graph Embeddings"},
		"grapheme":         {ID: 3, Value: "Grapheme"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	results := Autocomplete("graph", a, Options{Mode: ModePrefix, Limit: 10})
	require.Len(t, results, 3)
	assert.Equal(t, "graph", results[0].Surface)
}

func TestAutocompleteLevenshtein(t *testing.T) {
	th := buildThesaurus(t, map[string]thesaurus.NormalizedTerm{
		"graph": {ID: 1, Value: "Graph"},
	})
	a, err := Compile(th)
	require.NoError(t, err)

	results := Autocomplete("grahp", a, Options{Mode: ModeFuzzyLevenshtein, MaxDistance: 2, Limit: 10})
	require.Len(t, results, 1)
	assert.Equal(t, "graph", results[0].Surface)
}
