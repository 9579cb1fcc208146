package thesaurus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndGet(t *testing.T) {
	th := New("test")
	th.Insert("Rust", NormalizedTerm{ID: 1, Value: "Rust", Payload: "r"})

	term, ok := th.Get("rust")
	require.True(t, ok)
	assert.Equal(t, uint64(1), term.ID)
	assert.Equal(t, "Rust", term.Value)
}

func TestInsertIdempotentLatestWins(t *testing.T) {
	th := New("test")
	th.Insert("graph", NormalizedTerm{ID: 1, Value: "Graph A"})
	th.Insert("graph", NormalizedTerm{ID: 2, Value: "Graph B"})

	term, ok := th.Get("GRAPH")
	require.True(t, ok)
	assert.Equal(t, uint64(2), term.ID)
	assert.Equal(t, "Graph B", term.Value)
}

func TestInsertRejectsShortAndBlank(t *testing.T) {
	th := New("test")
	th.Insert("a", NormalizedTerm{ID: 1, Value: "A"})
	th.Insert("   ", NormalizedTerm{ID: 2, Value: "Blank"})
	th.Insert("", NormalizedTerm{ID: 3, Value: "Empty"})

	assert.Equal(t, 0, th.Len())
	_, ok := th.Get("a")
	assert.False(t, ok)
}

func TestInsertTrimsWhitespace(t *testing.T) {
	th := New("test")
	th.Insert("  rust  ", NormalizedTerm{ID: 1, Value: "Rust"})

	_, ok := th.Get("rust")
	assert.True(t, ok)
}

func TestIsValidSurface(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"rust", true},
		{"a", false},
		{"", false},
		{"   ", false},
		{"ab", true},
		{"  ab  ", true},
	}
	for _, c := range cases {
		_, ok := IsValidSurface(c.in)
		assert.Equalf(t, c.want, ok, "IsValidSurface(%q)", c.in)
	}
}

func TestLenAndSurfaces(t *testing.T) {
	th := New("test")
	th.Insert("rust", NormalizedTerm{ID: 1, Value: "Rust"})
	th.Insert("async programming", NormalizedTerm{ID: 2, Value: "Async"})

	assert.Equal(t, 2, th.Len())
	assert.ElementsMatch(t, []string{"rust", "async programming"}, th.Surfaces())
}
