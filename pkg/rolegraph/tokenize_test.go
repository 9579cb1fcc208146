package rolegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeFieldLowercasesAndSplits(t *testing.T) {
	tokens := tokenizeField("Rust, Go & Python!")
	assert.Contains(t, tokens, "rust")
	assert.Contains(t, tokens, "python")
}

func TestTokenizeFieldDropsStopwordsAndSingleChars(t *testing.T) {
	tokens := tokenizeField("the a systems language")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "a")
	assert.Contains(t, tokens, "systems")
	assert.Contains(t, tokens, "language")
}

func TestTokenizeFieldEmpty(t *testing.T) {
	assert.Empty(t, tokenizeField(""))
}

func TestTermFrequencies(t *testing.T) {
	tf := termFrequencies([]string{"rust", "go", "rust"})
	assert.Equal(t, 2, tf["rust"])
	assert.Equal(t, 1, tf["go"])
}
