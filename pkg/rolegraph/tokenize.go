package rolegraph

import (
	"strings"
	"unicode"

	"github.com/orsinium-labs/stopwords"
)

// fieldStopwords is the English stopword set the non-graph scorers
// (BM25, BM25F, BM25Plus, TFIDF, Jaccard, QueryRatio) filter out of field
// text before computing term frequencies (spec §4.3.3). Stopwords are
// never filtered from the automaton's own matching path — only from the
// scorer-internal tokenizer built here.
var fieldStopwords = stopwords.EN

// tokenizeField lowercases value, splits it on runs of non-letter,
// non-digit runes, and drops stopwords and single-character tokens. It
// backs both the corpus-wide docFreq table (index.go) and the per-query
// scorer token counts (scorer_bm25.go).
func tokenizeField(value string) []string {
	if value == "" {
		return nil
	}
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToLower(f)
		if len(f) < 2 {
			continue
		}
		if fieldStopwords.Contains(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// termFrequencies counts occurrences of each token in tokens, returning a
// map usable directly as a per-document term-frequency table.
func termFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}
