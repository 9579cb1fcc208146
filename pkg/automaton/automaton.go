// Package automaton compiles a thesaurus into an immutable multi-pattern
// matcher and serves the three query shapes collaborators need: exact
// leftmost-longest matching (FindMatches), link/markdown rendering
// (ReplaceMatches) and prefix/fuzzy suggestion (Autocomplete).
//
// Compilation is deterministic and the returned Automaton is safe for
// concurrent read-only use from many goroutines (spec §5) — nothing here
// mutates after Compile returns.
package automaton

import (
	"sort"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
	trie "github.com/derekparker/trie/v3"

	"github.com/kittclouds/rolegraph/pkg/thesaurus"
)

// Match is a located, normalized occurrence of a thesaurus surface string
// in a text. Span is a byte range: start < end <= len(input). Go strings
// are byte sequences, so spans are reported in bytes consistently between
// FindMatches and ReplaceMatches (spec §9 open question on Unicode
// alignment).
type Match struct {
	Term       string                  `json:"term"`
	Normalized thesaurus.NormalizedTerm `json:"normalized"`
	Span       [2]int                  `json:"span"`
}

// Automaton is the compiled, immutable matcher built from a Thesaurus.
type Automaton struct {
	ac       ahocorasick.AhoCorasick
	patterns []string
	terms    []thesaurus.NormalizedTerm
	prefix   *trie.Trie
}

// Compile builds an Automaton from every currently-valid surface string in
// th. Patterns are sorted before building so that, for a fixed set of
// valid surfaces, the same Automaton (and hence the same match sequences)
// is produced regardless of the thesaurus's internal map iteration order.
func Compile(th *thesaurus.Thesaurus) (*Automaton, error) {
	entries := th.Entries()

	patterns := make([]string, 0, len(entries))
	for surface := range entries {
		patterns = append(patterns, surface)
	}
	sort.Strings(patterns)

	terms := make([]thesaurus.NormalizedTerm, len(patterns))
	for i, surface := range patterns {
		terms[i] = entries[surface]
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	ac := builder.Build(patterns)

	prefixTrie := trie.New()
	for _, p := range patterns {
		prefixTrie.Add(p, nil)
	}

	return &Automaton{
		ac:       ac,
		patterns: patterns,
		terms:    terms,
		prefix:   prefixTrie,
	}, nil
}

// PatternCount returns the number of compiled surface patterns.
func (a *Automaton) PatternCount() int {
	return len(a.patterns)
}

// FindMatches returns every leftmost-longest, disjoint match of a's
// patterns in text, ordered by ascending span start (spec §4.2, I1/I2).
// Empty input yields an empty (nil) result.
func FindMatches(text string, a *Automaton) []Match {
	if text == "" || a == nil {
		return nil
	}

	raw := a.ac.FindAll(text)
	matches := make([]Match, 0, len(raw))
	for _, m := range raw {
		idx := m.Pattern()
		if idx < 0 || idx >= len(a.terms) {
			continue
		}
		start, end := m.Start(), m.End()
		matches = append(matches, Match{
			Term:       text[start:end],
			Normalized: a.terms[idx],
			Span:       [2]int{start, end},
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Span[0] < matches[j].Span[0]
	})

	return matches
}
