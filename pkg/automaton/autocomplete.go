package automaton

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// ErrCancelled is returned by AutocompleteContext when ctx is done before
// the fuzzy scan over a's patterns completes (spec §5 cooperative
// cancellation: "autocomplete over large sets" is named explicitly as a
// cancellable operation).
var ErrCancelled = errors.New("automaton: operation cancelled")

// cancelCheckInterval bounds how often the fuzzy-match loops poll
// ctx.Done(), so cancellation is observed promptly without paying a
// channel-select cost on every single pattern comparison.
const cancelCheckInterval = 256

// Mode selects how Autocomplete matches candidate surface strings.
type Mode int

const (
	// ModePrefix returns keys with query as a prefix.
	ModePrefix Mode = iota
	// ModeFuzzyJaroWinkler returns keys within a Jaro-Winkler similarity
	// threshold of query. This is the default fuzzy mode (spec §4.2).
	ModeFuzzyJaroWinkler
	// ModeFuzzyLevenshtein returns keys within a maximum edit distance of
	// query.
	ModeFuzzyLevenshtein
)

// DefaultLimit is applied when Options.Limit is zero or negative.
const DefaultLimit = 10

// Options tunes an Autocomplete call.
type Options struct {
	Mode Mode
	// Threshold is the minimum Jaro-Winkler similarity (0..1) to include a
	// candidate under ModeFuzzyJaroWinkler.
	Threshold float64
	// MaxDistance is the maximum Levenshtein edit distance to include a
	// candidate under ModeFuzzyLevenshtein.
	MaxDistance int
	// Limit caps the number of returned suggestions; <= 0 uses
	// DefaultLimit.
	Limit int
}

// Suggestion is one ranked autocomplete candidate.
type Suggestion struct {
	Surface    string  `json:"surface"`
	Similarity float64 `json:"similarity,omitempty"`
	Distance   int     `json:"distance,omitempty"`
}

// Autocomplete returns ranked suggestions for query against a's compiled
// patterns. See Options for mode selection. Results are capped at
// Options.Limit (default DefaultLimit).
//
// Contract (spec §4.2): ModeFuzzyJaroWinkler at Threshold=1.0 returns a
// subset of (candidates identical to query under case-folding); at
// Threshold=0.0 it returns every pattern. Raising Threshold never adds a
// suggestion that a lower threshold excluded (I7).
func Autocomplete(query string, a *Automaton, opts Options) []Suggestion {
	suggestions, err := AutocompleteContext(context.Background(), query, a, opts)
	if err != nil {
		// context.Background() never cancels; reachable only if a caller
		// reuses this wrapper with a future context source.
		return nil
	}
	return suggestions
}

// AutocompleteContext is Autocomplete with cooperative cancellation: the
// fuzzy-match modes poll ctx at cancelCheckInterval pattern boundaries
// and return ErrCancelled with whatever partial work is discarded (spec
// §5, §7 Cancelled signal).
func AutocompleteContext(ctx context.Context, query string, a *Automaton, opts Options) ([]Suggestion, error) {
	if a == nil {
		return nil, nil
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	normalizedQuery := strings.ToLower(strings.TrimSpace(query))

	var suggestions []Suggestion
	var err error
	switch opts.Mode {
	case ModePrefix:
		suggestions = prefixSuggestions(a, normalizedQuery)
	case ModeFuzzyLevenshtein:
		suggestions, err = levenshteinSuggestions(ctx, a, normalizedQuery, opts.MaxDistance)
	case ModeFuzzyJaroWinkler:
		fallthrough
	default:
		suggestions, err = jaroWinklerSuggestions(ctx, a, normalizedQuery, opts.Threshold)
	}
	if err != nil {
		return nil, err
	}

	if limit < len(suggestions) {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

func prefixSuggestions(a *Automaton, prefix string) []Suggestion {
	if prefix == "" {
		// Every pattern has the empty prefix.
		matches := append([]string(nil), a.patterns...)
		sort.Slice(matches, func(i, j int) bool {
			return lenThenLex(matches[i], matches[j])
		})
		return toSurfaceSuggestions(matches)
	}

	matches := a.prefix.PrefixSearch(prefix)
	sort.Slice(matches, func(i, j int) bool {
		return lenThenLex(matches[i], matches[j])
	})
	return toSurfaceSuggestions(matches)
}

func lenThenLex(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func toSurfaceSuggestions(surfaces []string) []Suggestion {
	out := make([]Suggestion, len(surfaces))
	for i, s := range surfaces {
		out[i] = Suggestion{Surface: s}
	}
	return out
}

func jaroWinklerSuggestions(ctx context.Context, a *Automaton, query string, threshold float64) ([]Suggestion, error) {
	var out []Suggestion
	for i, p := range a.patterns {
		if i%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ErrCancelled
			default:
			}
		}
		sim := matchr.JaroWinkler(query, p, true)
		if sim >= threshold {
			out = append(out, Suggestion{Surface: p, Similarity: sim})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Surface < out[j].Surface
	})
	return out, nil
}

func levenshteinSuggestions(ctx context.Context, a *Automaton, query string, maxDistance int) ([]Suggestion, error) {
	var out []Suggestion
	for i, p := range a.patterns {
		if i%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ErrCancelled
			default:
			}
		}
		dist := matchr.Levenshtein(query, p)
		if dist <= maxDistance {
			out = append(out, Suggestion{Surface: p, Distance: dist})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Surface < out[j].Surface
	})
	return out, nil
}
