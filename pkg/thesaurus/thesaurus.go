// Package thesaurus holds the immutable surface-string -> concept mapping
// that the matcher automaton (pkg/automaton) is compiled from.
//
// A Thesaurus is a pure data container: insert is idempotent (latest
// insert wins) and get is an O(1) map lookup. Validation happens once, at
// insert time, and never fails the whole construction — invalid entries
// are dropped with a warning (spec §4.1).
package thesaurus

import (
	"strings"

	"github.com/kittclouds/rolegraph/internal/logging"
)

// MinPatternLength is the shortest surface string the thesaurus accepts
// after trimming. Shorter patterns make the compiled automaton fire at
// nearly every position in downstream text, corrupting replace/autocomplete
// output, so the rule is enforced centrally here rather than left to
// callers of the automaton.
const MinPatternLength = 2

// NormalizedTerm is a concept: a stable id, its canonical display value,
// and an opaque payload (a URL in link-replace formats, a label
// elsewhere — the core never interprets it).
type NormalizedTerm struct {
	ID      uint64 `json:"id"`
	Value   string `json:"value"`
	Payload string `json:"payload,omitempty"`
}

// Thesaurus is the immutable-after-construction surface -> concept map.
// The zero value is not usable; construct with New.
type Thesaurus struct {
	Name    string
	entries map[string]NormalizedTerm
}

// New creates an empty, named thesaurus.
func New(name string) *Thesaurus {
	return &Thesaurus{
		Name:    name,
		entries: make(map[string]NormalizedTerm),
	}
}

// IsValidSurface applies the validation rule set from spec §4.1: trim
// whitespace, reject empty/whitespace-only/too-short results. It returns
// the trimmed surface and whether it is acceptable.
func IsValidSurface(surface string) (trimmed string, ok bool) {
	trimmed = strings.TrimSpace(surface)
	if trimmed == "" {
		return trimmed, false
	}
	if len([]rune(trimmed)) < MinPatternLength {
		return trimmed, false
	}
	return trimmed, true
}

// Insert adds or replaces the mapping for surface -> term. Idempotent:
// the latest call for a given (trimmed) surface wins. Invalid surfaces are
// silently dropped with a logged warning; Insert never returns an error.
func (t *Thesaurus) Insert(surface string, term NormalizedTerm) {
	trimmed, ok := IsValidSurface(surface)
	if !ok {
		logging.L().Warnw("thesaurus: dropping invalid surface",
			"thesaurus", t.Name, "surface", surface)
		return
	}
	t.entries[strings.ToLower(trimmed)] = term
}

// Get looks up a surface string, case-insensitively (matching the
// matcher's default case-folding, spec §4.2). O(1) expected.
func (t *Thesaurus) Get(surface string) (NormalizedTerm, bool) {
	term, ok := t.entries[strings.ToLower(strings.TrimSpace(surface))]
	return term, ok
}

// Len returns the number of valid surface entries held.
func (t *Thesaurus) Len() int {
	return len(t.entries)
}

// Surfaces returns every surface key currently held, in no particular
// order.
func (t *Thesaurus) Surfaces() []string {
	out := make([]string, 0, len(t.entries))
	for k := range t.entries {
		out = append(out, k)
	}
	return out
}

// Entries returns a snapshot copy of the surface -> term map. Callers must
// not assume it reflects later Inserts.
func (t *Thesaurus) Entries() map[string]NormalizedTerm {
	out := make(map[string]NormalizedTerm, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}
