package rolegraph

import "errors"

// Sentinel errors surfaced to collaborators (spec §7). Invalid input is
// never one of these — it is dropped with a warning, matching
// pkg/thesaurus and pkg/automaton.
var (
	// ErrDocumentNotFound is returned by GetDocument for an unknown id.
	ErrDocumentNotFound = errors.New("rolegraph: document not found")
	// ErrPairOverflow signals the pairing function could not represent
	// (source, target) as a single uint64 without loss (spec §4.3.6). The
	// core does not panic on this; the offending edge is skipped and the
	// condition is logged as an invariant violation.
	ErrPairOverflow = errors.New("rolegraph: pair encoding overflow")
	// ErrCancelled is returned when a caller's context is done before an
	// operation completes (spec §5, cooperative cancellation).
	ErrCancelled = errors.New("rolegraph: operation cancelled")
)
