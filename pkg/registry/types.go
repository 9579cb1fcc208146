// Package registry implements the per-role dispatch layer (spec §4.4
// C4 Role Registry): registering a (thesaurus, graph, scorer) triple per
// role name, atomically selecting which role serves queries, and routing
// Query calls to the selected role's RoleGraph.
package registry

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/kittclouds/rolegraph/pkg/rolegraph"
	"github.com/kittclouds/rolegraph/pkg/thesaurus"
)

// RoleState is a state in a role's build lifecycle (spec §4.4: "a state
// machine governs each role's build lifecycle").
type RoleState string

const (
	StateUninitialized RoleState = "uninitialized"
	StateBuilding       RoleState = "building"
	StateReady          RoleState = "ready"
	StateRebuilding      RoleState = "rebuilding"
	StateFailed         RoleState = "failed"
	StateRetired        RoleState = "retired"
)

// RoleSpec declares a role's identity and scoring policy before its
// graph has been built. Struct tags are enforced by go-playground's
// validator (spec §4.5 ambient stack), grounded on the teacher's
// validation.Validator.Validate idiom.
type RoleSpec struct {
	Name              string                     `json:"name" validate:"required,min=1,max=128"`
	RelevanceFunction rolegraph.RelevanceFunction `json:"relevanceFunction" validate:"required,oneof=title-scorer terraphim-graph bm25 bm25f bm25plus tfidf jaccard query-ratio"`
	Alpha             float64                     `json:"alpha" validate:"gte=0,lte=1"`
}

// Validate runs struct-tag validation over spec, wrapping any failure in
// ErrInvalidRoleSpec so callers get a single sentinel to check against
// (spec §7 error model).
func (s RoleSpec) Validate() error {
	if err := getValidator().Struct(s); err != nil {
		return &validationError{spec: s.Name, cause: err}
	}
	return nil
}

type validationError struct {
	spec  string
	cause error
}

func (e *validationError) Error() string {
	return "registry: role " + e.spec + " failed validation: " + e.cause.Error()
}

func (e *validationError) Unwrap() error { return ErrInvalidRoleSpec }

// RoleInfo is the read-only snapshot ListRoles returns per role (spec
// §4.4 list_roles).
type RoleInfo struct {
	Name     string
	State    RoleState
	BuildID  string
	Selected bool
	Stats    rolegraph.GraphStats
}

// roleEntry is a registry's internal per-role bookkeeping: the built
// graph, its lifecycle state, and a circuit breaker guarding repeated
// build failures for this role alone (spec §4.4: "a role whose automaton
// repeatedly fails to build should stop being retried on every request").
type roleEntry struct {
	mu      sync.RWMutex
	spec    RoleSpec
	state   RoleState
	buildID string
	graph   *rolegraph.RoleGraph
	th      *thesaurus.Thesaurus
	breaker *gobreaker.CircuitBreaker
}

func newRoleEntry(spec RoleSpec) *roleEntry {
	return &roleEntry{
		spec:  spec,
		state: StateUninitialized,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        spec.Name,
			MaxRequests: 1,
			Interval:    0,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// Registry holds every registered role and the name of the role
// currently selected to serve queries (spec §4.4 Role Registry). The
// selected name is stored in an atomic.Pointer so Query never blocks on
// the registry's own mutex while a concurrent RegisterRole or
// RebuildRole is in flight (spec §5 concurrency model).
type Registry struct {
	mu       sync.RWMutex
	roles    map[string]*roleEntry
	selected atomic.Pointer[string]
	group    singleflight.Group
}

// New returns an empty Registry with no roles registered and no role
// selected.
func New() *Registry {
	return &Registry{roles: make(map[string]*roleEntry)}
}

func newBuildID() string {
	return uuid.NewString()
}
