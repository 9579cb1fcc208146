package registry

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kittclouds/rolegraph/internal/logging"
	"github.com/kittclouds/rolegraph/pkg/rolegraph"
	"github.com/kittclouds/rolegraph/pkg/thesaurus"
)

// RegisterRole validates spec, compiles th into a RoleGraph, indexes
// docs (if any), and transitions the role Uninitialized -> Building ->
// Ready (or -> Failed on error). Registering a name that already exists
// replaces its entry entirely; the previous graph is discarded (spec
// §4.4 register_role).
func (r *Registry) RegisterRole(ctx context.Context, spec RoleSpec, th *thesaurus.Thesaurus, docs map[string]map[string]string) error {
	if spec.Alpha == 0 {
		spec.Alpha = rolegraph.DefaultAlpha
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	entry := newRoleEntry(spec)
	entry.buildID = newBuildID()
	entry.state = StateBuilding

	r.mu.Lock()
	r.roles[spec.Name] = entry
	r.mu.Unlock()

	_, err := entry.breaker.Execute(func() (any, error) {
		return nil, r.buildRoleGraph(ctx, entry, th, docs)
	})

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err != nil {
		entry.state = StateFailed
		logging.L().Warnw("registry: role build failed", "role", spec.Name, "error", err)
		return err
	}
	entry.state = StateReady
	entry.th = th
	return nil
}

// buildRoleGraph does the actual build work guarded by the role's
// circuit breaker: compile the automaton from th, apply the role's
// Alpha, and index every document in docs concurrently via errgroup
// (spec §5 concurrency model — InsertDocument takes the graph's own
// lock, so concurrent inserts are safe).
func (r *Registry) buildRoleGraph(ctx context.Context, entry *roleEntry, th *thesaurus.Thesaurus, docs map[string]map[string]string) error {
	graph, err := rolegraph.BuildGraph(entry.spec.Name, th)
	if err != nil {
		return fmt.Errorf("registry: compiling automaton for role %q: %w", entry.spec.Name, err)
	}
	graph.Alpha = entry.spec.Alpha

	group, gctx := errgroup.WithContext(ctx)
	for id, fields := range docs {
		id, fields := id, fields
		group.Go(func() error {
			return graph.InsertDocumentContext(gctx, id, fields)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	entry.mu.Lock()
	entry.graph = graph
	entry.mu.Unlock()
	return nil
}

// RebuildRole re-indexes an existing role's graph from scratch against a
// (possibly updated) thesaurus and document set, transitioning Ready ->
// Rebuilding -> Ready. Concurrent RebuildRole calls for the same role
// name collapse into a single build via singleflight, so a burst of
// callers triggering a rebuild at once only pays the build cost once
// (spec §5).
func (r *Registry) RebuildRole(ctx context.Context, name string, th *thesaurus.Thesaurus, docs map[string]map[string]string) error {
	r.mu.RLock()
	entry, ok := r.roles[name]
	r.mu.RUnlock()
	if !ok {
		return ErrRoleNotFound
	}

	_, err, _ := r.group.Do(name, func() (any, error) {
		entry.mu.Lock()
		if entry.state == StateRetired {
			entry.mu.Unlock()
			return nil, ErrRoleNotReady
		}
		entry.state = StateRebuilding
		entry.mu.Unlock()

		_, err := entry.breaker.Execute(func() (any, error) {
			return nil, r.buildRoleGraph(ctx, entry, th, docs)
		})

		entry.mu.Lock()
		defer entry.mu.Unlock()
		if err != nil {
			entry.state = StateFailed
			return nil, err
		}
		entry.state = StateReady
		entry.th = th
		return nil, nil
	})
	return err
}

// SelectRole atomically sets name as the role that Query dispatches to.
// The swap is lock-free from Query's perspective (spec §5: "role
// selection must never block an in-flight query").
func (r *Registry) SelectRole(name string) error {
	r.mu.RLock()
	_, ok := r.roles[name]
	r.mu.RUnlock()
	if !ok {
		return ErrRoleNotFound
	}
	r.selected.Store(&name)
	return nil
}

// SelectedRole returns the name of the currently selected role, or ""
// if none has been selected yet.
func (r *Registry) SelectedRole() string {
	p := r.selected.Load()
	if p == nil {
		return ""
	}
	return *p
}

// Query dispatches queryText to the currently selected role's RoleGraph
// using fn as the relevance function (spec §4.4 query). Retired or
// failed roles, and queries issued before any role has been selected or
// built, return a sentinel error rather than an empty result set so
// callers can distinguish "no matches" from "not ready".
func (r *Registry) Query(queryText string, fn rolegraph.RelevanceFunction, limit int) ([]rolegraph.ScoredDocument, error) {
	return r.QueryContext(context.Background(), queryText, fn, limit)
}

// QueryContext is Query threaded with a caller's context, cancellable
// over a large role graph (spec §5, §7).
func (r *Registry) QueryContext(ctx context.Context, queryText string, fn rolegraph.RelevanceFunction, limit int) ([]rolegraph.ScoredDocument, error) {
	name := r.SelectedRole()
	if name == "" {
		return nil, ErrNoRoleSelected
	}
	return r.QueryRoleContext(ctx, name, queryText, fn, limit)
}

// QueryRole dispatches queryText to a specific named role regardless of
// which role is currently selected, for callers that need to compare
// across roles (spec §9 supplemented operation).
func (r *Registry) QueryRole(name, queryText string, fn rolegraph.RelevanceFunction, limit int) ([]rolegraph.ScoredDocument, error) {
	return r.QueryRoleContext(context.Background(), name, queryText, fn, limit)
}

// QueryRoleContext is QueryRole threaded with a caller's context.
func (r *Registry) QueryRoleContext(ctx context.Context, name, queryText string, fn rolegraph.RelevanceFunction, limit int) ([]rolegraph.ScoredDocument, error) {
	r.mu.RLock()
	entry, ok := r.roles[name]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrRoleNotFound
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	if entry.state != StateReady || entry.graph == nil {
		return nil, ErrRoleNotReady
	}
	return entry.graph.QueryContext(ctx, queryText, fn, limit)
}

// ListRoles returns a snapshot of every registered role's name, state,
// build id, and graph stats (spec §4.4 list_roles).
func (r *Registry) ListRoles() []RoleInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	selected := r.SelectedRole()
	out := make([]RoleInfo, 0, len(r.roles))
	for name, entry := range r.roles {
		entry.mu.RLock()
		info := RoleInfo{
			Name:     name,
			State:    entry.state,
			BuildID:  entry.buildID,
			Selected: name == selected,
		}
		if entry.graph != nil {
			info.Stats = entry.graph.GetGraphStats()
		}
		entry.mu.RUnlock()
		out = append(out, info)
	}
	return out
}

// RetireRole transitions a role to Retired, removing it from query
// dispatch. A retired role stays enumerable via ListRoles but QueryRole
// and Query against it return ErrRoleNotReady (spec §4.4 state machine:
// Ready/Failed -> Retired is terminal).
func (r *Registry) RetireRole(name string) error {
	r.mu.RLock()
	entry, ok := r.roles[name]
	r.mu.RUnlock()
	if !ok {
		return ErrRoleNotFound
	}
	entry.mu.Lock()
	entry.state = StateRetired
	entry.graph = nil
	entry.mu.Unlock()
	return nil
}
