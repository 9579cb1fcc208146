package rolegraph

// IsAllTermsConnectedByPath reports whether the given node ids can all be
// visited by a single walk that uses each graph edge at most once (spec
// §4.3.4 is_all_terms_connected_by_path). This is a Hamiltonian-path-style
// reachability check over the edge-disjoint walk, not a Steiner-tree or
// general connectivity test: a graph can be fully connected yet fail this
// check if no single walk can cover every requested node without reusing
// an edge.
//
// ids with fewer than two distinct entries are trivially connected. Any
// id absent from the graph makes the whole query false.
func (g *RoleGraph) IsAllTermsConnectedByPath(ids []uint64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	unique := dedupeUint64(ids)
	if len(unique) <= 1 {
		for _, id := range unique {
			if _, ok := g.nodes[id]; !ok {
				return false
			}
		}
		return true
	}
	for _, id := range unique {
		if _, ok := g.nodes[id]; !ok {
			return false
		}
	}

	adjacency := g.undirectedAdjacency()
	target := make(map[uint64]bool, len(unique))
	for _, id := range unique {
		target[id] = true
	}

	for _, start := range unique {
		visited := make(map[uint64]bool, len(target))
		edgesUsed := make(map[uint64]bool)
		visited[start] = true
		if walkCoversAll(start, adjacency, target, visited, edgesUsed) {
			return true
		}
	}
	return false
}

type walkEdge struct {
	edgeID uint64
	to     uint64
}

// undirectedAdjacency builds a symmetric adjacency list from g's directed
// edges so the walk can traverse a co-occurrence edge in either
// direction, matching spec §4.3.4's "path" framing (co-occurrence is
// symmetric even though Edge.Source/Target are ordered).
func (g *RoleGraph) undirectedAdjacency() map[uint64][]walkEdge {
	adj := make(map[uint64][]walkEdge, len(g.nodes))
	for _, e := range g.edges {
		adj[e.Source] = append(adj[e.Source], walkEdge{edgeID: e.ID, to: e.Target})
		if e.Source != e.Target {
			adj[e.Target] = append(adj[e.Target], walkEdge{edgeID: e.ID, to: e.Source})
		}
	}
	return adj
}

// walkCoversAll performs a depth-first search from the current node,
// never reusing an edge id, backtracking on dead ends, until every id in
// target has been visited at least once.
func walkCoversAll(current uint64, adj map[uint64][]walkEdge, target, visited, edgesUsed map[uint64]bool) bool {
	if coversTarget(visited, target) {
		return true
	}
	for _, next := range adj[current] {
		if edgesUsed[next.edgeID] {
			continue
		}
		edgesUsed[next.edgeID] = true
		wasVisited := visited[next.to]
		visited[next.to] = true

		if walkCoversAll(next.to, adj, target, visited, edgesUsed) {
			return true
		}

		if !wasVisited {
			delete(visited, next.to)
		}
		delete(edgesUsed, next.edgeID)
	}
	return false
}

func coversTarget(visited, target map[uint64]bool) bool {
	for id := range target {
		if !visited[id] {
			return false
		}
	}
	return true
}

func dedupeUint64(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
