package search

import (
	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
)

// entry is one frontier element. Each entry owns its path; paths are never
// shared between entries, so the frontier can grow to O(entries x path length).
type entry struct {
	node  graph.NodeID
	path  graph.Path
	depth int
}

// BreadthFirst searches g for a path from start to goal using a FIFO frontier.
//
// The returned path has the minimum number of edges. The boolean result is
// false when goal is unreachable from start; that is not an error. Unknown
// endpoints fail with NODE_NOT_FOUND before any traversal work.
func BreadthFirst(g *graph.Graph, start, goal graph.NodeID) (graph.Path, bool, error) {
	if err := checkEndpoints(g, start, goal); err != nil {
		return nil, false, err
	}
	if start == goal {
		return graph.Path{start}, true, nil
	}

	queue := []entry{{node: start, path: graph.Path{start}}}
	visited := make(map[graph.NodeID]bool)
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		queue[head] = entry{}
		if cur.node == goal {
			return cur.path, true, nil
		}
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		for _, n := range g.Neighbors(cur.node) {
			queue = append(queue, entry{node: n, path: extend(cur.path, n)})
		}
	}
	return nil, false, nil
}

// DepthFirst searches g for a path from start to goal using a LIFO frontier.
//
// Neighbors are pushed in neighbor order, so the last neighbor is explored
// first. A node is marked visited when it is popped, not when it is pushed,
// which means the stack may hold several stale entries for one node.
// There is no length guarantee on the returned path.
func DepthFirst(g *graph.Graph, start, goal graph.NodeID) (graph.Path, bool, error) {
	if err := checkEndpoints(g, start, goal); err != nil {
		return nil, false, err
	}
	if start == goal {
		return graph.Path{start}, true, nil
	}

	stack := []entry{{node: start, path: graph.Path{start}}}
	visited := make(map[graph.NodeID]bool)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.node == goal {
			return cur.path, true, nil
		}
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		for _, n := range g.Neighbors(cur.node) {
			stack = append(stack, entry{node: n, path: extend(cur.path, n)})
		}
	}
	return nil, false, nil
}

// DepthLimited is DepthFirst with a depth bound.
//
// The start node has depth 0. A popped entry is first compared against goal
// and only then expanded, and only if its node is unvisited and its depth is
// below limit. Entries at depth == limit are therefore goal-checked but never
// expanded. A goal farther than limit edges away yields (nil, false, nil)
// even when a longer path exists. limit must be positive, otherwise the call
// fails with INVALID_PARAMETER.
func DepthLimited(g *graph.Graph, start, goal graph.NodeID, limit int) (graph.Path, bool, error) {
	if limit <= 0 {
		return nil, false, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "depth limit must be > 0, got %d", limit)
	}
	if err := checkEndpoints(g, start, goal); err != nil {
		return nil, false, err
	}
	if start == goal {
		return graph.Path{start}, true, nil
	}

	stack := []entry{{node: start, path: graph.Path{start}}}
	visited := make(map[graph.NodeID]bool)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.node == goal {
			return cur.path, true, nil
		}
		if visited[cur.node] || cur.depth >= limit {
			continue
		}
		visited[cur.node] = true
		for _, n := range g.Neighbors(cur.node) {
			stack = append(stack, entry{node: n, path: extend(cur.path, n), depth: cur.depth + 1})
		}
	}
	return nil, false, nil
}

func checkEndpoints(g *graph.Graph, start, goal graph.NodeID) error {
	if g == nil {
		return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "graph is nil")
	}
	if !g.HasNode(start) {
		return gwerrors.New(gwerrors.ErrCodeNodeNotFound, "start node %d not in graph", start)
	}
	if !g.HasNode(goal) {
		return gwerrors.New(gwerrors.ErrCodeNodeNotFound, "goal node %d not in graph", goal)
	}
	return nil
}

// extend returns a new path equal to p followed by n.
func extend(p graph.Path, n graph.NodeID) graph.Path {
	out := make(graph.Path, len(p)+1)
	copy(out, p)
	out[len(p)] = n
	return out
}
