package graph

import (
	"slices"
	"strconv"
	"strings"
)

// Path is an ordered sequence of nodes from a start node to a goal node,
// where each consecutive pair is connected by an edge. A nil Path stands
// for "no path". Paths returned by the search engine are never mutated.
type Path []NodeID

// Len returns the number of edges in the path, which is one less than the
// number of nodes. Returns 0 for an empty or single-node path.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Start returns the first node of the path, or 0 for an empty path.
func (p Path) Start() NodeID {
	if len(p) == 0 {
		return 0
	}
	return p[0]
}

// Goal returns the last node of the path, or 0 for an empty path.
func (p Path) Goal() NodeID {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1]
}

// Contains reports whether id appears anywhere on the path.
func (p Path) Contains(id NodeID) bool {
	return slices.Contains(p, id)
}

// Edges returns the consecutive node pairs of the path.
func (p Path) Edges() []Edge {
	if len(p) < 2 {
		return nil
	}
	out := make([]Edge, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		out = append(out, Edge{U: p[i-1], V: p[i]})
	}
	return out
}

// Valid reports whether the path is non-empty, every node exists in g, and
// every consecutive pair is adjacent in g.
func (p Path) Valid(g *Graph) bool {
	if len(p) == 0 {
		return false
	}
	for i, n := range p {
		if !g.HasNode(n) {
			return false
		}
		if i > 0 && !g.HasEdge(p[i-1], n) {
			return false
		}
	}
	return true
}

// String formats the path as "1 -> 2 -> 3".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(int(n))
	}
	return strings.Join(parts, " -> ")
}
