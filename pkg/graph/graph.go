package graph

import (
	"fmt"
	"maps"
	"slices"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
)

// NodeID identifies a vertex. Built graphs use the dense 1-based range 1..n.
type NodeID int

// Edge is an undirected connection between two distinct nodes.
// U is the endpoint that was passed first to [Graph.AddEdge].
type Edge struct {
	U NodeID `json:"u"`
	V NodeID `json:"v"`
}

// Kind names the construction mode that produced a graph.
type Kind string

const (
	// KindManual marks graphs assembled with AddNode/AddEdge (tests, JSON import).
	KindManual Kind = "manual"
	// KindConnected marks graphs from [BuildConnected].
	KindConnected Kind = "connected"
	// KindComplete marks graphs from [BuildComplete].
	KindComplete Kind = "complete"
	// KindRandom marks graphs from [BuildRandom].
	KindRandom Kind = "random"
)

// Params records the inputs a builder was called with. Two graphs built from
// equal Params have identical edge sets and neighbor orders.
type Params struct {
	Kind   Kind   `json:"kind" toml:"kind"`
	Nodes  int    `json:"nodes" toml:"nodes"`
	Fanout int    `json:"fanout,omitempty" toml:"fanout"`
	Seed   uint64 `json:"seed,omitempty" toml:"seed"`
}

// String describes the graph the parameters build, e.g.
// "connected graph, 500 nodes, fanout 3" or "K10000".
func (p Params) String() string {
	switch p.Kind {
	case KindComplete:
		return fmt.Sprintf("K%d", p.Nodes)
	case KindConnected:
		return fmt.Sprintf("connected graph, %d nodes, fanout %d", p.Nodes, p.Fanout)
	case KindRandom:
		return fmt.Sprintf("random graph, %d nodes, fanout %d, seed %d", p.Nodes, p.Fanout, p.Seed)
	default:
		return fmt.Sprintf("graph, %d nodes", p.Nodes)
	}
}

// MaxEdges returns an upper bound on the edges the builder for p creates,
// computed without building. Complete graphs meet it exactly. Manual graphs
// are unbounded and report -1.
func (p Params) MaxEdges() int {
	n := p.Nodes
	if n < 2 {
		return 0
	}
	full := n * (n - 1) / 2
	f := min(max(p.Fanout, 0), n-1)
	switch p.Kind {
	case KindComplete:
		return full
	case KindConnected:
		return min(n-1+n*f, full)
	case KindRandom:
		return min(n*f/2, full)
	default:
		return -1
	}
}

// edgeKey is the order-independent identity of an undirected edge.
type edgeKey struct{ lo, hi NodeID }

func keyOf(u, v NodeID) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{lo: u, hi: v}
}

// Graph is a simple undirected graph with ordered adjacency lists.
//
// Neighbor order is insertion order: AddEdge(u, v) appends v to u's list and u
// to v's list. Traversal results depend on this order, so it is part of the
// graph's identity.
//
// The zero value is not usable - use [New] or one of the builders.
// A Graph must not be mutated once it is shared; concurrent readers are safe.
type Graph struct {
	adj    map[NodeID][]NodeID
	index  map[edgeKey]struct{}
	edges  []Edge
	maxID  NodeID
	params Params
}

// New creates an empty graph for manual construction.
func New() *Graph {
	return newWithParams(Params{Kind: KindManual})
}

func newWithParams(p Params) *Graph {
	return &Graph{
		adj:    make(map[NodeID][]NodeID, p.Nodes),
		index:  make(map[edgeKey]struct{}),
		params: p,
	}
}

// Params returns the construction parameters of the graph.
func (g *Graph) Params() Params { return g.params }

// AddNode adds a node with no neighbors. Adding an existing node is a no-op.
// Node IDs must be positive.
func (g *Graph) AddNode(id NodeID) error {
	if id < 1 {
		return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "node id must be >= 1, got %d", id)
	}
	if _, ok := g.adj[id]; ok {
		return nil
	}
	g.adj[id] = nil
	if id > g.maxID {
		g.maxID = id
	}
	if g.params.Kind == KindManual {
		g.params.Nodes = len(g.adj)
	}
	return nil
}

// AddEdge connects two existing nodes. It returns false without error when
// the edge is already present. Self-loops are rejected with an
// INVALID_PARAMETER error and unknown endpoints with NODE_NOT_FOUND.
func (g *Graph) AddEdge(u, v NodeID) (bool, error) {
	if u == v {
		return false, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "self-loop on node %d", u)
	}
	if !g.HasNode(u) {
		return false, gwerrors.New(gwerrors.ErrCodeNodeNotFound, "unknown node %d", u)
	}
	if !g.HasNode(v) {
		return false, gwerrors.New(gwerrors.ErrCodeNodeNotFound, "unknown node %d", v)
	}
	k := keyOf(u, v)
	if _, ok := g.index[k]; ok {
		return false, nil
	}
	g.index[k] = struct{}{}
	g.edges = append(g.edges, Edge{U: u, V: v})
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return true, nil
}

// connect is AddEdge for builders, which only pass valid distinct endpoints.
func (g *Graph) connect(u, v NodeID) {
	k := keyOf(u, v)
	if _, ok := g.index[k]; ok {
		return
	}
	g.index[k] = struct{}{}
	g.edges = append(g.edges, Edge{U: u, V: v})
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
}

// FromEdges creates a manual graph with nodes 1..n and the given edges,
// added in order. It is the quickest way to assemble small fixtures,
// including graphs with several components.
func FromEdges(n int, edges ...Edge) (*Graph, error) {
	if n < 0 {
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "node count must be >= 0, got %d", n)
	}
	g := New()
	for i := 1; i <= n; i++ {
		_ = g.AddNode(NodeID(i))
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e.U, e.V); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Restore reassembles a graph from serialized parts. Edges are re-added in
// order, so a graph exported with [Graph.Edges] comes back with identical
// neighbor order. For builder kinds, p.Nodes must match the node count.
func Restore(p Params, nodes []NodeID, edges []Edge) (*Graph, error) {
	if p.Kind == "" {
		p.Kind = KindManual
	}
	g := newWithParams(p)
	for _, id := range nodes {
		if err := g.AddNode(id); err != nil {
			return nil, err
		}
	}
	if p.Kind != KindManual && p.Nodes != len(g.adj) {
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidInput, "%s graph declares %d nodes, got %d", p.Kind, p.Nodes, len(g.adj))
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e.U, e.V); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.adj[id]
	return ok
}

// HasEdge reports whether u and v are adjacent, in either direction.
func (g *Graph) HasEdge(u, v NodeID) bool {
	_, ok := g.index[keyOf(u, v)]
	return ok
}

// Neighbors returns the neighbors of id in insertion order.
// Returns nil if the node has no neighbors or doesn't exist. The returned
// slice is a read-only view and must not be modified.
func (g *Graph) Neighbors(id NodeID) []NodeID { return g.adj[id] }

// Degree returns the number of neighbors of id, or 0 if it doesn't exist.
func (g *Graph) Degree(id NodeID) int { return len(g.adj[id]) }

// Nodes returns all node IDs in ascending order.
func (g *Graph) Nodes() []NodeID {
	return slices.Sorted(maps.Keys(g.adj))
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of undirected edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// MaxNode returns the largest node ID, or 0 for an empty graph.
func (g *Graph) MaxNode() NodeID { return g.maxID }

// Validate checks the structural invariants of the graph: no self-loops,
// symmetric adjacency, and agreement between the edge list, the edge index
// and the adjacency lists. Graphs built through this package always pass;
// it exists for graphs decoded from external data.
func (g *Graph) Validate() error {
	if len(g.index) != len(g.edges) {
		return gwerrors.New(gwerrors.ErrCodeInternal, "edge index has %d entries for %d edges", len(g.index), len(g.edges))
	}
	// Each edge must be seen once from each endpoint: bit 1 from the lower
	// node, bit 2 from the higher one.
	sides := make(map[edgeKey]uint8, len(g.edges))
	degrees := 0
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			if u == v {
				return gwerrors.New(gwerrors.ErrCodeInvalidParameter, "self-loop on node %d", u)
			}
			k := keyOf(u, v)
			if _, ok := g.index[k]; !ok {
				return gwerrors.New(gwerrors.ErrCodeInternal, "adjacency %d-%d missing from edge index", u, v)
			}
			if u < v {
				sides[k] |= 1
			} else {
				sides[k] |= 2
			}
		}
		degrees += len(nbrs)
	}
	if degrees != 2*len(g.edges) {
		return gwerrors.New(gwerrors.ErrCodeInternal, "degree sum %d does not match %d edges", degrees, len(g.edges))
	}
	for k, seen := range sides {
		if seen != 3 {
			return gwerrors.New(gwerrors.ErrCodeInternal, "edge %d-%d is not symmetric", k.lo, k.hi)
		}
	}
	return nil
}

// Connected reports whether every node is reachable from the lowest node.
// The empty graph is considered connected.
func (g *Graph) Connected() bool {
	if len(g.adj) == 0 {
		return true
	}
	root := slices.Min(slices.Collect(maps.Keys(g.adj)))
	seen := map[NodeID]bool{root: true}
	stack := []NodeID{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, m := range g.adj[n] {
			if !seen[m] {
				seen[m] = true
				stack = append(stack, m)
			}
		}
	}
	return len(seen) == len(g.adj)
}

// IsInvalidParameter reports whether err is an INVALID_PARAMETER error.
func IsInvalidParameter(err error) bool {
	return gwerrors.Is(err, gwerrors.ErrCodeInvalidParameter)
}

// IsNodeNotFound reports whether err is a NODE_NOT_FOUND error.
func IsNodeNotFound(err error) bool {
	return gwerrors.Is(err, gwerrors.ErrCodeNodeNotFound)
}
