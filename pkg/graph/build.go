package graph

import (
	"math/rand/v2"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
)

// BuildConnected returns a deterministic connected graph on nodes 1..numNodes.
//
// Construction runs in two passes. The backbone adds (i, i-1) for every
// i >= 2, which makes the graph a path and therefore connected. The fanout
// pass then visits each node i and each offset j in 1..fanout and connects i
// to ((i + j - 1) mod numNodes) + 1, skipping self-loops and existing edges.
// With fanout 0 the result is exactly the backbone. Offsets repeat with
// period numNodes and offset numNodes is a self-loop, so fanout is clamped
// to numNodes-1 without changing the result.
//
// Equal inputs always produce the same edge set and neighbor order.
// Returns an INVALID_PARAMETER error if numNodes < 1 or fanout < 0.
func BuildConnected(numNodes, fanout int) (*Graph, error) {
	if numNodes < 1 {
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "num_nodes must be >= 1, got %d", numNodes)
	}
	if fanout < 0 {
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "fanout must be >= 0, got %d", fanout)
	}

	g := newWithParams(Params{Kind: KindConnected, Nodes: numNodes, Fanout: fanout})
	addRange(g, numNodes)

	for i := 2; i <= numNodes; i++ {
		g.connect(NodeID(i), NodeID(i-1))
	}

	offsets := min(fanout, numNodes-1)
	for i := 1; i <= numNodes; i++ {
		for j := 1; j <= offsets; j++ {
			dest := ((i+j-1)%numNodes + 1)
			if dest != i {
				g.connect(NodeID(i), NodeID(dest))
			}
		}
	}
	return g, nil
}

// BuildComplete returns the complete graph K_n on nodes 1..numNodes, with
// edges added in lexicographic order (1,2), (1,3), ..., (2,3), ...
// It is the worst-case density benchmark: n*(n-1)/2 edges.
// Returns an INVALID_PARAMETER error if numNodes < 1.
func BuildComplete(numNodes int) (*Graph, error) {
	if numNodes < 1 {
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "num_nodes must be >= 1, got %d", numNodes)
	}

	g := newWithParams(Params{Kind: KindComplete, Nodes: numNodes})
	addRange(g, numNodes)
	for i := 1; i <= numNodes; i++ {
		for j := i + 1; j <= numNodes; j++ {
			g.connect(NodeID(i), NodeID(j))
		}
	}
	return g, nil
}

// BuildRandom returns a graph on nodes 1..numNodes with numNodes*fanout/2
// distinct edges chosen uniformly from a PCG stream seeded with seed.
// The edge count is capped at n*(n-1)/2. The result is reproducible for
// equal inputs but is not guaranteed to be connected.
// Returns an INVALID_PARAMETER error if numNodes < 1 or fanout < 0.
func BuildRandom(numNodes, fanout int, seed uint64) (*Graph, error) {
	if numNodes < 1 {
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "num_nodes must be >= 1, got %d", numNodes)
	}
	if fanout < 0 {
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "fanout must be >= 0, got %d", fanout)
	}

	g := newWithParams(Params{Kind: KindRandom, Nodes: numNodes, Fanout: fanout, Seed: seed})
	addRange(g, numNodes)

	// fanout >= numNodes already asks for every edge.
	maxEdges := numNodes * (numNodes - 1) / 2
	want := min(numNodes*min(fanout, numNodes)/2, maxEdges)
	if want == maxEdges {
		for i := 1; i <= numNodes; i++ {
			for j := i + 1; j <= numNodes; j++ {
				g.connect(NodeID(i), NodeID(j))
			}
		}
		return g, nil
	}

	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	for len(g.edges) < want {
		u := NodeID(rng.IntN(numNodes) + 1)
		v := NodeID(rng.IntN(numNodes) + 1)
		if u != v {
			g.connect(u, v)
		}
	}
	return g, nil
}

// Build dispatches to the builder named by p.Kind.
// KindManual is not buildable and yields an INVALID_PARAMETER error.
func Build(p Params) (*Graph, error) {
	switch p.Kind {
	case KindConnected:
		return BuildConnected(p.Nodes, p.Fanout)
	case KindComplete:
		return BuildComplete(p.Nodes)
	case KindRandom:
		return BuildRandom(p.Nodes, p.Fanout, p.Seed)
	default:
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "unknown graph kind: %q", p.Kind)
	}
}

// ParseKind converts a user-facing name into a Kind.
// Accepts "connected", "complete" (or "kn"), and "random".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "connected", "":
		return KindConnected, nil
	case "complete", "kn", "Kn":
		return KindComplete, nil
	case "random":
		return KindRandom, nil
	default:
		return "", gwerrors.New(gwerrors.ErrCodeInvalidParameter, "unknown graph kind: %q (must be connected, complete, or random)", s)
	}
}

func addRange(g *Graph, n int) {
	for i := 1; i <= n; i++ {
		g.adj[NodeID(i)] = nil
	}
	g.maxID = NodeID(n)
}
