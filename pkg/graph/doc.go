// Package graph provides the undirected graph model and the synthetic graph
// builders used by graphwalk.
//
// # Overview
//
// A [Graph] is a simple undirected graph over integer node IDs. Each node keeps
// an ordered neighbor list, and the order is the order in which edges were
// added. Search strategies iterate neighbors in this order, so two graphs with
// the same edge set but different insertion order can yield different DFS
// paths. The builders fix the order, which makes every search over a built
// graph reproducible.
//
// # Builders
//
// Three construction modes are available, all using nodes 1..n:
//
//   - [BuildConnected]: a path backbone plus deterministic "fanout" chords.
//     Always connected; the same (n, fanout) always yields the same graph.
//   - [BuildComplete]: the complete graph K_n, the densest benchmark input.
//   - [BuildRandom]: n*fanout/2 random edges from a seeded stream. Reproducible
//     per seed, possibly disconnected.
//
// [Build] dispatches on a [Params] value, which is also stored on the graph
// and carried through serialization and cache keys.
//
//	g, err := graph.BuildConnected(6, 2)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.Neighbors(1)) // [2 3 5 6]
//
// # Manual Construction
//
// [New], [Graph.AddNode] and [Graph.AddEdge] assemble arbitrary graphs, which
// is how JSON import and test fixtures work. [FromEdges] is a shorthand for
// nodes 1..n plus a list of edges. Self-loops are rejected and duplicate edges
// are ignored, so every graph satisfies the simple-graph invariants checked by
// [Graph.Validate].
//
// # Paths
//
// [Path] is the output type of the search engine: an ordered node sequence
// whose consecutive pairs are edges. [Path.Len] counts edges, not nodes.
//
// # Errors
//
// Invalid construction parameters produce INVALID_PARAMETER errors and unknown
// endpoints produce NODE_NOT_FOUND errors from the errors package. Use
// [IsInvalidParameter] and [IsNodeNotFound] to branch on them.
//
// # Concurrency
//
// Graphs are not safe for concurrent mutation. Once built, a graph may be
// shared freely between goroutines that only read it, which is how the
// benchmark runner executes several strategies in parallel.
package graph
