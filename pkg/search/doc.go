// Package search implements uninformed path search over [graph.Graph].
//
// # Algorithms
//
// Three strategies share one contract: given a graph and two endpoints they
// return a path, a found flag, and an error.
//
//   - [BreadthFirst] uses a FIFO frontier and returns a path with the fewest
//     edges.
//   - [DepthFirst] uses a LIFO frontier and returns the first path its
//     exploration order reaches.
//   - [DepthLimited] is depth-first search that never expands nodes at depth
//     limit or beyond.
//
// All three check for the goal when an entry leaves the frontier, and mark a
// node visited only when it is expanded. Neighbors are enqueued in the
// graph's neighbor order, so results are fully determined by the graph.
//
// # Results and Errors
//
// "No path" is a result, not an error:
//
//	path, found, err := search.BreadthFirst(g, 1, 6)
//	if err != nil {
//	    return err // NODE_NOT_FOUND or INVALID_PARAMETER
//	}
//	if !found {
//	    fmt.Println("no path")
//	}
//
// Endpoints missing from the graph fail with NODE_NOT_FOUND and a
// non-positive depth limit fails with INVALID_PARAMETER, in both cases
// before any traversal work. start == goal returns the single-node path.
//
// # Strategies
//
// [Strategy] is the runtime selector used by the CLI, the HTTP API and the
// benchmark runner. [Search] dispatches on it and [Run] additionally times the
// call.
//
// # Concurrency
//
// Each call owns its frontier and visited set. Any number of searches may run
// concurrently over one graph as long as nothing mutates it.
//
// # Memory
//
// Every frontier entry carries its own copy of the path to it. Peak memory is
// proportional to frontier size times path length, which on dense graphs such
// as K_n is dominated by the first expansion.
package search
