// Package pkg holds the graphwalk libraries.
//
// # Overview
//
// graphwalk builds undirected graphs with integer node IDs, searches them for
// a path between two nodes and draws the result. The packages are:
//
//  1. [graph] - Graph structure and the connected, complete and random builders
//  2. [search] - Breadth-first, depth-first and depth-limited search
//  3. [bench] - Timed comparison of strategies on the same endpoints
//  4. [io] - JSON import and export of graphs and search results
//  5. [render] - Graphviz drawing with the found path highlighted
//  6. [cache] - File, Redis and no-op caches for graphs and artifacts
//  7. [pipeline] - Orchestration (build → search → render)
//
// # Architecture
//
//	graph.Params or JSON file
//	         ↓
//	    [graph] package (build or import)
//	         ↓
//	    [search] package (BFS, DFS, DLS)
//	         ↓
//	    [render] package (DOT → SVG/PNG/PDF)
//
// # Quick Start
//
//	g, _ := graph.BuildConnected(500, 3)
//	res, err := search.Run(g, 1, 250, search.DLS(10))
//	if err != nil {
//	    return err
//	}
//	if !res.Found {
//	    fmt.Println("no path within 10 hops")
//	}
//	fmt.Println(res.Path, res.Hops(), res.Elapsed)
//
// A search that finds no path is a result, not an error. Errors are reserved
// for bad input: unknown nodes, unknown strategies, non-positive limits.
package pkg
