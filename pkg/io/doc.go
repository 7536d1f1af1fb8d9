// Package io provides JSON import and export for graphs and search results.
//
// # Overview
//
// Graphs are serialized as their construction parameters, their node list
// and their edge list in insertion order. Because neighbor order follows
// edge insertion order, a graph read back with [ReadJSON] yields the same
// search results as the graph that was written. This is what the pipeline
// cache relies on when it stores built graphs.
//
// # JSON Format
//
//	{
//	  "params": {"kind": "connected", "nodes": 4, "fanout": 1},
//	  "nodes": [1, 2, 3, 4],
//	  "edges": [
//	    {"u": 2, "v": 1},
//	    {"u": 3, "v": 2},
//	    {"u": 4, "v": 3},
//	    {"u": 4, "v": 1}
//	  ]
//	}
//
// "params.kind" is one of "connected", "complete", "random" or "manual".
// Graphs with a builder kind must list exactly params.nodes nodes. Manual
// graphs may use any positive node IDs.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	g, err := io.ImportJSON("graph.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Import re-validates every edge, so hand-written files cannot introduce
// self-loops or asymmetric adjacency.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. [WriteResultJSON] writes a [search.Result], which is what the
// CLI prints with --json and what the HTTP API returns.
//
// [search.Result]: github.com/matzehuels/graphwalk/pkg/search.Result
package io
