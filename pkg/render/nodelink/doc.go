// Package nodelink renders graphs and search paths as node-link diagrams.
//
// # Usage
//
// Convert a graph and a path to DOT, then render:
//
//	dot := nodelink.ToDOT(g, path, nodelink.Options{Title: "connected(500, 3)"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Highlighting
//
// The start node is green, the goal red and the intermediate path nodes blue.
// Path edges are drawn bold in blue. When a search found nothing, pass a nil
// path and set [Options.Start] and [Options.Goal] so the endpoints are still
// visible.
//
// # Layout
//
// Graphs are undirected, so the output uses "graph G" with "--" edges. The
// Graphviz engine is written into the DOT source and picked up by
// [RenderSVG]. [DefaultLayout] prefers circo for complete graphs and neato
// above 1000 nodes. Graphs over [MaxEdges] edges are rejected by [CheckSize].
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
