package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/render"
)

// MaxEdges bounds the graphs that can be rendered. Graphviz layout time grows
// quickly with edge count; K_10000 alone has ~50M edges.
const MaxEdges = 20000

// Colors used for highlighting.
const (
	ColorStart = "#2e7d32"
	ColorGoal  = "#c62828"
	ColorPath  = "#1565c0"
	ColorNode  = "#bdbdbd"
	ColorEdge  = "#9e9e9e"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Title is drawn above the diagram. Empty means no title.
	Title string
	// Detailed adds the node degree to each label.
	Detailed bool
	// Layout names the Graphviz engine ("dot", "neato", "circo", ...).
	// Empty selects one with [DefaultLayout].
	Layout string
	// Start and Goal are highlighted even when no path is given.
	// They default to the path endpoints.
	Start, Goal graph.NodeID
}

// DefaultLayout picks a Graphviz engine for g: circo for complete graphs,
// neato for graphs over 1000 nodes, dot otherwise.
func DefaultLayout(g *graph.Graph) string {
	switch {
	case g.Params().Kind == graph.KindComplete:
		return "circo"
	case g.NodeCount() > 1000:
		return "neato"
	default:
		return "dot"
	}
}

// CheckSize returns an UNSUPPORTED error when g has more than [MaxEdges] edges.
func CheckSize(g *graph.Graph) error {
	if g.EdgeCount() > MaxEdges {
		return gwerrors.New(gwerrors.ErrCodeUnsupported,
			"graph has %d edges; rendering is limited to %d", g.EdgeCount(), MaxEdges)
	}
	return nil
}

// ToDOT converts a graph to Graphviz DOT format as an undirected graph.
//
// The start node is filled green, the goal red and intermediate path nodes
// blue; path edges are drawn bold in the path color. Everything else is grey.
// With a nil path only start and goal (from opts) are highlighted.
func ToDOT(g *graph.Graph, path graph.Path, opts Options) string {
	start, goal := opts.Start, opts.Goal
	if len(path) > 0 {
		start, goal = path.Start(), path.Goal()
	}
	onPath := make(map[graph.NodeID]bool, len(path))
	for _, n := range path {
		onPath[n] = true
	}
	pathEdges := make(map[graph.Edge]bool, len(path))
	for _, e := range path.Edges() {
		pathEdges[e] = true
		pathEdges[graph.Edge{U: e.V, V: e.U}] = true
	}

	layout := opts.Layout
	if layout == "" {
		layout = DefaultLayout(g)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", layout)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=20;\n", opts.Title)
	}
	if g.NodeCount() > 200 {
		buf.WriteString("  node [shape=point, width=0.08, style=filled, fillcolor=\"" + ColorNode + "\", color=\"" + ColorNode + "\"];\n")
	} else {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"" + ColorNode + "\", fontsize=12];\n")
	}
	buf.WriteString("  edge [color=\"" + ColorEdge + "\"];\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		attrs := fmtAttrs(g, id, opts.Detailed)
		switch {
		case id == start:
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", ColorStart), "fontcolor=white", "width=0.3")
		case id == goal:
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", ColorGoal), "fontcolor=white", "width=0.3")
		case onPath[id]:
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", ColorPath), "fontcolor=white")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if pathEdges[e] {
			fmt.Fprintf(&buf, "  %d -- %d [color=%q, penwidth=3];\n", e.U, e.V, ColorPath)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(g *graph.Graph, id graph.NodeID, detailed bool) []string {
	label := strconv.Itoa(int(id))
	if detailed {
		label = fmt.Sprintf("%d\ndeg %d", id, g.Degree(id))
	}
	return []string{fmt.Sprintf("label=%q", label)}
}

var layoutRe = regexp.MustCompile(`(?m)^\s*layout=([a-z0-9]+);`)

// RenderSVG renders a DOT graph to SVG using Graphviz. The engine is taken
// from the graph's layout attribute and defaults to dot.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if m := layoutRe.FindStringSubmatch(dot); m != nil {
		gv.SetLayout(graphviz.Layout(m[1]))
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, gwerrors.Wrap(gwerrors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales with its
// container instead of using Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// Render produces the artifact for format, one of the render.Format* constants.
func Render(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return RenderSVG(ctx, dot)
	case render.FormatPDF:
		return RenderPDF(ctx, dot)
	case render.FormatPNG:
		return RenderPNG(ctx, dot, scale)
	default:
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidFormat, "unsupported format: %q", format)
	}
}
