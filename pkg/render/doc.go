// Package render provides visualization output for graphs and search paths.
//
// # Overview
//
// Rendering is split in two layers:
//
//   - The [nodelink] subpackage turns a graph and an optional path into
//     Graphviz DOT source and renders it to SVG in-process.
//   - This package converts SVG into PDF or PNG with the external
//     rsvg-convert tool (from librsvg).
//
// # Format Conversion
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// When rsvg-convert is missing the conversion fails with an UNSUPPORTED error
// that includes install instructions. SVG and DOT output have no external
// requirements.
//
// [nodelink]: github.com/matzehuels/graphwalk/pkg/render/nodelink
package render
