// Package nodelink renders mind map layouts as Graphviz node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// nodes appear as boxes connected by plain lines. It is an alternative to
// the native sinks for cases where Graphviz's own placement is preferred,
// or where DOT source is needed for external tooling.
//
// # Usage
//
// Convert a layout export to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(x, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include layer, direction and box size
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
