// Package render groups the output backends for mind map layouts.
//
// # Overview
//
// Layouts are computed by [layout] and converted to a serializable
// [layout.Export]. The subpackages turn that export into artifacts:
//
//   - Native sinks (in [sink] subpackage): SVG, PNG and JSON drawn from the
//     computed geometry, one-to-one with the layout engine's output
//   - Node-link diagrams (in [nodelink] subpackage): Graphviz DOT and SVG
//
// # Native Sinks
//
// The sinks draw connectors from their SVG path data, so every line style
// and strategy renders without extra geometry code:
//
//	x := layout.Compute(root, cfg).Export()
//	svg := sink.RenderSVG(x, sink.WithTheme(cfg.Theme))
//	png, err := sink.RenderPNG(x, sink.WithScale(2))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage lets Graphviz place the same nodes. It ignores
// the computed coordinates and keeps only the parent links:
//
//	dot := nodelink.ToDOT(x, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [layout]: github.com/matzehuels/mindlayout/pkg/core/layout
// [layout.Export]: github.com/matzehuels/mindlayout/pkg/core/layout#Export
// [sink]: github.com/matzehuels/mindlayout/pkg/render/sink
// [nodelink]: github.com/matzehuels/mindlayout/pkg/render/nodelink
package render
