// Package geometry provides the path and rectangle primitives used to
// describe connector lines and bounding boxes.
//
// A [Path] is an ordered list of SVG-style segments (move, line, quadratic
// and cubic Bézier). Paths are plain values: they are built by the layout
// engine and handed to a sink, which either writes [Path.String] into an SVG
// "d" attribute or replays the segments onto a raster canvas.
//
// # Connector shapes
//
//   - [Elbow]: orthogonal L/Z shape used by the "straight" line style
//   - [Line]: a single diagonal segment ("direct")
//   - [QuadraticCurve] and [CubicCurve]: the "curve" line style
//
// Generalization brackets are built with [BracketRight], [BracketLeft] and
// [BracketBelow] around a [Rect].
package geometry
