// Package sink provides output format renderers for computed mind map
// layouts.
//
// # Overview
//
// A "sink" transforms a [layout.Export] into a final output format. This
// package provides renderers for:
//
//   - SVG: vector output drawn with github.com/ajstarks/svgo
//   - PNG: raster output drawn with github.com/fogleman/gg
//   - JSON: the layout itself plus frame information for external tools
//
// All sinks read the export only, so one export may be rendered to several
// formats concurrently.
//
// # Options
//
// Each sink takes functional options. The theme supplies colors, font size
// and line width; the padding is added around the layout bounds:
//
//	svg := sink.RenderSVG(x, sink.WithTheme(th), sink.WithPadding(40))
//	png, err := sink.RenderPNG(x, sink.WithPNGTheme(th), sink.WithScale(2))
//
// [layout.Export]: github.com/matzehuels/mindlayout/pkg/core/layout.Export
package sink

import (
	"math"

	"github.com/matzehuels/mindlayout/pkg/core/geometry"
	"github.com/matzehuels/mindlayout/pkg/core/layout"
)

// DefaultPadding is the space added around the layout bounds.
const DefaultPadding = 40.0

// frame returns the drawing area of x: its bounds grown by padding and
// snapped outward to whole units.
func frame(x *layout.Export, padding float64) geometry.Rect {
	b := x.Bounds
	if b.Width() <= 0 || b.Height() <= 0 {
		b = geometry.Rect{}
	}
	b = b.Expand(padding)
	return geometry.Rect{
		Left:   math.Floor(b.Left),
		Top:    math.Floor(b.Top),
		Right:  math.Ceil(b.Right),
		Bottom: math.Ceil(b.Bottom),
	}
}
