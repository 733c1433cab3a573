package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/mindlayout/pkg/core/geometry"
	"github.com/matzehuels/mindlayout/pkg/core/layout"
	"github.com/matzehuels/mindlayout/pkg/theme"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	theme   theme.Theme
	padding float64
	scale   float64
}

// WithPNGTheme sets the colors and line width.
func WithPNGTheme(t theme.Theme) PNGOption { return func(r *pngRenderer) { r.theme = t } }

// WithPNGPadding sets the space around the layout bounds.
func WithPNGPadding(p float64) PNGOption { return func(r *pngRenderer) { r.padding = p } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG rasterizes the layout. Text uses the built-in 7x13 bitmap face
// and is not scaled with the image.
func RenderPNG(x *layout.Export, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{theme: theme.Default(), padding: DefaultPadding, scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	f := frame(x, r.padding)
	dc := gg.NewContext(int(f.Width()*r.scale), int(f.Height()*r.scale))
	c := r.theme.Colors

	dc.SetHexColor(c.Background)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.Translate(-f.Left, -f.Top)
	dc.SetLineWidth(r.theme.LineWidth)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetHexColor(c.Line)
	for _, conn := range x.Connectors {
		if err := tracePath(dc, conn.D); err != nil {
			return nil, err
		}
		dc.Stroke()
	}

	for _, g := range x.Generalizations {
		if err := tracePath(dc, g.D); err != nil {
			return nil, err
		}
		dc.SetHexColor(c.Line)
		dc.Stroke()
		drawBox(dc, g.Left, g.Top, g.Width, g.Height, c.Generalization, c.Line)
		drawText(dc, g.Text, g.Left+g.Width/2, g.Top+g.Height/2, c.Text)
	}

	for _, n := range x.Nodes {
		fill, stroke, text := c.NodeFill, c.NodeStroke, c.Text
		if n.Root {
			fill, stroke, text = c.RootFill, c.RootFill, c.RootText
		}
		drawBox(dc, n.Left, n.Top, n.Width, n.Height, fill, stroke)
		drawText(dc, n.Text, n.Left+n.Width/2, n.Top+n.Height/2, text)
	}

	for _, b := range x.ExpandButtons {
		cx, cy := b.X+b.Size/2, b.Y
		dc.DrawCircle(cx, cy, b.Size/2)
		dc.SetHexColor(c.NodeFill)
		dc.FillPreserve()
		dc.SetHexColor(c.Line)
		dc.Stroke()
		dc.DrawLine(cx-b.Size/4, cy, cx+b.Size/4, cy)
		if !b.Expanded {
			dc.DrawLine(cx, cy-b.Size/4, cx, cy+b.Size/4)
		}
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// tracePath replays exported path data onto the context's current path.
func tracePath(dc *gg.Context, d string) error {
	p, err := geometry.ParsePath(d)
	if err != nil {
		return err
	}
	for _, s := range p {
		pts := s.Points
		switch s.Op {
		case geometry.OpMove:
			dc.MoveTo(pts[0].X, pts[0].Y)
		case geometry.OpLine:
			dc.LineTo(pts[0].X, pts[0].Y)
		case geometry.OpQuad:
			dc.QuadraticTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
		case geometry.OpCubic:
			dc.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		}
	}
	return nil
}

func drawBox(dc *gg.Context, left, top, width, height float64, fill, stroke string) {
	dc.DrawRoundedRectangle(left, top, width, height, 4)
	dc.SetHexColor(fill)
	dc.FillPreserve()
	dc.SetHexColor(stroke)
	dc.Stroke()
}

func drawText(dc *gg.Context, s string, cx, cy float64, color string) {
	dc.SetHexColor(color)
	lines := strings.Split(s, "\n")
	lh := dc.FontHeight()
	first := cy - lh*float64(len(lines)-1)/2
	for i, line := range lines {
		dc.DrawStringAnchored(line, cx, first+float64(i)*lh, 0.5, 0.5)
	}
}
