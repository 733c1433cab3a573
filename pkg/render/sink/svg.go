package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/mindlayout/pkg/core/layout"
	"github.com/matzehuels/mindlayout/pkg/theme"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme   theme.Theme
	padding float64
	title   string
	buttons bool
}

// WithTheme sets the colors, font size and line width.
func WithTheme(t theme.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithPadding sets the space around the layout bounds.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// WithTitle adds a <title> element.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithoutExpandButtons omits the expand/collapse controls.
func WithoutExpandButtons() SVGOption { return func(r *svgRenderer) { r.buttons = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: theme.Default(), padding: DefaultPadding, buttons: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the layout as a standalone SVG document.
func RenderSVG(x *layout.Export, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	f := frame(x, r.padding)
	w, h := int(f.Width()), int(f.Height())

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(w, h, int(f.Left), int(f.Top), w, h)
	if r.title != "" {
		canvas.Title(r.title)
	}
	c := r.theme.Colors
	canvas.Rect(int(f.Left), int(f.Top), w, h, "fill:"+c.Background)

	lineStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", c.Line, r.theme.LineWidth)
	canvas.Gid("connectors")
	for _, conn := range x.Connectors {
		canvas.Path(conn.D, lineStyle, fmt.Sprintf(`class="%s"`, conn.Kind))
	}
	canvas.Gend()

	if len(x.Generalizations) > 0 {
		canvas.Gid("generalizations")
		for _, g := range x.Generalizations {
			canvas.Path(g.D, lineStyle)
			r.box(canvas, g.Left, g.Top, g.Width, g.Height, c.Generalization, c.Line)
			r.text(canvas, g.Text, g.Left+g.Width/2, g.Top+g.Height/2, c.Text)
		}
		canvas.Gend()
	}

	canvas.Gid("nodes")
	for _, n := range x.Nodes {
		fill, stroke, text := c.NodeFill, c.NodeStroke, c.Text
		if n.Root {
			fill, stroke, text = c.RootFill, c.RootFill, c.RootText
		}
		r.box(canvas, n.Left, n.Top, n.Width, n.Height, fill, stroke)
		r.text(canvas, n.Text, n.Left+n.Width/2, n.Top+n.Height/2, text)
	}
	canvas.Gend()

	if r.buttons && len(x.ExpandButtons) > 0 {
		canvas.Gid("expand-buttons")
		for _, b := range x.ExpandButtons {
			cx, cy := round(b.X+b.Size/2), round(b.Y)
			rad := round(b.Size / 2)
			canvas.Circle(cx, cy, rad, fmt.Sprintf("fill:%s;stroke:%s", c.NodeFill, c.Line))
			sign := "-"
			if !b.Expanded {
				sign = "+"
			}
			canvas.Text(cx, cy+rad/2, sign, fmt.Sprintf("text-anchor:middle;font-size:%gpx;fill:%s", b.Size*0.8, c.Line))
		}
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

func (r *svgRenderer) box(canvas *svg.SVG, left, top, width, height float64, fill, stroke string) {
	canvas.Roundrect(round(left), round(top), round(width), round(height), 4, 4,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", fill, stroke, r.theme.LineWidth))
}

// text draws possibly multi-line text centered on (cx, cy).
func (r *svgRenderer) text(canvas *svg.SVG, s string, cx, cy float64, color string) {
	lines := strings.Split(s, "\n")
	size := r.theme.FontSize
	first := cy - size*float64(len(lines)-1)/2 + size/3
	style := fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-size:%gpx;fill:%s", size, color)
	for i, line := range lines {
		canvas.Text(round(cx), round(first+float64(i)*size), line, style)
	}
}

func round(v float64) int { return int(math.Round(v)) }
