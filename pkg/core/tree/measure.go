package tree

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Default measurement settings.
const (
	DefaultPaddingX = 15.0
	DefaultPaddingY = 5.0
)

// Measurer fills in node boxes from their text. It stands in for the
// renderer-side measurement of rich text; boxes that already carry a width
// and height are left untouched.
type Measurer struct {
	Face     font.Face
	PaddingX float64
	PaddingY float64
}

// NewMeasurer returns a measurer using the fixed 7x13 bitmap face.
func NewMeasurer() *Measurer {
	return &Measurer{
		Face:     basicfont.Face7x13,
		PaddingX: DefaultPaddingX,
		PaddingY: DefaultPaddingY,
	}
}

// Measure returns the padded box size for text. Lines are split on "\n";
// the width is that of the widest line.
func (m *Measurer) Measure(text string) (width, height float64) {
	lines := strings.Split(text, "\n")
	widest := 0
	for _, line := range lines {
		widest = max(widest, font.MeasureString(m.Face, line).Ceil())
	}
	lineHeight := m.Face.Metrics().Height.Ceil()
	width = float64(widest) + 2*m.PaddingX
	height = float64(lineHeight*len(lines)) + 2*m.PaddingY
	return width, height
}

// Apply measures every node (and generalization) of the tree that has no
// box yet. It returns the number of boxes filled in.
func (m *Measurer) Apply(root *Node) int {
	filled := 0
	Walk(root, Children, func(cur, _ *Node, _ bool, _, _ int) bool {
		if cur.Data.Width == 0 || cur.Data.Height == 0 {
			w, h := m.Measure(cur.Data.Text)
			if cur.Data.Width == 0 {
				cur.Data.Width = w
			}
			if cur.Data.Height == 0 {
				cur.Data.Height = h
			}
			filled++
		}
		if g := cur.Data.Generalization; g != nil && (g.Width == 0 || g.Height == 0) {
			w, h := m.Measure(g.Text)
			if g.Width == 0 {
				g.Width = w
			}
			if g.Height == 0 {
				g.Height = h
			}
			filled++
		}
		return false
	}, nil)
	return filled
}
