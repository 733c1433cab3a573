package geometry

import (
	"strconv"
	"strings"
)

// CurveOffset is how far a quadratic control point sits from the start of
// the curve, and how far a generalization bracket bulges.
const CurveOffset = 20.0

// Point is a 2-D coordinate in user units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Op identifies a path segment command.
type Op byte

// Path commands. The byte values match the SVG path letters.
const (
	OpMove  Op = 'M'
	OpLine  Op = 'L'
	OpQuad  Op = 'Q'
	OpCubic Op = 'C'
)

// String returns the SVG letter of the command.
func (o Op) String() string { return string(rune(o)) }

// Segment is one path command with its points: one point for move/line,
// control and end point for quadratic, two controls and end for cubic.
type Segment struct {
	Op     Op      `json:"op"`
	Points []Point `json:"points"`
}

// Path is an ordered sequence of segments. The first segment is a move.
type Path []Segment

// MoveTo starts a path at p.
func MoveTo(p Point) Path {
	return Path{{Op: OpMove, Points: []Point{p}}}
}

// LineTo appends a straight segment ending at p.
func (p Path) LineTo(pt Point) Path {
	return append(p, Segment{Op: OpLine, Points: []Point{pt}})
}

// QuadTo appends a quadratic Bézier with control c ending at pt.
func (p Path) QuadTo(c, pt Point) Path {
	return append(p, Segment{Op: OpQuad, Points: []Point{c, pt}})
}

// CubicTo appends a cubic Bézier with controls c1, c2 ending at pt.
func (p Path) CubicTo(c1, c2, pt Point) Path {
	return append(p, Segment{Op: OpCubic, Points: []Point{c1, c2, pt}})
}

// Ops returns the command of every segment in order.
func (p Path) Ops() []Op {
	ops := make([]Op, len(p))
	for i, s := range p {
		ops[i] = s.Op
	}
	return ops
}

// Has reports whether any segment uses op.
func (p Path) Has(op Op) bool {
	for _, s := range p {
		if s.Op == op {
			return true
		}
	}
	return false
}

// Start returns the first point of the path.
func (p Path) Start() Point {
	if len(p) == 0 || len(p[0].Points) == 0 {
		return Point{}
	}
	return p[0].Points[0]
}

// End returns the last point of the path.
func (p Path) End() Point {
	if len(p) == 0 {
		return Point{}
	}
	last := p[len(p)-1].Points
	if len(last) == 0 {
		return Point{}
	}
	return last[len(last)-1]
}

// Translate returns a copy of the path moved by (dx, dy).
func (p Path) Translate(dx, dy float64) Path {
	out := make(Path, len(p))
	for i, s := range p {
		pts := make([]Point, len(s.Points))
		for j, pt := range s.Points {
			pts[j] = Point{X: pt.X + dx, Y: pt.Y + dy}
		}
		out[i] = Segment{Op: s.Op, Points: pts}
	}
	return out
}

// String renders the path in SVG "d" syntax, e.g. "M 1,2 L 3,4".
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(s.Op))
		for _, pt := range s.Points {
			b.WriteByte(' ')
			b.WriteString(formatFloat(pt.X))
			b.WriteByte(',')
			b.WriteString(formatFloat(pt.Y))
		}
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
