package geometry

// Line is a single straight segment from a to b.
func Line(a, b Point) Path {
	return MoveTo(a).LineTo(b)
}

// Polyline joins the points with straight segments.
func Polyline(pts ...Point) Path {
	if len(pts) == 0 {
		return nil
	}
	p := MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p = p.LineTo(pt)
	}
	return p
}

// Elbow is the orthogonal connector of the "straight" style for trees that
// grow horizontally: run from a to turnX, turn to b's height, then run into b.
func Elbow(a Point, turnX float64, b Point) Path {
	return Polyline(a, Point{X: turnX, Y: a.Y}, Point{X: turnX, Y: b.Y}, b)
}

// QuadraticCurve connects a to b with one control point CurveOffset units
// from a in the horizontal direction of b, halfway between them vertically.
func QuadraticCurve(a, b Point) Path {
	c := Point{
		X: a.X + sign(b.X-a.X)*CurveOffset,
		Y: a.Y + (b.Y-a.Y)/2,
	}
	return MoveTo(a).QuadTo(c, b)
}

// CubicCurve connects a to b with both control points on the horizontal
// midline, giving the usual S-shaped branch.
func CubicCurve(a, b Point) Path {
	mx := a.X + (b.X-a.X)/2
	return MoveTo(a).CubicTo(Point{X: mx, Y: a.Y}, Point{X: mx, Y: b.Y}, b)
}

// BracketRight is a generalization bracket to the right of r at distance
// margin, bulging outward.
func BracketRight(r Rect, margin float64) Path {
	x := r.Right + margin
	return MoveTo(Point{X: x, Y: r.Top}).
		QuadTo(Point{X: x + CurveOffset, Y: r.CenterY()}, Point{X: x, Y: r.Bottom})
}

// BracketLeft mirrors BracketRight on the left edge of r.
func BracketLeft(r Rect, margin float64) Path {
	x := r.Left - margin
	return MoveTo(Point{X: x, Y: r.Top}).
		QuadTo(Point{X: x - CurveOffset, Y: r.CenterY()}, Point{X: x, Y: r.Bottom})
}

// BracketBelow is a generalization bracket under r at distance margin.
func BracketBelow(r Rect, margin float64) Path {
	y := r.Bottom + margin
	return MoveTo(Point{X: r.Left, Y: y}).
		QuadTo(Point{X: r.CenterX(), Y: y + CurveOffset}, Point{X: r.Right, Y: y})
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
