package geometry

import "math"

// Rect is an axis-aligned box. Top is the smaller y value (screen space).
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Box builds a Rect from a top-left corner and a size.
func Box(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// EmptyRect returns the identity element for Union.
func EmptyRect() Rect {
	return Rect{
		Left:   math.Inf(1),
		Top:    math.Inf(1),
		Right:  math.Inf(-1),
		Bottom: math.Inf(-1),
	}
}

// IsEmpty reports whether r encloses nothing.
func (r Rect) IsEmpty() bool { return r.Left > r.Right || r.Top > r.Bottom }

// Width returns the horizontal span of r.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of r.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal center of r.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center of r.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Union returns the smallest Rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// OverlapsX reports whether the horizontal spans of r and o intersect.
// Touching edges do not count.
func (r Rect) OverlapsX(o Rect) bool { return r.Left < o.Right && o.Left < r.Right }

// OverlapsY reports whether the vertical spans of r and o intersect.
// Touching edges do not count.
func (r Rect) OverlapsY(o Rect) bool { return r.Top < o.Bottom && o.Top < r.Bottom }

// Bounds returns the union of all rects, or EmptyRect when none are given.
func Bounds(rects ...Rect) Rect {
	out := EmptyRect()
	for _, r := range rects {
		out = out.Union(r)
	}
	return out
}
