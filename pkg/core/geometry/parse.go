package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePath reads the output of Path.String back into a Path. Only the
// absolute M, L, Q and C commands with "x,y" pairs are understood.
func ParsePath(d string) (Path, error) {
	var p Path
	fields := strings.Fields(d)
	for i := 0; i < len(fields); {
		tok := fields[i]
		if len(tok) != 1 {
			return nil, fmt.Errorf("path %q: expected command at %q", d, tok)
		}
		op := Op(tok[0])
		n := 0
		switch op {
		case OpMove, OpLine:
			n = 1
		case OpQuad:
			n = 2
		case OpCubic:
			n = 3
		default:
			return nil, fmt.Errorf("path %q: unsupported command %q", d, tok)
		}
		if len(p) == 0 && op != OpMove {
			return nil, fmt.Errorf("path %q: must start with M", d)
		}
		if i+n >= len(fields) {
			return nil, fmt.Errorf("path %q: %c needs %d points", d, op, n)
		}
		pts := make([]Point, n)
		for j := 0; j < n; j++ {
			pt, err := parsePoint(fields[i+1+j])
			if err != nil {
				return nil, fmt.Errorf("path %q: %w", d, err)
			}
			pts[j] = pt
		}
		p = append(p, Segment{Op: op, Points: pts})
		i += n + 1
	}
	return p, nil
}

func parsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("bad point %q", s)
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad point %q: %w", s, err)
	}
	return Point{X: x, Y: y}, nil
}
