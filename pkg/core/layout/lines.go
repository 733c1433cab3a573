package layout

import (
	"github.com/matzehuels/mindlayout/pkg/core/geometry"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/theme"
)

// emit writes the connector, expand button and generalization geometry of
// the final coordinates into res.
func (e *engine) emit(res *Result) {
	res.Tree = e.t
	res.Strategy = e.s.Kind
	res.LineStyle = e.cfg.Theme.LineStyle

	bounds := e.t.Bounds()
	e.t.Walk(func(id, _ NodeID, _ bool, _, _ int) bool {
		n := e.t.Node(id)
		if n.Expanded && len(n.Children) > 0 {
			res.Connectors = append(res.Connectors, e.s.connect(e, n)...)
		}
		if !n.IsRoot && len(n.Content.Children) > 0 {
			x, y := e.s.expandButton(e, n)
			b := ExpandButton{
				Node:     id,
				Offset:   geometry.Point{X: x, Y: y},
				Position: geometry.Point{X: n.Left + x, Y: n.Top + y},
				Size:     n.ExpandBtnSize,
			}
			res.ExpandButtons = append(res.ExpandButtons, b)
			bounds = bounds.Union(geometry.Box(b.Position.X, b.Position.Y-b.Size/2, b.Size, b.Size))
		}
		if g := n.Content.Data.Generalization; g != nil {
			gp := e.s.generalize(e, n, g)
			res.Generalizations = append(res.Generalizations, gp)
			bounds = bounds.Union(gp.Box())
		}
		return false
	}, nil)
	res.Bounds = bounds
}

// mindMapCurveGap is where right-growing mind map curves start past a
// non-root parent. It does not follow the expand button size.
const mindMapCurveGap = 20

// connectHorizontal draws the connectors of trees growing sideways. The
// line leaves the parent at its outer edge, past the expand button for
// non-root parents; root lines of the direct and curve styles start at the
// root center.
func connectHorizontal(e *engine, parent *Node) []Connector {
	th := e.cfg.Theme
	btn := parent.ExpandBtnSize
	stub := (e.marginX(parent.LayerIndex+1) - btn) * 0.6

	out := make([]Connector, 0, len(parent.Children))
	for _, cid := range parent.Children {
		c := e.t.Node(cid)
		left := c.Dir == DirLeft

		var x1 float64
		switch {
		case parent.IsRoot && th.LineStyle == theme.LineStraight && left:
			x1 = parent.Left
		case parent.IsRoot && th.LineStyle == theme.LineStraight:
			x1 = parent.Left + parent.Width
		case parent.IsRoot:
			x1 = parent.Left + parent.Width/2
		case left:
			x1 = parent.Left - btn
		case e.s.Bidirectional && th.LineStyle == theme.LineCurve:
			x1 = parent.Left + parent.Width + mindMapCurveGap
		default:
			x1 = parent.Left + parent.Width + btn
		}
		y1 := parent.Top + parent.Height/2
		x2, edgeEnd := c.Left, c.Left+c.Width
		if left {
			x2, edgeEnd = edgeEnd, x2
		}
		y2 := c.Top + c.Height/2
		if th.NodeUseLineStyle {
			if !parent.IsRoot {
				y1 += parent.Height / 2
			}
			y2 += c.Height / 2
		}
		a, b := geometry.Point{X: x1, Y: y1}, geometry.Point{X: x2, Y: y2}

		var p geometry.Path
		switch th.LineStyle {
		case theme.LineDirect:
			p = geometry.Line(a, b)
		case theme.LineCurve:
			if parent.IsRoot {
				p = geometry.QuadraticCurve(a, b)
			} else {
				p = geometry.CubicCurve(a, b)
			}
		default:
			s := stub
			if left {
				s = -stub
			}
			p = geometry.Elbow(a, x1+s, b)
		}
		if th.NodeUseLineStyle {
			p = p.LineTo(geometry.Point{X: edgeEnd, Y: y2})
		}
		out = append(out, Connector{From: parent.ID, To: cid, Kind: ConnectorEdge, Path: p})
	}
	return out
}

// connectVertical draws the connectors of the top-down tree. The straight
// style shares one trunk below the parent and one horizontal bus, with a
// vertical drop into each child.
func connectVertical(e *engine, parent *Node) []Connector {
	th := e.cfg.Theme
	x1 := parent.Left + parent.Width/2
	y1 := parent.Top + parent.Height

	withEdge := func(p geometry.Path, c *Node, y float64) geometry.Path {
		if !th.NodeUseLineStyle {
			return p
		}
		return p.LineTo(geometry.Point{X: c.Left, Y: y}).LineTo(geometry.Point{X: c.Left + c.Width, Y: y})
	}

	out := make([]Connector, 0, len(parent.Children)+2)
	if th.LineStyle != theme.LineStraight {
		a := geometry.Point{X: x1, Y: y1}
		for _, cid := range parent.Children {
			c := e.t.Node(cid)
			b := geometry.Point{X: c.Left + c.Width/2, Y: c.Top}
			p := geometry.Line(a, b)
			if th.LineStyle == theme.LineCurve {
				p = geometry.QuadraticCurve(a, b)
			}
			out = append(out, Connector{From: parent.ID, To: cid, Kind: ConnectorEdge, Path: withEdge(p, c, b.Y)})
		}
		return out
	}

	busY := y1 + e.marginX(parent.LayerIndex+1)*0.7
	minX, maxX := x1, x1
	for _, cid := range parent.Children {
		c := e.t.Node(cid)
		x2 := c.Left + c.Width/2
		y2 := c.Top
		// A child dragged above the bus is entered from its bottom edge.
		if busY > c.Top {
			y2 = c.Top + c.Height
		}
		minX, maxX = min(minX, x2), max(maxX, x2)
		p := geometry.Line(geometry.Point{X: x2, Y: busY}, geometry.Point{X: x2, Y: y2})
		out = append(out, Connector{From: parent.ID, To: cid, Kind: ConnectorEdge, Path: withEdge(p, c, y2)})
	}

	trunkStart := y1
	if !parent.IsRoot {
		trunkStart += parent.ExpandBtnSize
	}
	out = append(out,
		Connector{From: parent.ID, To: NoParent, Kind: ConnectorTrunk,
			Path: geometry.Line(geometry.Point{X: x1, Y: trunkStart}, geometry.Point{X: x1, Y: busY})},
		Connector{From: parent.ID, To: NoParent, Kind: ConnectorBus,
			Path: geometry.Line(geometry.Point{X: minX, Y: busY}, geometry.Point{X: maxX, Y: busY})},
	)
	return out
}

// expandButtonSide anchors the button at the outer edge of the node,
// vertically centered, or on the bottom edge with the node line style.
func expandButtonSide(e *engine, n *Node) (x, y float64) {
	x = n.Width
	if n.Dir == DirLeft {
		x = -n.ExpandBtnSize
	}
	y = n.Height / 2
	if e.cfg.Theme.NodeUseLineStyle {
		y += n.Height / 2
	}
	return x, y
}

// expandButtonBelow centers the button under the node.
func expandButtonBelow(_ *engine, n *Node) (x, y float64) {
	return n.Width/2 - n.ExpandBtnSize/2, n.Height + n.ExpandBtnSize/2
}

// generalizeSide brackets the subtree on its outer side and centers the
// summary node vertically next to the bracket. Mind maps offset the node
// from the bracket; logical trees offset it from the subtree edge.
func generalizeSide(e *engine, n *Node, g *tree.Generalization) GeneralizationPlacement {
	th := e.cfg.Theme
	r := e.t.SubtreeBounds(n.ID)
	gp := GeneralizationPlacement{
		Node:   n.ID,
		Text:   g.Text,
		Width:  g.Width,
		Height: g.Height,
		Top:    r.Top + (r.Height()-g.Height)/2,
	}
	gap := th.GeneralizationNodeMargin
	if e.s.Bidirectional {
		gap += th.GeneralizationLineMargin
	}
	if n.Dir == DirLeft {
		gp.Line = geometry.BracketLeft(r, th.GeneralizationLineMargin)
		gp.Left = r.Left - gap - g.Width
	} else {
		gp.Line = geometry.BracketRight(r, th.GeneralizationLineMargin)
		gp.Left = r.Right + gap
	}
	return gp
}

// generalizeBelow brackets the subtree underneath and centers the summary
// node horizontally below it, one node margin past the subtree.
func generalizeBelow(e *engine, n *Node, g *tree.Generalization) GeneralizationPlacement {
	th := e.cfg.Theme
	r := e.t.SubtreeBounds(n.ID)
	return GeneralizationPlacement{
		Node:   n.ID,
		Text:   g.Text,
		Line:   geometry.BracketBelow(r, th.GeneralizationLineMargin),
		Left:   r.Left + (r.Width()-g.Width)/2,
		Top:    r.Bottom + th.GeneralizationNodeMargin,
		Width:  g.Width,
		Height: g.Height,
	}
}
