package layout

import (
	"math"

	"github.com/samber/lo"

	"github.com/matzehuels/mindlayout/pkg/core/tree"
)

// Phase names, in execution order.
const (
	PhaseBase     = "base"
	PhaseCross    = "cross"
	PhaseOverflow = "overflow"
	PhaseGeometry = "geometry"
)

type phase struct {
	name string
	run  func()
}

// phases returns the ordered steps of one pass over root. Each step reads
// only what earlier steps wrote.
func (e *engine) phases(root *tree.Node, res *Result) []phase {
	return []phase{
		{PhaseBase, func() { e.computeBase(root) }},
		{PhaseCross, e.computeCross},
		{PhaseOverflow, e.adjustOverflow},
		{PhaseGeometry, func() { e.emit(res) }},
	}
}

// computeBase creates the visible layout nodes, places them on the growth
// axis and aggregates the children spans bottom-up.
func (e *engine) computeBase(root *tree.Node) {
	tree.Walk(root, tree.Children,
		func(cur, parent *tree.Node, isRoot bool, layerIndex, siblingIndex int) bool {
			pid := NoParent
			if !isRoot {
				pid = e.t.byContent[parent]
			}
			n := e.createNode(cur, pid, isRoot, layerIndex)
			if isRoot {
				e.setNodeCenter(n)
			} else {
				e.s.place(e, n, e.t.Node(pid), siblingIndex)
			}
			return !cur.IsExpanded()
		},
		func(cur, _ *tree.Node, _ bool, _, _ int) {
			e.aggregate(e.t.Node(e.t.byContent[cur]))
		})
}

// aggregate sets the children area of n: the children cross sizes plus one
// margin before, between and after them.
func (e *engine) aggregate(n *Node) {
	n.ChildrenAreaHeight, n.ChildrenAreaWidth = 0, 0
	n.LeftChildrenAreaHeight, n.RightChildrenAreaHeight = 0, 0
	if !n.Expanded || len(n.Children) == 0 {
		return
	}
	m := e.marginY(n.LayerIndex + 1)

	if e.s.Bidirectional {
		var left, right float64
		var leftLen, rightLen int
		for _, id := range n.Children {
			c := e.t.Node(id)
			if c.Dir == DirLeft {
				leftLen++
				left += c.Height
			} else {
				rightLen++
				right += c.Height
			}
		}
		if leftLen > 0 {
			n.LeftChildrenAreaHeight = left + float64(leftLen+1)*m
		}
		if rightLen > 0 {
			n.RightChildrenAreaHeight = right + float64(rightLen+1)*m
		}
		n.ChildrenAreaHeight = math.Max(n.LeftChildrenAreaHeight, n.RightChildrenAreaHeight)
		return
	}

	total := lo.SumBy(n.Children, func(id NodeID) float64 { return e.crossSize(e.t.Node(id)) })
	total += float64(len(n.Children)+1) * m
	if e.s.Cross == AxisLeft {
		n.ChildrenAreaWidth = total
	} else {
		n.ChildrenAreaHeight = total
	}
}

func (e *engine) childrenArea(n *Node) float64 {
	if e.s.Cross == AxisLeft {
		return n.ChildrenAreaWidth
	}
	return n.ChildrenAreaHeight
}

// computeCross distributes the children of every expanded node along the
// cross axis, centered on the node.
func (e *engine) computeCross() {
	e.t.Walk(func(id, _ NodeID, _ bool, _, _ int) bool {
		n := e.t.Node(id)
		if !n.Expanded || len(n.Children) == 0 {
			return false
		}
		m := e.marginY(n.LayerIndex + 1)
		center := *e.cross(n) + e.crossSize(n)/2

		if e.s.Bidirectional {
			left := center - n.LeftChildrenAreaHeight/2 + m
			right := center - n.RightChildrenAreaHeight/2 + m
			for _, cid := range n.Children {
				c := e.t.Node(cid)
				cursor := &right
				if c.Dir == DirLeft {
					cursor = &left
				}
				if !c.HasCustomPosition() {
					c.Top = *cursor
				}
				*cursor += c.Height + m
			}
			return false
		}

		cursor := center - e.childrenArea(n)/2 + m
		for _, cid := range n.Children {
			c := e.t.Node(cid)
			if !c.HasCustomPosition() {
				*e.cross(c) = cursor
			}
			cursor += e.crossSize(c) + m
		}
		return false
	}, nil)
}

// adjustOverflow pushes siblings apart wherever a node's children need more
// cross-axis room than the node itself plus two margins.
func (e *engine) adjustOverflow() {
	e.t.Walk(func(id, _ NodeID, _ bool, _, _ int) bool {
		n := e.t.Node(id)
		if !n.Expanded {
			return false
		}
		base := e.crossSize(n) + 2*e.marginY(n.LayerIndex+1)

		if e.s.Bidirectional {
			left := math.Max(n.LeftChildrenAreaHeight-base, 0)
			right := math.Max(n.RightChildrenAreaHeight-base, 0)
			if left > 0 || right > 0 {
				e.updateBrothers(id, left/2, right/2)
			}
			return false
		}

		if diff := e.childrenArea(n) - base; diff > 0 {
			e.updateBrothers(id, diff/2, diff/2)
		}
		return false
	}, nil)
}

// updateBrothers moves the siblings of id away from it: earlier siblings by
// the negated amount, later ones by the amount, each with its subtree. The
// node itself and custom positioned siblings are left alone. The same
// correction is then applied to the parent. Bidirectional strategies only
// consider siblings growing in the node's direction and use the amount of
// that side.
func (e *engine) updateBrothers(id NodeID, leftAdd, rightAdd float64) {
	n := e.t.Node(id)
	if n.Parent == NoParent {
		return
	}
	siblings := e.t.Node(n.Parent).Children
	if e.s.Bidirectional {
		dir := n.Dir
		siblings = lo.Filter(siblings, func(s NodeID, _ int) bool { return e.t.Node(s).Dir == dir })
	}
	amount := rightAdd
	if n.Dir == DirLeft {
		amount = leftAdd
	}
	index := lo.IndexOf(siblings, id)

	for i, sid := range siblings {
		s := e.t.Node(sid)
		if sid == id || s.HasCustomPosition() {
			continue
		}
		offset := amount
		if i < index {
			offset = -amount
		}
		*e.cross(s) += offset
		e.updateChildren(s.Children, e.s.Cross, offset)
	}
	e.updateBrothers(n.Parent, leftAdd, rightAdd)
}
