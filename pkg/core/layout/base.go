package layout

import (
	"github.com/matzehuels/mindlayout/pkg/core/tree"
)

type engine struct {
	cfg Config
	s   Strategy
	t   *Tree
}

func newEngine(cfg Config, capacity int) *engine {
	return &engine{
		cfg: cfg,
		s:   StrategyFor(cfg.Strategy),
		t:   newTree(capacity),
	}
}

func (e *engine) marginX(layerIndex int) float64 { return e.cfg.Theme.MarginX(layerIndex) }
func (e *engine) marginY(layerIndex int) float64 { return e.cfg.Theme.MarginY(layerIndex) }

// createNode appends the layout node for content and links it to parent.
// The returned pointer is valid until the next append.
func (e *engine) createNode(content *tree.Node, parent NodeID, isRoot bool, layerIndex int) *Node {
	id := NodeID(len(e.t.Nodes))
	n := Node{
		ID:            id,
		Content:       content,
		Width:         content.Data.Width,
		Height:        content.Data.Height,
		LayerIndex:    layerIndex,
		IsRoot:        isRoot,
		Parent:        parent,
		Expanded:      content.IsExpanded(),
		ExpandBtnSize: e.cfg.Theme.ExpandBtnSize,
	}
	if content.HasCustomPosition() {
		n.Left = *content.Data.CustomLeft
		n.Top = *content.Data.CustomTop
	}
	e.t.Nodes = append(e.t.Nodes, n)
	e.t.byContent[content] = id
	if isRoot {
		e.t.Root = id
	} else {
		p := &e.t.Nodes[parent]
		p.Children = append(p.Children, id)
	}
	return &e.t.Nodes[id]
}

// setNodeCenter puts the center of n on the configured origin.
func (e *engine) setNodeCenter(n *Node) {
	n.Left = e.cfg.Origin.X - n.Width/2
	n.Top = e.cfg.Origin.Y - n.Height/2
}

// cross returns the coordinate of n on the strategy's cross axis.
func (e *engine) cross(n *Node) *float64 { return n.coord(e.s.Cross) }

// crossSize returns the extent of n along the cross axis.
func (e *engine) crossSize(n *Node) float64 {
	if e.s.Cross == AxisLeft {
		return n.Width
	}
	return n.Height
}

func (n *Node) coord(axis Axis) *float64 {
	if axis == AxisLeft {
		return &n.Left
	}
	return &n.Top
}

// updateChildren translates the subtrees rooted at ids by offset along
// axis. Nodes with a custom position stay where they are, together with
// everything below them.
func (e *engine) updateChildren(ids []NodeID, axis Axis, offset float64) {
	if offset == 0 {
		return
	}
	for _, id := range ids {
		n := e.t.Node(id)
		if n.HasCustomPosition() {
			continue
		}
		*n.coord(axis) += offset
		e.updateChildren(n.Children, axis, offset)
	}
}
