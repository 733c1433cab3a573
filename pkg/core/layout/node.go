package layout

import (
	"github.com/matzehuels/mindlayout/pkg/core/geometry"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
)

// NodeID indexes a node in its Tree.
type NodeID int

// NoParent is the parent of the root.
const NoParent NodeID = -1

// Dir is the growth direction of a node in a bidirectional layout.
type Dir uint8

// Growth directions. DirNone is used by the root and by unidirectional
// strategies.
const (
	DirNone Dir = iota
	DirRight
	DirLeft
)

func (d Dir) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	default:
		return ""
	}
}

// MarshalText encodes the direction as "left", "right" or "".
func (d Dir) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Node is the layout box derived from one visible content node.
type Node struct {
	ID      NodeID
	Content *tree.Node

	Left, Top, Width, Height float64

	LayerIndex int
	IsRoot     bool
	Parent     NodeID
	Children   []NodeID

	// ChildrenAreaHeight and ChildrenAreaWidth are the spans the children
	// need on the cross axis, margins included. Zero when collapsed.
	ChildrenAreaHeight float64
	ChildrenAreaWidth  float64

	Dir                     Dir
	LeftChildrenAreaHeight  float64
	RightChildrenAreaHeight float64

	Expanded      bool
	ExpandBtnSize float64
}

// HasCustomPosition reports whether the node keeps a user-set position.
func (n *Node) HasCustomPosition() bool {
	return n.Content != nil && n.Content.HasCustomPosition()
}

// Box returns the node's rectangle.
func (n *Node) Box() geometry.Rect {
	return geometry.Box(n.Left, n.Top, n.Width, n.Height)
}

// Center returns the center of the node's box.
func (n *Node) Center() geometry.Point {
	return geometry.Point{X: n.Left + n.Width/2, Y: n.Top + n.Height/2}
}

// Tree is an arena of layout nodes. Parent links are indexes, never
// pointers.
type Tree struct {
	Nodes []Node
	Root  NodeID

	byContent map[*tree.Node]NodeID
}

func newTree(capacity int) *Tree {
	return &Tree{
		Nodes:     make([]Node, 0, capacity),
		Root:      NoParent,
		byContent: make(map[*tree.Node]NodeID, capacity),
	}
}

// Len returns the number of layout nodes.
func (t *Tree) Len() int { return len(t.Nodes) }

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node { return &t.Nodes[id] }

// RootNode returns the root, or nil for an empty tree.
func (t *Tree) RootNode() *Node {
	if t.Root == NoParent {
		return nil
	}
	return &t.Nodes[t.Root]
}

// Lookup returns the layout node derived from a content node.
func (t *Tree) Lookup(content *tree.Node) (*Node, bool) {
	id, ok := t.byContent[content]
	if !ok {
		return nil, false
	}
	return &t.Nodes[id], true
}

// Parent returns the parent of id, or nil for the root.
func (t *Tree) Parent(id NodeID) *Node {
	p := t.Nodes[id].Parent
	if p == NoParent {
		return nil
	}
	return &t.Nodes[p]
}

func (t *Tree) children(id NodeID) []NodeID { return t.Nodes[id].Children }

// Walk visits the layout nodes depth-first with the same callback contract
// as tree.Walk. The root's parent is NoParent.
func (t *Tree) Walk(enter tree.EnterFunc[NodeID], leave tree.LeaveFunc[NodeID]) {
	if t.Root == NoParent {
		return
	}
	tree.WalkFrom(t.Root, NoParent, true, 0, 0, t.children, enter, leave)
}

// SubtreeBounds returns the bounding box of id and all its visible
// descendants.
func (t *Tree) SubtreeBounds(id NodeID) geometry.Rect {
	r := geometry.EmptyRect()
	tree.WalkFrom(id, NoParent, false, 0, 0, t.children,
		func(n, _ NodeID, _ bool, _, _ int) bool {
			r = r.Union(t.Nodes[n].Box())
			return false
		}, nil)
	return r
}

// Bounds returns the bounding box of all nodes.
func (t *Tree) Bounds() geometry.Rect {
	r := geometry.EmptyRect()
	for i := range t.Nodes {
		r = r.Union(t.Nodes[i].Box())
	}
	return r
}
