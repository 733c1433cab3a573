package tree

// Data is the per-node payload of a content node.
type Data struct {
	// ID identifies the node across layout passes and storage round trips.
	ID string

	// Text is the node label.
	Text string

	// Expand reports whether the node's children are visible.
	Expand bool

	// Width and Height are the measured box of the node. Zero values are
	// filled in by a Measurer before layout.
	Width  float64
	Height float64

	// CustomLeft and CustomTop hold a user-dragged position. The position
	// only takes effect when both are set.
	CustomLeft *float64
	CustomTop  *float64

	// Generalization is an optional summary node bracketing the subtree.
	Generalization *Generalization
}

// Generalization is a synthetic summary node attached to a subtree.
type Generalization struct {
	Text   string  `json:"text" yaml:"text" bson:"text"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty" bson:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty" bson:"height,omitempty"`
}

// Node is a content node: data plus ordered children.
type Node struct {
	Data     Data
	Children []*Node
}

// New creates an expanded node with the given label and children.
func New(text string, children ...*Node) *Node {
	return &Node{
		Data:     Data{Text: text, Expand: true},
		Children: children,
	}
}

// Sized creates an expanded node with a fixed box.
func Sized(text string, width, height float64, children ...*Node) *Node {
	n := New(text, children...)
	n.Data.Width = width
	n.Data.Height = height
	return n
}

// IsExpanded reports whether the node's children should be laid out.
func (n *Node) IsExpanded() bool { return n.Data.Expand }

// HasCustomPosition reports whether the node carries a user-dragged position.
func (n *Node) HasCustomPosition() bool {
	return n.Data.CustomLeft != nil && n.Data.CustomTop != nil
}

// SetCustomPosition pins the node at (left, top).
func (n *Node) SetCustomPosition(left, top float64) {
	n.Data.CustomLeft = &left
	n.Data.CustomTop = &top
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Data: n.Data}
	c.Data.CustomLeft = copyFloat(n.Data.CustomLeft)
	c.Data.CustomTop = copyFloat(n.Data.CustomTop)
	c.Data.Generalization = copyGeneralization(n.Data.Generalization)
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Find returns the first node in the subtree whose ID equals id.
func (n *Node) Find(id string) *Node {
	var found *Node
	Walk(n, Children, func(cur, _ *Node, _ bool, _, _ int) bool {
		if found != nil {
			return true
		}
		if cur.Data.ID == id {
			found = cur
			return true
		}
		return false
	}, nil)
	return found
}

// Count returns the number of nodes in the subtree, including hidden ones.
func Count(root *Node) int {
	if root == nil {
		return 0
	}
	count := 0
	Walk(root, Children, func(*Node, *Node, bool, int, int) bool {
		count++
		return false
	}, nil)
	return count
}

// CountVisible returns the number of nodes a layout pass will place:
// descendants of collapsed nodes are skipped.
func CountVisible(root *Node) int {
	if root == nil {
		return 0
	}
	count := 0
	Walk(root, Children, func(cur, _ *Node, _ bool, _, _ int) bool {
		count++
		return !cur.IsExpanded()
	}, nil)
	return count
}

// Depth returns the number of layers in the subtree (1 for a single node).
func Depth(root *Node) int {
	if root == nil {
		return 0
	}
	depth := 0
	Walk(root, Children, func(_, _ *Node, _ bool, layer, _ int) bool {
		depth = max(depth, layer+1)
		return false
	}, nil)
	return depth
}

// Children returns the children of a content node. It is the children
// accessor to pass to Walk for content trees.
func Children(n *Node) []*Node { return n.Children }
