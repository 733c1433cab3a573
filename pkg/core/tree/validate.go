package tree

import (
	"math"

	"github.com/matzehuels/mindlayout/pkg/errors"
)

// DefaultMaxDepth bounds the depth accepted by Validate.
const DefaultMaxDepth = 256

// Validate checks the preconditions the layout engine relies on but does
// not defend against: a non-nil root, no nil children, no node reachable
// twice (cycles or shared subtrees), finite non-negative boxes, and a depth
// of at most maxDepth layers. A maxDepth of zero uses DefaultMaxDepth.
func Validate(root *Node, maxDepth int) error {
	if root == nil {
		return errors.New(errors.ErrCodeInvalidTree, "tree has no root")
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	seen := make(map[*Node]bool)
	var visit func(n *Node, layer int) error
	visit = func(n *Node, layer int) error {
		if layer >= maxDepth {
			return errors.New(errors.ErrCodeInvalidTree, "tree deeper than %d layers", maxDepth)
		}
		if seen[n] {
			return errors.New(errors.ErrCodeInvalidTree, "node %q is reachable more than once", label(n))
		}
		seen[n] = true

		if err := checkSize(n, n.Data.Width, n.Data.Height); err != nil {
			return err
		}
		if g := n.Data.Generalization; g != nil {
			if err := checkSize(n, g.Width, g.Height); err != nil {
				return err
			}
		}
		if n.HasCustomPosition() && (!finite(*n.Data.CustomLeft) || !finite(*n.Data.CustomTop)) {
			return errors.New(errors.ErrCodeInvalidTree, "node %q has a non-finite custom position", label(n))
		}

		for i, c := range n.Children {
			if c == nil {
				return errors.New(errors.ErrCodeInvalidTree, "node %q has a nil child at index %d", label(n), i)
			}
			if err := visit(c, layer+1); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(root, 0)
}

func checkSize(n *Node, w, h float64) error {
	if !finite(w) || !finite(h) || w < 0 || h < 0 {
		return errors.New(errors.ErrCodeInvalidTree, "node %q has invalid size %vx%v", label(n), w, h)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func label(n *Node) string {
	if n.Data.ID != "" {
		return n.Data.ID
	}
	return n.Data.Text
}
