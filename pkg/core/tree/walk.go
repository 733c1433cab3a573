package tree

// EnterFunc is called before a node's children are visited. Returning true
// skips the children; the matching LeaveFunc still fires.
type EnterFunc[T any] func(node, parent T, isRoot bool, layerIndex, siblingIndex int) (stop bool)

// LeaveFunc is called after all visited children of a node were processed.
type LeaveFunc[T any] func(node, parent T, isRoot bool, layerIndex, siblingIndex int)

// Walk visits the tree rooted at root depth-first. The root is reported
// with isRoot true, layer 0, sibling index 0 and the zero value as parent.
// Either visitor may be nil.
func Walk[T any](root T, children func(T) []T, enter EnterFunc[T], leave LeaveFunc[T]) {
	var zero T
	WalkFrom(root, zero, true, 0, 0, children, enter, leave)
}

// WalkFrom is Walk starting at an arbitrary node with an explicit parent,
// root flag, layer index and sibling index. Layer indexes of descendants
// grow by one per level from layerIndex.
func WalkFrom[T any](node, parent T, isRoot bool, layerIndex, siblingIndex int,
	children func(T) []T, enter EnterFunc[T], leave LeaveFunc[T]) {
	stop := false
	if enter != nil {
		stop = enter(node, parent, isRoot, layerIndex, siblingIndex)
	}
	if !stop {
		for i, child := range children(node) {
			WalkFrom(child, node, false, layerIndex+1, i, children, enter, leave)
		}
	}
	if leave != nil {
		leave(node, parent, isRoot, layerIndex, siblingIndex)
	}
}
