package pipeline

import (
	"bytes"

	"github.com/matzehuels/mindlayout/pkg/cache"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
)

// Prepare validates root and measures every box that has no size yet.
// It returns the number of boxes measured.
func Prepare(root *tree.Node) (int, error) {
	if err := tree.Validate(root, 0); err != nil {
		return 0, err
	}
	return tree.NewMeasurer().Apply(root), nil
}

// HashTree returns the content hash of the tree in its wire format.
func HashTree(root *tree.Node) (string, error) {
	var buf bytes.Buffer
	if err := tree.WriteJSON(&buf, root); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}
