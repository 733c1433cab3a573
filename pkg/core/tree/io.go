package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mindlayout/pkg/errors"
)

// ReadJSON decodes a JSON content tree from r.
//
// ReadJSON returns an error if the JSON is malformed or the root has no
// data object. It does not close r.
func ReadJSON(r io.Reader) (*Node, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode JSON")
	}
	return FromRecord(rec), nil
}

// ReadYAML decodes a YAML content tree from r.
func ReadYAML(r io.Reader) (*Node, error) {
	var rec Record
	if err := yaml.NewDecoder(r).Decode(&rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode YAML")
	}
	return FromRecord(rec), nil
}

// ReadFile reads a content tree from path. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON.
func ReadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if IsYAML(path) {
		return ReadYAML(f)
	}
	return ReadJSON(f)
}

// IsYAML reports whether path has a YAML extension.
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// WriteJSON encodes the tree rooted at n as indented JSON.
func WriteJSON(w io.Writer, n *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToRecord(n))
}

// WriteYAML encodes the tree rooted at n as YAML.
func WriteYAML(w io.Writer, n *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToRecord(n)); err != nil {
		return err
	}
	return enc.Close()
}

// MarshalJSON encodes the tree rooted at n in the wire format.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToRecord(n))
}

// UnmarshalJSON decodes the wire format into n.
func (n *Node) UnmarshalJSON(data []byte) error {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*n = *FromRecord(rec)
	return nil
}

// AssignIDs gives every node without an ID a fresh UUID.
// It returns the number of ids assigned.
func AssignIDs(root *Node) int {
	assigned := 0
	Walk(root, Children, func(cur, _ *Node, _ bool, _, _ int) bool {
		if cur.Data.ID == "" {
			cur.Data.ID = uuid.NewString()
			assigned++
		}
		return false
	}, nil)
	return assigned
}
