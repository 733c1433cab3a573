package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout computed from the content
	// tree with hash treeHash.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from the layout
	// with hash layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the tree that changes a layout.
type LayoutKeyOpts struct {
	Strategy  string  `json:"strategy"`
	LineStyle string  `json:"line_style,omitempty"`
	ThemeHash string  `json:"theme_hash,omitempty"`
	OriginX   float64 `json:"origin_x"`
	OriginY   float64 `json:"origin_y"`
}

// ArtifactKeyOpts holds everything besides the layout that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	ThemeHash string  `json:"theme_hash,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Padding   float64 `json:"padding,omitempty"`
	Detailed  bool    `json:"detailed,omitempty"`
}

// Hash returns the hex SHA-256 of data. Trees, themes and layouts are all
// addressed by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashValue returns the Hash of the JSON encoding of v.
func HashValue(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// DefaultKeyer hashes the content hash and its options into
// "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return "layout:" + mustHash(treeHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return "artifact:" + mustHash(layoutHash, opts)
}

// mustHash hashes a content hash with its key options. Both option
// structs hold only strings, numbers and bools, so encoding cannot fail.
func mustHash(contentHash string, opts any) string {
	h, err := HashValue([]any{contentHash, opts})
	if err != nil {
		panic("cache: hash key options: " + err.Error())
	}
	return h
}

// ScopedKeyer namespaces the keys of another Keyer so that several
// deployments can share one Redis database.
type ScopedKeyer struct {
	Keyer
	Prefix string
}

// NewScopedKeyer prefixes every key of inner, or of the default keyer when
// inner is nil. A prefix without a trailing colon gets one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return ScopedKeyer{Keyer: inner, Prefix: prefix}
}

// LayoutKey returns the prefixed layout key.
func (k ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.Prefix + k.Keyer.LayoutKey(treeHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Keyer.ArtifactKey(layoutHash, opts)
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = ScopedKeyer{}
)
