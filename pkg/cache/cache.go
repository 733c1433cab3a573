// Package cache provides key/value caching for layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// # Keys
//
// A [Keyer] derives cache keys from content hashes and the options that
// influence the cached value. Two requests that would produce the same
// bytes map to the same key:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(treeJSON), cache.LayoutKeyOpts{Strategy: "mindmap"})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is
	// reported as hit == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Time-to-live for each kind of cached value.
const (
	// TTLLayout applies to exported layouts. Layouts are pure functions of
	// their key, so they only expire to bound disk and memory usage.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered SVG, PNG, DOT and JSON outputs.
	TTLArtifact = 7 * 24 * time.Hour
)

// NullCache turns caching off: lookups always miss and writes are
// dropped. The CLI uses it for --no-cache.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
