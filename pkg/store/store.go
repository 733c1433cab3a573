// Package store persists mind maps for the HTTP API.
//
// A [Map] is a titled content tree stored in its wire format
// ([tree.Record]). Two backends implement [Store]:
//
//   - [MemoryStore]: process-local, used by tests and `serve` without a
//     database
//   - [MongoStore]: one document per map in a MongoDB collection
//
// Both backends assign map ids (UUIDs) on Create and fill in missing
// content node ids, so that stored nodes keep stable identities across
// edits. Lookups of unknown ids return an error with code
// [errors.ErrCodeNotFound].
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mindlayout/pkg/core/layout"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/errors"
)

// Map is a stored mind map.
type Map struct {
	ID        string      `json:"id" bson:"_id"`
	Title     string      `json:"title" bson:"title"`
	Strategy  string      `json:"strategy,omitempty" bson:"strategy,omitempty"`
	Tree      tree.Record `json:"tree" bson:"tree"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// Root returns the content tree of the map.
func (m *Map) Root() *tree.Node { return tree.FromRecord(m.Tree) }

func (m *Map) clone() Map {
	c := *m
	c.Tree = m.Tree.Clone()
	return c
}

// Summary is a map without its tree, as returned by List.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Strategy  string    `json:"strategy,omitempty" bson:"strategy,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ListOptions pages through maps, most recently updated first.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListLimit is used when ListOptions.Limit is zero.
const DefaultListLimit = 50

// Store is the mind map persistence contract.
type Store interface {
	// Create validates m, assigns its id and timestamps, and stores it.
	Create(ctx context.Context, m *Map) error

	// Get returns the map with the given id.
	Get(ctx context.Context, id string) (*Map, error)

	// List returns map summaries, most recently updated first.
	List(ctx context.Context, opts ListOptions) ([]Summary, error)

	// Update replaces title, strategy and tree of an existing map.
	Update(ctx context.Context, m *Map) error

	// Delete removes the map with the given id.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// validate checks the fields a client controls, normalizes the strategy
// name and assigns missing node ids.
func validate(m *Map) error {
	if m == nil {
		return errors.New(errors.ErrCodeInvalidInput, "map is required")
	}
	if err := errors.ValidateTitle(m.Title); err != nil {
		return err
	}
	if m.Strategy != "" {
		k, err := layout.ParseKind(m.Strategy)
		if err != nil {
			return err
		}
		m.Strategy = k.String()
	}
	root := m.Root()
	if err := tree.Validate(root, 0); err != nil {
		return err
	}
	if tree.AssignIDs(root) > 0 {
		m.Tree = tree.ToRecord(root)
	}
	return nil
}

// stamp prepares a new map for insertion.
func stamp(m *Map, now time.Time) {
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "map %s not found", id)
}

func (l ListOptions) normalize() ListOptions {
	if l.Limit <= 0 {
		l.Limit = DefaultListLimit
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
	return l
}

// Timestamps are stored with millisecond precision, matching BSON dates.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
