package store

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// MemoryStore keeps maps in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	maps map[string]Map
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{maps: make(map[string]Map)}
}

// Create stores a new map.
func (s *MemoryStore) Create(_ context.Context, m *Map) error {
	if err := validate(m); err != nil {
		return err
	}
	stamp(m, now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps[m.ID] = m.clone()
	return nil
}

// Get returns a deep copy of the stored map. Callers may mutate it freely.
func (s *MemoryStore) Get(_ context.Context, id string) (*Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.maps[id]
	if !ok {
		return nil, notFound(id)
	}
	c := m.clone()
	return &c, nil
}

// List returns summaries ordered by UpdatedAt, newest first.
func (s *MemoryStore) List(_ context.Context, opts ListOptions) ([]Summary, error) {
	opts = opts.normalize()

	s.mu.RLock()
	all := lo.Values(s.maps)
	s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	if opts.Offset >= len(all) {
		return []Summary{}, nil
	}
	page := all[opts.Offset:min(len(all), opts.Offset+opts.Limit)]
	return lo.Map(page, func(m Map, _ int) Summary {
		return Summary{ID: m.ID, Title: m.Title, Strategy: m.Strategy, UpdatedAt: m.UpdatedAt}
	}), nil
}

// Update replaces the content of an existing map.
func (s *MemoryStore) Update(_ context.Context, m *Map) error {
	if err := validate(m); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.maps[m.ID]
	if !ok {
		return notFound(m.ID)
	}
	m.CreatedAt = old.CreatedAt
	m.UpdatedAt = now()
	s.maps[m.ID] = m.clone()
	return nil
}

// Delete removes a map.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.maps[id]; !ok {
		return notFound(id)
	}
	delete(s.maps, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
