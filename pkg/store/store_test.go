package store

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/errors"
)

// fakeClock makes every call to now return a later time.
func fakeClock(t *testing.T) {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	prev := now
	now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	t.Cleanup(func() { now = prev })
}

func sampleMap(title string) *Map {
	root := tree.New(title, tree.New("a", tree.New("a1")), tree.New("b"))
	return &Map{Title: title, Strategy: "org", Tree: tree.ToRecord(root)}
}

// testStore runs the behavior every Store must share.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	fakeClock(t)

	t.Run("create assigns ids", func(t *testing.T) {
		m := sampleMap("ids")
		require.NoError(t, s.Create(ctx, m))
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, "organization", m.Strategy)
		assert.False(t, m.CreatedAt.IsZero())
		tree.Walk(m.Root(), tree.Children, func(n, _ *tree.Node, _ bool, _, _ int) bool {
			assert.NotEmpty(t, n.Data.ID, "node %q", n.Data.Text)
			return false
		}, nil)
	})

	t.Run("get round trip", func(t *testing.T) {
		m := sampleMap("round trip")
		require.NoError(t, s.Create(ctx, m))

		got, err := s.Get(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m.Title, got.Title)
		assert.Equal(t, m.Tree, got.Tree)
		assert.True(t, m.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("update keeps created", func(t *testing.T) {
		m := sampleMap("before")
		require.NoError(t, s.Create(ctx, m))
		created := m.CreatedAt

		upd := &Map{ID: m.ID, Title: "after", Tree: tree.ToRecord(tree.New("after"))}
		require.NoError(t, s.Update(ctx, upd))
		assert.True(t, created.Equal(upd.CreatedAt))
		assert.True(t, upd.UpdatedAt.After(created))

		got, err := s.Get(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
		assert.Equal(t, "after", got.Tree.Data.Text)
	})

	t.Run("list newest first", func(t *testing.T) {
		first := sampleMap("first")
		second := sampleMap("second")
		require.NoError(t, s.Create(ctx, first))
		require.NoError(t, s.Create(ctx, second))

		list, err := s.List(ctx, ListOptions{Limit: 2})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)

		page, err := s.List(ctx, ListOptions{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, first.ID, page[0].ID)

		empty, err := s.List(ctx, ListOptions{Offset: 10000})
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("delete", func(t *testing.T) {
		m := sampleMap("gone")
		require.NoError(t, s.Create(ctx, m))
		require.NoError(t, s.Delete(ctx, m.ID))

		_, err := s.Get(ctx, m.ID)
		assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)
		assert.True(t, errors.Is(s.Delete(ctx, m.ID), errors.ErrCodeNotFound))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.Get(ctx, "4b0c9f7e-0000-4000-8000-000000000000")
		assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

		err = s.Update(ctx, &Map{ID: "4b0c9f7e-0000-4000-8000-000000000000", Title: "x", Tree: tree.ToRecord(tree.New("x"))})
		assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	})

	t.Run("rejects invalid maps", func(t *testing.T) {
		tests := []struct {
			name string
			m    *Map
			code errors.Code
		}{
			{"nil", nil, errors.ErrCodeInvalidInput},
			{"empty title", &Map{Title: " ", Tree: tree.ToRecord(tree.New("x"))}, errors.ErrCodeInvalidInput},
			{"bad strategy", &Map{Title: "t", Strategy: "radial", Tree: tree.ToRecord(tree.New("x"))}, errors.ErrCodeInvalidStrategy},
			{"negative box", &Map{Title: "t", Tree: tree.Record{Data: tree.RecordData{Text: "x", Width: -1}}}, errors.ErrCodeInvalidTree},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := s.Create(ctx, tt.m)
				assert.True(t, errors.Is(err, tt.code), "got %v", err)
			})
		}
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	testStore(t, s)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	m := sampleMap("copy")
	require.NoError(t, s.Create(ctx, m))

	got, err := s.Get(ctx, m.ID)
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := s.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "copy", again.Title)
}

func TestMemoryStoreConcurrentMeasure(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	root := tree.New("plan", tree.New("scope"), tree.New("risks"))
	root.Children[0].Data.Generalization = &tree.Generalization{Text: "summary"}
	root.Children[1].SetCustomPosition(40, 80)
	m := &Map{Title: "plan", Tree: tree.ToRecord(root)}
	require.NoError(t, s.Create(ctx, m))

	// The caller's record must not alias the stored one either.
	m.Tree.Children[0].Data.Generalization.Text = "edited"

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Get(ctx, m.ID)
			if !assert.NoError(t, err) {
				return
			}
			r := got.Root()
			tree.NewMeasurer().Apply(r)
			r.Children[1].SetCustomPosition(0, 0)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, m.ID)
	require.NoError(t, err)
	g := got.Tree.Children[0].Data.Generalization
	require.NotNil(t, g)
	assert.Equal(t, tree.Generalization{Text: "summary"}, *g)
	assert.Zero(t, got.Tree.Data.Width)
	require.NotNil(t, got.Tree.Children[1].Data.CustomLeft)
	assert.Equal(t, 40.0, *got.Tree.Children[1].Data.CustomLeft)
}

// TestMongoStore runs against a live server when MINDLAYOUT_TEST_MONGO_URI
// is set.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MINDLAYOUT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MINDLAYOUT_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, uri, "mindlayout_test_"+time.Now().Format("20060102150405"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.coll.Database().Drop(context.Background())
		_ = s.Close(context.Background())
	})
	testStore(t, s)
}

func TestNewMongoStoreBadURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), "http://not-mongo", "db")
	assert.True(t, errors.Is(err, errors.ErrCodeStorage), "got %v", err)
}
