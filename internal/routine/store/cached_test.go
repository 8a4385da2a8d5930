package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeher/internal/routine/models"
	id "safeher/pkg/domain"
)

// countingBackend counts list calls and can be switched to fail.
type countingBackend struct {
	*InMemoryStore
	lists atomic.Int32
	fail  atomic.Bool
}

func (b *countingBackend) ListByUser(ctx context.Context, username id.Username) ([]models.Routine, error) {
	b.lists.Add(1)
	if b.fail.Load() {
		return nil, errors.New("backend down")
	}
	return b.InMemoryStore.ListByUser(ctx, username)
}

// gatedBackend holds the first ListByUser after it has read the backend,
// until release is closed.
type gatedBackend struct {
	*InMemoryStore
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (b *gatedBackend) ListByUser(ctx context.Context, username id.Username) ([]models.Routine, error) {
	entries, err := b.InMemoryStore.ListByUser(ctx, username)
	b.once.Do(func() {
		close(b.loaded)
		<-b.release
	})
	return entries, err
}

func TestCached(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated reads hit the cache", func(t *testing.T) {
		backend := &countingBackend{InMemoryStore: NewInMemory()}
		cached := NewCached(backend, 100, time.Minute)
		require.NoError(t, cached.Create(ctx, newRoutine("asha", "gym")))

		for range 3 {
			got, err := cached.ListByUser(ctx, "asha")
			require.NoError(t, err)
			assert.Len(t, got, 1)
		}
		assert.Equal(t, int32(1), backend.lists.Load())
	})

	t.Run("create invalidates the user's list", func(t *testing.T) {
		backend := &countingBackend{InMemoryStore: NewInMemory()}
		cached := NewCached(backend, 100, time.Minute)

		got, err := cached.ListByUser(ctx, "asha")
		require.NoError(t, err)
		assert.Empty(t, got)

		require.NoError(t, cached.Create(ctx, newRoutine("asha", "gym")))
		got, err = cached.ListByUser(ctx, "asha")
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, int32(2), backend.lists.Load())
	})

	t.Run("delete invalidates the user's list", func(t *testing.T) {
		backend := &countingBackend{InMemoryStore: NewInMemory()}
		cached := NewCached(backend, 100, time.Minute)
		r := newRoutine("asha", "gym")
		require.NoError(t, cached.Create(ctx, r))
		_, err := cached.ListByUser(ctx, "asha")
		require.NoError(t, err)

		require.NoError(t, cached.Delete(ctx, "asha", r.ID))
		got, err := cached.ListByUser(ctx, "asha")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("failed lookups are not cached", func(t *testing.T) {
		backend := &countingBackend{InMemoryStore: NewInMemory()}
		cached := NewCached(backend, 100, time.Minute)
		require.NoError(t, backend.Create(ctx, newRoutine("asha", "gym")))

		backend.fail.Store(true)
		_, err := cached.ListByUser(ctx, "asha")
		require.Error(t, err)

		backend.fail.Store(false)
		got, err := cached.ListByUser(ctx, "asha")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("callers cannot mutate cached entries", func(t *testing.T) {
		backend := &countingBackend{InMemoryStore: NewInMemory()}
		cached := NewCached(backend, 100, time.Minute)
		require.NoError(t, cached.Create(ctx, newRoutine("asha", "gym")))

		got, err := cached.ListByUser(ctx, "asha")
		require.NoError(t, err)
		got[0].Title = "mutated"

		again, err := cached.ListByUser(ctx, "asha")
		require.NoError(t, err)
		assert.Equal(t, "gym", again[0].Title)
	})

	t.Run("load overtaken by a write does not fill the cache", func(t *testing.T) {
		backend := &gatedBackend{
			InMemoryStore: NewInMemory(),
			loaded:        make(chan struct{}),
			release:       make(chan struct{}),
		}
		cached := NewCached(backend, 100, time.Minute)

		done := make(chan []models.Routine)
		go func() {
			got, _ := cached.ListByUser(ctx, "asha")
			done <- got
		}()
		<-backend.loaded

		require.NoError(t, cached.Create(ctx, newRoutine("asha", "gym")))
		close(backend.release)
		assert.Empty(t, <-done, "in-flight load returns what it read")

		got, err := cached.ListByUser(ctx, "asha")
		require.NoError(t, err)
		require.Len(t, got, 1, "own create is visible on the next read")
	})
}
