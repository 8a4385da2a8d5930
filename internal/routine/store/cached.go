package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/maypok86/otter/v2"

	"safeher/internal/routine/models"
	id "safeher/pkg/domain"
)

// Backend is the store wrapped by Cached.
type Backend interface {
	ListByUser(ctx context.Context, username id.Username) ([]models.Routine, error)
	Create(ctx context.Context, routine *models.Routine) error
	Delete(ctx context.Context, username id.Username, routineID id.RoutineID) error
}

// Cached is a read-through cache of each user's routine list.
// Writes go to the backend first and then invalidate the user's entry, so a
// reader never sees a list older than its own last write. Failed lookups are
// not cached.
//
// Every write bumps the user's generation. A load only fills the cache when
// no write landed while it was in flight, so a slow reader cannot put back a
// list that a concurrent write has already invalidated.
type Cached struct {
	backend Backend
	cache   *otter.Cache[id.Username, []models.Routine]

	mu          sync.Mutex
	generations map[id.Username]uint64
}

// NewCached wraps backend with an otter cache of at most maxUsers lists,
// each kept for ttl after it was loaded.
func NewCached(backend Backend, maxUsers int, ttl time.Duration) *Cached {
	return &Cached{
		backend:     backend,
		generations: make(map[id.Username]uint64),
		cache: otter.Must(&otter.Options[id.Username, []models.Routine]{
			MaximumSize:      maxUsers,
			ExpiryCalculator: otter.ExpiryWriting[id.Username, []models.Routine](ttl),
		}),
	}
}

func (c *Cached) ListByUser(ctx context.Context, username id.Username) ([]models.Routine, error) {
	if entries, ok := c.cache.GetIfPresent(username); ok {
		return slices.Clone(entries), nil
	}
	gen := c.generation(username)
	entries, err := c.backend.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generations[username] == gen {
		c.cache.Set(username, slices.Clone(entries))
	}
	c.mu.Unlock()
	return entries, nil
}

func (c *Cached) Create(ctx context.Context, routine *models.Routine) error {
	if err := c.backend.Create(ctx, routine); err != nil {
		return err
	}
	c.invalidate(routine.Username)
	return nil
}

func (c *Cached) Delete(ctx context.Context, username id.Username, routineID id.RoutineID) error {
	err := c.backend.Delete(ctx, username, routineID)
	c.invalidate(username)
	return err
}

func (c *Cached) generation(username id.Username) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[username]
}

// invalidate bumps the generation and drops the entry under one lock, so a
// fill either lands before it (and is dropped) or sees the new generation.
func (c *Cached) invalidate(username id.Username) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[username]++
	c.cache.Invalidate(username)
}
