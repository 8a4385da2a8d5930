package store

import (
	"context"
	"slices"
	"sync"

	"safeher/internal/routine/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/sentinel"
)

// InMemoryStore keeps routines in process memory.
// Used when no database is configured and in tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	nextID   id.RoutineID
	routines map[id.Username][]models.Routine
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		routines: make(map[id.Username][]models.Routine),
	}
}

// ListByUser returns a copy of the user's routines in insertion order.
func (s *InMemoryStore) ListByUser(_ context.Context, username id.Username) ([]models.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.routines[username])
	if out == nil {
		out = []models.Routine{}
	}
	return out, nil
}

// Create assigns the next id and stores a copy of routine.
func (s *InMemoryStore) Create(_ context.Context, routine *models.Routine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	routine.ID = s.nextID
	stored := *routine
	stored.Days = slices.Clone(routine.Days)
	s.routines[routine.Username] = append(s.routines[routine.Username], stored)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, username id.Username, routineID id.RoutineID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.routines[username]
	idx := slices.IndexFunc(entries, func(r models.Routine) bool { return r.ID == routineID })
	if idx < 0 {
		return sentinel.ErrNotFound
	}
	s.routines[username] = slices.Delete(entries, idx, idx+1)
	return nil
}
