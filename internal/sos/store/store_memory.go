package store

import (
	"context"
	"sync"

	"safeher/internal/sos/models"
	id "safeher/pkg/domain"
)

// InMemoryStore keeps SOS events in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.Username][]models.Event
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.Username][]models.Event)}
}

func (s *InMemoryStore) Record(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.Username] = append(s.events[e.Username], *e)
	return nil
}

// Recent returns up to limit events, newest first.
func (s *InMemoryStore) Recent(_ context.Context, username id.Username, limit int) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.events[username]
	out := make([]models.Event, 0, min(limit, len(all)))
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
