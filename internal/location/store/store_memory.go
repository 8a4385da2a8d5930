package store

import (
	"context"
	"sync"

	"safeher/internal/location/models"
	id "safeher/pkg/domain"
)

// InMemoryHistoryStore keeps location history in process memory.
type InMemoryHistoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[id.Username][]models.Record
}

func NewInMemoryHistory() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{
		records: make(map[id.Username][]models.Record),
	}
}

func (s *InMemoryHistoryStore) Append(_ context.Context, rec *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec.ID = s.nextID
	s.records[rec.Username] = append(s.records[rec.Username], *rec)
	return nil
}

// Recent returns up to limit records, newest first.
func (s *InMemoryHistoryStore) Recent(_ context.Context, username id.Username, limit int) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.records[username]
	n := min(limit, len(all))
	out := make([]models.Record, 0, n)
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
