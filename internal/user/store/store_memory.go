package store

import (
	"context"
	"errors"
	"sync"

	"safeher/internal/user/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/sentinel"
)

// InMemoryStore keeps users in process memory, keyed by username.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[id.Username]models.User
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{users: make(map[id.Username]models.User)}
}

func (s *InMemoryStore) Create(_ context.Context, u *models.User) error {
	if u == nil {
		return errors.New("user is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.users[u.Username]; taken {
		return sentinel.ErrConflict
	}
	s.users[u.Username] = *u
	return nil
}

func (s *InMemoryStore) FindByUsername(_ context.Context, username id.Username) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &u, nil
}
