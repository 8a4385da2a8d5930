package store

import (
	"context"
	"sync"

	"safeher/internal/contact/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/sentinel"
)

// InMemoryStore keeps contacts in process memory, in insertion order per owner.
type InMemoryStore struct {
	mu       sync.RWMutex
	contacts map[id.Username][]models.Contact
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{contacts: make(map[id.Username][]models.Contact)}
}

func (s *InMemoryStore) Create(_ context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[c.Username] = append(s.contacts[c.Username], *c)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, username id.Username) ([]models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Contact, len(s.contacts[username]))
	copy(out, s.contacts[username])
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, username id.Username, contactID id.ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.contacts[username]
	for i := range list {
		if list[i].ID == contactID {
			s.contacts[username] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}
