// Package service manages a user's emergency contacts.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"safeher/internal/contact/models"
	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
	"safeher/pkg/platform/sentinel"
	"safeher/pkg/requestcontext"
)

const defaultStoreTimeout = 3 * time.Second

// MaxContactsPerUser bounds a single user's contact list.
const MaxContactsPerUser = 20

type Store interface {
	Create(ctx context.Context, c *models.Contact) error
	ListByUser(ctx context.Context, username id.Username) ([]models.Contact, error)
	Delete(ctx context.Context, username id.Username, contactID id.ContactID) error
}

type Service struct {
	store        Store
	storeTimeout time.Duration
	logger       *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("contact store is required")
	}
	s := &Service{store: store, storeTimeout: defaultStoreTimeout}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Add stores a validated contact for the request's owner.
func (s *Service) Add(ctx context.Context, req *models.CreateContactRequest) (*models.Contact, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	username := req.ParsedUsername()
	existing, err := s.store.ListByUser(ctx, username)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contacts")
	}
	if len(existing) >= MaxContactsPerUser {
		return nil, dErrors.New(dErrors.CodeConflict, "contact limit reached")
	}

	c := &models.Contact{
		ID:        id.ContactID(uuid.New()),
		Username:  username,
		Name:      req.Name,
		Relation:  req.Relation,
		Phone:     req.Phone(),
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "failed to save contact",
			"request_id", requestcontext.RequestID(ctx),
			"username", username,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save contact")
	}

	s.logger.InfoContext(ctx, "contact added",
		"request_id", requestcontext.RequestID(ctx),
		"username", username,
		"contact_id", c.ID.String(),
	)
	return c, nil
}

func (s *Service) List(ctx context.Context, username id.Username) ([]models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	contacts, err := s.store.ListByUser(ctx, username)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch contacts")
	}
	return contacts, nil
}

func (s *Service) Delete(ctx context.Context, username id.Username, contactID id.ContactID) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, username, contactID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "contact not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete contact")
	}
	s.logger.InfoContext(ctx, "contact removed",
		"request_id", requestcontext.RequestID(ctx),
		"username", username,
		"contact_id", contactID.String(),
	)
	return nil
}
