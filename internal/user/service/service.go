// Package service registers users and looks up their public profile.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"safeher/internal/user/models"
	"safeher/internal/user/secrets"
	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
	"safeher/pkg/platform/sentinel"
	"safeher/pkg/requestcontext"
)

const defaultStoreTimeout = 3 * time.Second

// Store persists users. Create returns sentinel.ErrConflict for a taken
// username; FindByUsername returns sentinel.ErrNotFound on a miss.
type Store interface {
	Create(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username id.Username) (*models.User, error)
}

// Hasher turns a secret into its stored form.
type Hasher interface {
	Hash(secret string) (string, error)
}

type Service struct {
	store        Store
	hasher       Hasher
	storeTimeout time.Duration
	logger       *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHasher replaces the default bcrypt hasher.
func WithHasher(h Hasher) Option {
	return func(s *Service) {
		if h != nil {
			s.hasher = h
		}
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
		return nil, errors.New("user store is required")
	}
	s := &Service{
		store:        store,
		hasher:       secrets.NewHasher(bcrypt.DefaultCost),
		storeTimeout: defaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Register stores a new user with a hashed password and PIN.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	username := req.ParsedUsername()

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, s.hashError(err)
	}
	pinHash, err := s.hasher.Hash(req.PIN)
	if err != nil {
		return nil, s.hashError(err)
	}

	u := &models.User{
		Username:     username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		PINHash:      pinHash,
		CreatedAt:    requestcontext.Now(ctx),
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.logger.WarnContext(ctx, "registration for taken username",
				"request_id", requestcontext.RequestID(ctx),
				"username", username,
			)
			return nil, dErrors.New(dErrors.CodeConflict, "username already registered")
		}
		s.logger.ErrorContext(ctx, "failed to save user",
			"request_id", requestcontext.RequestID(ctx),
			"username", username,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register user")
	}

	s.logger.InfoContext(ctx, "user registered",
		"request_id", requestcontext.RequestID(ctx),
		"username", username,
	)
	return u, nil
}

func (s *Service) hashError(err error) error {
	if _, ok := dErrors.From(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash credentials")
}

// Get returns the user; callers expose only the public fields.
func (s *Service) Get(ctx context.Context, username id.Username) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	u, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch user")
	}
	return u, nil
}
