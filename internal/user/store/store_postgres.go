package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"safeher/internal/user/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/sentinel"
)

// PostgresStore persists users in the users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts u, returning sentinel.ErrConflict when the username exists.
func (s *PostgresStore) Create(ctx context.Context, u *models.User) error {
	if u == nil {
		return errors.New("user is required")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, pin_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (username) DO NOTHING`,
		u.Username.String(), u.Email, u.PasswordHash, u.PINHash, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username id.Username) (*models.User, error) {
	u := models.User{Username: username}
	err := s.db.QueryRowContext(ctx,
		`SELECT email, password_hash, pin_hash, created_at FROM users WHERE username = $1`,
		username.String(),
	).Scan(&u.Email, &u.PasswordHash, &u.PINHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
