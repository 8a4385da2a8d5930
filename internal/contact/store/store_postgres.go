package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"safeher/internal/contact/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/sentinel"
)

// PostgresStore persists contacts in the contacts table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, c *models.Contact) error {
	if c == nil {
		return errors.New("contact is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, username, name, relation, phone, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(c.ID), c.Username.String(), c.Name, c.Relation, c.Phone, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, username id.Username) ([]models.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, relation, phone, created_at
		 FROM contacts
		 WHERE username = $1
		 ORDER BY created_at, id`,
		username.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var contactID uuid.UUID
		c := models.Contact{Username: username}
		if err := rows.Scan(&contactID, &c.Name, &c.Relation, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.ID = id.ContactID(contactID)
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

func (s *PostgresStore) Delete(ctx context.Context, username id.Username, contactID id.ContactID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE username = $1 AND id = $2`,
		username.String(), uuid.UUID(contactID),
	)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
