package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"safeher/internal/location/models"
	id "safeher/pkg/domain"
)

// PostgresHistoryStore persists location history in PostgreSQL.
type PostgresHistoryStore struct {
	db *sql.DB
}

func NewPostgresHistory(db *sql.DB) *PostgresHistoryStore {
	return &PostgresHistoryStore{db: db}
}

func (s *PostgresHistoryStore) Append(ctx context.Context, rec *models.Record) error {
	if rec == nil {
		return errors.New("location record is required")
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO locations (username, lat, lng, accuracy_m, recorded_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		rec.Username.String(), rec.Point.Lat, rec.Point.Lon, rec.AccuracyM, rec.RecordedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (s *PostgresHistoryStore) Recent(ctx context.Context, username id.Username, limit int) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lat, lng, accuracy_m, recorded_at
		 FROM locations
		 WHERE username = $1
		 ORDER BY recorded_at DESC, id DESC
		 LIMIT $2`,
		username.String(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		rec := models.Record{Username: username}
		if err := rows.Scan(&rec.ID, &rec.Point.Lat, &rec.Point.Lon, &rec.AccuracyM, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return records, nil
}
