package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"safeher/internal/geo"
	"safeher/internal/sos/models"
	id "safeher/pkg/domain"
)

// PostgresStore persists SOS events in the sos_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Record(ctx context.Context, e *models.Event) error {
	if e == nil {
		return errors.New("sos event is required")
	}
	var lat, lng sql.NullFloat64
	if e.Point != nil {
		lat = sql.NullFloat64{Float64: e.Point.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: e.Point.Lon, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sos_events (id, username, name, lat, lng, triggered_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(e.ID), e.Username.String(), e.Name, lat, lng, e.TriggeredAt,
	)
	if err != nil {
		return fmt.Errorf("insert sos event: %w", err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, username id.Username, limit int) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, lat, lng, triggered_at
		 FROM sos_events
		 WHERE username = $1
		 ORDER BY triggered_at DESC
		 LIMIT $2`,
		username.String(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sos events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var (
			eventID  uuid.UUID
			lat, lng sql.NullFloat64
		)
		e := models.Event{Username: username}
		if err := rows.Scan(&eventID, &e.Name, &lat, &lng, &e.TriggeredAt); err != nil {
			return nil, fmt.Errorf("scan sos event: %w", err)
		}
		e.ID = id.SOSEventID(eventID)
		if lat.Valid && lng.Valid {
			e.Point = &geo.Point{Lat: lat.Float64, Lon: lng.Float64}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sos events: %w", err)
	}
	return events, nil
}
