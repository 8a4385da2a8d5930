package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"safeher/internal/routine/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/sentinel"
)

// PostgresStore persists routines in PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithPostgresLogger sets the logger used to report undecodable rows.
func WithPostgresLogger(logger *slog.Logger) PostgresOption {
	return func(s *PostgresStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewPostgres constructs a PostgreSQL-backed routine store.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

const listRoutinesByUser = `
SELECT id, username, title,
       EXTRACT(EPOCH FROM time_from)::int,
       EXTRACT(EPOCH FROM time_to)::int,
       location, days, created_at, updated_at
FROM routines
WHERE username = $1
ORDER BY time_from, id`

func (s *PostgresStore) ListByUser(ctx context.Context, username id.Username) ([]models.Routine, error) {
	rows, err := s.db.QueryContext(ctx, listRoutinesByUser, username.String())
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	routines := []models.Routine{}
	for rows.Next() {
		var (
			r        models.Routine
			user     string
			from, to int
			days     string
		)
		if err := rows.Scan(&r.ID, &user, &r.Title, &from, &to, &r.Location, &days, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan routine: %w", err)
		}
		r.Username = id.Username(user)
		r.Window = models.Window{From: models.TimeOfDay(from), To: models.TimeOfDay(to)}
		r.Days = s.decodeDays(ctx, r.ID, days)
		routines = append(routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routines: %w", err)
	}
	return routines, nil
}

// decodeDays tolerates rows written outside Create. Days is advisory, so a
// bad value is logged and read as empty instead of failing the whole list.
func (s *PostgresStore) decodeDays(ctx context.Context, routineID id.RoutineID, raw string) id.Days {
	days, err := id.ParseDays(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "ignoring undecodable routine days",
			"routine_id", routineID,
			"days", raw,
			"error", err,
		)
		return id.Days{}
	}
	return days
}

const insertRoutine = `
INSERT INTO routines (username, title, time_from, time_to, location, days, created_at, updated_at)
VALUES ($1, $2, $3::time, $4::time, $5, $6, $7, $8)
RETURNING id`

func (s *PostgresStore) Create(ctx context.Context, routine *models.Routine) error {
	if routine == nil {
		return errors.New("routine is required")
	}
	err := s.db.QueryRowContext(ctx, insertRoutine,
		routine.Username.String(),
		routine.Title,
		routine.Window.From.String(),
		routine.Window.To.String(),
		routine.Location,
		routine.Days.String(),
		routine.CreatedAt,
		routine.UpdatedAt,
	).Scan(&routine.ID)
	if err != nil {
		return fmt.Errorf("insert routine: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, username id.Username, routineID id.RoutineID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM routines WHERE id = $1 AND username = $2`,
		int64(routineID), username.String())
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
