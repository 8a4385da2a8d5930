// Package postgres opens the shared *sql.DB and owns the schema.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/retry"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver

	"safeher/internal/platform/config"
)

// Open connects to Postgres through the pgx stdlib driver and waits for the
// first successful ping. Returns nil if the DSN is empty.
func Open(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, nil
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	err = retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return db.PingContext(pingCtx)
		},
		retry.Context(ctx),
		retry.Attempts(max(cfg.ConnectAttempts, 1)),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.WarnContext(ctx, "postgres not ready, retrying",
				"attempt", n+1,
				"error", err,
			)
		}),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username      VARCHAR(50)  PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash TEXT         NOT NULL,
		pin_hash      TEXT         NOT NULL,
		created_at    TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS routines (
		id         BIGSERIAL PRIMARY KEY,
		username   VARCHAR(50)  NOT NULL,
		title      VARCHAR(255) NOT NULL,
		time_from  TIME         NOT NULL,
		time_to    TIME         NOT NULL,
		location   VARCHAR(255) NOT NULL DEFAULT '',
		days       VARCHAR(50)  NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ  NOT NULL,
		updated_at TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS routines_username_from_idx ON routines (username, time_from)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id          BIGSERIAL PRIMARY KEY,
		username    VARCHAR(50)      NOT NULL,
		lat         DOUBLE PRECISION NOT NULL,
		lng         DOUBLE PRECISION NOT NULL,
		accuracy_m  DOUBLE PRECISION NOT NULL DEFAULT 0,
		recorded_at TIMESTAMPTZ      NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS locations_username_time_idx ON locations (username, recorded_at DESC)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id         UUID PRIMARY KEY,
		username   VARCHAR(50)  NOT NULL,
		name       VARCHAR(100) NOT NULL,
		relation   VARCHAR(50)  NOT NULL,
		phone      VARCHAR(15)  NOT NULL,
		created_at TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS contacts_username_idx ON contacts (username)`,
	`CREATE TABLE IF NOT EXISTS sos_events (
		id           UUID PRIMARY KEY,
		username     VARCHAR(50)  NOT NULL,
		name         VARCHAR(100) NOT NULL,
		lat          DOUBLE PRECISION,
		lng          DOUBLE PRECISION,
		triggered_at TIMESTAMPTZ  NOT NULL
	)`,
}

// Migrate creates the schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
