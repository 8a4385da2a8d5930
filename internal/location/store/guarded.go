package store

import (
	"context"
	"errors"
	"log/slog"

	"safeher/internal/location/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/circuit"
	"safeher/pkg/platform/sentinel"
)

type latestBackend interface {
	SetLatest(ctx context.Context, rec models.Record) error
	Latest(ctx context.Context, username id.Username) (*models.Record, error)
}

// GuardedLatestStore stops calling the latest-position cache while it keeps
// failing. Skipped calls return circuit.ErrOpen, which callers treat like any
// other cache failure and fall back to history.
type GuardedLatestStore struct {
	next    latestBackend
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuardedLatest(next latestBackend, breaker *circuit.Breaker, logger *slog.Logger) *GuardedLatestStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &GuardedLatestStore{next: next, breaker: breaker, logger: logger}
}

func (g *GuardedLatestStore) SetLatest(ctx context.Context, rec models.Record) error {
	if !g.breaker.Allow() {
		return circuit.ErrOpen
	}
	err := g.next.SetLatest(ctx, rec)
	g.record(ctx, err)
	return err
}

func (g *GuardedLatestStore) Latest(ctx context.Context, username id.Username) (*models.Record, error) {
	if !g.breaker.Allow() {
		return nil, circuit.ErrOpen
	}
	rec, err := g.next.Latest(ctx, username)
	if errors.Is(err, sentinel.ErrNotFound) {
		g.record(ctx, nil)
		return nil, err
	}
	g.record(ctx, err)
	return rec, err
}

func (g *GuardedLatestStore) record(ctx context.Context, err error) {
	var change circuit.StateChange
	if err != nil {
		_, change = g.breaker.RecordFailure()
	} else {
		_, change = g.breaker.RecordSuccess()
	}
	switch {
	case change.Opened:
		g.logger.WarnContext(ctx, "latest position cache circuit opened",
			"breaker", g.breaker.Name(),
			"error", err,
		)
	case change.Closed:
		g.logger.InfoContext(ctx, "latest position cache circuit closed",
			"breaker", g.breaker.Name(),
		)
	}
}
