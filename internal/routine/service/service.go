// Package service is the routine engine: it answers "is this user where their
// routine says they should be right now?" and manages the routine entries.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"safeher/internal/geo"
	"safeher/internal/routine/deviation"
	"safeher/internal/routine/metrics"
	"safeher/internal/routine/models"
	"safeher/internal/routine/schedule"
	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
	"safeher/pkg/platform/sentinel"
	"safeher/pkg/requestcontext"
)

// DefaultStoreTimeout bounds every routine store call made by the service.
const DefaultStoreTimeout = 3 * time.Second

// Store persists routine entries.
// ListByUser returns an empty slice, not an error, for a user with no entries.
// Delete returns sentinel.ErrNotFound when the id does not belong to the user.
type Store interface {
	ListByUser(ctx context.Context, username id.Username) ([]models.Routine, error)
	Create(ctx context.Context, routine *models.Routine) error
	Delete(ctx context.Context, username id.Username, routineID id.RoutineID) error
}

// Service composes the schedule resolver and the deviation evaluator over a
// Store. It holds no per-user state; concurrent calls are independent.
type Service struct {
	store        Store
	evaluator    *deviation.Evaluator
	storeTimeout time.Duration
	location     *time.Location
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithEvaluator(e *deviation.Evaluator) Option {
	return func(s *Service) {
		if e != nil {
			s.evaluator = e
		}
	}
}

// WithStoreTimeout overrides DefaultStoreTimeout. Non-positive values are ignored.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// WithLocation sets the time zone routine windows are expressed in.
// Without it the zone of the supplied "now" is used as-is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.location = loc
	}
}

// New constructs the routine service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("routine store is required")
	}
	s := &Service{
		store:        store,
		evaluator:    deviation.New(),
		storeTimeout: DefaultStoreTimeout,
		tracer:       otel.Tracer("safeher/routine"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// CheckNow classifies the user's live position against the routine active at now.
//
// Coordinates are validated before the store is touched. A store failure or
// timeout is returned as CodeStorageUnavailable; it is never reported as
// "no routines".
func (s *Service) CheckNow(ctx context.Context, username id.Username, lat, lon float64, now time.Time) (*models.DeviationResult, error) {
	if err := geo.ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "routine.CheckNow",
		trace.WithAttributes(attribute.String("routine.username", username.String())))
	defer span.End()
	start := time.Now()

	entries, err := s.listEntries(ctx, username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "routine store unavailable")
		s.logger.ErrorContext(ctx, "routine lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"username", username,
			"error", err,
		)
		return nil, err
	}

	if s.location != nil {
		now = now.In(s.location)
	}
	active, _ := schedule.Resolve(entries, models.TimeOfDayOf(now))
	result := s.evaluator.Evaluate(active, lat, lon)
	result.CheckedAt = now

	s.metrics.IncrementOutcome(string(result.Status))
	s.metrics.ObserveCheckLatency(time.Since(start))
	span.SetAttributes(attribute.String("routine.status", string(result.Status)))

	s.logger.DebugContext(ctx, "routine checked",
		"request_id", requestcontext.RequestID(ctx),
		"username", username,
		"status", result.Status,
		"entries", len(entries),
	)
	return &result, nil
}

// listEntries is the only blocking call on the check path.
func (s *Service) listEntries(ctx context.Context, username id.Username) ([]models.Routine, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	start := time.Now()
	entries, err := s.store.ListByUser(ctx, username)
	s.metrics.ObserveStoreLatency("list", time.Since(start))
	if err != nil {
		s.metrics.IncrementStoreFailures()
		return nil, dErrors.Wrap(fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err),
			dErrors.CodeStorageUnavailable, "routine store unavailable")
	}
	return entries, nil
}

// Create stores a new routine for the validated request.
func (s *Service) Create(ctx context.Context, req *models.CreateRoutineRequest) (*models.Routine, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	now := requestcontext.Now(ctx)
	routine := &models.Routine{
		Username:  req.ParsedUsername(),
		Title:     req.Title,
		Window:    req.ParsedWindow(),
		Location:  req.Location,
		Days:      req.ParsedDays(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	start := time.Now()
	err := s.store.Create(ctx, routine)
	s.metrics.ObserveStoreLatency("create", time.Since(start))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save routine")
	}

	s.logger.InfoContext(ctx, "routine created",
		"request_id", requestcontext.RequestID(ctx),
		"username", routine.Username,
		"routine_id", routine.ID,
		"wraps_midnight", routine.Window.WrapsMidnight(),
	)
	return routine, nil
}

// List returns the user's routines ordered by window start, then id.
func (s *Service) List(ctx context.Context, username id.Username) ([]models.Routine, error) {
	entries, err := s.listEntries(ctx, username)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(entries, schedule.Compare)
	return entries, nil
}

// Delete removes one of the user's routines.
func (s *Service) Delete(ctx context.Context, username id.Username, routineID id.RoutineID) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	start := time.Now()
	err := s.store.Delete(ctx, username, routineID)
	s.metrics.ObserveStoreLatency("delete", time.Since(start))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "routine not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete routine")
	}

	s.logger.InfoContext(ctx, "routine deleted",
		"request_id", requestcontext.RequestID(ctx),
		"username", username,
		"routine_id", routineID,
	)
	return nil
}
