// Package service records SOS triggers and broadcasts them as alerts.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"safeher/internal/alert"
	"safeher/internal/sos/metrics"
	"safeher/internal/sos/models"
	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
	"safeher/pkg/requestcontext"
)

const (
	defaultStoreTimeout = 3 * time.Second

	AlertTitle = "SAFEHER EMERGENCY"
)

type Store interface {
	Record(ctx context.Context, e *models.Event) error
	Recent(ctx context.Context, username id.Username, limit int) ([]models.Event, error)
}

type AlertPublisher interface {
	Publish(ctx context.Context, a alert.Alert) error
}

type Service struct {
	store        Store
	alerts       AlertPublisher
	storeTimeout time.Duration
	logger       *slog.Logger
	metrics      *metrics.Metrics
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

func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func New(store Store, alerts AlertPublisher, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("sos store is required")
	}
	if alerts == nil {
		return nil, errors.New("alert publisher is required")
	}
	s := &Service{store: store, alerts: alerts, storeTimeout: defaultStoreTimeout}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Trigger records the event and then publishes the alert. A failed write does
// not stop the alert. A failed publish returns CodeAlertFailed together with
// the outcome, so the caller can still report whether the event was logged.
func (s *Service) Trigger(ctx context.Context, req *models.TriggerRequest) (*models.Outcome, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	requestID := requestcontext.RequestID(ctx)
	s.metrics.IncrementTriggers()

	outcome := &models.Outcome{
		Event: models.Event{
			ID:          id.SOSEventID(uuid.New()),
			Username:    req.ParsedUsername(),
			Name:        req.Name,
			Point:       req.Point(),
			TriggeredAt: requestcontext.Now(ctx),
		},
	}
	event := &outcome.Event

	outcome.Logged = s.record(ctx, event)

	a := alert.Alert{
		ID:         uuid.UUID(event.ID),
		Kind:       alert.KindSOS,
		Username:   event.Username.String(),
		Title:      AlertTitle,
		Body:       fmt.Sprintf("SOS Alert: %s needs immediate help!", event.Name),
		OccurredAt: event.TriggeredAt,
	}
	if event.Point != nil {
		lat, lng := event.Point.Lat, event.Point.Lon
		a.Lat, a.Lng = &lat, &lng
	}
	if err := s.alerts.Publish(ctx, a); err != nil {
		s.metrics.IncrementAlertFailures()
		s.logger.ErrorContext(ctx, "sos alert publish failed",
			"request_id", requestID,
			"username", event.Username,
			"event_id", event.ID.String(),
			"sos_logged", outcome.Logged,
			"error", err,
		)
		return outcome, dErrors.Wrap(err, dErrors.CodeAlertFailed, "alert delivery failed")
	}
	outcome.Alerted = true

	s.logger.WarnContext(ctx, "sos triggered",
		"request_id", requestID,
		"username", event.Username,
		"event_id", event.ID.String(),
		"has_location", event.Point != nil,
		"sos_logged", outcome.Logged,
	)
	return outcome, nil
}

func (s *Service) record(ctx context.Context, e *models.Event) bool {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.store.Record(ctx, e); err != nil {
		s.metrics.IncrementRecordFailures()
		s.logger.ErrorContext(ctx, "failed to record sos event",
			"request_id", requestcontext.RequestID(ctx),
			"username", e.Username,
			"error", err,
		)
		return false
	}
	return true
}

// History returns the user's most recent SOS events, newest first.
func (s *Service) History(ctx context.Context, username id.Username) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	events, err := s.store.Recent(ctx, username, models.DefaultHistory)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch sos events")
	}
	return events, nil
}
