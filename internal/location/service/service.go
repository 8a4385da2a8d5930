// Package service logs live positions and analyzes them for risk and routine
// deviation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"safeher/internal/alert"
	"safeher/internal/geo"
	"safeher/internal/location/metrics"
	"safeher/internal/location/models"
	"safeher/internal/risk"
	routinemodels "safeher/internal/routine/models"
	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
	"safeher/pkg/platform/sentinel"
	"safeher/pkg/requestcontext"
)

const defaultStoreTimeout = 3 * time.Second

// HistoryStore is the durable position log.
type HistoryStore interface {
	Append(ctx context.Context, rec *models.Record) error
	Recent(ctx context.Context, username id.Username, limit int) ([]models.Record, error)
}

// LatestStore caches each user's most recent position.
// Latest returns sentinel.ErrNotFound on a miss.
type LatestStore interface {
	SetLatest(ctx context.Context, rec models.Record) error
	Latest(ctx context.Context, username id.Username) (*models.Record, error)
}

// RoutineChecker is the routine engine.
type RoutineChecker interface {
	CheckNow(ctx context.Context, username id.Username, lat, lon float64, now time.Time) (*routinemodels.DeviationResult, error)
}

type RiskClassifier interface {
	Classify(p geo.Point, at time.Time) risk.Assessment
}

type AlertPublisher interface {
	Publish(ctx context.Context, a alert.Alert) error
}

type Service struct {
	history      HistoryStore
	classifier   RiskClassifier
	latest       LatestStore
	routines     RoutineChecker
	alerts       AlertPublisher
	location     *time.Location
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

func WithLatestStore(latest LatestStore) Option {
	return func(s *Service) {
		s.latest = latest
	}
}

func WithRoutineChecker(routines RoutineChecker) Option {
	return func(s *Service) {
		s.routines = routines
	}
}

func WithAlertPublisher(alerts AlertPublisher) Option {
	return func(s *Service) {
		s.alerts = alerts
	}
}

// WithLocation sets the zone used for the risk hour and reported times.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.location = loc
	}
}

func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func New(history HistoryStore, classifier RiskClassifier, opts ...Option) (*Service, error) {
	if history == nil {
		return nil, errors.New("location history store is required")
	}
	if classifier == nil {
		return nil, errors.New("risk classifier is required")
	}
	s := &Service{
		history:      history,
		classifier:   classifier,
		location:     time.Local,
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

// Analyze logs the position, classifies its risk and checks the user's routine.
// Only request validation fails the call: a failed write is reported through
// LocationLogged and a failed routine lookup leaves Routine nil.
func (s *Service) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.Analysis, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	requestID := requestcontext.RequestID(ctx)
	now := requestcontext.Now(ctx).In(s.location)
	username := req.ParsedUsername()

	rec := models.Record{
		Username:   username,
		Point:      req.Point(),
		AccuracyM:  req.AccuracyM(),
		RecordedAt: now,
	}
	logged := s.logPosition(ctx, &rec)

	assessment := s.classifier.Classify(rec.Point, now)
	s.metrics.IncrementRiskLevel(string(assessment.Level))

	analysis := &models.Analysis{
		Risk:           assessment,
		At:             now,
		LocationLogged: logged,
	}

	if s.routines != nil {
		result, err := s.routines.CheckNow(ctx, username, rec.Point.Lat, rec.Point.Lon, now)
		if err != nil {
			s.metrics.IncrementRoutineFailure()
			s.logger.WarnContext(ctx, "routine check failed during analysis",
				"request_id", requestID,
				"username", username,
				"error", err,
			)
		} else {
			analysis.Routine = result
			if result.Status == routinemodels.StatusDeviating {
				s.publishDeviation(ctx, username, rec.Point, result)
			}
		}
	}

	s.logger.InfoContext(ctx, "risk analysis completed",
		"request_id", requestID,
		"username", username,
		"risk", assessment.Level,
		"location_logged", logged,
	)
	return analysis, nil
}

func (s *Service) logPosition(ctx context.Context, rec *models.Record) bool {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	logged := true
	if err := s.history.Append(ctx, rec); err != nil {
		logged = false
		s.metrics.IncrementLogFailure("history")
		s.logger.WarnContext(ctx, "location logging failed",
			"request_id", requestcontext.RequestID(ctx),
			"username", rec.Username,
			"error", err,
		)
	}
	if s.latest != nil {
		if err := s.latest.SetLatest(ctx, *rec); err != nil {
			s.metrics.IncrementLogFailure("latest")
			s.logger.WarnContext(ctx, "latest position update failed",
				"request_id", requestcontext.RequestID(ctx),
				"username", rec.Username,
				"error", err,
			)
		}
	}
	return logged
}

// publishDeviation is best effort; a failure never changes the analysis.
func (s *Service) publishDeviation(ctx context.Context, username id.Username, p geo.Point, result *routinemodels.DeviationResult) {
	if s.alerts == nil || result.Expected == nil {
		return
	}
	lat, lng := p.Lat, p.Lon
	body := fmt.Sprintf("%s is away from %q (expected at %s between %s and %s)",
		username, result.Expected.Title, result.Expected.Location, result.Expected.From, result.Expected.To)
	if result.DistanceKm != nil {
		body = fmt.Sprintf("%s, %.2f km off", body, *result.DistanceKm)
	}
	a := alert.Alert{
		ID:         uuid.New(),
		Kind:       alert.KindDeviation,
		Username:   username.String(),
		Title:      "SAFEHER ROUTINE DEVIATION",
		Body:       body,
		Lat:        &lat,
		Lng:        &lng,
		OccurredAt: result.CheckedAt,
	}
	if err := s.alerts.Publish(ctx, a); err != nil {
		s.logger.WarnContext(ctx, "deviation alert publish failed",
			"request_id", requestcontext.RequestID(ctx),
			"username", username,
			"alert_id", a.ID,
			"error", err,
		)
	}
}

// History returns up to limit positions, newest first.
func (s *Service) History(ctx context.Context, username id.Username, limit int) ([]models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	records, err := s.history.Recent(ctx, username, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch locations")
	}
	return records, nil
}

// Latest returns the most recent position, preferring the cache.
func (s *Service) Latest(ctx context.Context, username id.Username) (*models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if s.latest != nil {
		rec, err := s.latest.Latest(ctx, username)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "latest position cache failed, using history",
				"request_id", requestcontext.RequestID(ctx),
				"username", username,
				"error", err,
			)
		}
	}

	records, err := s.history.Recent(ctx, username, 1)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch locations")
	}
	if len(records) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no location recorded")
	}
	return &records[0], nil
}
