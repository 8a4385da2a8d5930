// Package deviation classifies a live position against the active routine.
package deviation

import (
	"safeher/internal/geo"
	"safeher/internal/routine/models"
)

// DefaultThresholdKm is how far from the committed location a user may be
// before the check reports a deviation.
const DefaultThresholdKm = 1.0

// displayPrecision is the number of decimals kept for on-schedule distances.
const displayPrecision = 2

// Evaluator applies the deviation policy. The zero value is not usable; build
// one with New.
type Evaluator struct {
	thresholdKm float64
	resolver    geo.Resolver
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithThresholdKm overrides DefaultThresholdKm. Non-positive values are ignored.
func WithThresholdKm(km float64) Option {
	return func(e *Evaluator) {
		if km > 0 {
			e.thresholdKm = km
		}
	}
}

// WithResolver replaces the "lat,lon" reference parser.
func WithResolver(r geo.Resolver) Option {
	return func(e *Evaluator) {
		if r != nil {
			e.resolver = r
		}
	}
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		thresholdKm: DefaultThresholdKm,
		resolver:    geo.CoordinateResolver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ThresholdKm returns the configured deviation threshold.
func (e *Evaluator) ThresholdKm() float64 {
	return e.thresholdKm
}

// Evaluate classifies the position (lat, lon) against active.
// Rule order:
//  1. No active routine: not applicable.
//  2. Routine location missing or unresolvable: on schedule, no distance.
//  3. Farther than the threshold: deviating, raw distance and expected payload.
//  4. Otherwise: on schedule, distance rounded for display.
//
// This is pure domain logic - no I/O, no side effects.
func (e *Evaluator) Evaluate(active *models.Routine, lat, lon float64) models.DeviationResult {
	result := models.DeviationResult{
		Status:      models.StatusNotApplicable,
		ThresholdKm: e.thresholdKm,
	}
	if active == nil {
		return result
	}

	result.Routine = active
	result.Status = models.StatusOnSchedule

	if active.Location == "" {
		return result
	}
	target, ok := e.resolver.Resolve(active.Location)
	if !ok {
		return result
	}

	distance := geo.DistanceKm(lat, lon, target.Lat, target.Lon)
	if distance > e.thresholdKm {
		result.Status = models.StatusDeviating
		result.DistanceKm = &distance
		result.Expected = &models.Expected{
			Title:    active.Title,
			Location: active.Location,
			From:     active.Window.From,
			To:       active.Window.To,
		}
		return result
	}

	rounded := geo.RoundTo(distance, displayPrecision)
	result.DistanceKm = &rounded
	return result
}
