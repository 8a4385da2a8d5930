package models

import (
	"time"

	id "safeher/pkg/domain"
)

// Routine is a recurring commitment to be somewhere during a daily window.
type Routine struct {
	ID       id.RoutineID
	Username id.Username
	Title    string
	Window   Window
	// Location is free-form: either explicit "lat,lon" or a place name.
	Location string
	// Days is stored and returned but not used when resolving the active entry.
	Days      id.Days
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sample is a single live location reading.
type Sample struct {
	Lat       float64
	Lon       float64
	AccuracyM float64
}

// DeviationStatus classifies a live position against the active routine.
type DeviationStatus string

const (
	StatusOnSchedule    DeviationStatus = "on_schedule"
	StatusDeviating     DeviationStatus = "deviating"
	StatusNotApplicable DeviationStatus = "not_applicable"
)

// Expected names where the user should be, for rendering a deviation.
type Expected struct {
	Title    string
	Location string
	From     TimeOfDay
	To       TimeOfDay
}

// DeviationResult is the outcome of a routine check.
// Routine is nil for StatusNotApplicable; DistanceKm is nil when the active
// routine has no resolvable location; Expected is set only for StatusDeviating.
type DeviationResult struct {
	Status      DeviationStatus
	Routine     *Routine
	DistanceKm  *float64
	Expected    *Expected
	ThresholdKm float64
	CheckedAt   time.Time
}
