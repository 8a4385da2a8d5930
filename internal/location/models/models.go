package models

import (
	"strconv"
	"strings"
	"time"

	"safeher/internal/geo"
	"safeher/internal/risk"
	routinemodels "safeher/internal/routine/models"
	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
)

const (
	MaxAccuracyM    = 10000.0
	DefaultHistory  = 50
	MaxHistoryLimit = 1000
	minHistoryLimit = 1
)

// Record is one logged position.
type Record struct {
	ID         int64
	Username   id.Username
	Point      geo.Point
	AccuracyM  float64
	RecordedAt time.Time
}

// Analysis is the outcome of POST /analyze.
// Routine is nil when the routine lookup failed.
type Analysis struct {
	Risk           risk.Assessment
	At             time.Time
	LocationLogged bool
	Routine        *routinemodels.DeviationResult
}

// AnalyzeRequest is a live position report.
type AnalyzeRequest struct {
	Username string   `json:"username"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Accuracy *float64 `json:"accuracy"`

	parsedUsername id.Username
}

func (r *AnalyzeRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
}

func (r *AnalyzeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Username == "" {
		return dErrors.New(dErrors.CodeValidation, "username is required")
	}
	if r.Lat == nil || r.Lng == nil {
		return dErrors.New(dErrors.CodeValidation, "location is required")
	}
	username, err := id.ParseUsername(r.Username)
	if err != nil {
		return err
	}
	if err := geo.ValidateCoordinates(*r.Lat, *r.Lng); err != nil {
		return err
	}
	if r.Accuracy != nil && (*r.Accuracy < 0 || *r.Accuracy > MaxAccuracyM) {
		return dErrors.New(dErrors.CodeValidation, "accuracy must be between 0 and 10000 meters")
	}
	r.parsedUsername = username
	return nil
}

func (r *AnalyzeRequest) ParsedUsername() id.Username { return r.parsedUsername }

func (r *AnalyzeRequest) Point() geo.Point {
	return geo.Point{Lat: *r.Lat, Lon: *r.Lng}
}

// AccuracyM is the reported accuracy, zero when absent.
func (r *AnalyzeRequest) AccuracyM() float64 {
	if r.Accuracy == nil {
		return 0
	}
	return *r.Accuracy
}

// ParseHistoryLimit parses the ?limit query value. Empty means DefaultHistory.
func ParseHistoryLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultHistory, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minHistoryLimit || n > MaxHistoryLimit {
		return 0, dErrors.New(dErrors.CodeValidation, "limit must be between 1 and 1000")
	}
	return n, nil
}
