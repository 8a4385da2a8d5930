package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"safeher/internal/geo"
	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
)

const (
	DefaultName = "User"

	// DefaultHistory is how many past SOS events GET /sos/{username} returns.
	DefaultHistory = 20
)

// Event is one recorded SOS trigger.
type Event struct {
	ID          id.SOSEventID
	Username    id.Username
	Name        string
	Point       *geo.Point // nil when the client had no fix
	TriggeredAt time.Time
}

// Outcome reports how far an SOS got. It is returned even when alerting fails
// so callers can tell the user the event was still recorded.
type Outcome struct {
	Event   Event
	Logged  bool
	Alerted bool
}

// TriggerRequest is the input for POST /sos.
type TriggerRequest struct {
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`

	parsedUsername id.Username
}

func (r *TriggerRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		r.Name = DefaultName
	}
}

func (r *TriggerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if utf8.RuneCountInString(r.Name) > 100 {
		return dErrors.New(dErrors.CodeValidation, "name must be 100 characters or less")
	}
	if r.Username == "" {
		return dErrors.New(dErrors.CodeValidation, "username is required")
	}
	username, err := id.ParseUsername(r.Username)
	if err != nil {
		return err
	}
	if (r.Lat == nil) != (r.Lng == nil) {
		return dErrors.New(dErrors.CodeValidation, "lat and lng must be sent together")
	}
	if r.Lat != nil {
		if err := geo.ValidateCoordinates(*r.Lat, *r.Lng); err != nil {
			return err
		}
	}
	r.parsedUsername = username
	return nil
}

func (r *TriggerRequest) ParsedUsername() id.Username { return r.parsedUsername }

// Point returns the reported position, or nil when none was sent.
func (r *TriggerRequest) Point() *geo.Point {
	if r.Lat == nil || r.Lng == nil {
		return nil
	}
	return &geo.Point{Lat: *r.Lat, Lon: *r.Lng}
}
