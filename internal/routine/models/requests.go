package models

import (
	"strings"
	"unicode/utf8"

	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
)

// CreateRoutineRequest is the validated input for creating a routine.
type CreateRoutineRequest struct {
	Username string `json:"username"`
	Title    string `json:"title"`
	TimeFrom string `json:"timeFrom"`
	TimeTo   string `json:"timeTo"`
	Location string `json:"location"`
	Days     string `json:"days"`

	parsedUsername id.Username
	parsedWindow   Window
	parsedDays     id.Days
}

func (r *CreateRoutineRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
	r.Title = strings.TrimSpace(r.Title)
	r.TimeFrom = strings.TrimSpace(r.TimeFrom)
	r.TimeTo = strings.TrimSpace(r.TimeTo)
	r.Location = strings.TrimSpace(r.Location)
	r.Days = strings.TrimSpace(r.Days)
}

// Validate follows the order Size -> Required -> Syntax.
// A window whose end precedes its start is accepted: it wraps midnight.
func (r *CreateRoutineRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if utf8.RuneCountInString(r.Title) > 255 {
		return dErrors.New(dErrors.CodeValidation, "title must be 255 characters or less")
	}
	if utf8.RuneCountInString(r.Location) > 255 {
		return dErrors.New(dErrors.CodeValidation, "location must be 255 characters or less")
	}
	if len(r.Days) > 50 {
		return dErrors.New(dErrors.CodeValidation, "days must be 50 characters or less")
	}

	if r.Username == "" {
		return dErrors.New(dErrors.CodeValidation, "username is required")
	}
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.TimeFrom == "" || r.TimeTo == "" {
		return dErrors.New(dErrors.CodeValidation, "timeFrom and timeTo are required")
	}

	username, err := id.ParseUsername(r.Username)
	if err != nil {
		return err
	}
	from, err := ParseTimeOfDay(r.TimeFrom)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid timeFrom")
	}
	to, err := ParseTimeOfDay(r.TimeTo)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid timeTo")
	}
	days, err := id.ParseDays(r.Days)
	if err != nil {
		return err
	}

	r.parsedUsername = username
	r.parsedWindow = Window{From: from, To: to}
	r.parsedDays = days
	return nil
}

func (r *CreateRoutineRequest) ParsedUsername() id.Username { return r.parsedUsername }
func (r *CreateRoutineRequest) ParsedWindow() Window { return r.parsedWindow }
func (r *CreateRoutineRequest) ParsedDays() id.Days { return r.parsedDays }

// CheckRequest asks whether the user is where their routine says right now.
type CheckRequest struct {
	Username string   `json:"username"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`

	parsedUsername id.Username
}

func (r *CheckRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
}

// Validate checks presence only; coordinate ranges are enforced by the engine.
func (r *CheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Username == "" {
		return dErrors.New(dErrors.CodeValidation, "username is required")
	}
	if r.Lat == nil || r.Lng == nil {
		return dErrors.New(dErrors.CodeValidation, "lat and lng are required")
	}
	username, err := id.ParseUsername(r.Username)
	if err != nil {
		return err
	}
	r.parsedUsername = username
	return nil
}

func (r *CheckRequest) ParsedUsername() id.Username { return r.parsedUsername }
