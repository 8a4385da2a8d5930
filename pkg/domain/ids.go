package domain

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "safeher/pkg/domain-errors"
)

// Username identifies the owner of routines, contacts, locations and SOS events.
// Invariant: 3-50 characters of [A-Za-z0-9_].
//
// Usage: construct via ParseUsername at trust boundaries; direct casting
// bypasses validation.
type Username string

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

// ParseUsername validates external input as a Username.
//
// Errors: returns CodeInvalidInput when the value is empty, out of range or
// contains characters outside [A-Za-z0-9_].
func ParseUsername(s string) (Username, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "username is required")
	}
	if len(s) < 3 || len(s) > 50 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "username must be 3-50 characters")
	}
	if !usernamePattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "username can only contain letters, numbers, and underscores")
	}
	return Username(s), nil
}

func (u Username) String() string {
	return string(u)
}

// RoutineID is the store-assigned identifier of a routine entry.
type RoutineID int64

// ParseRoutineID parses a positive decimal routine id.
func ParseRoutineID(s string) (RoutineID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "routine id must be a positive integer")
	}
	return RoutineID(n), nil
}

func (id RoutineID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ContactID identifies an emergency contact.
type ContactID uuid.UUID

// SOSEventID identifies a recorded SOS trigger.
type SOSEventID uuid.UUID

func ParseContactID(s string) (ContactID, error) {
	u, err := parseUUID(s, "contact id")
	return ContactID(u), err
}

func (id ContactID) String() string { return uuid.UUID(id).String() }
func (id SOSEventID) String() string { return uuid.UUID(id).String() }

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be nil")
	}
	return u, nil
}
