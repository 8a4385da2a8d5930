package domain

import (
	"strings"

	dErrors "safeher/pkg/domain-errors"
)

// Weekday is a three-letter day abbreviation as stored on routine entries.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// validWeekdays is the single source of truth for accepted day names.
var validWeekdays = map[string]Weekday{
	"mon": Monday,
	"tue": Tuesday,
	"wed": Wednesday,
	"thu": Thursday,
	"fri": Friday,
	"sat": Saturday,
	"sun": Sunday,
}

// ParseWeekday accepts a day abbreviation in any case.
func ParseWeekday(s string) (Weekday, error) {
	d, ok := validWeekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid weekday "+strings.TrimSpace(s))
	}
	return d, nil
}

// Days is the advisory set of weekdays a routine applies to.
type Days []Weekday

// ParseDays parses a comma-separated list such as "Mon,Wed,Fri".
// An empty string yields an empty set. Duplicates are dropped, order kept.
func ParseDays(s string) (Days, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Days{}, nil
	}
	seen := make(map[Weekday]bool)
	days := Days{}
	for _, part := range strings.Split(s, ",") {
		d, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	return days, nil
}

// String renders the set in its stored comma-separated form.
func (d Days) String() string {
	parts := make([]string, len(d))
	for i, day := range d {
		parts[i] = string(day)
	}
	return strings.Join(parts, ",")
}
