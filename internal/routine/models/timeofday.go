package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	dErrors "safeher/pkg/domain-errors"
)

// TimeOfDay is a wall-clock time with no date, in seconds since midnight.
// Invariant: 0 <= t < 86400.
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

// NewTimeOfDay builds a TimeOfDay from components, rejecting out-of-range values.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid time of day %02d:%02d:%02d", hour, minute, second))
	}
	return TimeOfDay(hour*3600 + minute*60 + second), nil
}

// MustTimeOfDay is NewTimeOfDay for constants and tests.
func MustTimeOfDay(hour, minute, second int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute, second)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS" (the forms the routine API and
// the database TIME column produce).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, dErrors.New(dErrors.CodeValidation, "time must be HH:MM or HH:MM:SS")
	}
	nums := [3]int{}
	for i, p := range parts {
		if len(p) != 2 {
			return 0, dErrors.New(dErrors.CodeValidation, "time must be HH:MM or HH:MM:SS")
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, dErrors.New(dErrors.CodeValidation, "time must be HH:MM or HH:MM:SS")
		}
		nums[i] = n
	}
	return NewTimeOfDay(nums[0], nums[1], nums[2])
}

// TimeOfDayOf extracts the wall-clock time of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(h*3600 + m*60 + s)
}

func (t TimeOfDay) Hour() int { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// String renders the stored form "HH:MM:SS".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Valid reports whether t is inside a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < secondsPerDay
}
