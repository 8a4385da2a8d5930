// Package risk classifies a position by time of day and area.
// This is pure domain logic - no I/O, no side effects.
package risk

import (
	"time"

	"safeher/internal/geo"
)

type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

const (
	ReasonLateNight = "Late night risk detected"
	ReasonIsolated  = "Isolated area detected"
	ReasonSafe      = "Area appears safe"
)

// Assessment is the classifier verdict.
type Assessment struct {
	Level  Level
	Reason string
}

// Config holds the classifier rules.
// Night covers NightStartHour through NightEndHour inclusive and may wrap
// midnight (22..5 is the default).
type Config struct {
	NightStartHour int
	NightEndHour   int
	IsolatedAreas  []geo.Box
}

// DefaultConfig is night 22:00-05:59 and one isolated box around lat 12-13, lon 77-78.
func DefaultConfig() Config {
	return Config{
		NightStartHour: 22,
		NightEndHour:   5,
		IsolatedAreas:  []geo.Box{{MinLat: 12, MinLon: 77, MaxLat: 13, MaxLon: 78}},
	}
}

type Classifier struct {
	cfg Config
}

func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify applies the rules in priority order: night, isolated area, safe.
func (c *Classifier) Classify(p geo.Point, at time.Time) Assessment {
	if c.isNight(at.Hour()) {
		return Assessment{Level: LevelHigh, Reason: ReasonLateNight}
	}
	for _, box := range c.cfg.IsolatedAreas {
		if box.Contains(p) {
			return Assessment{Level: LevelMedium, Reason: ReasonIsolated}
		}
	}
	return Assessment{Level: LevelLow, Reason: ReasonSafe}
}

func (c *Classifier) isNight(hour int) bool {
	start, end := c.cfg.NightStartHour, c.cfg.NightEndHour
	if start <= end {
		return hour >= start && hour <= end
	}
	return hour >= start || hour <= end
}
