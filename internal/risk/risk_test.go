package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"safeher/internal/geo"
)

func at(hour int) time.Time {
	return time.Date(2025, time.March, 10, hour, 30, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	bangalore := geo.Point{Lat: 12.9716, Lon: 77.5946}
	mumbai := geo.Point{Lat: 19.0760, Lon: 72.8777}

	tests := []struct {
		name  string
		point geo.Point
		hour  int
		want  Assessment
	}{
		{name: "late evening is high", point: mumbai, hour: 22, want: Assessment{LevelHigh, ReasonLateNight}},
		{name: "early morning is high", point: mumbai, hour: 5, want: Assessment{LevelHigh, ReasonLateNight}},
		{name: "night wins over isolated area", point: bangalore, hour: 23, want: Assessment{LevelHigh, ReasonLateNight}},
		{name: "isolated area by day", point: bangalore, hour: 14, want: Assessment{LevelMedium, ReasonIsolated}},
		{name: "box edge is inside", point: geo.Point{Lat: 12, Lon: 78}, hour: 14, want: Assessment{LevelMedium, ReasonIsolated}},
		{name: "six am is day", point: mumbai, hour: 6, want: Assessment{LevelLow, ReasonSafe}},
		{name: "nine pm is day", point: mumbai, hour: 21, want: Assessment{LevelLow, ReasonSafe}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.point, at(tt.hour)))
		})
	}
}

func TestClassifyNonWrappingNight(t *testing.T) {
	c := NewClassifier(Config{NightStartHour: 1, NightEndHour: 4})
	p := geo.Point{Lat: 0, Lon: 0}

	assert.Equal(t, LevelLow, c.Classify(p, at(0)).Level)
	assert.Equal(t, LevelHigh, c.Classify(p, at(1)).Level)
	assert.Equal(t, LevelHigh, c.Classify(p, at(4)).Level)
	assert.Equal(t, LevelLow, c.Classify(p, at(5)).Level)
}

func TestClassifyWithoutAreas(t *testing.T) {
	c := NewClassifier(Config{NightStartHour: 22, NightEndHour: 5})
	assert.Equal(t, LevelLow, c.Classify(geo.Point{Lat: 12.5, Lon: 77.5}, at(12)).Level)
}
