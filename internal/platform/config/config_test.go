package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeher/internal/geo"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 3*time.Second, cfg.Routine.StoreTimeout)
		assert.Equal(t, 1.0, cfg.Routine.ThresholdKm)
		assert.Equal(t, "safety", cfg.Kafka.Topic)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Equal(t, 22, cfg.Risk.NightStartHour)
		assert.Equal(t, 5, cfg.Risk.NightEndHour)
		assert.Equal(t, Boxes{{MinLat: 12, MinLon: 77, MaxLat: 13, MaxLon: 78}}, cfg.Risk.IsolatedAreas)
		assert.True(t, cfg.RateLimit.Enabled)
		assert.Equal(t, time.Minute, cfg.RateLimit.Window)
		assert.Equal(t, 30, cfg.RateLimit.Write)
		assert.Equal(t, 30*time.Second, cfg.Redis.BreakerCooldown)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ROUTINE_DEVIATION_THRESHOLD_KM", "2.5")
		t.Setenv("ROUTINE_TIME_ZONE", "UTC")
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,k1:9092")
		t.Setenv("RISK_ISOLATED_AREAS", "1,2,3,4; 10,20,11,21")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 2.5, cfg.Routine.ThresholdKm)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.Len(t, cfg.Risk.IsolatedAreas, 2)
		assert.Equal(t, geo.Box{MinLat: 10, MinLon: 20, MaxLat: 11, MaxLon: 21}, cfg.Risk.IsolatedAreas[1])

		loc, err := cfg.Routine.Location()
		require.NoError(t, err)
		assert.Equal(t, time.UTC, loc)
	})

	t.Run("non-positive threshold rejected", func(t *testing.T) {
		t.Setenv("ROUTINE_DEVIATION_THRESHOLD_KM", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "ROUTINE_DEVIATION_THRESHOLD_KM")
	})

	t.Run("unknown time zone rejected", func(t *testing.T) {
		t.Setenv("ROUTINE_TIME_ZONE", "Mars/Olympus")
		_, err := Load()
		assert.ErrorContains(t, err, "Mars/Olympus")
	})

	t.Run("bad night hour rejected", func(t *testing.T) {
		t.Setenv("RISK_NIGHT_START_HOUR", "24")
		_, err := Load()
		assert.ErrorContains(t, err, "night hours")
	})

	t.Run("malformed area rejected", func(t *testing.T) {
		t.Setenv("RISK_ISOLATED_AREAS", "1,2,3")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("inverted area rejected", func(t *testing.T) {
		t.Setenv("RISK_ISOLATED_AREAS", "13,77,12,78")
		_, err := Load()
		assert.ErrorContains(t, err, "min exceeds max")
	})

	t.Run("unknown log format rejected", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := Load()
		assert.ErrorContains(t, err, "LOG_FORMAT")
	})
}
