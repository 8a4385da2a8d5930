// Package config loads process configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"safeher/internal/geo"
	platformstrings "safeher/pkg/platform/strings"
)

// Config is the complete process configuration.
type Config struct {
	Server    Server
	Log       Log
	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Routine   RoutineConfig
	Risk      RiskConfig
	RateLimit RateLimitConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"SAFEHER_ADDR"             envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SAFEHER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"SAFEHER_REQUEST_TIMEOUT"  envDefault:"30s"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// PostgresConfig is optional: an empty DSN selects the in-memory stores.
type PostgresConfig struct {
	DSN             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS"    envDefault:"10"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS"    envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnectAttempts uint          `env:"DATABASE_CONNECT_ATTEMPTS"  envDefault:"5"`
}

// RedisConfig is optional: an empty URL disables the latest-position cache.
type RedisConfig struct {
	URL             string        `env:"REDIS_URL"`
	PoolSize        int           `env:"REDIS_POOL_SIZE"        envDefault:"10"`
	MinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS"   envDefault:"2"`
	DialTimeout     time.Duration `env:"REDIS_DIAL_TIMEOUT"     envDefault:"5s"`
	ReadTimeout     time.Duration `env:"REDIS_READ_TIMEOUT"     envDefault:"3s"`
	WriteTimeout    time.Duration `env:"REDIS_WRITE_TIMEOUT"    envDefault:"3s"`
	ConnectAttempts uint          `env:"REDIS_CONNECT_ATTEMPTS" envDefault:"5"`
	LatestTTL       time.Duration `env:"REDIS_LATEST_TTL"       envDefault:"24h"`
	BreakerCooldown time.Duration `env:"REDIS_BREAKER_COOLDOWN" envDefault:"30s"`
}

// KafkaConfig is optional: with no brokers alerts are only logged.
type KafkaConfig struct {
	Brokers        []string `env:"KAFKA_BROKERS"         envSeparator:","`
	Topic          string   `env:"KAFKA_TOPIC"           envDefault:"safety"`
	ClientID       string   `env:"KAFKA_CLIENT_ID"       envDefault:"safeher"`
	PublishRetries uint     `env:"KAFKA_PUBLISH_RETRIES" envDefault:"3"`
}

// RoutineConfig tunes the routine engine.
type RoutineConfig struct {
	StoreTimeout time.Duration `env:"ROUTINE_STORE_TIMEOUT"          envDefault:"3s"`
	ThresholdKm  float64       `env:"ROUTINE_DEVIATION_THRESHOLD_KM" envDefault:"1.0"`
	TimeZone     string        `env:"ROUTINE_TIME_ZONE"              envDefault:"Local"`
	CacheTTL     time.Duration `env:"ROUTINE_CACHE_TTL"              envDefault:"30s"`
	CacheSize    int           `env:"ROUTINE_CACHE_SIZE"             envDefault:"10000"`
}

// Location resolves TimeZone. "Local" and "" mean the process zone.
func (c RoutineConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load routine time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// RiskConfig tunes the rule-based risk classifier.
type RiskConfig struct {
	NightStartHour int   `env:"RISK_NIGHT_START_HOUR" envDefault:"22"`
	NightEndHour   int   `env:"RISK_NIGHT_END_HOUR"   envDefault:"5"`
	IsolatedAreas  Boxes `env:"RISK_ISOLATED_AREAS"   envDefault:"12,77,13,78"`
}

// RateLimitConfig sets per-client budgets. POST /sos is never limited.
type RateLimitConfig struct {
	Enabled bool          `env:"RATELIMIT_ENABLED" envDefault:"true"`
	Window  time.Duration `env:"RATELIMIT_WINDOW"  envDefault:"1m"`
	Read    int           `env:"RATELIMIT_READ"    envDefault:"120"`
	Write   int           `env:"RATELIMIT_WRITE"   envDefault:"30"`
	Analyze int           `env:"RATELIMIT_ANALYZE" envDefault:"120"`
}

// Boxes is a ";"-separated list of "minLat,minLon,maxLat,maxLon" boxes.
type Boxes []geo.Box

func (b *Boxes) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*b = nil
		return nil
	}
	var boxes Boxes
	for part := range strings.SplitSeq(raw, ";") {
		fields := strings.Split(part, ",")
		if len(fields) != 4 {
			return fmt.Errorf("area %q: want minLat,minLon,maxLat,maxLon", part)
		}
		var v [4]float64
		for i, f := range fields {
			n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return fmt.Errorf("area %q: %w", part, err)
			}
			v[i] = n
		}
		box := geo.Box{MinLat: v[0], MinLon: v[1], MaxLat: v[2], MaxLon: v[3]}
		if box.MinLat > box.MaxLat || box.MinLon > box.MaxLon {
			return fmt.Errorf("area %q: min exceeds max", part)
		}
		boxes = append(boxes, box)
	}
	*b = boxes
	return nil
}

// Load parses the environment into a Config and checks cross-field rules.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Kafka.Brokers = platformstrings.DedupeAndTrim(cfg.Kafka.Brokers)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Routine.ThresholdKm <= 0 {
		errs = append(errs, errors.New("ROUTINE_DEVIATION_THRESHOLD_KM must be positive"))
	}
	if c.Routine.StoreTimeout <= 0 {
		errs = append(errs, errors.New("ROUTINE_STORE_TIMEOUT must be positive"))
	}
	if _, err := c.Routine.Location(); err != nil {
		errs = append(errs, err)
	}
	if !validHour(c.Risk.NightStartHour) || !validHour(c.Risk.NightEndHour) {
		errs = append(errs, errors.New("risk night hours must be within 0-23"))
	}
	if c.RateLimit.Enabled && c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATELIMIT_WINDOW must be positive"))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be json or text", c.Log.Format))
	}
	return errors.Join(errs...)
}

func validHour(h int) bool {
	return h >= 0 && h <= 23
}
