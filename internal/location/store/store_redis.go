package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"safeher/internal/geo"
	"safeher/internal/location/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/sentinel"
)

const latestKeyPrefix = "safeher:location:latest:"

// RedisLatestStore keeps each user's most recent position in a Redis hash.
// Entries expire after ttl so stale positions are not served forever.
type RedisLatestStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLatest(client *redis.Client, ttl time.Duration) *RedisLatestStore {
	return &RedisLatestStore{client: client, ttl: ttl}
}

func (s *RedisLatestStore) SetLatest(ctx context.Context, rec models.Record) error {
	key := latestKeyPrefix + rec.Username.String()
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"lat", strconv.FormatFloat(rec.Point.Lat, 'f', -1, 64),
		"lng", strconv.FormatFloat(rec.Point.Lon, 'f', -1, 64),
		"accuracy_m", strconv.FormatFloat(rec.AccuracyM, 'f', -1, 64),
		"recorded_at", rec.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set latest location: %w", err)
	}
	return nil
}

// Latest returns sentinel.ErrNotFound when no position is cached.
func (s *RedisLatestStore) Latest(ctx context.Context, username id.Username) (*models.Record, error) {
	fields, err := s.client.HGetAll(ctx, latestKeyPrefix+username.String()).Result()
	if errors.Is(err, redis.Nil) || (err == nil && len(fields) == 0) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get latest location: %w", err)
	}

	rec := &models.Record{Username: username}
	var parseErr error
	parse := func(name string) float64 {
		v, err := strconv.ParseFloat(fields[name], 64)
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("decode latest %s: %w", name, err)
		}
		return v
	}
	rec.Point = geo.Point{Lat: parse("lat"), Lon: parse("lng")}
	rec.AccuracyM = parse("accuracy_m")
	if parseErr != nil {
		return nil, parseErr
	}
	rec.RecordedAt, err = time.Parse(time.RFC3339Nano, fields["recorded_at"])
	if err != nil {
		return nil, fmt.Errorf("decode latest recorded_at: %w", err)
	}
	return rec, nil
}
