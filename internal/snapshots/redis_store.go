package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

const defaultRedisPrefix = "fixtures"

// RedisStore keeps the snapshot in two keys written in one MULTI/EXEC.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore wraps an existing client; prefix namespaces the keys.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) fixturesKey() string    { return s.prefix + ":fixtures" }
func (s *RedisStore) lastUpdatedKey() string { return s.prefix + ":lastUpdated" }

func (s *RedisStore) LastUpdated(ctx context.Context) (*time.Time, error) {
	raw, err := s.client.Get(ctx, s.lastUpdatedKey()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lastUpdated: %w", err)
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lastUpdated %q: %w", raw, err)
	}
	return millisToTime(ms), nil
}

func (s *RedisStore) Load(ctx context.Context) (fixtures.Snapshot, error) {
	values, err := s.client.MGet(ctx, s.fixturesKey(), s.lastUpdatedKey()).Result()
	if err != nil {
		return fixtures.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	rawFixtures, ok1 := values[0].(string)
	rawUpdated, ok2 := values[1].(string)
	if !ok1 || !ok2 {
		return fixtures.Snapshot{}, ErrNoSnapshot
	}

	var snap fixtures.Snapshot
	if err := json.Unmarshal([]byte(rawFixtures), &snap.Fixtures); err != nil {
		return fixtures.Snapshot{}, fmt.Errorf("decode fixtures: %w", err)
	}
	if snap.LastUpdated, err = strconv.ParseInt(rawUpdated, 10, 64); err != nil {
		return fixtures.Snapshot{}, fmt.Errorf("parse lastUpdated %q: %w", rawUpdated, err)
	}
	return snap, nil
}

func (s *RedisStore) Replace(ctx context.Context, snapshot fixtures.Snapshot) error {
	data, err := json.Marshal(snapshot.Fixtures)
	if err != nil {
		return fmt.Errorf("encode fixtures: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.fixturesKey(), data, 0)
		pipe.Set(ctx, s.lastUpdatedKey(), strconv.FormatInt(snapshot.LastUpdated, 10), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
