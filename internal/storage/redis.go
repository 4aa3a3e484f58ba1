package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

const sessionKeyPrefix = "session:"

var _ domain.SessionBackend = (*RedisBackend)(nil)

// RedisBackend stores sessions in Redis with native key expiry.
type RedisBackend struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisBackend wraps an existing client.
func NewRedisBackend(client *redis.Client, log *logger.Logger) *RedisBackend {
	return &RedisBackend{client: client, log: log}
}

// OpenRedis parses a redis:// URL, connects and pings.
func OpenRedis(ctx context.Context, url string, log *logger.Logger) (*RedisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("storage: parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: pinging redis: %w", err)
	}
	log.Info("connected to redis at %s", opts.Addr)
	return NewRedisBackend(client, log), nil
}

// Load implements domain.SessionBackend.
func (r *RedisBackend) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, sessionKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: redis get %s: %w", key, err)
	}
	return val, nil
}

// Save implements domain.SessionBackend. The key expires after ttl.
func (r *RedisBackend) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("storage: redis set %s: %w", key, err)
	}
	return nil
}

// Delete implements domain.SessionBackend.
func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("storage: redis del %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisBackend) Close() error {
	return r.client.Close()
}
