package cache

import (
	"context"
	"errors"
	"time"

	"github.com/clinova/billing-service/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore implements Store backed by Redis. Every operation first checks
// liveness with a ping; an unreachable server degrades to miss/no-op rather
// than an error, keeping the cache strictly advisory for callers.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed store. The connection is not
// validated here: a server that is down at startup may come back later, and
// the per-operation ping handles both cases.
func NewRedisStore(cfg *config.RedisConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	return &RedisStore{
		client: client,
		logger: logger.Named("cache"),
	}
}

// NewRedisStoreWithClient creates a store with an existing Redis client.
// Useful for tests sharing a miniredis-backed client.
func NewRedisStoreWithClient(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger.Named("cache")}
}

// Get returns the cached value for key, treating any Redis failure as a miss
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	if !s.alive(ctx) {
		return "", false
	}

	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

// Set stores value under key with the given TTL, reporting success
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if !s.alive(ctx) {
		return false
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Close closes the underlying Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) alive(ctx context.Context) bool {
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.logger.Warn("Cache unavailable", zap.Error(err))
		return false
	}
	return true
}
