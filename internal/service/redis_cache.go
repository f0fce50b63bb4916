package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/moodcast/backend/internal/domain"
)

// RedisClient is the subset of *redis.Client used by RedisCache
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const redisKeyPrefix = "moodcast:prediction:"

// RedisCache is a PredictionCache shared between service instances.
// Redis failures are logged and treated as cache misses.
type RedisCache struct {
	client RedisClient
	policy ExpiryPolicy
	logger *slog.Logger
	now    func() time.Time
}

// NewRedisCache creates a Redis-backed cache
func NewRedisCache(client RedisClient, policy ExpiryPolicy, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, policy: policy, logger: logger, now: time.Now}
}

func (c *RedisCache) Get(ctx context.Context, key string) (domain.PredictionResult, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache: redis get failed", "key", key, "error", err)
		}
		return domain.PredictionResult{}, false
	}

	var result domain.PredictionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.logger.Warn("cache: discarding undecodable entry", "key", key, "error", err)
		return domain.PredictionResult{}, false
	}
	return result, true
}

func (c *RedisCache) Set(ctx context.Context, key string, result domain.PredictionResult) {
	now := c.now()
	ttl := c.policy.ExpiresAt(now).Sub(now)
	if ttl <= 0 {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("cache: failed to encode prediction", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err(); err != nil {
		c.logger.Warn("cache: redis set failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		c.logger.Warn("cache: redis del failed", "key", key, "error", err)
	}
}
