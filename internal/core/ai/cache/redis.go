package cache

import (
	"context"
	"fmt"

	"pantry-tracker/internal/infrastructure/config"
	"pantry-tracker/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisCache is a completion cache backed by Redis, for deployments where
// suggestions should survive process restarts.
type RedisCache struct {
	cfg    config.CacheConfig
	client *redis.Client
}

// NewRedisCache connects to the configured Redis instance.
func NewRedisCache(cfg config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	common.LogInfo("redis completion cache connected", zap.String("addr", cfg.RedisAddr))

	return &RedisCache{
		cfg:    cfg,
		client: client,
	}, nil
}

// Get returns the cached completion for the prompt, or an error on a miss.
func (c *RedisCache) Get(ctx context.Context, prompt string) (string, error) {
	key := hashKey(prompt)

	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis", key)
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache entry: %w", err)
	}

	common.LogCacheHit("redis", key)
	return value, nil
}

// Set stores a completion with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, prompt, value string) error {
	if err := c.client.Set(ctx, hashKey(prompt), value, c.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
