package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// Cache is a small JSON read-through cache for report endpoints. A nil
// *Cache (or nil client) behaves as a permanent miss, so callers never need
// to branch on whether Redis is configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// New creates a cache with the given default TTL.
func New(client *redis.Client, ttl time.Duration, logger *logging.Logger) *Cache {
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Get unmarshals the cached value for key into dest. Returns false on miss
// or any Redis/JSON error; errors are logged, never surfaced.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("cache decode failed", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores value under key with the cache's TTL. Best effort.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// Invalidate removes the given keys. Best effort.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", "keys", keys, "error", err)
	}
}
