// Package cache is a best-effort Redis read-through cache for CMS content
// responses. Engagement writes never go through it; list pages may show a
// likes count that lags by up to the TTL.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores raw CMS JSON responses keyed by endpoint (and optional ID).
// A nil *Cache is valid and disables caching entirely.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// New connects to Redis and returns a cache with the given TTL.
func New(redisURL string, ttl time.Duration, log *slog.Logger) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client, ttl: ttl, log: log.With("component", "cache")}, nil
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Key returns the cache key for a content endpoint, optionally scoped to a
// single record.
func Key(endpoint, id string) string {
	if id == "" {
		return "cms:" + endpoint
	}
	return "cms:" + endpoint + ":" + id
}

// Get returns the cached response for key, or (nil, false) on a miss or any
// Redis failure. Failures are logged, never surfaced.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return nil, false
	}
	return data, true
}

// Set stores a response under key with the configured TTL, best effort.
func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
