// Package cache provides a Redis-backed JSON cache for derived read models,
// such as a trip's aggregated balances.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(addr, password string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

// ViewCache is a generic JSON-backed Redis cache for derived views.
// Bind it to a specific view type T; each instance holds a Redis client and an
// optional TTL (pass 0 for keys that should not expire).
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewViewCache creates a ViewCache backed by the provided Redis client.
func NewViewCache[T any](client *goredis.Client, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, ttl: ttl}
}

// Get retrieves and unmarshals a value from Redis.
// Returns (zero, false) on any miss or deserialization error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var v T
	if c == nil || c.client == nil {
		return v, false
	}
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return v, false
	}
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return v, false
	}
	return v, true
}

// Set marshals value and stores it in Redis under key.
// Errors are logged rather than returned, a cache write miss is non-fatal.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value T) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}

// Delete removes a key from Redis.
func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("cache delete failed", "key", key, "error", err)
	}
}
