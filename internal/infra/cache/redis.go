package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a JSON cache over redis. A nil or disconnected Cache is valid:
// every read misses and every write is a no-op.
type Cache struct {
	client *redis.Client
	prefix string
}

// Connect parses url and pings the server; on any failure caching is disabled.
func Connect(ctx context.Context, url string, prefix string) *Cache {
	if url == "" {
		slog.Warn("REDIS_URL not set, cache disabled")
		return &Cache{prefix: prefix}
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		slog.Error("invalid REDIS_URL, cache disabled", "error", err)
		return &Cache{prefix: prefix}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("redis unreachable, cache disabled", "error", err)
		_ = client.Close()
		return &Cache{prefix: prefix}
	}

	slog.Info("redis connected", "addr", opt.Addr)
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) Available() bool {
	return c != nil && c.client != nil
}

// Get decodes the cached value into dst and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if !c.Available() {
		return false, nil
	}

	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !c.Available() {
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if !c.Available() {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	_ = c.client.Del(ctx, full...).Err()
}

func (c *Cache) Close() error {
	if !c.Available() {
		return nil
	}
	return c.client.Close()
}
