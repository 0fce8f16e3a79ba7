package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"quill/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client behind an explicit service object so callers
// never touch package-global state. A Cache with a nil client is valid and
// behaves as a permanent miss.
type Cache struct {
	client *redis.Client
}

// New creates a Cache over the given client. client may be nil.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Enabled reports whether a Redis backend is attached.
func (c *Cache) Enabled() bool {
	return c.client != nil
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	s, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		middleware.CacheMisses.WithLabelValues(keyPrefix(key)).Inc()
		return false, nil
	}
	if err != nil {
		middleware.CacheErrors.WithLabelValues("get").Inc()
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	middleware.CacheHits.WithLabelValues(keyPrefix(key)).Inc()
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, b, ttl).Err(); err != nil {
		middleware.CacheErrors.WithLabelValues("set").Inc()
		return err
	}
	return nil
}

// Aside tries Redis first, on miss it calls fetch (which must populate dest),
// then stores the result with ttl. The cache write is best-effort: a failed
// Set never fails the request.
func (c *Cache) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := c.GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}
	// Redis errors degrade to a miss.

	if err := fetch(); err != nil {
		return err
	}

	_ = c.SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate deletes the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		middleware.CacheErrors.WithLabelValues("del").Inc()
	}
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
