package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// opTimeout bounds every cache call, so an unreachable Redis costs a short miss.
const opTimeout = 250 * time.Millisecond

// Client is a JSON snapshot cache on top of Redis. Every Redis failure is
// treated as a miss, and a nil *Client is a valid, always-empty cache.
type Client struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// New creates a Redis-backed cache. An empty addr disables caching and returns nil.
func New(addr, password string, db int, prefix string) *Client {
	if addr == "" {
		return nil
	}
	opts := &redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  opTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
		PoolTimeout:  opTimeout,
		MaxRetries:   -1,
	}
	return &Client{client: redis.NewClient(opts), prefix: prefix, timeout: opTimeout}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) key(k string) string {
	return c.prefix + k
}

// GetJSON decodes the value stored under key into dst and reports whether it was found.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors alike are misses
		return false
	}
	return json.Unmarshal(res, dst) == nil
}

// SetJSON stores value under key with ttl, ignoring redis errors.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_ = c.client.Set(ctx, c.key(key), payload, ttl).Err()
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_ = c.client.Del(ctx, c.key(key)).Err()
}

// Ping reports whether Redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
