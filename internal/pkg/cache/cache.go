package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/mentorhub/internal/pkg/logger"
)

// Options configures the Redis connection
type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is valid and behaves like an always-empty cache.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client. It does not dial until first use.
func New(opts Options) *Client {
	ro := &redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}
	if opts.DialTimeout > 0 {
		ro.DialTimeout = opts.DialTimeout
		ro.ReadTimeout = opts.DialTimeout
		ro.WriteTimeout = opts.DialTimeout
	}
	return &Client{client: redis.NewClient(ro)}
}

// Ping checks connectivity. Unlike the other methods it reports errors.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("redis client not configured")
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connections
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logger.Debug().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
	return nil
}

// Delete removes keys, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Debug().Err(err).Strs("keys", keys).Msg("cache delete failed")
	}
	return nil
}

// GetJSON decodes a cached JSON value into dst. It reports whether a value was found.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	raw, _ := c.Get(ctx, key)
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		_ = c.Delete(ctx, key)
		return false
	}
	return true
}

// SetJSON encodes value as JSON and caches it
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache value not encodable")
		return
	}
	_ = c.Set(ctx, key, raw, ttl)
}
