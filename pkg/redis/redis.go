package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"police-personnel/config"
)

// Client wraps go-redis for the token blacklist, rate limiting and lookup caching.
// All methods are safe on a nil *Client: they degrade to "not found" / "allowed".
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects and pings.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// NewFromClient wraps an existing go-redis client.
func NewFromClient(rdb *goredis.Client, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// ── token blacklist ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken stores the token id until the token would have expired anyway.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if c == nil || ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether the token id was revoked.
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if c == nil {
		return false, nil
	}
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── rate limit ──

// CheckRateLimit sliding-window limiter backed by a sorted set.
// Returns true when the request identified by key is within limit for window.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if c == nil {
		return true, nil
	}

	now := time.Now()
	windowStart := now.Add(-window).UnixMicro()

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixMicro()), Member: uuid.NewString()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() <= int64(limit), nil
}

// ── JSON cache ──

// ErrCacheMiss returned by GetJSON when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// GetJSON decodes the cached value at key into dst.
func (c *Client) GetJSON(ctx context.Context, key string, dst any) error {
	if c == nil {
		return ErrCacheMiss
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(raw, dst)
}

// SetJSON caches v at key for ttl.
func (c *Client) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, ttl).Err()
}

// Close closes the connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
