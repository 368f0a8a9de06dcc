package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"fitplanner/internal/resilience"
)

type Client struct {
	rdb *redis.Client
}

// NewClient connects to Redis, retrying the initial ping a few times so the
// gateway tolerates Redis starting slightly later.
func NewClient(ctx context.Context, addr string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	err := resilience.Retry(ctx, 3, 500*time.Millisecond, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return rdb.Ping(pingCtx).Err()
	})
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Redis() *redis.Client {
	return c.rdb
}

// IsRateLimited counts a hit for ip within window and reports whether the
// count exceeds limit. Redis errors fail open.
func (c *Client) IsRateLimited(ctx context.Context, ip string, limit int, window time.Duration) bool {
	key := fmt.Sprintf("ratelimit:%s", ip)

	pipe := c.rdb.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err := pipe.Exec(ctx)

	if err != nil {
		return false
	}

	return incr.Val() > int64(limit)
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
