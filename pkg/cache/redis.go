package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable marks a Redis command that failed because the server could
// not be reached. The pipeline treats it like a miss and evaluates the
// puzzle itself.
var ErrUnavailable = errors.New("redis unavailable")

// RedisCache stores report documents in Redis so that several server
// replicas share evaluated puzzles.
type RedisCache struct {
	client *redis.Client

	// attempts and backoff bound retries of commands that fail with
	// ErrUnavailable. backoff doubles after each attempt.
	attempts int
	backoff  time.Duration
}

// NewRedisCache connects to the Redis instance described by url, for example
// "redis://localhost:6379/0". The connection is opened lazily; use Ping to
// check reachability.
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := ParseRedisURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts), attempts: 3, backoff: 100 * time.Millisecond}, nil
}

// ParseRedisURL parses a redis:// or rediss:// URL.
func ParseRedisURL(url string) (*redis.Options, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return opts, nil
}

// Ping checks that the server answers.
func (c *RedisCache) Ping(ctx context.Context) error {
	return unavailable(c.client.Ping(ctx).Err())
}

// Get returns the report document stored under key. redis.Nil is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.retry(ctx, func() error {
		b, err := c.client.Get(ctx, key).Bytes()
		data = b
		return err
	})
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores a report document. ttl <= 0 keeps it until evicted.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	ttl = max(ttl, 0)
	return c.retry(ctx, func() error {
		return c.client.Set(ctx, key, data, ttl).Err()
	})
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.retry(ctx, func() error {
		return c.client.Del(ctx, key).Err()
	})
}

// Close closes the client's connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// retry runs cmd until it succeeds, fails with an error other than
// ErrUnavailable, or runs out of attempts.
func (c *RedisCache) retry(ctx context.Context, cmd func() error) error {
	delay := c.backoff
	var err error
	for i := 0; i < max(c.attempts, 1); i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
		if err = unavailable(cmd()); !errors.Is(err, ErrUnavailable) {
			return err
		}
	}
	return err
}

// unavailable wraps network failures with ErrUnavailable. Redis replies,
// including redis.Nil, pass through unchanged.
func unavailable(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
