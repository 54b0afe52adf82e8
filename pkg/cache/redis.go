package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis. Several servers can share one instance;
// use a [ScopedKeyer] to keep projects apart.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server at addr.
func NewRedisCache(addr string) *RedisCache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: addr}))
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the value for key. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapRedis(err, "get %q", key)
	}
	return val, true, nil
}

// Set inserts the key with the given data and time-to-live.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return wrapRedis(err, "set %q", key)
	}
	return nil
}

// Delete unlinks key. It does not return an error if the key does not exist.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Unlink(ctx, key).Err(); err != nil {
		return wrapRedis(err, "delete %q", key)
	}
	return nil
}

// DeletePrefix deletes all keys beginning with prefix and returns how many
// were removed.
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	iter := c.client.Scan(ctx, 0, prefix+"*", int64(scanCount)).Iterator()
	var keys []string
	n := 0
	flush := func() error {
		if len(keys) == 0 {
			return nil
		}
		if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
			return wrapRedis(err, "delete prefix %q", prefix)
		}
		n += len(keys)
		keys = keys[:0]
		return nil
	}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= scanCount {
			if err := flush(); err != nil {
				return n, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return n, wrapRedis(err, "scan %q", prefix)
	}
	return n, flush()
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// The "count" argument to the Redis SCAN command and the batch size for
// DeletePrefix unlinks. var for testing.
var scanCount = 100

// wrapRedis marks connection-level failures as retryable. Errors returned by
// the server itself (wrong type, OOM) are not.
func wrapRedis(err error, format string, args ...any) error {
	wrapped := fmt.Errorf("redis %s: %w", fmt.Sprintf(format, args...), err)
	var rerr redis.Error
	if errors.As(err, &rerr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapped
	}
	return Retryable(fmt.Errorf("%w: %w", ErrUnavailable, wrapped))
}

var _ Cache = (*RedisCache)(nil)
