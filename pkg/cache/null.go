package cache

import (
	"context"
	"time"
)

// NullCache stores nothing: every Get misses and every Set is dropped, so
// each compile runs from source. Reason records why caching is off.
type NullCache struct {
	reason string
}

// NewNullCache returns a disabled cache. reason is shown in logs, for example
// "--no-cache" or "cache.disabled in config".
func NewNullCache(reason string) Cache {
	return &NullCache{reason: reason}
}

// Reason reports why caching is disabled.
func (c *NullCache) Reason() string { return c.reason }

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *NullCache) Delete(context.Context, string) error { return nil }

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
