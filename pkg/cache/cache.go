// Package cache stores compiled artifacts keyed by the hash of their source.
//
// Compiling a large schema graph is cheap but not free, and the CLI and the
// HTTP server both recompile the same sources repeatedly. A [Cache] maps a
// [Keyer]-built key to encoded artifact bytes.
//
// Three backends are provided:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: hash-sharded files under a directory, for CLI use
//   - [RedisCache]: a shared Redis instance, for servers and CI fleets
//
// Backends wrap transient failures with [Retryable]; callers decide whether
// to use [RetryWithBackoff].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLArtifact is the default lifetime of a compiled artifact. Entries are
// content-addressed, so expiry only bounds disk and memory use.
const TTLArtifact = 7 * 24 * time.Hour
