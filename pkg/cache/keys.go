package cache

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"
)

// Hash computes a BLAKE3-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix + hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + Hash(data)
}

// ArtifactKeyPrefix begins every key produced by DefaultKeyer.
const ArtifactKeyPrefix = "artifact:"

// ArtifactKeyOpts holds the options that change compiled output.
type ArtifactKeyOpts struct {
	Format  string // envelope format (json, cbor, yaml)
	Version int    // artifact envelope version
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey keys a compiled artifact by the hash of its source document.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<hash>" over the source hash and options.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey(ArtifactKeyPrefix, sourceHash, opts.Format, opts.Version)
}

// ScopedKeyer wraps a Keyer with a prefix, so several projects can share one
// Redis instance without seeing each other's entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer selects the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}
