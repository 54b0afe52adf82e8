// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: consumers register hooks at startup and the
// codec pipeline, the cache layer and the lookup server call them. Nothing
// here depends on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCodecHooks(&myCodecHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	blob, err := paramgraph.Encode(g)
//	observability.Codec().OnEncode(ctx, "compact", len(blob), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Codec Hooks
// =============================================================================

// CodecHooks receives events from graph encoding and decoding.
// format is "compact" or "wide"; size is the binary blob length in bytes.
type CodecHooks interface {
	OnEncode(ctx context.Context, format string, size int, duration time.Duration, err error)
	OnDecode(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from source compilation.
type PipelineHooks interface {
	OnCompileStart(ctx context.Context, source string)
	OnCompileComplete(ctx context.Context, source string, roots int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the lookup HTTP server.
type ServerHooks interface {
	// OnRequest records a served request. route is the matched pattern,
	// not the raw path, so keys and ids do not explode cardinality.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCodecHooks is a no-op implementation of CodecHooks.
type NoopCodecHooks struct{}

func (NoopCodecHooks) OnEncode(context.Context, string, int, time.Duration, error) {}
func (NoopCodecHooks) OnDecode(context.Context, string, int, time.Duration, error) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnCompileStart(context.Context, string) {}
func (NoopPipelineHooks) OnCompileComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	codecHooks    CodecHooks    = NoopCodecHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	serverHooks   ServerHooks   = NoopServerHooks{}
	hooksMu       sync.RWMutex
)

// SetCodecHooks registers custom codec hooks.
func SetCodecHooks(h CodecHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		codecHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers custom server hooks.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Codec returns the registered codec hooks.
func Codec() CodecHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return codecHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	codecHooks = NoopCodecHooks{}
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
