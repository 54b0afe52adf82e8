package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paramgraph/pkg/artifact"
	"github.com/matzehuels/paramgraph/pkg/cache"
	"github.com/matzehuels/paramgraph/pkg/observability"
	"github.com/matzehuels/paramgraph/pkg/paramgraph"
)

const keyTypeArtifact = "artifact"

// Runner encapsulates compilation with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache("no cache configured")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Compile turns a source document into an artifact, consulting the cache first.
func (r *Runner) Compile(ctx context.Context, src []byte, opts Options) (res *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	start := time.Now()
	observability.Pipeline().OnCompileStart(ctx, opts.Name)
	defer func() {
		roots := 0
		if res != nil {
			roots = res.Stats.Roots
		}
		observability.Pipeline().OnCompileComplete(ctx, opts.Name, roots, time.Since(start), err)
	}()

	sourceHash := cache.Hash(src)
	key := r.Keyer.ArtifactKey(sourceHash, cache.ArtifactKeyOpts{
		Format:  string(opts.Envelope),
		Version: artifact.Version,
	})

	if !opts.Refresh {
		if res, ok := r.fromCache(ctx, key, opts, logger); ok {
			res.SourceHash = sourceHash
			res.Stats.Duration = time.Since(start)
			logger.Debug("artifact cache hit", "source", opts.Name, "key", key)
			return res, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	g, err := artifact.ParseSource(src, opts.SourceFormat)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", opts.Name, err)
	}

	encStart := time.Now()
	a, err := artifact.Build(g)
	format, size := header(a)
	observability.Codec().OnEncode(ctx, format.String(), size, time.Since(encStart), err)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", opts.Name, err)
	}

	encoded, err := artifact.Marshal(a, opts.Envelope)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, encoded, r.TTL); err != nil {
		logger.Warn("failed to cache artifact", "source", opts.Name, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(encoded))
	}

	stats := g.Stats()
	logger.Info("compiled graph",
		"source", opts.Name,
		"format", format,
		"roots", stats.Roots,
		"bytes", size,
		"duration", time.Since(start))

	return &Result{
		Artifact:   a,
		Encoded:    encoded,
		Graph:      g,
		SourceHash: sourceHash,
		Stats: Stats{
			Stats:    stats,
			Format:   format,
			BlobSize: size,
			Duration: time.Since(start),
		},
	}, nil
}

// CompileFile reads path and compiles it. The source format follows the
// file extension.
func (r *Runner) CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}
	opts.Name = path
	opts.SourceFormat = artifact.FormatFromPath(path)
	return r.Compile(ctx, src, opts)
}

// fromCache loads and verifies a cached envelope. Unreadable or corrupt
// entries are deleted and reported as misses.
func (r *Runner) fromCache(ctx context.Context, key string, opts Options, logger *log.Logger) (*Result, bool) {
	var data []byte
	var hit bool
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}

	decStart := time.Now()
	a, err := artifact.Unmarshal(data, opts.Envelope)
	var g *paramgraph.Graph
	if err == nil {
		g, err = a.Decode()
	}
	format, size := header(a)
	observability.Codec().OnDecode(ctx, format.String(), size, time.Since(decStart), err)
	if err != nil {
		logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}

	observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
	return &Result{
		Artifact: a,
		Encoded:  data,
		Graph:    g,
		CacheHit: true,
		Stats: Stats{
			Stats:    g.Stats(),
			Format:   format,
			BlobSize: size,
		},
	}, true
}

// header reports what the codec hooks need. It tolerates a nil or
// undecodable artifact so failures can still be reported.
func header(a *artifact.Artifact) (paramgraph.Format, int) {
	if a == nil {
		return paramgraph.FormatCompact, 0
	}
	f, n, err := a.Header()
	if err != nil {
		return paramgraph.FormatCompact, 0
	}
	return f, n
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
