// Package cli implements the paramgraph command-line interface.
//
// # Commands
//
//   - compile: turn source graph documents into artifacts (cached, parallel)
//   - decode: turn an artifact back into an editable source document
//   - inspect: show format, sizes, digest and counts of an artifact
//   - lookup: walk a root and a field path through an artifact
//   - browse: pick a root interactively and see its fields
//   - dot: draw an artifact or source document with Graphviz
//   - serve: answer lookups over HTTP
//   - cache: manage the compile cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context; see withLogger.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paramgraph/pkg/cache"
	"github.com/matzehuels/paramgraph/pkg/config"
	"github.com/matzehuels/paramgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "paramgraph"

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config *config.Config

	configPath string
	noCache    bool
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	ch, err := c.newCache()
	if err != nil {
		return nil, err
	}
	if nc, ok := ch.(*cache.NullCache); ok {
		c.Logger.Debug("compile cache disabled", "reason", nc.Reason())
	}
	var keyer cache.Keyer
	if c.Config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.Cache.Prefix)
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	if c.Config.Cache.TTL > 0 {
		runner.TTL = c.Config.Cache.TTL
	}
	return runner, nil
}

// newCache picks the cache backend: none when disabled, Redis when an
// address is configured, otherwise files under the cache directory.
func (c *CLI) newCache() (cache.Cache, error) {
	cfg := c.Config.Cache
	switch {
	case c.noCache:
		return cache.NewNullCache("--no-cache"), nil
	case cfg.Disabled:
		return cache.NewNullCache("cache.disabled in config"), nil
	case cfg.RedisAddr != "":
		c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr)
		return cache.NewRedisCache(cfg.RedisAddr), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache("no cache directory"), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/paramgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
