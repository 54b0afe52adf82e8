// Package config loads paramgraph settings from a TOML file.
//
// The default location is $XDG_CONFIG_HOME/paramgraph/config.toml (see
// [os.UserConfigDir]). A missing default file is not an error; every field
// has a usable default.
//
//	[cache]
//	dir = "/var/cache/paramgraph"
//	redis_addr = "localhost:6379"
//	prefix = "billing:"
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
//	enums = "enums.yaml"
//
//	[output]
//	envelope = "cbor"
//	workers = 8
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/paramgraph/pkg/artifact"
	"github.com/matzehuels/paramgraph/pkg/cache"
	"github.com/matzehuels/paramgraph/pkg/errors"
	"github.com/matzehuels/paramgraph/pkg/pipeline"
)

const appName = "paramgraph"

// DefaultAddr is the lookup server listen address.
const DefaultAddr = ":8080"

// Config holds all settings.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Output OutputConfig `toml:"output"`
}

// CacheConfig selects and tunes the compile cache. A non-empty RedisAddr
// selects Redis over the file cache.
type CacheConfig struct {
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	Prefix    string        `toml:"prefix"`
	TTL       time.Duration `toml:"ttl"`
	Disabled  bool          `toml:"disabled"`
}

// ServerConfig configures `paramgraph serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// Enums is a JSON or YAML file mapping enum names to their values.
	Enums string `toml:"enums"`
}

// OutputConfig configures compiled output.
type OutputConfig struct {
	Envelope string `toml:"envelope"`
	Workers  int    `toml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			TTL: cache.TTLArtifact,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		Output: OutputConfig{
			Envelope: string(artifact.FormatJSON),
			Workers:  pipeline.DefaultWorkers,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load reads the config at path over the defaults. An empty path loads
// DefaultPath if it exists. An explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings no component can use.
func (c *Config) Validate() error {
	if _, err := artifact.ParseFormat(c.Output.Envelope); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output.envelope")
	}
	if c.Output.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "output.workers must not be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// Envelope returns the validated envelope format.
func (c *Config) Envelope() artifact.Format {
	f, err := artifact.ParseFormat(c.Output.Envelope)
	if err != nil {
		return artifact.FormatJSON
	}
	return f
}
