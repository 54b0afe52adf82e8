package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paramgraph/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the compile cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		Long: `Remove all cached artifacts. With a Redis cache configured, only artifact
keys under the configured prefix are removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, where, err := c.clearCache(cmd.Context())
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("%s", where)
			return nil
		},
	}
}

// clearCache empties the configured backend and reports where it looked.
func (c *CLI) clearCache(ctx context.Context) (int, string, error) {
	cfg := c.Config.Cache
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr)
		defer rc.Close()
		n, err := rc.DeletePrefix(ctx, cfg.Prefix+cache.ArtifactKeyPrefix)
		return n, "Redis: " + cfg.RedisAddr, err
	}

	dir, err := c.cacheDir()
	if err != nil {
		return 0, "", fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return 0, "", err
	}
	n, err := fc.Clear()
	return n, "Directory: " + dir, err
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
