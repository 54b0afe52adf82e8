package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/paramgraph/pkg/buildinfo"
	"github.com/matzehuels/paramgraph/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command loads the config file and attaches the logger to the
// command context before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "paramgraph compiles and queries param graphs",
		Long: `paramgraph compiles schema-derived param graphs into compact binary
artifacts and answers lookups against them.

A param graph tells a query engine which input fields of each operation may be
replaced by placeholders and which output fields can be selected, so that
queries differing only in literal values share one cached plan.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/paramgraph/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the compile cache")

	root.AddCommand(c.compileCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
