package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paramgraph/pkg/artifact"
	"github.com/matzehuels/paramgraph/pkg/pipeline"
)

// compileFlags holds flags for the compile command.
type compileFlags struct {
	output       string
	envelope     string
	sourceFormat string
	workers      int
	refresh      bool
}

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	var flags compileFlags

	cmd := &cobra.Command{
		Use:   "compile <source>...",
		Short: "Compile source graph documents into artifacts",
		Long: `Compile JSON or YAML source graph documents into artifacts.

Each source is written next to itself (or into --output) as <name>.pg.<envelope>.
Results are cached by source content; --refresh recompiles anyway.
Pass "-" to read one source from stdin and write the artifact to stdout.`,
		Example: `  paramgraph compile schema.yaml
  paramgraph compile -o build/ -e cbor graphs/*.json
  cat schema.json | paramgraph compile - > schema.pg.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.compileOptions(flags)
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()

			if len(args) == 1 && args[0] == "-" {
				opts.SourceFormat, err = artifact.ParseFormat(flags.sourceFormat)
				if err != nil {
					return err
				}
				return compileStdin(cmd.Context(), runner, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			}
			workers := flags.workers
			if workers == 0 {
				workers = c.Config.Output.Workers
			}
			return compileFiles(cmd.Context(), runner, args, flags.output, opts, workers)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory (default: next to each source)")
	cmd.Flags().StringVarP(&flags.envelope, "envelope", "e", "", "artifact encoding: json, cbor, yaml (default from config)")
	cmd.Flags().StringVar(&flags.sourceFormat, "source-format", "json", "source encoding when reading stdin: json, yaml")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "files compiled concurrently (default from config)")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

func (c *CLI) compileOptions(flags compileFlags) (pipeline.Options, error) {
	envelope := c.Config.Envelope()
	if flags.envelope != "" {
		f, err := artifact.ParseFormat(flags.envelope)
		if err != nil {
			return pipeline.Options{}, err
		}
		envelope = f
	}
	return pipeline.Options{
		Envelope: envelope,
		Refresh:  flags.refresh,
		Logger:   c.Logger,
	}, nil
}

func compileStdin(ctx context.Context, runner *pipeline.Runner, in io.Reader, out io.Writer, opts pipeline.Options) error {
	src, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	res, err := runner.Compile(ctx, src, opts)
	if err != nil {
		return err
	}
	_, err = out.Write(res.Encoded)
	return err
}

func compileFiles(ctx context.Context, runner *pipeline.Runner, paths []string, outDir string, opts pipeline.Options, workers int) error {
	prog := newProgress(loggerFromContext(ctx))

	spinner := newSpinner(ctx, "Compiling...")
	spinner.Start()
	results, err := runner.CompileFiles(ctx, paths, outDir, opts, workers)
	if err != nil {
		spinner.StopWithError("Compile failed")
		return err
	}
	spinner.Stop()

	cached := 0
	for _, r := range results {
		printSuccess("%s", r.Source)
		printFile(r.Output)
		printStats(r.Stats, r.CacheHit)
		if r.CacheHit {
			cached++
		}
	}
	prog.done("compiled files", "count", len(results), "cached", cached)

	if len(results) == 1 {
		printNextStep("Inspect it", "paramgraph inspect "+results[0].Output)
	}
	return nil
}

// readArtifact loads an artifact file, with "-" reading JSON from stdin.
func readArtifact(cmd *cobra.Command, path string) (*artifact.Artifact, error) {
	if path == "-" {
		return artifact.Read(cmd.InOrStdin(), artifact.FormatJSON)
	}
	return artifact.ReadFile(path)
}
