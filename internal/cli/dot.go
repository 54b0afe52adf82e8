package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paramgraph/pkg/artifact"
	"github.com/matzehuels/paramgraph/pkg/paramgraph"
	"github.com/matzehuels/paramgraph/pkg/render"
)

// dotFlags holds flags for the dot command.
type dotFlags struct {
	output   string
	format   string
	detailed bool
	roots    []string
}

// dotCommand creates the dot command.
func (c *CLI) dotCommand() *cobra.Command {
	var flags dotFlags

	cmd := &cobra.Command{
		Use:   "dot <artifact|source>",
		Short: "Draw a graph with Graphviz",
		Long: `Draw the roots, input nodes and output nodes of an artifact or source
document. DOT is written as-is; svg, png and jpg are laid out with Graphviz.
With --output and no --format the format follows the file extension.`,
		Example: `  paramgraph dot app.pg.json | dot -Tpdf > app.pdf
  paramgraph dot --detailed --root User.findMany -o findMany.svg app.pg.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			format, err := dotFormat(flags)
			if err != nil {
				return err
			}

			dot := render.ToDOT(g, render.Options{Detailed: flags.detailed, Roots: flags.roots})
			spinner := newSpinner(cmd.Context(), "Rendering...")
			spinner.Start()
			data, err := render.Render(cmd.Context(), dot, format)
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}

			if flags.output == "" {
				spinner.Stop()
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(flags.output, data, 0644); err != nil {
				spinner.Stop()
				return err
			}
			spinner.StopWithSuccess("Rendered " + args[0])
			printFile(flags.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "dot, svg, png or jpg (default dot)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "label edges with flags, scalars and enums")
	cmd.Flags().StringSliceVar(&flags.roots, "root", nil, "only draw nodes reachable from these roots (repeatable)")

	return cmd
}

func dotFormat(flags dotFlags) (render.Format, error) {
	name := flags.format
	if name == "" && flags.output != "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(flags.output)), ".")
	}
	if name == "" || name == "gv" {
		return render.FormatDOT, nil
	}
	return render.ParseFormat(name)
}

// loadGraph reads an artifact, or a source document when the file carries
// no graph text.
func loadGraph(path string) (*paramgraph.Graph, error) {
	a, err := artifact.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if a.Graph == "" {
		return artifact.ReadSourceFile(path)
	}
	return a.Decode()
}
