package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// inspectReport is the --json form of inspect.
type inspectReport struct {
	Path        string `json:"path"`
	Format      string `json:"format"`
	BlobSize    int    `json:"blobSize"`
	TextSize    int    `json:"textSize"`
	Digest      string `json:"digest,omitempty"`
	Strings     int    `json:"strings"`
	InputNodes  int    `json:"inputNodes"`
	InputEdges  int    `json:"inputEdges"`
	OutputNodes int    `json:"outputNodes"`
	OutputEdges int    `json:"outputEdges"`
	Roots       int    `json:"roots"`
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <artifact>",
		Short: "Show the format, sizes, digest and counts of an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readArtifact(cmd, args[0])
			if err != nil {
				return err
			}
			info, err := a.Inspect()
			if err != nil {
				return err
			}
			r := inspectReport{
				Path:        args[0],
				Format:      info.Format.String(),
				BlobSize:    info.BlobSize,
				TextSize:    info.TextSize,
				Digest:      info.Digest,
				Strings:     info.Stats.Strings,
				InputNodes:  info.Stats.InputNodes,
				InputEdges:  info.Stats.InputEdges,
				OutputNodes: info.Stats.OutputNodes,
				OutputEdges: info.Stats.OutputEdges,
				Roots:       info.Stats.Roots,
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			printInspect(r)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func printInspect(r inspectReport) {
	fmt.Fprintln(stdout, StyleTitle.Render(r.Path))
	printKeyValue("format", r.Format)
	printKeyValue("blob", plural(r.BlobSize, "byte"))
	printKeyValue("text", plural(r.TextSize, "char"))
	digest := r.Digest
	if digest == "" {
		digest = "(none)"
	}
	printKeyValue("digest", digest)
	printKeyValue("strings", strconv.Itoa(r.Strings))
	printKeyValue("input nodes", fmt.Sprintf("%d (%s)", r.InputNodes, plural(r.InputEdges, "edge")))
	printKeyValue("output nodes", fmt.Sprintf("%d (%s)", r.OutputNodes, plural(r.OutputEdges, "edge")))
	printKeyValue("roots", strconv.Itoa(r.Roots))
	if r.Digest == "" {
		printWarning("artifact carries no digest; contents were not verified")
	}
}
