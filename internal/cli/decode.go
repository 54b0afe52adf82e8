package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/paramgraph/pkg/artifact"
)

// decodeCommand creates the decode command.
func (c *CLI) decodeCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "decode <artifact>",
		Short: "Turn an artifact back into a source graph document",
		Long: `Decode an artifact, verify its digest, and write the graph as an editable
source document. With --output the encoding follows the file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readArtifact(cmd, args[0])
			if err != nil {
				return err
			}
			g, err := a.Decode()
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("decoded artifact", "roots", len(g.Roots), "strings", len(g.Strings))

			if output != "" {
				if err := artifact.WriteSourceFile(output, g); err != nil {
					return err
				}
				printSuccess("Decoded %s", args[0])
				printFile(output)
				return nil
			}
			f, err := artifact.ParseFormat(format)
			if err != nil {
				return err
			}
			return artifact.WriteSource(cmd.OutOrStdout(), g, f)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "stdout encoding: json, yaml")

	return cmd
}
