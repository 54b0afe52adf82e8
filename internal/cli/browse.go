package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/paramgraph/pkg/reader"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var enums string

	cmd := &cobra.Command{
		Use:   "browse <artifact|source>",
		Short: "Pick a root interactively and see its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			lookup, err := loadEnums(c.enumsPath(enums))
			if err != nil {
				return err
			}
			r := reader.New(g, lookup)
			if len(r.RootKeys()) == 0 {
				printWarning("%s has no roots", args[0])
				return nil
			}

			p := tea.NewProgram(NewRootListModel(r), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			m, ok := final.(RootListModel)
			if !ok || m.Selected == "" {
				return nil
			}
			printSuccess("%s", m.Selected)
			printNextStep("Look it up", fmt.Sprintf("paramgraph lookup %s %s", args[0], m.Selected))
			return nil
		},
	}

	cmd.Flags().StringVar(&enums, "enums", "", "YAML or JSON file mapping enum names to values")

	return cmd
}
