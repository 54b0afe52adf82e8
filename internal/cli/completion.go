package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for paramgraph and write it to stdout.

  bash:        source <(paramgraph completion bash)
  zsh:         paramgraph completion zsh > "${fpath[1]}/_paramgraph"
  fish:        paramgraph completion fish > ~/.config/fish/completions/paramgraph.fish
  powershell:  paramgraph completion powershell | Out-String | Invoke-Expression

Start a new shell afterwards. Zsh needs "autoload -U compinit; compinit" in
~/.zshrc if completion is not enabled yet.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
