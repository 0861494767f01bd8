package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the "completion" command emitting shell completion
// scripts to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell and write it to stdout.

Load it for the current session:

  bash:  source <(pinboard completion bash)
  zsh:   source <(pinboard completion zsh)
  fish:  pinboard completion fish | source

Or install it permanently:

  bash:  pinboard completion bash > /etc/bash_completion.d/pinboard
  zsh:   pinboard completion zsh > "${fpath[1]}/_pinboard"
  fish:  pinboard completion fish > ~/.config/fish/completions/pinboard.fish

PowerShell users can add the output of "pinboard completion powershell" to
their profile.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
