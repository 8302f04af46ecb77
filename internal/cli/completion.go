package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand writes shell completion scripts to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for designpanel and write it to stdout.

Load completions for the current shell session:

  bash:        source <(designpanel completion bash)
  zsh:         source <(designpanel completion zsh)
  fish:        designpanel completion fish | source
  powershell:  designpanel completion powershell | Out-String | Invoke-Expression

To load them in every session, write the script to your shell's completion
directory instead, for example:

  designpanel completion bash > /etc/bash_completion.d/designpanel
  designpanel completion zsh > "${fpath[1]}/_designpanel"
  designpanel completion fish > ~/.config/fish/completions/designpanel.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}
