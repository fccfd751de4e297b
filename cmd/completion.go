package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for lynne.

To load completions:

Bash:
  $ source <(lynne completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ lynne completion bash > /etc/bash_completion.d/lynne
  # macOS:
  $ lynne completion bash > $(brew --prefix)/etc/bash_completion.d/lynne

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ lynne completion zsh > "${fpath[1]}/_lynne"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ lynne completion fish | source

  # To load completions for each session, execute once:
  $ lynne completion fish > ~/.config/fish/completions/lynne.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
