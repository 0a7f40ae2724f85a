package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snaker/pkg/palette"
	"github.com/matzehuels/snaker/pkg/pipeline"
)

// completionCommand prints a shell completion script. Flag values such as
// --spectrum and --format complete from the names the pipeline accepts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for snaker.

  $ source <(snaker completion bash)
  $ snaker completion zsh > "${fpath[1]}/_snaker"
  $ snaker completion fish > ~/.config/fish/completions/snaker.fish
  PS> snaker completion powershell | Out-String | Invoke-Expression

Completion covers subcommands, flags, and the values of --spectrum,
--style and --format.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// registerValueCompletions completes the drawing flags cmd defines.
func registerValueCompletions(cmd *cobra.Command) {
	if cmd.Flags().Lookup("spectrum") != nil {
		_ = cmd.RegisterFlagCompletionFunc("spectrum", completeChoice(palette.Names))
	}
	if cmd.Flags().Lookup("style") != nil {
		_ = cmd.RegisterFlagCompletionFunc("style", completeChoice(pipeline.ValidStyles))
	}
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
}

func completeChoice(values []string) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, v := range values {
			if strings.HasPrefix(v, toComplete) {
				out = append(out, v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeFormats completes the last entry of a comma-separated format
// list, skipping formats already listed.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	i := strings.LastIndex(toComplete, ",")
	head, partial := toComplete[:i+1], toComplete[i+1:]
	chosen := strings.Split(head, ",")

	var out []string
	for _, f := range pipeline.ValidFormats {
		if strings.HasPrefix(f, partial) && !slices.Contains(chosen, f) {
			out = append(out, head+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}
