package cmd

import (
	"github.com/spf13/cobra"

	"rubyfront/grammar"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the highlighting tokens of a Ruby file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			tokens, err := grammar.Tokens(args[0], source)
			if err != nil {
				return err
			}
			return grammar.WriteTokens(cmd.OutOrStdout(), tokens)
		},
	}
}
