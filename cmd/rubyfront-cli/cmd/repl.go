package cmd

import (
	"github.com/spf13/cobra"

	"rubyfront/repl"
)

func newReplCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.Start(cmd.OutOrStdout(), opts.cfg.ParserOptions()...)
		},
	}
}
