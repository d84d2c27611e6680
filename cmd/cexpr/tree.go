package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree EXPR",
		Short: "Print the fully parenthesized parse tree of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.parse(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, e)
			fmt.Fprintf(out, "depth %d, size %d\n", e.Depth(), e.Size())
			return nil
		},
	}
}
