package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCheckCommand runs the full compile pipeline and discards the IR,
// reporting only success or the first diagnostic. Intended for CI linting
// where the generated JSON itself is of no interest.
func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <input>",
		Short: "Compile a DTRT source file without emitting IR, for CI linting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cache, err := buildEngine(args[0])
			if cache != nil {
				defer cache.Close()
			}
			if err != nil {
				return err
			}

			if _, err := e.Go(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", args[0])
			return nil
		},
	}
}
