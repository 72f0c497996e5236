package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btouchard/dtrtc/internal/compiler/engine"
	"github.com/btouchard/dtrtc/internal/compiler/resolver"
)

func newCompileCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "compile <input>",
		Short: "Compile a DTRT source file (or path) to IR JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cache, err := buildEngine(args[0])
			if cache != nil {
				defer cache.Close()
			}
			if err != nil {
				return err
			}

			if outputFile != "" {
				if _, err := e.ToJSON(outputFile, "  "); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote IR to %s\n", outputFile)
				return nil
			}

			return e.PrintJSON(cmd.OutOrStdout(), "  ")
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write IR JSON to this file instead of stdout")
	return cmd
}

// buildEngine assembles an *engine.Engine from the merged CLI settings, plus
// the optional SQLite resolution cache when --cache-db is set.
func buildEngine(source string) (*engine.Engine, *resolver.SQLiteCache, error) {
	opts := engine.Options{
		Ctx:            current.ctx,
		VarsDir:        current.varsDir,
		StdlibFuncsDir: current.stdlibFuncsDir,
		UserFuncsDir:   current.userFuncsDir,
	}

	var cache *resolver.SQLiteCache
	if current.cacheDB != "" {
		c, err := resolver.OpenSQLiteCache(current.cacheDB)
		if err != nil {
			return nil, nil, fmt.Errorf("opening resolver cache: %w", err)
		}
		cache = c
		opts.Cache = c
	}

	return engine.New(source, opts), cache, nil
}
