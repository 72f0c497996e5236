package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btouchard/dtrtc/internal/compiler/formatter"
	"github.com/btouchard/dtrtc/internal/compiler/lexer"
	"github.com/btouchard/dtrtc/internal/compiler/parser"
)

// newFmtCommand re-renders one or more DTRT source files to canonical
// formatting, writing the result in place unless -d is given.
func newFmtCommand() *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "fmt [-d] <files...>",
		Short: "Rewrite DTRT source files to canonical formatting",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var failed bool
			for _, file := range args {
				if err := fmtFile(out, file, showDiff); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", file, err)
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("fmt: one or more files failed to format")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print a diff instead of writing")
	return cmd
}

func fmtFile(out io.Writer, path string, showDiff bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	original := string(data)

	tokens, err := lexer.New(current.ctx).Tokenize(original)
	if err != nil {
		return err
	}
	program, err := parser.New(current.ctx).Parse(tokens)
	if err != nil {
		return err
	}

	result, err := formatter.New().Format(program)
	if err != nil {
		return err
	}

	if showDiff {
		if result != original {
			fmt.Fprintf(out, "--- %s\n+++ %s (formatted)\n", path, path)
			printFmtDiff(out, original, result)
		}
		return nil
	}

	if result == original {
		return nil
	}
	return os.WriteFile(path, []byte(result), 0o644)
}

func printFmtDiff(out io.Writer, a, b string) {
	aLines := strings.Split(a, "\n")
	bLines := strings.Split(b, "\n")

	maxLen := len(aLines)
	if len(bLines) > maxLen {
		maxLen = len(bLines)
	}

	for i := 0; i < maxLen; i++ {
		var aLine, bLine string
		if i < len(aLines) {
			aLine = aLines[i]
		}
		if i < len(bLines) {
			bLine = bLines[i]
		}
		if aLine != bLine {
			if i < len(aLines) {
				fmt.Fprintf(out, "-%s\n", aLine)
			}
			if i < len(bLines) {
				fmt.Fprintf(out, "+%s\n", bLine)
			}
		}
	}
}
