package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pratt/expr/parser"
	"github.com/dhamidi/pratt/format"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:           "parse [expression]",
		Short:         "Parse an expression and print its tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				outputFormat = cfg.Output.Format
			}
			encoder, err := format.NewEncoder(outputFormat, os.Stdout)
			if err != nil {
				return err
			}

			_, expr, err := parseArgs(args)
			if err != nil {
				return err
			}

			if err := encoder.Encode(expr); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, source, line)")

	return cmd
}

// parseArgs reads and parses the expression named by args. Parse errors
// are printed with a caret before being returned.
func parseArgs(args []string) (string, parser.Expression, error) {
	input, err := readExpression(args)
	if err != nil {
		return "", nil, err
	}
	expr, err := parser.Parse(input, cfg.ParserOptions()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, newStyles(cfg.Output.NoColor).renderError(input, err))
		return input, nil, reportedError{err}
	}
	return input, expr, nil
}
