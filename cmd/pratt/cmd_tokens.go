package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pratt/expr/parser"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "tokens [expression]",
		Short:         "Print the tokens of an expression",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readExpression(args)
			if err != nil {
				return err
			}

			tokens, err := parser.NewLexer(input).Tokenize()
			for _, tok := range tokens {
				fmt.Printf("%d\t%s\t%q\n", tok.Offset, tok.Kind, tok.Literal)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, newStyles(cfg.Output.NoColor).renderError(input, err))
				return reportedError{err}
			}
			return nil
		},
	}
}
