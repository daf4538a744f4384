package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pratt/ebnf/parse"
	"github.com/dhamidi/pratt/expr/parser"
	"github.com/dhamidi/pratt/lsp"
)

func newCheckCmd() *cobra.Command {
	var recognize bool

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Report parse and evaluation errors in an expression file",
		Long: `Parse and evaluate every expression line of a file.

Parse errors are reported as errors and evaluation failures as warnings.
With --recognize every line is also checked against syntax.ebnf and
disagreements with the parser are reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "<stdin>"
			var source []byte
			var err error
			if len(args) == 0 {
				source, err = io.ReadAll(os.Stdin)
			} else {
				filename = args[0]
				source, err = os.ReadFile(filename)
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			var recognizer *parse.Recognizer
			if recognize {
				if cfg.Parser.Grammar != "default" {
					return fmt.Errorf("--recognize requires the default grammar, not %q", cfg.Parser.Grammar)
				}
				recognizer, err = parse.NewRecognizer()
				if err != nil {
					return fmt.Errorf("load syntax grammar: %w", err)
				}
			}

			problems := checkSource(os.Stdout, filename, string(source), recognizer)
			if problems > 0 {
				return reportedError{fmt.Errorf("%d problems", problems)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&recognize, "recognize", false, "cross-check every line against syntax.ebnf")

	return cmd
}

// checkSource writes one report line per problem in text and returns the
// number of errors. Evaluation warnings are reported but not counted.
func checkSource(w io.Writer, filename, text string, recognizer *parse.Recognizer) int {
	st := newStyles(cfg.Output.NoColor)
	count := 0
	for _, line := range lsp.Analyze(text, cfg.ParserOptions()...) {
		if line.Comment {
			continue
		}
		pos := fmt.Sprintf("%s:%d", filename, line.Number+1)

		switch {
		case line.Err != nil:
			count++
			fmt.Fprintf(w, "%s:%d: %s %v\n", pos, errorColumn(line.Err), st.Error.Render("error:"), line.Err)
		case line.EvalErr != nil:
			fmt.Fprintf(w, "%s:1: %s %v\n", pos, st.Muted.Render("warning:"), line.EvalErr)
		}

		if recognizer == nil {
			continue
		}
		recErr := recognizer.Check(line.Text, "")
		if (recErr == nil) != (line.Err == nil) {
			count++
			if recErr != nil {
				fmt.Fprintf(w, "%s: %s parser accepts but syntax.ebnf rejects: %v\n", pos, st.Error.Render("mismatch:"), recErr)
			} else {
				fmt.Fprintf(w, "%s: %s syntax.ebnf accepts but parser rejects\n", pos, st.Error.Render("mismatch:"))
			}
		}
	}
	return count
}

// errorColumn is the 1-based column err points at, or 1.
func errorColumn(err error) int {
	start, _, ok := parser.ErrorSpan(err)
	if !ok {
		return 1
	}
	return start + 1
}
