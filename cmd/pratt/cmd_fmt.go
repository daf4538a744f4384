package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pratt/lsp"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite an expression file in canonical form",
		Long: `Rewrite every expression line of a file in canonical source form.

Blank lines and lines starting with # are kept as they are.
If no file is provided, reads expressions from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			var filename string

			if len(args) == 0 {
				if fmtOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				filename = "<stdin>"
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				filename = args[0]
				source, err = os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			output, errs := formatSource(string(source))
			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(os.Stderr, "%s:%s\n", filename, e)
				}
				return reportedError{fmt.Errorf("%d lines failed to parse", len(errs))}
			}

			if fmtOverwrite {
				return os.WriteFile(args[0], []byte(output), 0644)
			}
			_, err = io.WriteString(os.Stdout, output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}

// formatSource reprints each expression line of text. A line whose
// canonical form would not parse back is kept as written. Errors are
// returned as "line:column: message" strings.
func formatSource(text string) (string, []string) {
	opts := cfg.ParserOptions()
	lines := lsp.Analyze(text, opts...)
	out := make([]string, len(lines))
	var errs []string
	for i, line := range lines {
		switch {
		case line.Comment:
			out[i] = line.Text
		case line.Err != nil:
			errs = append(errs, fmt.Sprintf("%d:%d: %v", line.Number+1, errorColumn(line.Err), line.Err))
		default:
			formatted, ok := lsp.Canonical(line, opts...)
			if !ok {
				formatted = line.Text
			}
			out[i] = formatted
		}
	}
	return strings.Join(out, "\n"), errs
}
