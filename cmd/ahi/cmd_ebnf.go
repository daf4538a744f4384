package main

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/pratt/ebnf/grammar"
	"github.com/dhamidi/pratt/ebnf/parse"
	"github.com/dhamidi/pratt/ebnflex"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfShowCmd())
	cmd.AddCommand(newEbnfLexCmd())
	cmd.AddCommand(newEbnfRecognizeCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar file (default: the built-in grammars)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if _, err := grammar.Tokens(); err != nil {
					printErrors(err)
					return err
				}
				if _, err := grammar.Syntax(); err != nil {
					printErrors(err)
					return err
				}
				fmt.Println("tokens.ebnf: ok")
				fmt.Println("syntax.ebnf: ok")
				return nil
			}

			filename := args[0]
			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			g, err := ebnf.Parse(filename, f)
			if err != nil {
				printErrors(err)
				return err
			}

			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(err)
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "show tokens|syntax",
		Short:     "Print a built-in grammar",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"tokens", "syntax"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "tokens":
				_, err := os.Stdout.Write(grammar.TokensSource())
				return err
			case "syntax":
				_, err := os.Stdout.Write(grammar.SyntaxSource())
				return err
			}
			return fmt.Errorf("unknown grammar %q (expected tokens or syntax)", args[0])
		},
	}
	return cmd
}

func newEbnfLexCmd() *cobra.Command {
	var grammarFile string
	var startProduction string
	var skip []string

	cmd := &cobra.Command{
		Use:   "lex <input>",
		Short: "Tokenize input with an EBNF lexical grammar",
		Long: `Tokenize input with an EBNF lexical grammar.

The start production lists the token kinds in priority order. Without
--grammar the built-in tokens.ebnf is used. Use - to read input from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, filename, err := readInput(args[0])
			if err != nil {
				return err
			}

			g, err := grammar.Tokens()
			if grammarFile != "" {
				g, err = grammar.Load(grammarFile)
			}
			if err != nil {
				return err
			}

			lexer, err := ebnflex.NewLexer(g, startProduction, input, filename)
			if err != nil {
				return err
			}
			tokens, err := lexer.Tokenize()
			if err != nil {
				return err
			}
			for _, tok := range ebnflex.Filter(tokens, skip...) {
				fmt.Println(tok)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF file with the lexical grammar")
	cmd.Flags().StringVar(&startProduction, "start", grammar.TokenStart, "production listing the token kinds")
	cmd.Flags().StringSliceVar(&skip, "skip", []string{"white_space"}, "token kinds to leave out of the output")

	return cmd
}

func newEbnfRecognizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recognize <expression>",
		Short: "Check an expression against syntax.ebnf with the Earley recognizer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, filename, err := readInput(args[0])
			if err != nil {
				return err
			}
			r, err := parse.NewRecognizer()
			if err != nil {
				return err
			}
			if err := r.Check(strings.TrimRight(string(input), "\n"), filename); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
	return cmd
}

// readInput returns the argument itself, or stdin when it is "-".
func readInput(arg string) ([]byte, string, error) {
	if arg != "-" {
		return []byte(arg), "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	return data, "<stdin>", nil
}

func printErrors(err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Println(v.Index(i).Interface())
		}
	} else {
		fmt.Println(err)
	}
}
