package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/dhamidi/pratt/expr/eval"
	"github.com/dhamidi/pratt/expr/parser"
	"github.com/dhamidi/pratt/format"
)

const replHelp = `Enter an expression to evaluate it.
  :format <name>  also print each tree as tree, json, source or line
  :format off     print values only
  :tokens <expr>  print the tokens of an expression
  :help           show this help
  :quit           leave the session`

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cfg.REPL.Prompt, cfg.REPL.HistoryFile)
		},
	}
}

func runREPL(prompt, historyFile string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	session := newSession(newStyles(cfg.Output.NoColor), cfg.ParserOptions()...)
	fmt.Println(session.styles.Muted.Render("type :help for commands"))

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		out, quit := session.run(line)
		if out != "" {
			fmt.Println(out)
		}
		if quit {
			return nil
		}
	}
}

// session holds the state of one interactive session.
type session struct {
	styles styles
	opts   []parser.Option
	format string
}

func newSession(st styles, opts ...parser.Option) *session {
	return &session{styles: st, opts: opts}
}

// run executes one line of input and returns what to print and whether
// the session should end.
func (s *session) run(line string) (string, bool) {
	input := strings.TrimSpace(line)
	if strings.HasPrefix(input, ":") {
		return s.command(input)
	}

	expr, err := parser.Parse(input, s.opts...)
	if err != nil {
		return s.styles.renderError(input, err), false
	}

	var sb strings.Builder
	if s.format != "" {
		var buf strings.Builder
		encoder, _ := format.NewEncoder(s.format, &buf)
		if err := encoder.Encode(expr); err != nil {
			return s.styles.renderError(input, err), false
		}
		sb.WriteString(strings.TrimRight(buf.String(), "\n"))
		sb.WriteString("\n")
	}

	value, err := eval.Evaluate(expr)
	if err != nil {
		sb.WriteString(s.styles.renderError(input, err))
	} else {
		sb.WriteString(s.styles.Value.Render(fmt.Sprint(value)))
	}
	return sb.String(), false
}

func (s *session) command(input string) (string, bool) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":quit", ":q":
		return "", true
	case ":help":
		return replHelp, false
	case ":format":
		if arg == "off" || arg == "" {
			s.format = ""
			return s.styles.Muted.Render("printing values only"), false
		}
		if _, err := format.NewEncoder(arg, io.Discard); err != nil {
			return s.styles.renderError(input, err), false
		}
		s.format = arg
		return s.styles.Muted.Render("printing " + arg + " output"), false
	case ":tokens":
		tokens, err := parser.NewLexer(arg).Tokenize()
		var sb strings.Builder
		for _, tok := range tokens {
			fmt.Fprintf(&sb, "%d\t%s\t%q\n", tok.Offset, tok.Kind, tok.Literal)
		}
		if err != nil {
			sb.WriteString(s.styles.renderError(arg, err))
		}
		return strings.TrimRight(sb.String(), "\n"), false
	}
	return s.styles.Error.Render("unknown command "+name) + ". Type :help for commands.", false
}
