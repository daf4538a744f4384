package lsp

import (
	"strconv"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/pratt/expr/eval"
	"github.com/dhamidi/pratt/expr/parser"
	"github.com/dhamidi/pratt/format"
)

// Line is the analysis of one expression line. Blank lines and lines
// starting with # are comments and carry no expression.
type Line struct {
	Number  int
	Text    string
	Comment bool

	Expr    parser.Expression
	Err     error
	Value   int
	EvalErr error
}

// Analyze parses and evaluates every line of text.
func Analyze(text string, opts ...parser.Option) []Line {
	rawLines := strings.Split(text, "\n")
	lines := make([]Line, len(rawLines))
	for i, raw := range rawLines {
		raw = strings.TrimSuffix(raw, "\r")
		line := Line{Number: i, Text: raw}
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			line.Comment = true
			lines[i] = line
			continue
		}

		line.Expr, line.Err = parser.Parse(raw, opts...)
		if line.Err == nil {
			line.Value, line.EvalErr = eval.Evaluate(line.Expr)
		}
		lines[i] = line
	}
	return lines
}

// Diagnostics reports parse errors as errors and evaluation failures as
// warnings.
func Diagnostics(lines []Line) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0)
	source := lsName

	for _, line := range lines {
		switch {
		case line.Err != nil:
			start, end, ok := parser.ErrorSpan(line.Err)
			if !ok {
				start, end = 0, len(line.Text)
			}
			severity := protocol.DiagnosticSeverityError
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range:    lineRange(line, start, end),
				Severity: &severity,
				Source:   &source,
				Message:  line.Err.Error(),
			})
		case line.EvalErr != nil:
			severity := protocol.DiagnosticSeverityWarning
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range:    lineRange(line, 0, len(line.Text)),
				Severity: &severity,
				Source:   &source,
				Message:  line.EvalErr.Error(),
			})
		}
	}
	return diagnostics
}

// Hover describes the expression on line: its value and its tree.
func Hover(line Line) string {
	if line.Comment || line.Err != nil {
		return ""
	}

	var sb strings.Builder
	if line.EvalErr != nil {
		sb.WriteString("**error**: ")
		sb.WriteString(line.EvalErr.Error())
	} else {
		sb.WriteString("**value**: `")
		sb.WriteString(strconv.Itoa(line.Value))
		sb.WriteString("`")
	}
	tree, _ := format.NewTreeEncoder(nil).MarshalText(line.Expr)
	sb.WriteString("\n\n```\n")
	sb.Write(tree)
	sb.WriteString("```\n")
	return sb.String()
}

// Format returns edits that replace each expression line by its canonical
// source form. Lines that do not parse, or whose canonical form would not
// parse back to the same tree under opts, are left alone.
func Format(lines []Line, opts ...parser.Option) []protocol.TextEdit {
	edits := make([]protocol.TextEdit, 0)
	for _, line := range lines {
		formatted, ok := Canonical(line, opts...)
		if !ok || formatted == line.Text {
			continue
		}
		edits = append(edits, protocol.TextEdit{
			Range:   lineRange(line, 0, len(line.Text)),
			NewText: formatted,
		})
	}
	return edits
}

// Canonical returns the canonical source of line. It reports false for
// comments, lines that failed to parse and lines whose canonical form does
// not parse back to an equal tree under opts.
func Canonical(line Line, opts ...parser.Option) (string, bool) {
	if line.Comment || line.Err != nil {
		return "", false
	}
	formatted := format.Source(line.Expr)
	again, err := parser.Parse(formatted, opts...)
	if err != nil || !parser.Equal(line.Expr, again) {
		return "", false
	}
	return formatted, true
}

// lineRange converts byte offsets within line into an LSP range. LSP
// characters count UTF-16 code units.
func lineRange(line Line, start, end int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line.Number), Character: utf16Column(line.Text, start)},
		End:   protocol.Position{Line: protocol.UInteger(line.Number), Character: utf16Column(line.Text, end)},
	}
}

func utf16Column(text string, offset int) protocol.UInteger {
	if offset > len(text) {
		offset = len(text)
	}
	col := 0
	for _, r := range text[:offset] {
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	return protocol.UInteger(col)
}
