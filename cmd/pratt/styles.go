package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/pratt/expr/parser"
)

var (
	colorAccent = lipgloss.Color("#7C3AED")
	colorValue  = lipgloss.Color("#10B981")
	colorError  = lipgloss.Color("#EF4444")
	colorMuted  = lipgloss.Color("#6B7280")
)

type styles struct {
	Prompt lipgloss.Style
	Value  lipgloss.Style
	Error  lipgloss.Style
	Caret  lipgloss.Style
	Muted  lipgloss.Style
}

// newStyles returns unstyled output when plain is set.
func newStyles(plain bool) styles {
	if plain {
		s := lipgloss.NewStyle()
		return styles{Prompt: s, Value: s, Error: s, Caret: s, Muted: s}
	}
	return styles{
		Prompt: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Value:  lipgloss.NewStyle().Foreground(colorValue),
		Error:  lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Caret:  lipgloss.NewStyle().Foreground(colorError),
		Muted:  lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

// renderError formats err for display. Errors that point into input get
// the input echoed with a caret line underneath.
func (s styles) renderError(input string, err error) string {
	var sb strings.Builder
	sb.WriteString(s.Error.Render("error:"))
	sb.WriteString(" ")
	sb.WriteString(err.Error())

	start, end, ok := parser.ErrorSpan(err)
	if !ok || strings.ContainsRune(input, '\n') {
		return sb.String()
	}
	width := end - start
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(&sb, "\n  %s\n  %s%s", input, strings.Repeat(" ", start), s.Caret.Render(strings.Repeat("^", width)))
	return sb.String()
}
