package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/press/pkg/manuscript"
)

// contextIndent aligns source context under the diagnostic.
const contextIndent = "    "

// FormatLocation renders path:line:col. Line-level diagnostics, which have
// no column, render as path:line.
func (s *Styles) FormatLocation(path string, line, column int) string {
	if column > 0 {
		return s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d:%d", line, column))
	}
	return s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d", line))
}

// FormatDiagnostic formats a manuscript error as
// "path:line:col: Kind: message", optionally followed by the source line and
// a caret under the offending column.
func (s *Styles) FormatDiagnostic(path string, diag *manuscript.Error, showContext bool, sourceLine string) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%s: %s: %s\n",
		s.FormatLocation(path, diag.Line, diag.Column),
		s.Kind.Render(diag.Kind.String()),
		s.Message.Render(diag.Message),
	)

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker. Columns
// count characters; the padding follows their display width and keeps tabs
// so the caret lines up. Control characters other than tab are shown as
// \xNN escapes.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	display := make([]byte, 0, len(line))
	pad := make([]byte, 0, max(column, 0))
	for i, rest := 1, line; rest != ""; i++ {
		r, size := utf8.DecodeRuneInString(rest)
		shown := rest[:size]
		rest = rest[size:]

		width := runewidth.RuneWidth(r)
		if isControl(r) {
			shown = fmt.Sprintf("\\x%02x", r)
			width = len(shown)
		}
		display = append(display, shown...)

		if i >= column {
			continue
		}
		if r == '\t' {
			pad = append(pad, '\t')
			continue
		}
		for range width {
			pad = append(pad, ' ')
		}
	}

	builder.WriteString(contextIndent + s.SourceLine.Render(string(display)) + "\n")

	if column > 0 {
		builder.WriteString(contextIndent + string(pad) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

func isControl(r rune) bool {
	return (r < ' ' && r != '\t') || r == 0x7f
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatPassed formats a manuscript that compiled, with its sizing.
func (s *Styles) FormatPassed(path string, sizing manuscript.Sizing, cached bool) string {
	detail := fmt.Sprintf(" (%d chapters, %d elements, %d references", sizing.Chapters, sizing.Elements, sizing.References)
	if cached {
		detail += ", cached"
	}
	detail += ")"
	return s.FilePath.Render(path) + ": " + s.Success.Render("ok") + s.Dim.Render(detail) + "\n"
}
