// Package pretty renders diagnostics, summaries and token tables with
// Lipgloss styles.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ANSI palette.
const (
	colorGray    = lipgloss.Color("8")
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorMagenta = lipgloss.Color("13")
	colorSilver  = lipgloss.Color("7")
)

// Styles holds one lipgloss style per element of press output.
type Styles struct {
	// Diagnostics.
	Error      lipgloss.Style
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Kind       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Summaries.
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Token dumps.
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TokenKind      lipgloss.Style
	Markup         lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or styles that render text unchanged.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return uniformStyles(lipgloss.NewStyle())
	}

	// Color was already decided; keep it when stdout is piped.
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(termenv.ANSI256)
	fg := func(c lipgloss.Color) lipgloss.Style { return r.NewStyle().Foreground(c) }

	s := uniformStyles(r.NewStyle())
	s.Error = fg(colorRed).Bold(true)
	s.FilePath = r.NewStyle().Bold(true)
	s.Location = fg(colorGray)
	s.Kind = fg(colorYellow).Bold(true)
	s.SourceLine = fg(colorSilver).TabWidth(lipgloss.NoTabConversion)
	s.Caret = fg(colorRed)
	s.SummaryTitle = r.NewStyle().Bold(true)
	s.Success = fg(colorGreen).Bold(true)
	s.Failure = fg(colorRed).Bold(true)
	s.TableHeader = fg(colorSilver).Bold(true)
	s.TableSeparator = fg(colorGray)
	s.TokenKind = fg(colorBlue)
	s.Markup = fg(colorMagenta)
	s.Dim = fg(colorGray)
	s.Bold = r.NewStyle().Bold(true)
	return s
}

// uniformStyles sets every field to base. Source lines keep their tabs so
// the caret stays aligned.
func uniformStyles(base lipgloss.Style) *Styles {
	return &Styles{
		Error:          base,
		FilePath:       base,
		Location:       base,
		Kind:           base,
		Message:        base,
		SourceLine:     base.TabWidth(lipgloss.NoTabConversion),
		Caret:          base,
		SummaryTitle:   base,
		SummaryValue:   base,
		Success:        base,
		Failure:        base,
		TableHeader:    base,
		TableSeparator: base,
		TokenKind:      base,
		Markup:         base,
		Dim:            base,
		Bold:           base,
	}
}

// IsColorEnabled resolves a color mode ("auto", "always", "never") for w.
// Auto colors terminals only, and never when NO_COLOR is set.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
