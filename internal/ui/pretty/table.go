package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/press/pkg/manuscript"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minLineWidth     = 4
	minKindWidth     = 8
	minIndexWidth    = 5
	minTextWidth     = 20
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TokenRow is one row of a token dump.
type TokenRow struct {
	Line  int
	Kind  manuscript.Kind
	Index int
	Text  []byte // sentinel-coded
}

// TokenTable formats a token stream as an aligned table.
type TokenTable struct {
	styles    *Styles
	termWidth int
}

// NewTokenTable creates a token table formatter. A non-positive termWidth
// uses a default of 100 columns.
func NewTokenTable(styles *Styles, termWidth int) *TokenTable {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TokenTable{styles: styles, termWidth: termWidth}
}

// Rows builds one row per token in s.
func Rows(s *manuscript.Stream) []TokenRow {
	rows := make([]TokenRow, 0, s.Len())
	for _, tok := range s.Tokens() {
		rows = append(rows, TokenRow{
			Line:  int(tok.Line),
			Kind:  tok.Kind,
			Index: int(tok.Index),
			Text:  s.Text(tok),
		})
	}
	return rows
}

type tokenColumnWidths struct {
	line, kind, index, text int
}

// Format renders rows under a header. Text is decoded so markup shows as
// bracketed tags, and is truncated to the terminal width.
func (t *TokenTable) Format(rows []TokenRow) string {
	if len(rows) == 0 {
		return ""
	}
	widths := t.columnWidths(rows)

	var builder strings.Builder
	header := pad("LINE", widths.line) + pad("KIND", widths.kind) + pad("INDEX", widths.index) + "TEXT"
	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	total := widths.line + widths.kind + widths.index + widths.text
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	for _, row := range rows {
		index := ""
		if row.Index > 0 {
			index = strconv.Itoa(row.Index)
		}
		builder.WriteString(pad(strconv.Itoa(row.Line), widths.line))
		builder.WriteString(t.styles.TokenKind.Render(pad(row.Kind.String(), widths.kind)))
		builder.WriteString(pad(index, widths.index))
		builder.WriteString(t.formatText(row.Text, widths.text))
		builder.WriteString("\n")
	}

	return builder.String()
}

func (t *TokenTable) columnWidths(rows []TokenRow) tokenColumnWidths {
	widths := tokenColumnWidths{line: minLineWidth, kind: minKindWidth, index: minIndexWidth}
	for _, row := range rows {
		widths.line = max(widths.line, len(strconv.Itoa(row.Line)))
		widths.kind = max(widths.kind, len(row.Kind.String()))
		widths.index = max(widths.index, len(strconv.Itoa(row.Index)))
	}
	widths.line += tablePadding
	widths.kind += tablePadding
	widths.index += tablePadding
	widths.text = max(minTextWidth, t.termWidth-widths.line-widths.kind-widths.index)
	return widths
}

// formatText renders decoded segments, measuring visible width before
// styling so truncation ignores escape codes.
func (t *TokenTable) formatText(text []byte, width int) string {
	var builder strings.Builder
	remaining := width

	for _, seg := range manuscript.Segments(text) {
		if remaining <= 0 {
			break
		}
		var piece string
		styled := seg.Kind != manuscript.SegmentText
		if styled {
			piece = MarkupTag(seg.Kind)
		} else {
			piece = string(seg.Text)
		}
		if w := lipgloss.Width(piece); w > remaining {
			piece = truncateString(piece, remaining)
		}
		remaining -= lipgloss.Width(piece)
		if styled {
			piece = t.styles.Markup.Render(piece)
		}
		builder.WriteString(piece)
	}
	return builder.String()
}

// MarkupTag returns the bracketed tag shown for a markup segment.
func MarkupTag(kind manuscript.SegmentKind) string {
	return fmt.Sprintf("{%s}", kind)
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// truncateString cuts str to maxLen display cells, ending in "..." when
// there is room for it.
func truncateString(str string, maxLen int) string {
	if maxLen <= 3 {
		return runewidth.Truncate(str, maxLen, "")
	}
	return runewidth.Truncate(str, maxLen, "...")
}
