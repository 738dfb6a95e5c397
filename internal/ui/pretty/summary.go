package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/press/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 of 5 files failed, 1 unreadable, 3 cached".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := stats.FilesProcessed + stats.FilesErrored

	var parts []string
	if stats.FilesFailed == 0 && stats.FilesErrored == 0 {
		parts = append(parts, s.Success.Render("No errors found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", checked, plural(checked, wordFile, wordFiles))))
	} else {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d of %d %s failed",
			stats.FilesFailed, checked, plural(checked, wordFile, wordFiles))))
		if stats.FilesErrored > 0 {
			parts = append(parts, s.Error.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
		}
	}

	if stats.CacheHits > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d cached", stats.CacheHits)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value int) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", s.SummaryValue.Render(strconv.Itoa(value)))
	}

	row("Files checked", stats.FilesProcessed)
	if stats.FilesFailed > 0 {
		fmt.Fprintf(&builder, "  %-19s%s\n", "Files failed:", s.Failure.Render(strconv.Itoa(stats.FilesFailed)))
	}
	if stats.FilesErrored > 0 {
		fmt.Fprintf(&builder, "  %-19s%s\n", "Files unreadable:", s.Error.Render(strconv.Itoa(stats.FilesErrored)))
	}
	if stats.CacheHits > 0 {
		row("Cache hits", stats.CacheHits)
	}

	builder.WriteString("\n")
	row("Chapters", stats.Sizing.Chapters)
	row("Elements", stats.Sizing.Elements)
	row("References", stats.Sizing.References)

	if len(stats.DiagnosticsByKind) > 0 {
		builder.WriteString("\n")
		for _, kind := range slices.Sorted(maps.Keys(stats.DiagnosticsByKind)) {
			fmt.Fprintf(&builder, "    %-17s%s\n", kind, s.Failure.Render(strconv.Itoa(stats.DiagnosticsByKind[kind])))
		}
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesFailed > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	if stats.Duration > 0 {
		builder.WriteString(s.Dim.Render(fmt.Sprintf(" in %s", stats.Duration.Round(time.Millisecond))))
	}
	builder.WriteString("\n")

	return builder.String()
}
