package pretty_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/press/internal/ui/pretty"
	"github.com/yaklabco/press/pkg/lexer"
	"github.com/yaklabco/press/pkg/manuscript"
	"github.com/yaklabco/press/pkg/runner"
)

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "buffers are not terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", &buf))
}

func TestNewStyles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x", pretty.NewStyles(false).Error.Render("x"))

	colored := pretty.NewStyles(true)
	assert.Contains(t, colored.Error.Render("x"), "\x1b[")
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name    string
		diag    *manuscript.Error
		context bool
		source  string
		want    string
	}{
		{
			name: "with column",
			diag: manuscript.Errorf(manuscript.ErrTrailingSpace, 3, 11, "trailing spaces are not permitted"),
			want: "book.ms:3:11: TrailingSpace: trailing spaces are not permitted\n",
		},
		{
			name: "line only",
			diag: manuscript.Errorf(manuscript.ErrListNotSeparated, 7, 0, "list items must be followed by a blank line"),
			want: "book.ms:7: ListNotSeparated: list items must be followed by a blank line\n",
		},
		{
			name:    "context and caret",
			diag:    manuscript.Errorf(manuscript.ErrExtraneousSpace, 2, 5, "extraneous space"),
			context: true,
			source:  "One  two",
			want:    "book.ms:2:5: ExtraneousSpace: extraneous space\n    One  two\n        ^\n",
		},
		{
			name:    "caret keeps tabs",
			diag:    manuscript.Errorf(manuscript.ErrExtraneousSpace, 2, 4, "extraneous space"),
			context: true,
			source:  "\tA  b",
			want:    "book.ms:2:4: ExtraneousSpace: extraneous space\n    \tA  b\n    \t  ^\n",
		},
		{
			name:    "caret counts characters",
			diag:    manuscript.Errorf(manuscript.ErrExtraneousSpace, 1, 4, "extraneous space"),
			context: true,
			source:  "Né  x",
			want:    "book.ms:1:4: ExtraneousSpace: extraneous space\n    Né  x\n       ^\n",
		},
		{
			name:    "caret follows display width",
			diag:    manuscript.Errorf(manuscript.ErrExtraneousSpace, 1, 4, "extraneous space"),
			context: true,
			source:  "世界  x",
			want:    "book.ms:1:4: ExtraneousSpace: extraneous space\n    世界  x\n         ^\n",
		},
		{
			name:    "control characters are escaped",
			diag:    manuscript.Errorf(manuscript.ErrControlCharacter, 1, 2, "control character 0x1b"),
			context: true,
			source:  "A\x1bB",
			want:    "book.ms:1:2: ControlCharacter: control character 0x1b\n    A\\x1bB\n     ^\n",
		},
		{
			name:    "caret after escaped character",
			diag:    manuscript.Errorf(manuscript.ErrExtraneousSpace, 1, 8, "extraneous space"),
			context: true,
			source:  "\x1b[31mA  b\x7f",
			want:    "book.ms:1:8: ExtraneousSpace: extraneous space\n    \\x1b[31mA  b\\x7f\n              ^\n",
		},
		{
			name:    "context without column",
			diag:    manuscript.Errorf(manuscript.ErrHeadingNotSeparated, 1, 0, "headings must be followed by a blank line"),
			context: true,
			source:  "# Title",
			want:    "book.ms:1: HeadingNotSeparated: headings must be followed by a blank line\n    # Title\n",
		},
		{
			name:   "context disabled",
			diag:   manuscript.Errorf(manuscript.ErrExtraneousSpace, 2, 5, "extraneous space"),
			source: "One  two",
			want:   "book.ms:2:5: ExtraneousSpace: extraneous space\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatDiagnostic("book.ms", tt.diag, tt.context, tt.source))
		})
	}
}

func TestFormatFileError(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatFileError("a.ms", errors.New("permission denied"))
	assert.Equal(t, "a.ms: error: permission denied\n", got)
}

func TestFormatPassed(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	sizing := manuscript.Sizing{Chapters: 1, Elements: 4}

	assert.Equal(t, "a.ms: ok (1 chapters, 4 elements, 0 references)\n", styles.FormatPassed("a.ms", sizing, false))
	assert.Contains(t, styles.FormatPassed("a.ms", sizing, true), ", cached)")
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No errors found (1 file checked)\n",
		},
		{
			name:  "failures",
			stats: runner.Stats{FilesProcessed: 5, FilesFailed: 2},
			want:  "2 of 5 files failed\n",
		},
		{
			name:  "unreadable and cached",
			stats: runner.Stats{FilesProcessed: 4, FilesFailed: 1, FilesErrored: 1, CacheHits: 3},
			want:  "1 of 5 files failed, 1 unreadable, 3 cached\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	passed := styles.FormatSummary(runner.Stats{
		FilesProcessed: 3,
		Sizing:         manuscript.Sizing{Chapters: 2, Elements: 30, References: 4},
		Duration:       1500 * time.Millisecond,
	})
	assert.Contains(t, passed, "Files checked:     3")
	assert.Contains(t, passed, "Elements:          30")
	assert.Contains(t, passed, "Check passed in 1.5s")
	assert.NotContains(t, passed, "Files failed")

	failed := styles.FormatSummary(runner.Stats{
		FilesProcessed:    3,
		FilesFailed:       2,
		DiagnosticsByKind: map[string]int{"TrailingSpace": 1, "HeadingTooDeep": 1},
	})
	assert.Contains(t, failed, "Files failed:      2")
	assert.Contains(t, failed, "Check failed")
	assert.Less(t, strings.Index(failed, "HeadingTooDeep"), strings.Index(failed, "TrailingSpace"))
}

func TestTokenTable(t *testing.T) {
	t.Parallel()

	stream, err := lexer.Tokenize([]byte("# Title\n\n**Bold** -- text.\n"))
	require.NoError(t, err)

	table := pretty.NewTokenTable(pretty.NewStyles(false), 0)
	out := table.Format(pretty.Rows(stream))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 2+stream.Len())
	assert.True(t, strings.HasPrefix(lines[0], "LINE"))
	assert.Contains(t, lines[0], "TEXT")
	assert.Equal(t, strings.Repeat("=", 100), lines[1])
	assert.Contains(t, lines[2], "heading-1")
	assert.Contains(t, lines[2], "Title")
	assert.Contains(t, lines[4], "{strong-begin}Bold{strong-end} {en-dash} text.")

	assert.Empty(t, table.Format(nil))
}

func TestTokenTableTruncates(t *testing.T) {
	t.Parallel()

	stream, err := lexer.Tokenize([]byte("# " + strings.Repeat("word ", 40) + "end\n"))
	require.NoError(t, err)

	out := pretty.NewTokenTable(pretty.NewStyles(false), 60).Format(pretty.Rows(stream))
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 60)
	}
	assert.Contains(t, out, "...")
}
