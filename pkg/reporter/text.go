package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/press/internal/ui/pretty"
	"github.com/yaklabco/press/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No manuscripts to check."))
		}
		return 0, nil
	}

	var failed int
	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		switch {
		case file.Error != nil:
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
		case file.Diagnostic != nil:
			var sourceLine string
			if r.opts.ShowContext {
				sourceLine = sourceLineAt(file.Content, file.Diagnostic.Line)
			}
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, file.Diagnostic, r.opts.ShowContext, sourceLine))
			failed++
		case r.opts.ShowPassed:
			fmt.Fprint(r.bw, r.styles.FormatPassed(path, file.Sizing, file.Cached))
		}
	}

	switch {
	case r.opts.Detailed:
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	case r.opts.ShowSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}

// sourceLineAt returns 1-based line n of content without its line ending.
func sourceLineAt(content []byte, n int) string {
	if n < 1 {
		return ""
	}
	for i := 1; i < n; i++ {
		idx := bytes.IndexByte(content, '\n')
		if idx < 0 {
			return ""
		}
		content = content[idx+1:]
	}
	if idx := bytes.IndexByte(content, '\n'); idx >= 0 {
		content = content[:idx]
	}
	return string(bytes.TrimSuffix(content, []byte("\r")))
}
