package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext prints the source line and a caret under diagnostics.
	ShowContext bool

	// ShowPassed lists manuscripts that compiled, with their sizing.
	ShowPassed bool

	// ShowSummary prints a one-line summary after the results.
	ShowSummary bool

	// Detailed replaces the one-line summary with a summary block.
	Detailed bool

	// Compact disables JSON indentation.
	Compact bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// TermWidth bounds token tables. Zero uses a default width.
	TermWidth int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowPassed:  true,
		ShowSummary: true,
	}
}
