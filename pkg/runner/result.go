package runner

import (
	"time"

	"github.com/yaklabco/press/pkg/manuscript"
)

// FileOutcome is the result of compiling one manuscript.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Content is the raw manuscript, kept for source context in reports.
	// It is nil when the file could not be read.
	Content []byte

	// Sizing is set when the manuscript compiled.
	Sizing manuscript.Sizing

	// Tokens is the refined stream. It is nil on failure and for cache hits
	// whose token dump was not requested.
	Tokens *manuscript.Stream

	// TokenCount is the length of the refined stream.
	TokenCount int

	// Diagnostic is the first manuscript error, if any.
	Diagnostic *manuscript.Error

	// Cached reports whether the outcome came from the cache.
	Cached bool

	// Error is set if the file could not be processed at all.
	Error error
}

// Failed reports whether the file has a diagnostic or could not be processed.
func (o FileOutcome) Failed() bool {
	return o.Diagnostic != nil || o.Error != nil
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesFailed     int
	FilesErrored    int
	CacheHits       int

	// Sizing sums the sizing of every file that compiled.
	Sizing manuscript.Sizing

	// DiagnosticsByKind counts diagnostics by error kind name.
	DiagnosticsByKind map[string]int

	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats

	// RunID is the ID used for this run.
	RunID string
}

// HasFailures reports whether any manuscript failed to compile.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// HasErrors reports whether any file could not be read or processed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		DiagnosticsByKind: make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Cached {
		r.Stats.CacheHits++
	}

	if outcome.Diagnostic != nil {
		r.Stats.FilesFailed++
		r.Stats.DiagnosticsByKind[outcome.Diagnostic.Kind.String()]++
		return
	}
	r.Stats.Sizing = r.Stats.Sizing.Add(outcome.Sizing)
}
