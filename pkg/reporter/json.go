package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/press/pkg/manuscript"
	"github.com/yaklabco/press/pkg/runner"
)

// jsonVersion is the schema version of JSON output.
const jsonVersion = "1.0.0"

// File statuses in JSON output.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
	StatusError  = "error"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	RunID   string           `json:"runId,omitempty"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string             `json:"path"`
	Status     string             `json:"status"`
	Cached     bool               `json:"cached,omitempty"`
	Sizing     *manuscript.Sizing `json:"sizing,omitempty"`
	Tokens     int                `json:"tokens,omitempty"`
	Diagnostic *JSONDiagnostic    `json:"diagnostic,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// JSONDiagnostic represents a manuscript error.
type JSONDiagnostic struct {
	Kind       string `json:"kind"`
	Structural bool   `json:"structural"`
	Message    string `json:"message"`
	Line       int    `json:"line"`
	Column     int    `json:"column,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int               `json:"filesChecked"`
	FilesFailed  int               `json:"filesFailed"`
	FilesErrored int               `json:"filesErrored"`
	CacheHits    int               `json:"cacheHits"`
	Sizing       manuscript.Sizing `json:"sizing"`
	ByKind       map[string]int    `json:"byKind"`
	DurationMS   int64             `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByKind: make(map[string]int),
		},
	}
	if result == nil {
		return output
	}

	output.RunID = result.RunID
	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:   displayPath(file.Path, r.opts.WorkingDir),
			Cached: file.Cached,
		}

		switch {
		case file.Error != nil:
			fileResult.Status = StatusError
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		case file.Diagnostic != nil:
			d := file.Diagnostic
			fileResult.Status = StatusFailed
			fileResult.Diagnostic = &JSONDiagnostic{
				Kind:       d.Kind.String(),
				Structural: d.Kind.IsStructural(),
				Message:    d.Message,
				Line:       d.Line,
				Column:     d.Column,
			}
			output.Summary.FilesFailed++
			output.Summary.ByKind[d.Kind.String()]++
		default:
			sizing := file.Sizing
			fileResult.Status = StatusOK
			fileResult.Sizing = &sizing
			fileResult.Tokens = file.TokenCount
			output.Summary.Sizing = output.Summary.Sizing.Add(sizing)
		}

		if file.Cached {
			output.Summary.CacheHits++
		}
		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}
	output.Summary.DurationMS = result.Stats.Duration.Milliseconds()

	return output
}
