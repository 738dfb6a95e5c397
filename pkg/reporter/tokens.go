package reporter

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/press/internal/ui/pretty"
	"github.com/yaklabco/press/pkg/manuscript"
)

// JSONTokenDump is the JSON form of a token dump.
type JSONTokenDump struct {
	Version string            `json:"version"`
	Path    string            `json:"path"`
	Cached  bool              `json:"cached,omitempty"`
	Sizing  manuscript.Sizing `json:"sizing"`
	Tokens  []JSONTokenRecord `json:"tokens"`
}

// JSONTokenRecord is one token with its decoded inline text.
type JSONTokenRecord struct {
	Kind     string        `json:"kind"`
	Line     int           `json:"line"`
	Index    int           `json:"index,omitempty"`
	Text     string        `json:"text,omitempty"`
	Segments []JSONSegment `json:"segments,omitempty"`
}

// JSONSegment is one decoded piece of inline text.
type JSONSegment struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

// TokenDump is a compiled manuscript ready to be printed.
type TokenDump struct {
	Path   string
	Cached bool
	Sizing manuscript.Sizing
	Tokens *manuscript.Stream
}

// WriteTokens prints a token dump in the configured format.
func WriteTokens(opts Options, dump TokenDump) (err error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	path := displayPath(dump.Path, opts.WorkingDir)

	switch opts.Format {
	case FormatJSON:
		encoder := json.NewEncoder(bw)
		if !opts.Compact {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(buildTokenDump(path, dump)); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil

	case FormatText, "":
		styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
		fmt.Fprintln(bw, styles.FilePath.Render(path)+styles.Dim.Render(fmt.Sprintf(
			" (%d tokens, %d chapters, %d elements, %d references)",
			dump.Tokens.Len(), dump.Sizing.Chapters, dump.Sizing.Elements, dump.Sizing.References)))
		fmt.Fprint(bw, pretty.NewTokenTable(styles, opts.TermWidth).Format(pretty.Rows(dump.Tokens)))
		return nil

	default:
		return fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

func buildTokenDump(path string, dump TokenDump) *JSONTokenDump {
	out := &JSONTokenDump{
		Version: jsonVersion,
		Path:    path,
		Cached:  dump.Cached,
		Sizing:  dump.Sizing,
		Tokens:  make([]JSONTokenRecord, 0, dump.Tokens.Len()),
	}

	for _, tok := range dump.Tokens.Tokens() {
		rec := JSONTokenRecord{
			Kind:  tok.Kind.String(),
			Line:  int(tok.Line),
			Index: int(tok.Index),
		}
		text := dump.Tokens.Text(tok)
		if len(text) > 0 {
			rec.Text = manuscript.PlainText(text)
			for _, seg := range manuscript.Segments(text) {
				rec.Segments = append(rec.Segments, JSONSegment{Kind: seg.Kind.String(), Text: string(seg.Text)})
			}
		}
		out.Tokens = append(out.Tokens, rec)
	}
	return out
}
