package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/yaklabco/press/pkg/manuscript"
)

// TokenRecord is the serialized form of one token. Text holds the exact
// rewritten bytes, sentinels and any invalid UTF-8 included.
type TokenRecord struct {
	Kind  string `json:"kind"`
	Line  int    `json:"line"`
	Index int    `json:"index,omitempty"`
	Text  []byte `json:"text,omitempty"`
}

// Records flattens a stream into records.
func Records(s *manuscript.Stream) []TokenRecord {
	out := make([]TokenRecord, 0, s.Len())
	for _, tok := range s.Tokens() {
		rec := TokenRecord{
			Kind:  tok.Kind.String(),
			Line:  int(tok.Line),
			Index: int(tok.Index),
		}
		if text := s.Text(tok); len(text) > 0 {
			rec.Text = bytes.Clone(text)
		}
		out = append(out, rec)
	}
	return out
}

// Rebuild turns records back into a stream.
func Rebuild(records []TokenRecord) (*manuscript.Stream, error) {
	size := 0
	for _, r := range records {
		size += len(r.Text)
	}

	s := manuscript.NewStream(size)
	for i, r := range records {
		kind, ok := manuscript.ParseKind(r.Kind)
		if !ok {
			return nil, fmt.Errorf("record %d: unknown token kind %q", i, r.Kind)
		}
		tok := manuscript.Token{
			Kind:  kind,
			Line:  int32(r.Line),
			Index: int32(r.Index),
			Start: manuscript.NoText,
		}
		if kind.HasText() {
			tok.Start = int32(s.Offset())
			tok.Length = int32(len(r.Text))
			for j := 0; j < len(r.Text); j++ {
				_ = s.WriteByte(r.Text[j])
			}
		}
		s.Append(tok)
	}
	return s, nil
}

// EncodeTokens serializes a stream as JSON and compresses it with xz.
func EncodeTokens(s *manuscript.Stream) ([]byte, error) {
	var buf bytes.Buffer

	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("create xz writer: %w", err)
	}
	if err := json.NewEncoder(w).Encode(Records(s)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("encode tokens: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close xz writer: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeTokens reverses EncodeTokens.
func DecodeTokens(data []byte) (*manuscript.Stream, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create xz reader: %w", err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress tokens: %w", err)
	}

	var records []TokenRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	return Rebuild(records)
}
