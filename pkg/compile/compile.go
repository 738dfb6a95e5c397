// Package compile runs the compiler front end: tokenize a manuscript, then
// validate the token stream.
package compile

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/yaklabco/press/pkg/lexer"
	"github.com/yaklabco/press/pkg/manuscript"
	"github.com/yaklabco/press/pkg/validate"
)

// ErrSourceConsumed is returned when a Source is compiled a second time.
var ErrSourceConsumed = errors.New("source already compiled")

// Source is a manuscript that can be compiled once.
type Source struct {
	Name string

	data     []byte
	consumed atomic.Bool
}

// NewSource wraps data, which must not be modified while it is compiled.
func NewSource(name string, data []byte) *Source {
	return &Source{Name: name, data: data}
}

// Bytes returns the raw manuscript.
func (s *Source) Bytes() []byte {
	return s.data
}

// Result is a validated manuscript ready for document assembly.
type Result struct {
	Tokens *manuscript.Stream
	Sizing manuscript.Sizing
}

// Compile tokenizes and validates src. A failure in either stage is returned
// unwrapped, so callers can use errors.As with *manuscript.Error.
func Compile(ctx context.Context, src *Source) (*Result, error) {
	if !src.consumed.CompareAndSwap(false, true) {
		return nil, ErrSourceConsumed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := lexer.Tokenize(src.data)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := validate.Validate(stream)
	if err != nil {
		return nil, err
	}
	return &Result{Tokens: res.Tokens, Sizing: res.Sizing}, nil
}

// Diagnostic extracts the manuscript error from err, if there is one.
func Diagnostic(err error) (*manuscript.Error, bool) {
	var merr *manuscript.Error
	if errors.As(err, &merr) {
		return merr, true
	}
	return nil, false
}
