// Package lexer turns a manuscript's raw UTF-8 bytes into a stream of line
// tokens with inline markup rewritten to sentinel codes.
package lexer

import "github.com/yaklabco/press/pkg/manuscript"

// EOF is returned by the scanner once input is exhausted. A NUL byte in the
// input also ends it.
const EOF byte = 0

// Scanner reads one character at a time from a read-only source. Multi-byte
// UTF-8 sequences are returned byte by byte; only lead bytes advance the
// column. CRLF is collapsed to LF.
//
// It tracks two positions: that of the character last returned, which is
// what errors report, and that of the next one.
type Scanner struct {
	src []byte
	pos int

	line, column         int
	nextLine, nextColumn int

	cur, prev byte // last two filtered characters
}

// NewScanner returns a scanner positioned at line 1, column 1.
func NewScanner(src []byte) *Scanner {
	return &Scanner{
		src:        src,
		nextLine:   1,
		nextColumn: 1,
	}
}

// Position returns the line and column of the last character returned.
func (s *Scanner) Position() (line, column int) {
	return s.line, s.column
}

// Prev returns the filtered character before the current one.
func (s *Scanner) Prev() byte {
	return s.prev
}

// Peek returns the raw byte n positions past the last one consumed, without
// consuming anything. Past the end it returns EOF.
func (s *Scanner) Peek(n int) byte {
	if i := s.pos + n; i < len(s.src) {
		return s.src[i]
	}
	return EOF
}

// Next returns the next character, applying control character rules but not
// comment filtering.
func (s *Scanner) Next() (byte, error) {
	s.line, s.column = s.nextLine, s.nextColumn

	if s.pos >= len(s.src) {
		return EOF, nil
	}

	c := s.src[s.pos]
	s.pos++

	switch {
	case c&0x80 != 0:
		// Continuation bytes (10xxxxxx) share the column of their lead byte.
		if c&0x40 != 0 {
			s.nextColumn++
		}
	case c == EOF:
		s.pos = len(s.src)
	case c == '\n':
		s.nextLine++
		s.nextColumn = 1
	case c == '\r':
		if s.Peek(0) != '\n' {
			return EOF, s.controlError()
		}
		s.pos++
		s.nextLine++
		s.nextColumn = 1
		c = '\n'
	case c == '\t':
		// Legality depends on context; the lexer decides.
		s.nextColumn++
	case c < ' ' || c == 0x7f:
		return EOF, s.controlError()
	default:
		s.nextColumn++
	}

	return c, nil
}

func (s *Scanner) controlError() error {
	return manuscript.Errorf(manuscript.ErrControlCharacter, s.line, s.column,
		"unsupported control character; the file may be corrupt or binary")
}

// NextFiltered is Next with /* ... */ comments removed wherever they occur.
func (s *Scanner) NextFiltered() (byte, error) {
	s.prev = s.cur

	c, err := s.Next()
	if err != nil {
		return EOF, err
	}

	for c == '/' && s.Peek(0) == '*' {
		line, column := s.line, s.column
		if _, err := s.Next(); err != nil {
			return EOF, err
		}
		for {
			if c, err = s.Next(); err != nil {
				return EOF, err
			}
			if c == EOF {
				return EOF, manuscript.Errorf(manuscript.ErrUnterminatedComment, line, column,
					"comments must be closed \"/*...*/\"")
			}
			if c == '*' && s.Peek(0) == '/' {
				break
			}
		}
		if _, err := s.Next(); err != nil {
			return EOF, err
		}
		if c, err = s.Next(); err != nil {
			return EOF, err
		}
	}

	s.cur = c
	return c, nil
}

// Skip consumes n filtered characters. Callers use it to commit a prefix they
// have already verified with Peek.
func (s *Scanner) Skip(n int) error {
	for range n {
		if _, err := s.NextFiltered(); err != nil {
			return err
		}
	}
	return nil
}
