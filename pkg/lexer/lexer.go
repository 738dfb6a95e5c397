package lexer

import (
	"errors"
	"fmt"
	"math"

	"github.com/yaklabco/press/pkg/manuscript"
)

// ErrInputTooLarge is returned for sources whose offsets do not fit a token.
var ErrInputTooLarge = errors.New("input too large")

// maxDigits bounds list numbers and reference numbers.
const maxDigits = 9

type lexer struct {
	sc  *Scanner
	out *manuscript.Stream

	current    int // index of the token owning the line being rewritten
	lineStart  int // text offset where that line began
	inlineRefs int // inline references seen in this chapter
	refLines   int // reference lines seen in this chapter
}

// Tokenize classifies every line of src and rewrites inline markup into
// sentinel codes. src is only read; the rewritten text lives in the returned
// stream. The stream always ends with a blank line token and an EOF token.
//
// The first error aborts tokenizing and is returned as a *manuscript.Error.
// Sources longer than math.MaxInt32 bytes fail with ErrInputTooLarge.
func Tokenize(src []byte) (*manuscript.Stream, error) {
	if len(src) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(src))
	}
	lx := &lexer{
		sc:      NewScanner(src),
		out:     manuscript.NewStream(len(src)),
		current: -1,
	}
	if err := lx.run(); err != nil {
		return nil, err
	}
	return lx.out, nil
}

func (lx *lexer) run() error {
	c, err := lx.sc.NextFiltered()
	for err == nil && c != EOF {
		switch {
		case c == '[':
			c, err = lx.bracket()
		case c == '\t':
			c, err = lx.blockQuote()
		case c == '\n':
			c, err = lx.blank(false)
		case c == '#':
			c, err = lx.heading(c)
		case c == '*':
			c, err = lx.unorderedList(c)
		case c >= '1' && c <= '9':
			c, err = lx.arabicList(c)
		case c >= 'a' && c <= 'z':
			c, err = lx.letterList(c)
		case c == 'I' || c == 'V' || c == 'X':
			c, err = lx.romanList(c)
		default:
			c, err = lx.paragraph(c, false)
		}
	}
	if err != nil {
		return err
	}

	// A trailing blank keeps the validator's lookahead uniform.
	lx.add(manuscript.KindNewline)
	lx.add(manuscript.KindEOF)
	return nil
}

// add appends a token for the line at the scanner's current position.
func (lx *lexer) add(kind manuscript.Kind) int {
	line, _ := lx.sc.Position()
	tok := manuscript.Token{
		Kind:  kind,
		Line:  int32(line),
		Start: manuscript.NoText,
	}
	if kind.HasText() {
		lx.lineStart = lx.out.Offset()
		tok.Start = int32(lx.lineStart)
	}
	lx.current = lx.out.Append(tok)
	return lx.current
}

func (lx *lexer) put(c byte) {
	_ = lx.out.WriteByte(c)
}

func (lx *lexer) errorf(kind manuscript.ErrorKind, format string, args ...any) error {
	line, column := lx.sc.Position()
	return manuscript.Errorf(kind, line, column, format, args...)
}

func (lx *lexer) blank(block bool) (byte, error) {
	kind := manuscript.KindNewline
	if block {
		kind = manuscript.KindBlockNewline
	}
	lx.add(kind)
	return lx.sc.NextFiltered()
}

func (lx *lexer) paragraph(c byte, block bool) (byte, error) {
	kind := manuscript.KindParagraph
	if block {
		kind = manuscript.KindBlockParagraph
	}
	lx.add(kind)
	return lx.text(c)
}

// blockQuote handles a line that starts with a tab. The tab itself has been
// read; only a blank or a paragraph may follow it.
func (lx *lexer) blockQuote() (byte, error) {
	c, err := lx.sc.NextFiltered()
	if err != nil {
		return EOF, err
	}
	if c == '\n' {
		return lx.blank(true)
	}
	return lx.paragraph(c, true)
}

func (lx *lexer) heading(c byte) (byte, error) {
	var err error
	depth := 0
	for c == '#' {
		depth++
		if c, err = lx.sc.NextFiltered(); err != nil {
			return EOF, err
		}
	}

	if depth > 3 {
		return EOF, lx.errorf(manuscript.ErrHeadingTooDeep, "exceeded maximum heading depth of 3")
	}
	if c != ' ' {
		return EOF, lx.errorf(manuscript.ErrHeadingMissingSpace, "heading tags '#' must be followed by a space")
	}

	if depth == 1 {
		lx.inlineRefs = 0
		lx.refLines = 0
	}
	lx.add(manuscript.KindHeading1 + manuscript.Kind(depth-1))

	if c, err = lx.sc.NextFiltered(); err != nil {
		return EOF, err
	}
	return lx.text(c)
}

// bracket handles a line that starts with '['. Digits make it a reference
// line; anything else is a metadata line, which is reserved and skipped.
func (lx *lexer) bracket() (byte, error) {
	c, err := lx.sc.NextFiltered()
	if err != nil {
		return EOF, err
	}

	switch {
	case c == ']':
		return EOF, lx.errorf(manuscript.ErrEmptyOrMisnumberedReference, "empty brackets \"[]\" are not permitted")
	case c == '0':
		return EOF, lx.errorf(manuscript.ErrEmptyOrMisnumberedReference,
			"references must begin from 1, and metadata must not begin with a number")
	case isDigit(c):
		return lx.reference(c)
	}

	for c != '\n' && c != EOF {
		if c, err = lx.sc.NextFiltered(); err != nil {
			return EOF, err
		}
	}
	if c == EOF {
		return EOF, nil
	}
	return lx.sc.NextFiltered()
}

func (lx *lexer) reference(c byte) (byte, error) {
	digits := lx.peekDigits(c)
	n := len(digits) - 1

	if lx.sc.Peek(n) != ']' {
		return EOF, lx.errorf(manuscript.ErrEmptyOrMisnumberedReference, "references may only contain numbers")
	}
	if lx.sc.Peek(n+1) != ' ' {
		return EOF, lx.errorf(manuscript.ErrEmptyOrMisnumberedReference, "references must be followed by a space")
	}

	value, err := lx.number(digits)
	if err != nil {
		return EOF, err
	}
	lx.refLines++
	if value != lx.refLines {
		return EOF, lx.errorf(manuscript.ErrReferenceOutOfSequence, "expected reference number %d", lx.refLines)
	}

	i := lx.add(manuscript.KindReference)
	lx.out.Token(i).Index = int32(value)

	return lx.commit(n + 2)
}

// commit consumes a verified n-byte line prefix and rewrites the rest of the
// line as text.
func (lx *lexer) commit(n int) (byte, error) {
	if err := lx.sc.Skip(n); err != nil {
		return EOF, err
	}
	c, err := lx.sc.NextFiltered()
	if err != nil {
		return EOF, err
	}
	return lx.text(c)
}

// peekDigits returns c followed by the run of raw digits after it.
func (lx *lexer) peekDigits(c byte) []byte {
	digits := []byte{c}
	for n := 0; isDigit(lx.sc.Peek(n)); n++ {
		digits = append(digits, lx.sc.Peek(n))
	}
	return digits
}

// number parses a run of decimal digits no longer than maxDigits.
func (lx *lexer) number(digits []byte) (int, error) {
	if len(digits) > maxDigits {
		return 0, lx.errorf(manuscript.ErrNumberOutOfRange, "numbers are limited to %d digits", maxDigits)
	}
	value := 0
	for _, d := range digits {
		value = value*10 + int(d-'0')
	}
	return value, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
