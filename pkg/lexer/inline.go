package lexer

import "github.com/yaklabco/press/pkg/manuscript"

type emphasisState uint8

const (
	emphasisNone emphasisState = iota
	emphasisStrong
	emphasisPlain
)

// text rewrites the rest of a line into the stream, starting with c, and
// returns the first character of the following line. Markup delimiters are
// replaced by sentinels; everything else is copied through.
func (lx *lexer) text(c byte) (byte, error) {
	if c == ' ' {
		return EOF, lx.errorf(manuscript.ErrLeadingSpace, "leading spaces are not permitted")
	}

	var (
		err   error
		quote bool
		state emphasisState
	)

	for {
		switch c {
		case '"':
			if quote {
				lx.put(manuscript.SentinelQuoteEnd)
			} else {
				lx.put(manuscript.SentinelQuoteBegin)
			}
			quote = !quote
		case '[':
			err = lx.inlineReference()
		case ' ':
			if lx.sc.Prev() == ' ' {
				return EOF, lx.errorf(manuscript.ErrExtraneousSpace, "extraneous space")
			}
			lx.put(c)
		case '\t':
			return EOF, lx.errorf(manuscript.ErrTabOutsideBlockquote,
				"tabs are only permitted at the start of a line to mark a block quote")
		case '*':
			state, err = lx.emphasis(state)
		case '-':
			err = lx.dash()
		case '\n', EOF:
			if lx.sc.Prev() == ' ' {
				return EOF, lx.errorf(manuscript.ErrTrailingSpace, "trailing spaces are not permitted")
			}
			return lx.endLine(c, quote, state)
		default:
			lx.put(c)
		}
		if err != nil {
			return EOF, err
		}
		if c, err = lx.sc.NextFiltered(); err != nil {
			return EOF, err
		}
	}
}

func (lx *lexer) endLine(c byte, quote bool, state emphasisState) (byte, error) {
	if quote {
		return EOF, lx.errorf(manuscript.ErrUnterminatedMarkup, "unterminated quote")
	}
	switch state {
	case emphasisStrong:
		return EOF, lx.errorf(manuscript.ErrUnterminatedMarkup, "unterminated strong markup \"**\"")
	case emphasisPlain:
		return EOF, lx.errorf(manuscript.ErrUnterminatedMarkup, "unterminated emphasis markup '*'")
	case emphasisNone:
	}

	lx.out.Token(lx.current).Length = int32(lx.out.Offset() - lx.lineStart)

	if c == EOF {
		return EOF, nil
	}
	return lx.sc.NextFiltered()
}

// inlineReference reads "[n]" after its '[' and writes a reference sentinel.
// n must be the next number in this chapter's sequence.
func (lx *lexer) inlineReference() error {
	c, err := lx.sc.NextFiltered()
	if err != nil {
		return err
	}
	switch c {
	case ']':
		return lx.errorf(manuscript.ErrEmptyOrMisnumberedReference, "inline references may not be empty")
	case '0':
		return lx.errorf(manuscript.ErrEmptyOrMisnumberedReference, "references must begin from 1")
	}

	var digits []byte
	for c != ']' {
		if !isDigit(c) {
			return lx.errorf(manuscript.ErrEmptyOrMisnumberedReference, "references may only contain numbers")
		}
		digits = append(digits, c)
		if c, err = lx.sc.NextFiltered(); err != nil {
			return err
		}
	}

	value, err := lx.number(digits)
	if err != nil {
		return err
	}
	lx.inlineRefs++
	if value != lx.inlineRefs {
		return lx.errorf(manuscript.ErrReferenceOutOfSequence, "expected reference number %d", lx.inlineRefs)
	}

	lx.put(manuscript.SentinelReference)
	return nil
}

// emphasis handles a '*': "**" toggles strong, a lone '*' toggles emphasis.
// Only one style may be open at a time.
func (lx *lexer) emphasis(state emphasisState) (emphasisState, error) {
	if lx.sc.Peek(0) != '*' {
		switch state {
		case emphasisNone:
			lx.put(manuscript.SentinelEmphasisBegin)
			return emphasisPlain, nil
		case emphasisPlain:
			lx.put(manuscript.SentinelEmphasisEnd)
			return emphasisNone, nil
		case emphasisStrong:
		}
		return state, lx.errorf(manuscript.ErrMixedEmphasisMarkup,
			"emphasis tags '*' cannot be mixed with strong tags \"**\"")
	}

	if lx.sc.Peek(1) == '*' {
		return state, lx.errorf(manuscript.ErrTooManyAsterisks, "only two levels of '*' allowed")
	}

	switch state {
	case emphasisNone:
		lx.put(manuscript.SentinelStrongBegin)
		state = emphasisStrong
	case emphasisStrong:
		lx.put(manuscript.SentinelStrongEnd)
		state = emphasisNone
	case emphasisPlain:
		return state, lx.errorf(manuscript.ErrMixedEmphasisMarkup,
			"strong tags \"**\" cannot be mixed with emphasis tags '*'")
	}
	return state, lx.sc.Skip(1)
}

// dash turns "--" into an en dash and "---" into an em dash.
func (lx *lexer) dash() error {
	if lx.sc.Peek(0) != '-' {
		lx.put('-')
		return nil
	}
	if lx.sc.Peek(1) != '-' {
		lx.put(manuscript.SentinelEnDash)
		return lx.sc.Skip(1)
	}
	if lx.sc.Peek(2) == '-' {
		return lx.errorf(manuscript.ErrTooManyHyphens, "too many hyphens; use \"--\" or \"---\"")
	}
	lx.put(manuscript.SentinelEmDash)
	return lx.sc.Skip(2)
}
