// Package validate walks a token stream, enforces the manuscript grammar and
// computes the sizing counters used to pre-size document assembly.
package validate

import "github.com/yaklabco/press/pkg/manuscript"

// Element weights. They deliberately overestimate what the assembler builds.
const (
	ParagraphWeight      = 3
	ParagraphLineWeight  = 2
	ParagraphBreakWeight = 1
	HeadingWeight        = 1
	ReferenceWeight      = 1
	PreformattedWeight   = 1
	BlockQuoteWeight     = 5
	BlockParagraphWeight = 2
	BlockNewlineWeight   = 1
	ListWeight           = 3
	ListItemWeight       = 1
)

// Result is the outcome of a successful validation.
type Result struct {
	// Tokens is a refined copy of the input: some blank lines become
	// paragraph breaks and some block quote lines become citations.
	Tokens *manuscript.Stream

	Sizing manuscript.Sizing
}

type validator struct {
	stream *manuscript.Stream
	pos    int
	eof    manuscript.Token
	sizing manuscript.Sizing
}

// Validate checks the grammar of a finished token stream. The input is not
// modified. The first violation is returned as a *manuscript.Error carrying
// the offending line.
func Validate(in *manuscript.Stream) (*Result, error) {
	v := &validator{stream: in.Clone()}

	tok := v.next()
	for tok.Kind == manuscript.KindNewline {
		tok = v.next()
	}
	if tok.Kind != manuscript.KindHeading1 {
		return nil, v.errorf(tok, manuscript.ErrMissingOpeningHeading,
			"the first printable element must be a top-level heading")
	}

	var err error
	for tok.Kind != manuscript.KindEOF {
		switch {
		case tok.Kind == manuscript.KindParagraph:
			tok, err = v.paragraph()
		case tok.Kind == manuscript.KindParagraphBreak:
			tok, err = v.paragraphBreak(tok)
		case tok.Kind.HeadingLevel() > 0:
			tok, err = v.heading(tok)
		case tok.Kind == manuscript.KindReference:
			v.sizing.References++
			v.sizing.Elements += ReferenceWeight
			tok, err = v.separated(manuscript.ErrReferenceNotSeparated,
				"references must be followed by a blank line")
		case tok.Kind == manuscript.KindPreformatted:
			v.sizing.Elements += PreformattedWeight
			tok, err = v.separated(manuscript.ErrPreformattedNotSeparated,
				"preformatted blocks must be followed by a blank line")
		case tok.Kind == manuscript.KindBlockNewline:
			err = v.errorf(tok, manuscript.ErrBlockQuoteStartsWithBlank, "block quotes may not begin with a blank line")
		case tok.Kind == manuscript.KindBlockCitation:
			err = v.errorf(tok, manuscript.ErrBlockQuoteStartsWithCitation,
				"block quotes may not begin with a citation \"---\"")
		case tok.Kind == manuscript.KindBlockParagraph:
			tok, err = v.blockQuote(tok)
		case tok.Kind.IsList():
			tok, err = v.list(tok.Kind)
		default:
			tok = v.next()
		}
		if err != nil {
			return nil, err
		}
	}

	return &Result{Tokens: v.stream, Sizing: v.sizing}, nil
}

// next advances to the following token. Running off the end yields EOF so
// hand-built streams without a terminator still finish.
func (v *validator) next() *manuscript.Token {
	if v.pos >= v.stream.Len() {
		v.eof = manuscript.Token{Kind: manuscript.KindEOF, Start: manuscript.NoText}
		if n := v.stream.Len(); n > 0 {
			v.eof.Line = v.stream.At(n - 1).Line
		}
		return &v.eof
	}
	tok := v.stream.Token(v.pos)
	v.pos++
	return tok
}

func (v *validator) errorf(tok *manuscript.Token, kind manuscript.ErrorKind, format string, args ...any) error {
	return manuscript.Errorf(kind, int(tok.Line), 0, format, args...)
}

// separated requires the next token to be an unindented blank line.
func (v *validator) separated(kind manuscript.ErrorKind, message string) (*manuscript.Token, error) {
	tok := v.next()
	if tok.Kind != manuscript.KindNewline {
		return nil, v.errorf(tok, kind, "%s", message)
	}
	return tok, nil
}

func (v *validator) heading(tok *manuscript.Token) (*manuscript.Token, error) {
	v.sizing.Elements += HeadingWeight
	if tok.Kind == manuscript.KindHeading1 {
		v.sizing.Chapters++
	}
	return v.separated(manuscript.ErrHeadingNotSeparated, "headings must be followed by a blank line")
}

// paragraph consumes consecutive paragraph lines and the blank that must end
// them. A second blank followed by another paragraph marks a paragraph break.
func (v *validator) paragraph() (*manuscript.Token, error) {
	v.sizing.Elements += ParagraphWeight

	tok := v.next()
	for tok.Kind == manuscript.KindParagraph {
		v.sizing.Elements += ParagraphLineWeight
		tok = v.next()
	}
	if tok.Kind != manuscript.KindNewline {
		return nil, v.errorf(tok, manuscript.ErrParagraphNotSeparated, "paragraphs must be followed by a blank line")
	}

	tok = v.next()
	if tok.Kind != manuscript.KindNewline {
		return tok, nil
	}

	brk := tok
	for tok.Kind == manuscript.KindNewline {
		tok = v.next()
	}
	if tok.Kind == manuscript.KindParagraph {
		brk.Kind = manuscript.KindParagraphBreak
		v.sizing.Elements += ParagraphBreakWeight
	}
	return tok, nil
}

// paragraphBreak only occurs in streams that were refined before.
func (v *validator) paragraphBreak(tok *manuscript.Token) (*manuscript.Token, error) {
	v.sizing.Elements += ParagraphBreakWeight

	tok = v.next()
	for tok.Kind == manuscript.KindNewline {
		tok = v.next()
	}
	if tok.Kind != manuscript.KindParagraph {
		return nil, v.errorf(tok, manuscript.ErrParagraphBreak, "a paragraph break must be followed by a paragraph")
	}
	return tok, nil
}

// blockQuote walks an indented region starting at its first paragraph line.
// It ends at the first unindented blank line.
func (v *validator) blockQuote(tok *manuscript.Token) (*manuscript.Token, error) {
	v.sizing.Elements += BlockQuoteWeight

	for {
		switch tok.Kind {
		case manuscript.KindBlockParagraph:
			v.sizing.Elements += BlockParagraphWeight
			tok = v.next()
			switch tok.Kind {
			case manuscript.KindBlockParagraph, manuscript.KindBlockNewline, manuscript.KindNewline:
			default:
				return nil, v.errorf(tok, manuscript.ErrBlockQuoteNotSeparated,
					"block quotes must be followed by a blank line")
			}

		case manuscript.KindBlockNewline:
			// The citation, if any, reuses this slot.
			v.sizing.Elements += BlockNewlineWeight
			tok = v.next()
			if tok.Kind == manuscript.KindBlockParagraph && v.isCitation(tok) {
				tok.Kind = manuscript.KindBlockCitation
			}
			if tok.Kind != manuscript.KindBlockParagraph && tok.Kind != manuscript.KindBlockCitation {
				return nil, v.errorf(tok, manuscript.ErrBlockBlankLine,
					"blank lines within block quotes must be followed by an indented paragraph or indented citation \"---\"")
			}

		case manuscript.KindBlockCitation:
			tok = v.next()
			if tok.Kind != manuscript.KindNewline {
				return nil, v.errorf(tok, manuscript.ErrBlockCitationNotSeparated,
					"block quote citations must be followed by a blank unindented line")
			}

		case manuscript.KindNewline:
			return tok, nil

		default:
			return nil, v.errorf(tok, manuscript.ErrUnexpectedToken, "unexpected %s inside a block quote", tok.Kind)
		}
	}
}

// isCitation reports whether a block line opens with an em dash.
func (v *validator) isCitation(tok *manuscript.Token) bool {
	text := v.stream.Text(*tok)
	return len(text) > 0 && text[0] == manuscript.SentinelEmDash
}

// list consumes a run of items of one kind, which must end in a blank line.
func (v *validator) list(kind manuscript.Kind) (*manuscript.Token, error) {
	v.sizing.Elements += ListWeight

	tok := v.next()
	for tok.Kind == kind {
		v.sizing.Elements += ListItemWeight
		tok = v.next()
	}
	if tok.Kind != manuscript.KindNewline {
		return nil, v.errorf(tok, manuscript.ErrListNotSeparated, "list items must be followed by a blank line")
	}
	return tok, nil
}
