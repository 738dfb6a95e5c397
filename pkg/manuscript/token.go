package manuscript

import "unsafe"

// NoText marks a token that carries no text, such as a blank line.
const NoText = -1

// pageSize is the allocation granule for the token array.
const pageSize = 4096

// Token is one record per logical source line, or per structural blank line.
// Text lives in the owning Stream's buffer at [Start, Start+Length).
type Token struct {
	Kind   Kind
	Line   int32 // 1-based source line
	Start  int32 // offset into Stream.Buffer, or NoText
	Index  int32 // list ordinal or reference number
	Length int32
	_      [3]uint32 // pads the record to 32 bytes
}

// tokensPerPage is how many tokens fit in one page.
//
//nolint:gochecknoglobals // Derived constant.
var tokensPerPage = pageSize / int(unsafe.Sizeof(Token{}))

// Stream is an ordered sequence of line tokens plus the rewritten text they
// point into. The lexer is its only writer; once handed out it is read-only
// apart from Clone.
type Stream struct {
	tokens []Token
	text   []byte
}

// NewStream returns an empty stream whose text buffer can hold textCap bytes
// without reallocating.
func NewStream(textCap int) *Stream {
	if textCap < 0 {
		textCap = 0
	}
	return &Stream{
		tokens: make([]Token, 0, tokensPerPage),
		text:   make([]byte, 0, textCap),
	}
}

// Append adds a token and returns its index. The array grows in whole pages.
func (s *Stream) Append(tok Token) int {
	if len(s.tokens) == cap(s.tokens) {
		s.grow()
	}
	s.tokens = append(s.tokens, tok)
	return len(s.tokens) - 1
}

func (s *Stream) grow() {
	pages := cap(s.tokens) / tokensPerPage
	if pages == 0 {
		pages = 1
	} else {
		pages *= 2
	}
	tokens := make([]Token, len(s.tokens), pages*tokensPerPage)
	copy(tokens, s.tokens)
	s.tokens = tokens
}

// WriteByte appends one byte of rewritten text. It never fails.
func (s *Stream) WriteByte(c byte) error {
	s.text = append(s.text, c)
	return nil
}

// Offset is the current end of the text buffer.
func (s *Stream) Offset() int {
	return len(s.text)
}

// Len returns the number of tokens.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// Cap returns the token array capacity; always a whole number of pages.
func (s *Stream) Cap() int {
	return cap(s.tokens)
}

// At returns a copy of the i'th token.
func (s *Stream) At(i int) Token {
	return s.tokens[i]
}

// Token returns a pointer to the i'th token. The pointer is invalidated by the
// next Append.
func (s *Stream) Token(i int) *Token {
	return &s.tokens[i]
}

// Tokens returns the token slice. Callers must not modify it.
func (s *Stream) Tokens() []Token {
	return s.tokens
}

// Text returns the rewritten text of tok, or nil for tokens without text.
func (s *Stream) Text(tok Token) []byte {
	if tok.Start == NoText {
		return nil
	}
	end := int(tok.Start) + int(tok.Length)
	if tok.Start < 0 || end > len(s.text) {
		return nil
	}
	return s.text[tok.Start:end:end]
}

// Buffer returns the whole rewritten text buffer.
func (s *Stream) Buffer() []byte {
	return s.text
}

// Clone copies the token array. The text buffer is shared since nothing
// rewrites text after lexing.
func (s *Stream) Clone() *Stream {
	tokens := make([]Token, len(s.tokens), cap(s.tokens))
	copy(tokens, s.tokens)
	return &Stream{tokens: tokens, text: s.text}
}
