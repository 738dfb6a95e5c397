package manuscript

import "fmt"

// ErrorKind identifies a class of manuscript error. Every kind implements
// error so callers can match with errors.Is(err, manuscript.ErrTrailingSpace).
type ErrorKind uint8

// Scanner and lexer errors.
const (
	ErrUnknown ErrorKind = iota
	ErrControlCharacter
	ErrUnterminatedComment
	ErrLeadingSpace
	ErrTrailingSpace
	ErrExtraneousSpace
	ErrTabOutsideBlockquote
	ErrTooManyAsterisks
	ErrMixedEmphasisMarkup
	ErrUnterminatedMarkup
	ErrTooManyHyphens
	ErrEmptyOrMisnumberedReference
	ErrReferenceOutOfSequence
	ErrHeadingTooDeep
	ErrHeadingMissingSpace
	ErrUnsupportedRomanNumeral
	ErrNumberOutOfRange

	// Validator errors.
	ErrMissingOpeningHeading
	ErrParagraphNotSeparated
	ErrParagraphBreak
	ErrHeadingNotSeparated
	ErrReferenceNotSeparated
	ErrPreformattedNotSeparated
	ErrListNotSeparated
	ErrBlockQuoteStartsWithBlank
	ErrBlockQuoteStartsWithCitation
	ErrBlockQuoteNotSeparated
	ErrBlockBlankLine
	ErrBlockCitationNotSeparated
	ErrUnexpectedToken

	errorKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var errorKindNames = [errorKindCount]string{
	ErrUnknown:                      "Unknown",
	ErrControlCharacter:             "ControlCharacter",
	ErrUnterminatedComment:          "UnterminatedComment",
	ErrLeadingSpace:                 "LeadingSpace",
	ErrTrailingSpace:                "TrailingSpace",
	ErrExtraneousSpace:              "ExtraneousSpace",
	ErrTabOutsideBlockquote:         "TabOutsideBlockquote",
	ErrTooManyAsterisks:             "TooManyAsterisks",
	ErrMixedEmphasisMarkup:          "MixedEmphasisMarkup",
	ErrUnterminatedMarkup:           "UnterminatedMarkup",
	ErrTooManyHyphens:               "TooManyHyphens",
	ErrEmptyOrMisnumberedReference:  "EmptyOrMisnumberedReference",
	ErrReferenceOutOfSequence:       "ReferenceOutOfSequence",
	ErrHeadingTooDeep:               "HeadingTooDeep",
	ErrHeadingMissingSpace:          "HeadingMissingSpace",
	ErrUnsupportedRomanNumeral:      "UnsupportedRomanNumeral",
	ErrNumberOutOfRange:             "NumberOutOfRange",
	ErrMissingOpeningHeading:        "MissingOpeningHeading",
	ErrParagraphNotSeparated:        "ParagraphNotSeparated",
	ErrParagraphBreak:               "ParagraphBreak",
	ErrHeadingNotSeparated:          "HeadingNotSeparated",
	ErrReferenceNotSeparated:        "ReferenceNotSeparated",
	ErrPreformattedNotSeparated:     "PreformattedNotSeparated",
	ErrListNotSeparated:             "ListNotSeparated",
	ErrBlockQuoteStartsWithBlank:    "BlockQuoteStartsWithBlank",
	ErrBlockQuoteStartsWithCitation: "BlockQuoteStartsWithCitation",
	ErrBlockQuoteNotSeparated:       "BlockQuoteNotSeparated",
	ErrBlockBlankLine:               "BlockBlankLine",
	ErrBlockCitationNotSeparated:    "BlockCitationNotSeparated",
	ErrUnexpectedToken:              "UnexpectedToken",
}

// String returns the kind name, e.g. "TrailingSpace".
func (k ErrorKind) String() string {
	if k < errorKindCount {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error implements error.
func (k ErrorKind) Error() string {
	return k.String()
}

// IsStructural reports whether the kind is raised by the validator rather
// than the scanner or lexer.
func (k ErrorKind) IsStructural() bool {
	return k >= ErrMissingOpeningHeading && k < errorKindCount
}

// ParseErrorKind is the inverse of ErrorKind.String.
func ParseErrorKind(name string) (ErrorKind, bool) {
	for k, n := range errorKindNames {
		if n == name {
			return ErrorKind(k), true
		}
	}
	return ErrUnknown, false
}

// Error is a fatal manuscript error. Column is zero for validator errors,
// which are reported per line.
type Error struct {
	Kind    ErrorKind
	Line    int
	Column  int
	Message string
}

// Errorf builds an *Error at the given position.
func Errorf(kind ErrorKind, line, column int, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Unwrap exposes the kind for errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}
