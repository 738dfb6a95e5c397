// Package manuscript defines the data model shared by the press front end:
// line tokens, the token stream, inline sentinel codes, sizing counters and
// the error taxonomy.
package manuscript

import "fmt"

// Kind classifies a line token.
type Kind uint8

// Line token kinds. ParagraphBreak and BlockCitation are never produced by the
// lexer; the validator derives them from context.
const (
	KindNone Kind = iota
	KindEOF
	KindNewline
	KindMetadata
	KindParagraph
	KindHeading1
	KindHeading2
	KindHeading3
	KindReference
	KindPreformatted
	KindBlockNewline
	KindUnorderedList
	KindBlockParagraph
	KindOrderedListRoman
	KindOrderedListArabic
	KindOrderedListLetter
	KindParagraphBreak
	KindBlockCitation

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	KindNone:              "none",
	KindEOF:               "eof",
	KindNewline:           "newline",
	KindMetadata:          "metadata",
	KindParagraph:         "paragraph",
	KindHeading1:          "heading-1",
	KindHeading2:          "heading-2",
	KindHeading3:          "heading-3",
	KindReference:         "reference",
	KindPreformatted:      "preformatted",
	KindBlockNewline:      "block-newline",
	KindUnorderedList:     "unordered-list",
	KindBlockParagraph:    "block-paragraph",
	KindOrderedListRoman:  "ordered-list-roman",
	KindOrderedListArabic: "ordered-list-arabic",
	KindOrderedListLetter: "ordered-list-letter",
	KindParagraphBreak:    "paragraph-break",
	KindBlockCitation:     "block-citation",
}

// String returns the hyphenated kind name used in dumps and messages.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// HeadingLevel returns 1, 2 or 3 for heading kinds and 0 otherwise.
func (k Kind) HeadingLevel() int {
	switch k {
	case KindHeading1:
		return 1
	case KindHeading2:
		return 2
	case KindHeading3:
		return 3
	default:
		return 0
	}
}

// IsList reports whether k is one of the list item kinds.
func (k Kind) IsList() bool {
	switch k {
	case KindUnorderedList, KindOrderedListRoman, KindOrderedListArabic, KindOrderedListLetter:
		return true
	default:
		return false
	}
}

// IsBlockQuote reports whether k belongs to the block quote family.
func (k Kind) IsBlockQuote() bool {
	return k == KindBlockNewline || k == KindBlockParagraph || k == KindBlockCitation
}

// HasText reports whether tokens of this kind carry rewritten text.
func (k Kind) HasText() bool {
	switch k {
	case KindNone, KindEOF, KindNewline, KindBlockNewline, KindParagraphBreak, KindMetadata:
		return false
	default:
		return true
	}
}
