package lexer

import (
	"strconv"

	"github.com/yaklabco/press/pkg/manuscript"
)

// romanNumeralMax is the largest Roman numeral accepted as a list index.
const romanNumeralMax = 26

//nolint:gochecknoglobals // Built once, read-only.
var romanIndex = buildRomanIndex(romanNumeralMax)

func buildRomanIndex(maxValue int) map[string]int {
	index := make(map[string]int, maxValue)
	for i := 1; i <= maxValue; i++ {
		index[toRoman(i)] = i
	}
	return index
}

// toRoman renders n in canonical upper-case Roman numerals.
func toRoman(n int) string {
	values := [...]int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := [...]string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var out []byte
	for i, v := range values {
		for n >= v {
			out = append(out, symbols[i]...)
			n -= v
		}
	}
	return string(out)
}

// hasListSuffix reports whether the raw bytes at Peek(n) are ". ".
func (lx *lexer) hasListSuffix(n int) bool {
	return lx.sc.Peek(n) == '.' && lx.sc.Peek(n+1) == ' '
}

func (lx *lexer) unorderedList(c byte) (byte, error) {
	if lx.sc.Peek(0) != ' ' {
		return lx.paragraph(c, false)
	}
	if err := lx.sc.Skip(1); err != nil {
		return EOF, err
	}
	lx.add(manuscript.KindUnorderedList)
	return lx.commit(0)
}

func (lx *lexer) arabicList(c byte) (byte, error) {
	digits := lx.peekDigits(c)
	n := len(digits) - 1
	if !lx.hasListSuffix(n) {
		return lx.paragraph(c, false)
	}

	value, err := lx.number(digits)
	if err != nil {
		return EOF, err
	}
	i := lx.add(manuscript.KindOrderedListArabic)
	lx.out.Token(i).Index = int32(value)

	return lx.commit(n + 2)
}

func (lx *lexer) letterList(c byte) (byte, error) {
	if !lx.hasListSuffix(0) {
		return lx.paragraph(c, false)
	}
	i := lx.add(manuscript.KindOrderedListLetter)
	lx.out.Token(i).Index = int32(c-'a') + 1

	return lx.commit(2)
}

func (lx *lexer) romanList(c byte) (byte, error) {
	numeral := []byte{c}
	for n := 0; isRomanDigit(lx.sc.Peek(n)); n++ {
		numeral = append(numeral, lx.sc.Peek(n))
	}
	n := len(numeral) - 1
	if !lx.hasListSuffix(n) {
		return lx.paragraph(c, false)
	}

	value, ok := romanIndex[string(numeral)]
	if !ok {
		return EOF, lx.errorf(manuscript.ErrUnsupportedRomanNumeral,
			"Roman numeral %q is not supported; ordered lists accept I to %s",
			numeral, toRoman(romanNumeralMax))
	}
	i := lx.add(manuscript.KindOrderedListRoman)
	lx.out.Token(i).Index = int32(value)

	return lx.commit(n + 2)
}

func isRomanDigit(c byte) bool {
	return c == 'I' || c == 'V' || c == 'X'
}

// RomanNumeral returns the canonical numeral for a Roman list index, or ""
// when the index is outside the supported range.
func RomanNumeral(index int) string {
	if index < 1 || index > romanNumeralMax {
		return ""
	}
	return toRoman(index)
}

// LetterIndex returns the list letter for a lettered list index.
func LetterIndex(index int) string {
	if index < 1 || index > 26 {
		return strconv.Itoa(index)
	}
	return string(rune('a' + index - 1))
}
