package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/press/pkg/lexer"
	"github.com/yaklabco/press/pkg/manuscript"
	"github.com/yaklabco/press/pkg/validate"
)

func check(t *testing.T, src string) (*manuscript.Stream, *validate.Result) {
	t.Helper()

	s, err := lexer.Tokenize([]byte(src))
	require.NoError(t, err, "%q", src)

	res, err := validate.Validate(s)
	require.NoError(t, err, "%q", src)
	return s, res
}

func checkErr(t *testing.T, src string) *manuscript.Error {
	t.Helper()

	s, err := lexer.Tokenize([]byte(src))
	require.NoError(t, err, "%q", src)

	_, err = validate.Validate(s)
	require.Error(t, err, "%q", src)

	var merr *manuscript.Error
	require.ErrorAs(t, err, &merr)
	assert.True(t, merr.Kind.IsStructural())
	assert.Zero(t, merr.Column)
	return merr
}

func streamOf(kinds ...manuscript.Kind) *manuscript.Stream {
	s := manuscript.NewStream(0)
	for i, k := range kinds {
		s.Append(manuscript.Token{Kind: k, Line: int32(i + 1), Start: manuscript.NoText})
	}
	return s
}

func TestValidateMinimalDocument(t *testing.T) {
	t.Parallel()

	_, res := check(t, "# Title\n\nBody text.\n\n")
	assert.Equal(t, manuscript.Sizing{
		Chapters: 1,
		Elements: validate.HeadingWeight + validate.ParagraphWeight,
	}, res.Sizing)
}

func TestValidateSizing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want manuscript.Sizing
	}{
		{
			name: "continuation lines",
			src:  "# T\n\nOne\ntwo\nthree\n",
			want: manuscript.Sizing{Chapters: 1, Elements: 1 + 3 + 2 + 2},
		},
		{
			name: "chapters and subheadings",
			src:  "# A\n\n## B\n\n### C\n\n# D\n",
			want: manuscript.Sizing{Chapters: 2, Elements: 4},
		},
		{
			name: "references",
			src:  "# T\n\n[1] One.\n\n[2] Two.\n",
			want: manuscript.Sizing{Chapters: 1, Elements: 3, References: 2},
		},
		{
			name: "list run",
			src:  "# T\n\n* a\n* b\n* c\n\n1. x\n",
			want: manuscript.Sizing{Chapters: 1, Elements: 1 + (3 + 2) + 3},
		},
		{
			name: "block quote with citation",
			src:  "# T\n\n\tQuote line.\n\tMore.\n\t\n\t---Author\n\nAfter.\n",
			want: manuscript.Sizing{Chapters: 1, Elements: 1 + (5 + 2 + 2 + 1) + 3},
		},
		{
			name: "leading blank lines",
			src:  "\n\n# T\n",
			want: manuscript.Sizing{Chapters: 1, Elements: 1},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, res := check(t, tc.src)
			assert.Equal(t, tc.want, res.Sizing)
		})
	}
}

func TestValidateParagraphBreak(t *testing.T) {
	t.Parallel()

	in, res := check(t, "# T\n\nOne.\n\n\nTwo.\n")

	// H1, NL, P, NL, NL, P, NL, EOF
	require.Equal(t, in.Len(), res.Tokens.Len())
	assert.Equal(t, manuscript.KindParagraphBreak, res.Tokens.At(4).Kind)
	assert.Equal(t, manuscript.KindNewline, in.At(4).Kind, "input must not be modified")
	assert.Equal(t, 1+3+1+3, res.Sizing.Elements)
}

func TestValidateNoBreakBeforeNonParagraph(t *testing.T) {
	t.Parallel()

	_, res := check(t, "# T\n\nOne.\n\n\n## S\n")
	for _, tok := range res.Tokens.Tokens() {
		assert.NotEqual(t, manuscript.KindParagraphBreak, tok.Kind)
	}

	_, res = check(t, "# T\n\nOne.\n\nTwo.\n")
	for _, tok := range res.Tokens.Tokens() {
		assert.NotEqual(t, manuscript.KindParagraphBreak, tok.Kind)
	}
}

func TestValidateBlockCitation(t *testing.T) {
	t.Parallel()

	in, res := check(t, "# T\n\n\tQuote.\n\t\n\t---Author\n\n")

	// H1, NL, BP, BN, BP, NL, ...
	assert.Equal(t, manuscript.KindBlockCitation, res.Tokens.At(4).Kind)
	assert.Equal(t, manuscript.KindBlockParagraph, in.At(4).Kind)

	// An em dash on a line that does not follow a block blank stays text.
	_, res = check(t, "# T\n\n\tQuote.\n\t---Not a citation\n")
	assert.Equal(t, manuscript.KindBlockParagraph, res.Tokens.At(3).Kind)
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		kind manuscript.ErrorKind
		line int
	}{
		{"no heading", "Body.\n", manuscript.ErrMissingOpeningHeading, 1},
		{"starts with subheading", "## Sub\n", manuscript.ErrMissingOpeningHeading, 1},
		{"empty", "", manuscript.ErrMissingOpeningHeading, 1},
		{"heading not separated", "# T\nBody.\n", manuscript.ErrHeadingNotSeparated, 2},
		{"paragraph then list", "# T\n\nOne.\n* a\n", manuscript.ErrParagraphNotSeparated, 4},
		{"reference not separated", "# T\n\n[1] One.\n[2] Two.\n", manuscript.ErrReferenceNotSeparated, 4},
		{"mixed list kinds", "# T\n\n* a\n1. b\n", manuscript.ErrListNotSeparated, 4},
		{"unordered then paragraph", "# T\n\n* a\nText.\n", manuscript.ErrListNotSeparated, 4},
		{"quote starts blank", "# T\n\n\t\n\tQ.\n", manuscript.ErrBlockQuoteStartsWithBlank, 3},
		{"quote not separated", "# T\n\n\tQuote.\nAfter.\n", manuscript.ErrBlockQuoteNotSeparated, 4},
		{"block blank then unindented blank", "# T\n\n\tQuote.\n\t\n\n", manuscript.ErrBlockBlankLine, 5},
		{"citation not separated", "# T\n\n\tQuote.\n\t\n\t---A\n\tMore.\n", manuscript.ErrBlockCitationNotSeparated, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			merr := checkErr(t, tc.src)
			assert.Equal(t, tc.kind, merr.Kind)
			assert.Equal(t, tc.line, merr.Line)
		})
	}
}

func TestValidateHandBuiltStreams(t *testing.T) {
	t.Parallel()

	t.Run("refined paragraph break", func(t *testing.T) {
		t.Parallel()

		s := streamOf(manuscript.KindHeading1, manuscript.KindNewline, manuscript.KindParagraph,
			manuscript.KindNewline, manuscript.KindParagraphBreak, manuscript.KindParagraph, manuscript.KindNewline)
		res, err := validate.Validate(s)
		require.NoError(t, err)
		assert.Equal(t, 1+3+1+3, res.Sizing.Elements)
	})

	t.Run("break before heading", func(t *testing.T) {
		t.Parallel()

		s := streamOf(manuscript.KindHeading1, manuscript.KindNewline, manuscript.KindParagraphBreak,
			manuscript.KindHeading2, manuscript.KindNewline)
		_, err := validate.Validate(s)
		require.ErrorIs(t, err, manuscript.ErrParagraphBreak)
	})

	t.Run("preformatted", func(t *testing.T) {
		t.Parallel()

		s := streamOf(manuscript.KindHeading1, manuscript.KindNewline, manuscript.KindPreformatted,
			manuscript.KindNewline, manuscript.KindEOF)
		res, err := validate.Validate(s)
		require.NoError(t, err)
		assert.Equal(t, validate.HeadingWeight+validate.PreformattedWeight, res.Sizing.Elements)

		s = streamOf(manuscript.KindHeading1, manuscript.KindNewline, manuscript.KindPreformatted,
			manuscript.KindParagraph)
		_, err = validate.Validate(s)
		require.ErrorIs(t, err, manuscript.ErrPreformattedNotSeparated)
	})

	t.Run("quote starts with citation", func(t *testing.T) {
		t.Parallel()

		s := streamOf(manuscript.KindHeading1, manuscript.KindNewline, manuscript.KindBlockCitation,
			manuscript.KindNewline)
		_, err := validate.Validate(s)
		require.ErrorIs(t, err, manuscript.ErrBlockQuoteStartsWithCitation)
	})

	t.Run("refined citation", func(t *testing.T) {
		t.Parallel()

		s := streamOf(manuscript.KindHeading1, manuscript.KindNewline, manuscript.KindBlockParagraph,
			manuscript.KindBlockNewline, manuscript.KindBlockCitation, manuscript.KindNewline,
			manuscript.KindBlockParagraph, manuscript.KindBlockParagraph, manuscript.KindNewline)
		res, err := validate.Validate(s)
		require.NoError(t, err)
		assert.Equal(t, 1+(5+2+1)+(5+2+2), res.Sizing.Elements)
	})

	t.Run("missing terminator", func(t *testing.T) {
		t.Parallel()

		s := streamOf(manuscript.KindHeading1)
		_, err := validate.Validate(s)
		var merr *manuscript.Error
		require.ErrorAs(t, err, &merr)
		assert.Equal(t, manuscript.ErrHeadingNotSeparated, merr.Kind)
		assert.Equal(t, 1, merr.Line)
	})
}

func TestValidateIsRepeatable(t *testing.T) {
	t.Parallel()

	in, first := check(t, "# T\n\nOne.\n\n\nTwo.\n")
	second, err := validate.Validate(in)
	require.NoError(t, err)
	assert.Equal(t, first.Sizing, second.Sizing)
	assert.Equal(t, first.Tokens.Tokens(), second.Tokens.Tokens())

	// Validating the refined stream gives the same counts.
	third, err := validate.Validate(first.Tokens)
	require.NoError(t, err)
	assert.Equal(t, first.Sizing, third.Sizing)
}
