package manuscript

// Sentinel bytes embedded in rewritten text. They sit in 0x10-0x18, a range
// the scanner rejects in source, so they cannot collide with text bytes.
const (
	SentinelEnDash byte = 0x10 + iota
	SentinelEmDash
	SentinelReference
	SentinelStrongBegin
	SentinelStrongEnd
	SentinelEmphasisBegin
	SentinelEmphasisEnd
	SentinelQuoteBegin
	SentinelQuoteEnd
)

// IsSentinel reports whether c is one of the inline sentinel codes.
func IsSentinel(c byte) bool {
	return c >= SentinelEnDash && c <= SentinelQuoteEnd
}

// SegmentKind tags one element of decoded inline text.
type SegmentKind uint8

// Segment kinds. SegmentText is a run of ordinary bytes; the rest are markup
// events with no payload.
const (
	SegmentText SegmentKind = iota
	SegmentEnDash
	SegmentEmDash
	SegmentReference
	SegmentStrongBegin
	SegmentStrongEnd
	SegmentEmphasisBegin
	SegmentEmphasisEnd
	SegmentQuoteBegin
	SegmentQuoteEnd
)

//nolint:gochecknoglobals // Read-only lookup table.
var segmentNames = [...]string{
	SegmentText:          "text",
	SegmentEnDash:        "en-dash",
	SegmentEmDash:        "em-dash",
	SegmentReference:     "reference",
	SegmentStrongBegin:   "strong-begin",
	SegmentStrongEnd:     "strong-end",
	SegmentEmphasisBegin: "emphasis-begin",
	SegmentEmphasisEnd:   "emphasis-end",
	SegmentQuoteBegin:    "quote-begin",
	SegmentQuoteEnd:      "quote-end",
}

func (k SegmentKind) String() string {
	if int(k) < len(segmentNames) {
		return segmentNames[k]
	}
	return "segment(?)"
}

// Segment is one decoded piece of inline text.
type Segment struct {
	Kind SegmentKind
	Text []byte // only for SegmentText
}

// Segments decodes sentinel-coded text into position-ordered segments.
// Adjacent ordinary bytes are merged into a single SegmentText.
func Segments(text []byte) []Segment {
	var out []Segment
	start := 0
	for i, c := range text {
		if !IsSentinel(c) {
			continue
		}
		if i > start {
			out = append(out, Segment{Kind: SegmentText, Text: text[start:i:i]})
		}
		out = append(out, Segment{Kind: SegmentKind(c-SentinelEnDash) + SegmentEnDash})
		start = i + 1
	}
	if start < len(text) {
		out = append(out, Segment{Kind: SegmentText, Text: text[start:]})
	}
	return out
}

// PlainText strips sentinels, rendering dashes and quotes as their Unicode
// punctuation. Emphasis and references vanish.
func PlainText(text []byte) string {
	buf := make([]byte, 0, len(text))
	for _, c := range text {
		switch c {
		case SentinelEnDash:
			buf = append(buf, "\u2013"...)
		case SentinelEmDash:
			buf = append(buf, "\u2014"...)
		case SentinelQuoteBegin:
			buf = append(buf, "\u201c"...)
		case SentinelQuoteEnd:
			buf = append(buf, "\u201d"...)
		default:
			if !IsSentinel(c) {
				buf = append(buf, c)
			}
		}
	}
	return string(buf)
}
