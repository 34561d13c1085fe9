package compliance

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/engcheck/internal/redact"
	"github.com/dshills/engcheck/internal/schema"
)

// evidenceRadius is the number of bytes kept on each side of a keyword match.
const evidenceRadius = 40

// Evaluate returns a flag for every checklist item none of whose keywords
// occur in text, in checklist order.
//
// Matching is a case-insensitive substring search, not a word match: the
// keyword "safe" is satisfied by "unsafe". An empty checklist yields an empty
// result.
func Evaluate(checklist []schema.Standard, text string) []schema.Flag {
	lower := strings.ToLower(text)
	flags := make([]schema.Flag, 0)
	for _, item := range checklist {
		if _, _, ok := match(item, lower); !ok {
			flags = append(flags, schema.Flag{Item: item.ID, Message: item.Description})
		}
	}
	return flags
}

// Assess applies the same matching as Evaluate and records, for each item,
// the first keyword (in keyword order) found and a redacted snippet of the
// surrounding text.
func Assess(checklist []schema.Standard, text string) []schema.Assessment {
	lower := strings.ToLower(text)
	source := text
	if !offsetsAligned(text) {
		source = lower
	}

	out := make([]schema.Assessment, 0, len(checklist))
	for _, item := range checklist {
		a := schema.Assessment{Item: item.ID, Description: item.Description}
		if kw, at, ok := match(item, lower); ok {
			a.Satisfied = true
			a.MatchedKeyword = kw
			a.Evidence = snippet(source, at, len(strings.ToLower(kw)))
		}
		out = append(out, a)
	}
	return out
}

// offsetsAligned reports whether every rune of text lowers to a rune of the
// same encoded width, so byte offsets in strings.ToLower(text) are valid in
// text. Equal total length is not enough: runes that shrink and grow can
// cancel out.
func offsetsAligned(text string) bool {
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			// ToLower replaces invalid bytes with a 3-byte U+FFFD.
			return false
		}
		if utf8.RuneLen(unicode.ToLower(r)) != size {
			return false
		}
		i += size
	}
	return true
}

// match returns the first keyword of item contained in lower and its byte
// offset.
func match(item schema.Standard, lower string) (string, int, bool) {
	for _, kw := range item.Keywords {
		if at := strings.Index(lower, strings.ToLower(kw)); at >= 0 {
			return kw, at, true
		}
	}
	return "", -1, false
}

func snippet(text string, at, n int) string {
	start := at - evidenceRadius
	if start < 0 {
		start = 0
	}
	end := at + n + evidenceRadius
	if end > len(text) {
		end = len(text)
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	s := strings.Join(strings.Fields(text[start:end]), " ")
	if start > 0 {
		s = "..." + s
	}
	if end < len(text) {
		s += "..."
	}
	return redact.Redact(s)
}
