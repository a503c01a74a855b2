package bionic

import "unicode"

// TokenKind classifies a Token.
type TokenKind uint8

const (
	// Content is anything that is neither whitespace nor a dash: letters,
	// digits, and the punctuation attached to them.
	Content TokenKind = iota

	// Whitespace is a maximal run of Unicode white space.
	Whitespace

	// DashRun is a maximal run of hyphen-minus, en dash and em dash.
	DashRun
)

func (k TokenKind) String() string {
	switch k {
	case Content:
		return "content"
	case Whitespace:
		return "whitespace"
	case DashRun:
		return "dash"
	default:
		return "unknown"
	}
}

// Token is a segment of the input string.
type Token struct {
	Kind TokenKind
	Text string
}

func isDash(r rune) bool {
	return r == '-' || r == '–' || r == '—'
}

func classify(r rune) TokenKind {
	switch {
	case unicode.IsSpace(r):
		return Whitespace
	case isDash(r):
		return DashRun
	default:
		return Content
	}
}

// Segment splits s into maximal runs of whitespace, dashes and content, in
// order. Concatenating the Text of the result yields s. Invalid UTF-8 bytes
// are kept and count as content.
func Segment(s string) []Token {
	var tokens []Token
	start := 0
	kind := Content
	for i, r := range s {
		k := classify(r)
		if i > start && k != kind {
			tokens = append(tokens, Token{Kind: kind, Text: s[start:i]})
			start = i
		}
		kind = k
	}
	if start < len(s) {
		tokens = append(tokens, Token{Kind: kind, Text: s[start:]})
	}
	return tokens
}
