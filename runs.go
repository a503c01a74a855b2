package bionic

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Run is a span of output text and whether it is emphasised.
type Run struct {
	Text string
	Bold bool
}

// isAlnum reports whether a user-perceived character is a letter or digit.
// Combining marks and other extenders follow the base character.
func isAlnum(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// countAlnum counts the letters and digits of s as grapheme clusters.
func countAlnum(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if isAlnum(g.Str()) {
			n++
		}
	}
	return n
}

// EmitRuns converts one token into runs whose Text concatenates to
// tok.Text.
//
// A content token with letters or digits becomes a bold prefix holding the
// first BoldCount of them, plus any punctuation that precedes the next
// one, followed by a plain remainder. Tokens without letters or digits,
// whitespace and dash runs come back as a single plain run.
func EmitRuns(tok Token) []Run {
	if tok.Text == "" {
		return nil
	}
	if tok.Kind != Content {
		return []Run{{Text: tok.Text}}
	}
	bold := BoldCount(countAlnum(tok.Text))
	if bold == 0 {
		return []Run{{Text: tok.Text}}
	}

	seen, cut := 0, 0
	rest, state := tok.Text, -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if isAlnum(cluster) {
			seen++
			if seen > bold {
				return []Run{
					{Text: tok.Text[:cut], Bold: true},
					{Text: tok.Text[cut:]},
				}
			}
		}
		cut += len(cluster)
	}
	return []Run{{Text: tok.Text, Bold: true}}
}

// Runs segments s and emits the runs of every token in order.
func Runs(s string) []Run {
	var runs []Run
	for _, tok := range Segment(s) {
		runs = append(runs, EmitRuns(tok)...)
	}
	return runs
}

// Join concatenates the text of runs. Join(Runs(s)) == s for every s.
func Join(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
