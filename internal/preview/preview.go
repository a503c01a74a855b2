// Package preview renders bionic runs for a terminal.
package preview

import (
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/unicode/norm"

	"github.com/simp-lee/bionic"
)

const (
	boldOn  = "\x1b[1m"
	boldOff = "\x1b[22m"
)

// Styled concatenates runs, wrapping each bold run in ANSI bold.
func Styled(runs []bionic.Run) string {
	var b strings.Builder
	for _, r := range runs {
		if r.Bold {
			b.WriteString(boldOn)
			b.WriteString(r.Text)
			b.WriteString(boldOff)
			continue
		}
		b.WriteString(r.Text)
	}
	return b.String()
}

// Render converts text and writes it to w, word-wrapped at width
// printable columns. A width of zero or less disables wrapping. Text is
// NFC-normalized first and the output always ends with a newline.
func Render(w io.Writer, text string, width int) error {
	out := Styled(bionic.Runs(norm.NFC.String(text)))
	if width > 0 {
		out = wordwrap.String(out, width)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}
