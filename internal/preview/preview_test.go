package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"

	"github.com/simp-lee/bionic"
)

func TestStyled(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single word", "hello", "\x1b[1mhe\x1b[22mllo"},
		{"dash run kept plain", "well-known", "\x1b[1mwe\x1b[22mll-\x1b[1mkn\x1b[22mown"},
		{"whitespace untouched", " a  b", " \x1b[1ma\x1b[22m  \x1b[1mb\x1b[22m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Styled(bionic.Runs(tt.in)); got != tt.want {
				t.Errorf("Styled(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderNoWrap(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "hello world", 0); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "\x1b[1mhe\x1b[22mllo \x1b[1mwo\x1b[22mrld\n"
	if buf.String() != want {
		t.Errorf("Render() = %q; want %q", buf.String(), want)
	}
}

func TestRenderKeepsTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "go\n", 0); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := buf.String(); got != "\x1b[1mg\x1b[22mo\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderComposesAccents(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "cafe\u0301", 0); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := buf.String(), "\x1b[1mca\x1b[22mf\u00e9\n"; got != want {
		t.Errorf("Render() = %q; want %q", got, want)
	}
}

func TestRenderWrapsOnPrintableWidth(t *testing.T) {
	const width = 24
	text := "the quick brown fox jumps over the lazy dog and keeps running far away"
	var buf bytes.Buffer
	if err := Render(&buf, text, width); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected wrapped output, got %d line(s): %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if w := ansi.PrintableRuneWidth(line); w > width {
			t.Errorf("line %q has printable width %d > %d", line, w, width)
		}
	}
	plain := strings.NewReplacer(boldOn, "", boldOff, "", "\n", " ").Replace(buf.String())
	if strings.Join(strings.Fields(plain), " ") != text {
		t.Errorf("wrapped text lost content: %q", plain)
	}
}
