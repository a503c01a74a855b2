package main

import (
	"fmt"
	"io"
	"strings"
)

const maxBarWidth = 40

// progressBar draws a single-line bar that is redrawn in place.
type progressBar struct {
	w       io.Writer
	width   int
	percent int
}

// newProgressBar sizes the bar to fit a line of cols columns next to the
// "[" "]" and " 100%" decorations.
func newProgressBar(w io.Writer, cols int) *progressBar {
	width := min(cols-7, maxBarWidth)
	if width < 1 {
		width = 1
	}
	return &progressBar{w: w, width: width, percent: -1}
}

// Update redraws the bar for done in [0, 1]. Redraws that would not change
// the percentage are skipped.
func (p *progressBar) Update(done float64) {
	done = max(0, min(done, 1))
	percent := int(done * 100)
	if percent == p.percent {
		return
	}
	p.percent = percent
	filled := int(done * float64(p.width))
	fmt.Fprintf(p.w, "\r[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat(" ", p.width-filled), percent)
}

// Finish ends the bar's line if anything was drawn.
func (p *progressBar) Finish() {
	if p.percent >= 0 {
		fmt.Fprintln(p.w)
	}
}
