// Package scrollbar draws a one-column scrollbar beside a viewport.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/grovetools/jsonedit/tui/theme"
)

const (
	thumb = "█"
	track = "░"
)

// Generate returns one scrollbar cell per line for a bar of the given
// height. Content that fits the viewport gets no bar.
func Generate(vp *viewport.Model, height int) []string {
	if height <= 0 {
		return nil
	}
	cells := make([]string, height)
	muted := theme.DefaultTheme.Muted

	total := vp.TotalLineCount()
	if total <= vp.Height {
		for i := range cells {
			cells[i] = " "
		}
		return cells
	}

	size := max(1, height*vp.Height/total)
	pct := min(max(vp.ScrollPercent(), 0), 1)
	start := int(float64(height-size)*pct + 0.5)
	start = min(max(start, 0), height-size)

	for i := range cells {
		if i >= start && i < start+size {
			cells[i] = muted.Render(thumb)
		} else {
			cells[i] = muted.Render(track)
		}
	}
	return cells
}

// Overlay returns the viewport's visible lines with the scrollbar appended.
// Short lines are padded so the bar stays in one column.
func Overlay(vp *viewport.Model) string {
	lines := strings.Split(vp.View(), "\n")
	bar := Generate(vp, len(lines))
	for i, line := range lines {
		lines[i] = line + bar[i]
	}
	return strings.Join(lines, "\n")
}
