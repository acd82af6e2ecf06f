package scrollbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/stretchr/testify/assert"
)

func content(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line"
	}
	return strings.Join(lines, "\n")
}

func TestGenerateFits(t *testing.T) {
	vp := viewport.New(10, 5)
	vp.SetContent(content(3))

	cells := Generate(&vp, 5)
	assert.Len(t, cells, 5)
	for _, c := range cells {
		assert.Equal(t, " ", c)
	}
}

func TestGenerateThumbMoves(t *testing.T) {
	vp := viewport.New(10, 5)
	vp.SetContent(content(50))

	top := strings.Join(Generate(&vp, 5), "")
	assert.True(t, strings.HasPrefix(stripANSI(top), thumb))

	vp.GotoBottom()
	bottom := strings.Join(Generate(&vp, 5), "")
	assert.True(t, strings.HasSuffix(stripANSI(bottom), thumb))
}

func TestGenerateEmptyHeight(t *testing.T) {
	vp := viewport.New(10, 5)
	assert.Nil(t, Generate(&vp, 0))
}

func TestOverlayKeepsLineCount(t *testing.T) {
	vp := viewport.New(10, 4)
	vp.SetContent(content(20))

	out := Overlay(&vp)
	assert.Len(t, strings.Split(out, "\n"), 4)
}

// stripANSI drops escape sequences; tests run without a color profile, so
// this is usually a no-op.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
