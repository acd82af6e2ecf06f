package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestResolveName(t *testing.T) {
	assert.Equal(t, "kanagawa", resolveName("  Kanagawa Dragon "))
	assert.Equal(t, "gruvbox", resolveName("gruvbox_dark"))
	assert.Equal(t, "terminal", resolveName("ANSI"))
	assert.Equal(t, "kanagawa", resolveName("solarized"), "unknown names fall back")
	assert.Equal(t, "kanagawa", resolveName(""))
}

func TestNamesAreRegistered(t *testing.T) {
	for _, name := range Names() {
		assert.Contains(t, palettes, name)
		assert.Equal(t, name, New(name).Name)
	}
}

func TestTokenStylesUsePalette(t *testing.T) {
	th := New("terminal")
	assert.Equal(t, lipgloss.Color("2"), th.String.GetForeground())
	assert.Equal(t, lipgloss.Color("208"), th.Number.GetForeground())
	assert.Equal(t, lipgloss.Color("13"), th.Visited.GetForeground())
	assert.Equal(t, lipgloss.Color("3"), th.Match.GetBackground())
}

func TestSelectedNameFromEnv(t *testing.T) {
	t.Setenv("JSONEDIT_THEME", "gruvbox")
	assert.Equal(t, "gruvbox", resolveName(selectedName()))
}

func TestUseIcons(t *testing.T) {
	t.Cleanup(func() { UseIcons(iconSetName()) })

	UseIcons("ascii")
	assert.Equal(t, "▸", IconCollapsed)
	assert.Equal(t, "{}", IconObject)

	UseIcons("nerd")
	assert.Equal(t, nerdIconCollapsed, IconCollapsed)
}
