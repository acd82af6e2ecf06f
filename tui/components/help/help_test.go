package help

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonedit/tui/keymap"
)

func TestHintBar(t *testing.T) {
	m := New(keymap.DefaultVim())
	out := m.View()
	for _, b := range m.Keys.ShortHelp() {
		assert.Contains(t, out, b.Help().Desc)
	}
	assert.NotContains(t, out, "Navigation")
}

func TestHintBarSkipsDisabled(t *testing.T) {
	keys := keymap.DefaultVim()
	keys.Save.SetEnabled(false)
	assert.NotContains(t, New(keys).View(), "save")
}

func TestFullHelpToggle(t *testing.T) {
	m := New(keymap.DefaultVim())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 200, Height: 80})
	m.Toggle()
	require.True(t, m.ShowAll)

	out := m.View()
	for _, s := range m.Keys.Sections() {
		assert.Contains(t, out, s.Name)
	}
	assert.Contains(t, out, "jsonedit")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.False(t, m.ShowAll)
}

func TestColumnsBalance(t *testing.T) {
	blocks := []string{"a\na\na", "b", "c", "d"}
	out := columns(blocks, 2)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3, "the tall block sits alone and the short ones stack beside it")
	assert.True(t, strings.HasPrefix(lines[0], "a"))
	assert.Contains(t, lines[0], "b")
}
