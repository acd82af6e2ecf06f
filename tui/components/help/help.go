// Package help renders the editor's key hints: a one-line bar under the tree
// and a scrollable full-screen listing of every keymap section.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grovetools/jsonedit/tui/keymap"
	"github.com/grovetools/jsonedit/tui/theme"
)

// Margins around the full help and the gap between its columns.
const (
	marginV = 4
	marginH = 4
	gutter  = 4
)

// Model is embedded by the editor.
type Model struct {
	Keys    keymap.Base
	ShowAll bool
	Width   int
	Height  int
	Theme   *theme.Theme
	Title   string

	viewport viewport.Model
}

// New returns a help model in hint bar mode.
func New(keys keymap.Base) Model {
	vp := viewport.New(0, 0)
	// Mouse wheel events belong to the tree view.
	vp.MouseWheelEnabled = false
	return Model{Keys: keys, Theme: theme.DefaultTheme, Title: "jsonedit", viewport: vp}
}

// Update resizes the model and, while the full help is open, scrolls it or
// closes it on help, quit or cancel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		if m.ShowAll {
			m.layout()
		}
	case tea.KeyMsg:
		if !m.ShowAll {
			return m, nil
		}
		if key.Matches(msg, m.Keys.Help, m.Keys.Quit, m.Keys.Cancel) {
			m.Toggle()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Toggle switches between the hint bar and the full help.
func (m *Model) Toggle() {
	m.ShowAll = !m.ShowAll
	if m.ShowAll {
		m.layout()
		m.viewport.GotoTop()
	}
}

// SetSize records the space available to the full help.
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
}

// View renders the hint bar, or the full help centered in the window.
func (m Model) View() string {
	if m.Theme == nil {
		m.Theme = theme.DefaultTheme
	}
	if !m.ShowAll {
		return m.hints()
	}

	content := m.viewport.View()
	if m.viewport.TotalLineCount() > m.viewport.Height {
		more := "↕ more"
		switch {
		case m.viewport.AtTop():
			more = "↓ more"
		case m.viewport.AtBottom():
			more = "↑ more"
		}
		content = lipgloss.JoinVertical(lipgloss.Right, content,
			m.Theme.Muted.Width(m.viewport.Width).Align(lipgloss.Right).Render(more))
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) hints() string {
	var parts []string
	for _, b := range m.Keys.ShortHelp() {
		h := b.Help()
		if !b.Enabled() || h.Key == "" || h.Desc == "" {
			continue
		}
		parts = append(parts, m.Theme.Highlight.Render(h.Key)+" "+m.Theme.Muted.Render(h.Desc))
	}
	return strings.Join(parts, m.Theme.Muted.Render(" • "))
}

// layout renders every section and picks the widest column count that fits,
// falling back to a scrolling single column.
func (m *Model) layout() {
	blocks := m.blocks()
	content := ""
	if len(blocks) > 0 {
		content = m.titled(lipgloss.JoinVertical(lipgloss.Left, blocks...))
		if lipgloss.Height(content) > m.Height-marginV-1 {
			for _, n := range []int{3, 2} {
				if len(blocks) < n {
					continue
				}
				if multi := m.titled(columns(blocks, n)); lipgloss.Width(multi) <= m.Width-marginH {
					content = multi
					break
				}
			}
		}
	}
	m.viewport.SetContent(content)
	m.viewport.Width = lipgloss.Width(content)
	m.viewport.Height = m.Height - marginV - 1 // one line for the scroll hint
}

func (m *Model) titled(body string) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.Theme.Colors.Orange).
		MarginBottom(1).
		Align(lipgloss.Center).
		Width(lipgloss.Width(body))
	return lipgloss.JoinVertical(lipgloss.Center, title.Render(m.Title), body)
}

// columns deals blocks into n columns, always onto the shortest.
func columns(blocks []string, n int) string {
	cols := make([][]string, n)
	heights := make([]int, n)
	for _, b := range blocks {
		shortest := 0
		for i := range heights {
			if heights[i] < heights[shortest] {
				shortest = i
			}
		}
		cols[shortest] = append(cols[shortest], b)
		heights[shortest] += lipgloss.Height(b)
	}

	parts := []string{lipgloss.JoinVertical(lipgloss.Left, cols[0]...)}
	for _, c := range cols[1:] {
		if len(c) > 0 {
			parts = append(parts, strings.Repeat(" ", gutter), lipgloss.JoinVertical(lipgloss.Left, c...))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// blocks renders one bordered table per non-empty section.
func (m *Model) blocks() []string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(m.Theme.Colors.Blue)
	descStyle := m.Theme.Muted.Italic(true)
	heading := lipgloss.NewStyle().Foreground(m.Theme.Colors.Orange).Italic(true).MarginBottom(1)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.Theme.Colors.Border).
		Padding(0, 1).
		MarginBottom(1)

	var out []string
	for _, s := range m.Keys.Sections() {
		t := ltable.New().
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(int, int) lipgloss.Style { return lipgloss.NewStyle().Padding(0, 1) })
		rows := 0
		for _, b := range s.Enabled() {
			h := b.Help()
			if h.Key == "" || h.Desc == "" {
				continue
			}
			t.Row(keyStyle.Render(h.Key), descStyle.Render(h.Desc))
			rows++
		}
		if rows == 0 {
			continue
		}
		title := heading.Render(sectionIcon(s.Name) + " " + s.Name)
		out = append(out, box.Render(lipgloss.JoinVertical(lipgloss.Left, title, t.String())))
	}
	return out
}

func sectionIcon(name string) string {
	switch name {
	case keymap.SectionNavigation:
		return theme.IconArrow
	case keymap.SectionEdit:
		return theme.IconEdit
	case keymap.SectionActions:
		return theme.IconYank
	case keymap.SectionSearch:
		return theme.IconFilter
	case keymap.SectionFold:
		return theme.IconCollapsed
	case keymap.SectionSystem:
		return theme.IconInfo
	}
	return theme.IconBullet
}
