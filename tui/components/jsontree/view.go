package jsontree

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/tui/theme"
	"github.com/grovetools/jsonedit/tui/utils/scrollbar"
)

// staticView adapts rendered text to tea.Model so it can be composited.
type staticView string

func (s staticView) Init() tea.Cmd                       { return nil }
func (s staticView) Update(tea.Msg) (tea.Model, tea.Cmd) { return s, nil }
func (s staticView) View() string                        { return string(s) }

// View renders the editor.
func (m *Model) View() string {
	t := theme.DefaultTheme
	if !m.ready {
		return "Initializing..."
	}
	if m.help.ShowAll {
		return m.help.View()
	}

	switch {
	case m.loading:
		what := "document"
		if m.src != nil {
			what = m.src.Describe()
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			t.Muted.Render("Fetching "+what+"..."))
	case m.fetchErr != nil:
		msg := t.Error.Render(theme.IconError+" "+errors.UserMessage(m.fetchErr)) + "\n\n" +
			t.Muted.Render("press q to quit")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	case m.session.Tree() == nil:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			t.Muted.Render("No document"))
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		scrollbar.Overlay(&m.viewport),
		m.statusLine(),
		m.help.View(),
	)

	switch m.mode {
	case modeEdit, modeRename, modeAppend, modeConfirmQuit:
		fg := staticView(m.promptView())
		return overlay.New(fg, staticView(base), overlay.Center, overlay.Center, 0, 0).View()
	}
	return base
}

// statusLine shows the search prompt, a transient message, or the selected
// path with the search position.
func (m *Model) statusLine() string {
	t := theme.DefaultTheme
	if m.mode == modeSearch {
		return m.input.View()
	}
	if m.status != "" {
		switch m.statusKind {
		case statusSuccess:
			return t.Success.Render(theme.IconSuccess + " " + m.status)
		case statusWarn:
			return t.Warning.Render(theme.IconWarning + " " + m.status)
		case statusError:
			return t.Error.Render(theme.IconError + " " + m.status)
		default:
			return t.Info.Render(theme.IconInfo + " " + m.status)
		}
	}

	line := t.Muted.Render(m.currentPath())
	if m.dirty {
		line += " " + t.Warning.Render(theme.IconSave+" modified")
	}
	if m.query != "" {
		pos := fmt.Sprintf(" %s %q %d/%d", theme.IconFilter, m.query, m.hit+1, len(m.hits))
		line += t.Muted.Render(pos)
	}
	return line
}
