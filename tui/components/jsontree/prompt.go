package jsontree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/jsonedit/cursor"
	"github.com/grovetools/jsonedit/editor"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/tree"
	"github.com/grovetools/jsonedit/tui/theme"
	"github.com/grovetools/jsonedit/value"
)

func (m *Model) openPrompt(md mode, prompt, initial, placeholder string) tea.Cmd {
	m.mode = md
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) closePrompt() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) startSearch() tea.Cmd {
	return m.openPrompt(modeSearch, "/", m.query, "search keys and values")
}

// startEdit opens the value editor for the selected scalar.
func (m *Model) startEdit() tea.Cmd {
	n := m.current()
	if n == nil {
		return nil
	}
	if n.Kind != tree.KindLeaf {
		return m.setStatus(statusWarn, "Only scalar values can be edited; append to or rename inside containers")
	}
	return m.openPrompt(modeEdit, "> ", editor.FormatLiteral(n.Value), "true, 42, null or text")
}

// startRename opens the key editor for the selected object entry.
func (m *Model) startRename() tea.Cmd {
	r, ok := m.currentRow()
	if !ok {
		return nil
	}
	if r.key == nil {
		return m.setStatus(statusWarn, "Only object keys can be renamed")
	}
	k, _ := r.node.Cursor.SlotKey()
	return m.openPrompt(modeRename, "> ", k, "new key")
}

// startAppend opens the kind picker for the selected container.
func (m *Model) startAppend() tea.Cmd {
	n := m.current()
	if n == nil {
		return nil
	}
	if !value.KindOf(n.Value).IsContainer() {
		return m.setStatus(statusWarn, errors.UserMessage(errors.NotAContainer(n.Path())))
	}
	m.mode = modeAppend
	return nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		text := m.input.Value()
		md := m.mode
		m.closePrompt()
		switch md {
		case modeSearch:
			return m, m.search(text)
		case modeEdit:
			return m, m.commitValue(text)
		case modeRename:
			return m, m.commitRename(text)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateAppend(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		m.mode = modeNormal
		return m, nil
	}
	kind, ok := pickKind(msg)
	if !ok {
		return m, nil
	}
	m.mode = modeNormal
	return m, m.commitAppend(kind)
}

func (m *Model) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "w":
		cmd := m.save()
		if !m.dirty {
			return m, tea.Quit
		}
		m.mode = modeNormal
		return m, cmd
	}
	if key.Matches(msg, m.keys.Cancel) || msg.String() == "n" || msg.String() == "N" {
		m.mode = modeNormal
	}
	return m, nil
}

func (m *Model) search(query string) tea.Cmd {
	if query == "" {
		m.clearSearch()
		return nil
	}
	m.query = query
	m.hits = matches(m.session.Tree(), query)
	m.hit = -1
	if len(m.hits) == 0 {
		m.updateContent()
		return m.setStatus(statusWarn, fmt.Sprintf("No match for %q", query))
	}
	m.jumpHit(1)
	return nil
}

// commitValue writes the typed literal through the selection's cursor.
func (m *Model) commitValue(text string) tea.Cmd {
	sel, ok := m.session.Selection()
	if !ok {
		return m.applyEdit(errors.StaleSelection(), "")
	}
	m.focus = sel.Path()
	err := m.session.CommitText(sel.Cursor, text)
	if err != nil {
		m.focus = ""
	}
	return m.applyEdit(err, "Set "+sel.Path())
}

// commitRename renames the selected entry's key in its object.
func (m *Model) commitRename(newKey string) tea.Cmd {
	sel, ok := m.session.Selection()
	if !ok {
		return m.applyEdit(errors.StaleSelection(), "")
	}
	oldKey, isKey := sel.Key()
	if !isKey || sel.Parent == nil {
		return m.setStatus(statusWarn, "Only object keys can be renamed")
	}
	if newKey == oldKey {
		return nil
	}
	m.focus = cursor.Key(sel.Parent.Cursor, nil, newKey).Path()
	err := m.session.RenameKey(sel.Parent, oldKey, newKey)
	if err != nil {
		m.focus = ""
	}
	return m.applyEdit(err, fmt.Sprintf("Renamed %q to %q", oldKey, newKey))
}

// commitAppend adds a default child of kind to the selected container and
// moves the cursor onto it.
func (m *Model) commitAppend(kind value.Kind) tea.Cmd {
	sel, ok := m.session.Selection()
	if !ok {
		return m.applyEdit(errors.StaleSelection(), "")
	}
	switch c := sel.Value.(type) {
	case *value.Array:
		m.focus = cursor.Index(sel.Cursor, nil, c.Len()).Path()
	case *value.Object:
		m.focus = cursor.Key(sel.Cursor, nil, m.appendKey).Path()
	}
	path := sel.Path()
	err := m.session.AppendChild(sel, kind)
	if err != nil {
		m.focus = ""
	} else {
		m.folds[path] = false
		m.refresh()
	}
	return m.applyEdit(err, fmt.Sprintf("Appended %s to %s", kind, sel.Path()))
}

// promptView renders the modal for the active edit mode.
func (m *Model) promptView() string {
	t := theme.DefaultTheme
	var title, body, hint string

	switch m.mode {
	case modeEdit:
		title = theme.IconEdit + " Edit " + m.currentPath()
		body = m.input.View()
		hint = "enter commit • esc cancel"
	case modeRename:
		title = theme.IconKey + " Rename " + m.currentPath()
		body = m.input.View()
		hint = "enter rename • esc cancel"
	case modeAppend:
		title = theme.IconArray + " Append to " + m.currentPath()
		var choices []string
		for _, c := range kindChoices() {
			h := c.binding.Help()
			choices = append(choices, t.Highlight.Render(h.Key)+" "+t.Muted.Render(h.Desc))
		}
		body = strings.Join(choices, "  ")
		if n := m.current(); n != nil && value.KindOf(n.Value) == value.ObjectKind {
			body += "\n" + t.Muted.Render(fmt.Sprintf("new entry key: %q", m.appendKey))
		}
		hint = "esc cancel"
	case modeConfirmQuit:
		title = theme.IconWarning + " Unsaved changes"
		body = "Quit without saving?"
		hint = "y quit • w save and quit • n stay"
	default:
		return ""
	}

	width := m.width * 2 / 3
	if width < 40 {
		width = 40
	}
	box := t.DetailsBox.Width(width)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		t.Header.Render(title),
		body,
		"",
		t.Muted.Render(hint),
	))
}
