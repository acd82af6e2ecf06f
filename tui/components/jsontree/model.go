// Package jsontree is the interactive document editor: a foldable tree view
// over an editor.Session with prompts for editing values, renaming keys and
// appending children.
package jsontree

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/editor"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/logging"
	"github.com/grovetools/jsonedit/source"
	"github.com/grovetools/jsonedit/tree"
	"github.com/grovetools/jsonedit/tui/components/help"
	"github.com/grovetools/jsonedit/tui/keymap"
	"github.com/grovetools/jsonedit/value"
)

// DefaultExpandDepth is how many levels below the root start unfolded.
const DefaultExpandDepth = 2

const statusTimeout = 3 * time.Second

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeEdit
	modeRename
	modeAppend
	modeConfirmQuit
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarn
	statusError
)

// Options configure a Model.
type Options struct {
	// Source is fetched by Init. Leave nil and call Load to open a document
	// that is already in memory.
	Source source.Source
	// Sink receives the document on save. Nil disables saving.
	Sink editor.Sink
	Keys keymap.Base
	// AppendKey names entries appended to objects.
	AppendKey string
	// ExpandDepth is the number of levels shown unfolded on open.
	ExpandDepth int
	// Indent is the JSON indent used when yanking.
	Indent int
	// ConfirmQuit asks before quitting with unsaved edits.
	ConfirmQuit bool
	Logger      *logrus.Entry
}

// fetchedMsg carries the result of the initial fetch.
type fetchedMsg struct {
	value value.Value
	err   error
}

type clearStatusMsg struct{ id int }

// Model is the Bubble Tea model for the document editor. It is used through
// a pointer: the session mounts every rebuilt tree back into it.
type Model struct {
	session *editor.Session
	src     source.Source
	sink    editor.Sink
	keys    keymap.Base
	seq     *keymap.Sequencer
	help    help.Model
	log     *logrus.Entry

	viewport viewport.Model
	input    textinput.Model
	width    int
	height   int
	ready    bool

	mode   mode
	rows   []row
	cursor int
	// focus is the path to select once the next tree is mounted.
	focus string

	folds       map[string]bool
	expandDepth int
	appendKey   string
	indent      int
	confirmQuit bool
	dirty       bool

	loading  bool
	fetchErr error

	query string
	hits  []string
	hit   int

	status     string
	statusKind statusKind
	statusID   int

	copy func(string) error
}

// New returns an editor for opts.
func New(opts Options) (*Model, error) {
	m := &Model{
		src:         opts.Source,
		sink:        opts.Sink,
		keys:        opts.Keys,
		seq:         keymap.NewSequencer(keymap.DefaultSequenceTimeout),
		help:        help.New(opts.Keys),
		log:         opts.Logger,
		input:       textinput.New(),
		folds:       make(map[string]bool),
		expandDepth: opts.ExpandDepth,
		appendKey:   opts.AppendKey,
		indent:      opts.Indent,
		confirmQuit: opts.ConfirmQuit,
		hit:         -1,
		copy:        clipboard.WriteAll,
	}
	if m.expandDepth <= 0 {
		m.expandDepth = DefaultExpandDepth
	}
	if m.appendKey == "" {
		m.appendKey = editor.DefaultAppendKey
	}
	if m.indent <= 0 {
		m.indent = 2
	}
	if m.log == nil {
		m.log = logging.NewLogger("tui")
	}
	m.input.CharLimit = 0
	m.input.Width = 40

	session, err := editor.NewSession(editor.Options{
		Hooks:     tree.Hooks{Node: describeNode, Key: describeKey},
		Mount:     m.mount,
		AppendKey: m.appendKey,
		Logger:    m.log,
	})
	if err != nil {
		return nil, err
	}
	m.session = session
	m.loading = m.src != nil
	return m, nil
}

// Session exposes the underlying editing session.
func (m *Model) Session() *editor.Session { return m.session }

// Dirty reports whether there are edits that have not been saved.
func (m *Model) Dirty() bool { return m.dirty }

// Load opens an in-memory document.
func (m *Model) Load(v value.Value) error {
	m.loading = false
	if err := m.session.Load(v); err != nil {
		m.fetchErr = err
		return err
	}
	m.fetchErr = nil
	return nil
}

// Init starts fetching the source.
func (m *Model) Init() tea.Cmd {
	if m.src == nil {
		return nil
	}
	src := m.src
	return func() tea.Msg {
		v, err := src.Fetch(context.Background())
		return fetchedMsg{value: v, err: err}
	}
}

// SetSize sets the size of the component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	treeHeight := height - 2 // status line and key hints
	if treeHeight < 1 {
		treeHeight = 1
	}
	treeWidth := max(width-1, 1) // scrollbar column
	if m.ready {
		m.viewport.Width = treeWidth
		m.viewport.Height = treeHeight
	} else {
		m.viewport = viewport.New(treeWidth, treeHeight)
		m.ready = true
	}
	m.help.SetSize(width, height)
	m.updateContent()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd

	case fetchedMsg:
		m.loading = false
		m.fetchErr = m.session.Open(m.src.Describe(), msg.value, msg.err)
		return m, nil

	case ConfigChangedMsg:
		return m, m.configChanged(msg)

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		switch m.mode {
		case modeSearch, modeEdit, modeRename:
			return m.updatePrompt(msg)
		case modeAppend:
			return m.updateAppend(msg)
		case modeConfirmQuit:
			return m.updateConfirmQuit(msg)
		}
		return m.handleKey(msg)
	}

	if m.mode == modeSearch || m.mode == modeEdit || m.mode == modeRename {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey runs a normal mode key.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session.Tree() == nil {
		if key.Matches(msg, m.keys.Quit, m.keys.Cancel) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch result, idx := m.seq.Feed(msg, m.keys.Sequences()...); result {
	case keymap.SequenceMatch:
		return m.runSequence(idx)
	case keymap.SequencePending:
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty && m.confirmQuit {
			m.mode = modeConfirmQuit
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()

	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.cursor + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveTo(m.cursor - m.viewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.moveTo(m.cursor + m.viewport.Height)
	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(len(m.rows) - 1)
	case key.Matches(msg, m.keys.Parent):
		m.gotoParent()

	case key.Matches(msg, m.keys.Left):
		n := m.current()
		if n != nil && n.IsContainer() && !m.isCollapsed(n) {
			m.setFold(n, true)
			m.refresh()
		} else {
			m.gotoParent()
		}
	case key.Matches(msg, m.keys.Right):
		n := m.current()
		if n != nil && n.IsContainer() {
			if m.isCollapsed(n) {
				m.setFold(n, false)
				m.refresh()
			} else if n.Len() > 0 {
				m.moveTo(m.cursor + 1)
			}
		}

	case key.Matches(msg, m.keys.Edit):
		return m, m.startEdit()
	case key.Matches(msg, m.keys.Rename):
		return m, m.startRename()
	case key.Matches(msg, m.keys.Append):
		return m, m.startAppend()
	case key.Matches(msg, m.keys.Save):
		return m, m.save()

	case key.Matches(msg, m.keys.Yank):
		return m, m.yank(false)
	case key.Matches(msg, m.keys.YankAll):
		return m, m.yank(true)

	case key.Matches(msg, m.keys.Search):
		return m, m.startSearch()
	case key.Matches(msg, m.keys.SearchNext):
		m.jumpHit(1)
	case key.Matches(msg, m.keys.SearchPrev):
		m.jumpHit(-1)
	case key.Matches(msg, m.keys.ClearSearch):
		m.clearSearch()
	}
	return m, nil
}

// runSequence runs the binding at idx of keymap.Base.Sequences.
func (m *Model) runSequence(idx int) (tea.Model, tea.Cmd) {
	n := m.current()
	switch idx {
	case 0: // top
		m.moveTo(0)
		return m, nil
	case 1:
		if n != nil && n.IsContainer() {
			m.setFold(n, !m.isCollapsed(n))
		}
	case 2:
		m.setFold(n, false)
	case 3:
		m.setFold(n, true)
	case 4:
		m.setAllFolds(false)
	case 5:
		m.setAllFolds(true)
	}
	m.refresh()
	return m, nil
}

// mount receives every tree the session builds.
func (m *Model) mount(root *tree.Node) {
	prev := m.currentPath()
	if m.focus != "" {
		prev = m.focus
		m.focus = ""
	}
	if m.query != "" {
		m.hits = matches(root, m.query)
		if m.hit >= len(m.hits) {
			m.hit = len(m.hits) - 1
		}
	}
	m.rows = m.flatten(root)
	m.cursor = 0
	if prev != "" {
		m.selectPath(root, prev)
	}
	m.syncSelection()
	m.updateContent()
}

// refresh re-flattens the current tree after a fold change, keeping the
// cursor on the same node.
func (m *Model) refresh() {
	root := m.session.Tree()
	prev := m.currentPath()
	m.rows = m.flatten(root)
	m.cursor = 0
	if prev != "" {
		m.selectPath(root, prev)
	}
	m.syncSelection()
	m.updateContent()
}

// selectPath moves the cursor to path, unfolding its ancestors when needed.
// Paths that no longer exist leave the cursor at the nearest row.
func (m *Model) selectPath(root *tree.Node, path string) bool {
	if i := m.indexOf(path); i >= 0 {
		m.cursor = i
		return true
	}
	n := root.Find(path)
	if n == nil {
		return false
	}
	m.reveal(n)
	m.rows = m.flatten(root)
	if i := m.indexOf(path); i >= 0 {
		m.cursor = i
		return true
	}
	return false
}

func (m *Model) indexOf(path string) int {
	for i, r := range m.rows {
		if r.path() == path {
			return i
		}
	}
	return -1
}

func (m *Model) current() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

func (m *Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) currentPath() string {
	if n := m.current(); n != nil {
		return n.Path()
	}
	return ""
}

func (m *Model) moveTo(i int) {
	if len(m.rows) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(m.rows) {
		i = len(m.rows) - 1
	}
	m.cursor = i
	m.syncSelection()
	m.updateContent()
}

func (m *Model) gotoParent() {
	n := m.current()
	if n == nil || n.Parent == nil || n.Parent.Cursor == nil {
		return
	}
	if i := m.indexOf(n.Parent.Cursor.Path()); i >= 0 {
		m.moveTo(i)
	}
}

func (m *Model) syncSelection() {
	m.session.Select(m.current())
}

// save writes the document to the configured sink.
func (m *Model) save() tea.Cmd {
	if m.sink == nil {
		return m.setStatus(statusWarn, "No output configured; restart with --output to save")
	}
	if err := m.session.Save(context.Background(), m.sink); err != nil {
		m.log.WithError(err).WithField("sink", m.sink.Describe()).Error("Save failed")
		return m.setStatus(statusError, errors.UserMessage(err))
	}
	m.dirty = false
	return m.setStatus(statusSuccess, "Saved to "+m.sink.Describe())
}

// yank copies the selected node, or the whole document, as JSON.
func (m *Model) yank(all bool) tea.Cmd {
	v := m.session.Root()
	what := "document"
	if !all {
		n := m.current()
		if n == nil {
			return nil
		}
		v, what = n.Value, n.Path()
	}
	data, err := codec.EncodeJSON(v, m.indent)
	if err != nil {
		return m.setStatus(statusError, errors.UserMessage(err))
	}
	if err := m.copy(string(data)); err != nil {
		m.log.WithError(err).Warn("Clipboard write failed")
		return m.setStatus(statusError, "Clipboard unavailable: "+err.Error())
	}
	return m.setStatus(statusSuccess, fmt.Sprintf("Yanked %s (%d bytes)", what, len(data)))
}

// applyEdit reports the outcome of a session edit.
func (m *Model) applyEdit(err error, done string) tea.Cmd {
	if err == nil {
		m.dirty = true
		return m.setStatus(statusSuccess, done)
	}
	if errors.IsRefusedEdit(err) {
		return m.setStatus(statusWarn, errors.UserMessage(err))
	}
	m.log.WithError(err).Error("Edit failed")
	return m.setStatus(statusError, errors.UserMessage(err))
}

func (m *Model) setStatus(kind statusKind, msg string) tea.Cmd {
	m.statusID++
	m.status = msg
	m.statusKind = kind
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m *Model) jumpHit(step int) {
	if len(m.hits) == 0 {
		return
	}
	m.hit = (m.hit + step + len(m.hits)) % len(m.hits)
	if m.selectPath(m.session.Tree(), m.hits[m.hit]) {
		m.syncSelection()
		m.updateContent()
	}
}

func (m *Model) clearSearch() {
	m.query = ""
	m.hits = nil
	m.hit = -1
	m.updateContent()
}

// updateContent re-renders the rows into the viewport and keeps the cursor
// visible.
func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	hitSet := make(map[string]bool, len(m.hits))
	for _, p := range m.hits {
		hitSet[p] = true
	}
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		lines[i] = m.renderRow(r, i == m.cursor, hitSet[r.path()])
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
