package jsontree

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/tree"
	"github.com/grovetools/jsonedit/tui/keymap"
	"github.com/grovetools/jsonedit/value"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestModel(t *testing.T, doc string, opts Options) *Model {
	t.Helper()
	opts.Keys = keymap.DefaultVim()
	opts.Logger = quietLogger()
	if opts.ExpandDepth == 0 {
		opts.ExpandDepth = 10
	}
	m, err := New(opts)
	require.NoError(t, err)
	v, err := codec.DecodeJSON([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, m.Load(v))
	m.SetSize(100, 30)
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key and returns the command of the last one.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

// typeText replaces the prompt input with text.
func typeText(m *Model, text string) {
	press(m, "ctrl+u")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func rootObject(t *testing.T, m *Model) *value.Object {
	t.Helper()
	obj, ok := m.Session().Root().(*value.Object)
	require.True(t, ok, "root is %T", m.Session().Root())
	return obj
}

func rowPaths(m *Model) []string {
	paths := make([]string, len(m.rows))
	for i, r := range m.rows {
		paths[i] = r.path()
	}
	return paths
}

func TestRowsFollowDocumentOrder(t *testing.T) {
	m := newTestModel(t, `{"list":[1,"two",null],"z":true}`, Options{})

	assert.Equal(t, []string{"$", "$.list", "$.list[0]", "$.list[1]", "$.list[2]", "$.z"}, rowPaths(m))
	assert.Equal(t, 0, m.cursor)
}

func TestEditScalar(t *testing.T) {
	m := newTestModel(t, `{"list":[1,"two",null]}`, Options{})

	press(m, "j", "j", "j")
	require.Equal(t, "$.list[1]", m.currentPath())

	press(m, "e")
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "two", m.input.Value(), "prefilled with the current literal")

	typeText(m, "42")
	press(m, "enter")

	assert.Equal(t, modeNormal, m.mode)
	list, _ := rootObject(t, m).Get("list")
	assert.Equal(t, 42.0, list.(*value.Array).At(1))
	assert.Equal(t, "$.list[1]", m.currentPath(), "cursor stays on the edited slot")
	assert.True(t, m.Dirty())
	assert.Equal(t, statusSuccess, m.statusKind)
}

func TestEditLiteralKinds(t *testing.T) {
	tests := []struct {
		input string
		want  value.Value
	}{
		{"true", true},
		{"null", nil},
		{"-3.5", -3.5},
		{`"42"`, "42"},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := newTestModel(t, `{"v":0}`, Options{})
			press(m, "j", "e")
			typeText(m, tt.input)
			press(m, "enter")

			got, _ := rootObject(t, m).Get("v")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEditRefusedOnContainer(t *testing.T) {
	m := newTestModel(t, `{"a":{}}`, Options{})

	press(m, "e")
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, statusWarn, m.statusKind)
	assert.False(t, m.Dirty())
}

func TestEditCancel(t *testing.T) {
	m := newTestModel(t, `{"v":1}`, Options{})
	before := m.Session().Rebuilds()

	press(m, "j", "e")
	typeText(m, "99")
	press(m, "esc")

	got, _ := rootObject(t, m).Get("v")
	assert.Equal(t, 1.0, got)
	assert.Equal(t, before, m.Session().Rebuilds())
}

func TestRename(t *testing.T) {
	m := newTestModel(t, `{"a":1,"b":2}`, Options{})
	press(m, "j")
	require.Equal(t, "$.a", m.currentPath())

	t.Run("collision leaves the object untouched", func(t *testing.T) {
		rebuilds := m.Session().Rebuilds()
		press(m, "r")
		assert.Equal(t, "a", m.input.Value())
		typeText(m, "b")
		press(m, "enter")

		assert.Equal(t, []string{"a", "b"}, rootObject(t, m).Keys())
		assert.Equal(t, statusWarn, m.statusKind)
		assert.Contains(t, m.status, "already exists")
		assert.Equal(t, rebuilds, m.Session().Rebuilds())
	})

	t.Run("new key keeps position and value", func(t *testing.T) {
		press(m, "r")
		typeText(m, "c")
		press(m, "enter")

		obj := rootObject(t, m)
		assert.Equal(t, []string{"c", "b"}, obj.Keys())
		v, _ := obj.Get("c")
		assert.Equal(t, 1.0, v)
		assert.Equal(t, "$.c", m.currentPath())
	})
}

func TestRenameOnArrayElement(t *testing.T) {
	m := newTestModel(t, `[1]`, Options{})
	press(m, "j", "r")

	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "Only object keys can be renamed", m.status)
}

func TestAppend(t *testing.T) {
	t.Run("array grows at the end", func(t *testing.T) {
		m := newTestModel(t, `{"list":[1]}`, Options{})
		press(m, "j", "a")
		require.Equal(t, modeAppend, m.mode)
		press(m, "o")

		list, _ := rootObject(t, m).Get("list")
		arr := list.(*value.Array)
		require.Equal(t, 2, arr.Len())
		assert.Equal(t, value.ObjectKind, value.KindOf(arr.At(1)))
		assert.Equal(t, "$.list[1]", m.currentPath())
	})

	t.Run("object entry uses the append key once", func(t *testing.T) {
		m := newTestModel(t, `{}`, Options{AppendKey: "new"})
		press(m, "a", "s")

		obj := rootObject(t, m)
		v, ok := obj.Get("new")
		require.True(t, ok)
		assert.Equal(t, "", v)
		assert.Equal(t, "$.new", m.currentPath())

		press(m, "g", "g", "a", "n")
		assert.Equal(t, 1, rootObject(t, m).Len())
		assert.Equal(t, statusWarn, m.statusKind)
		assert.Contains(t, m.status, "'new' already exists")
	})

	t.Run("scalars are refused", func(t *testing.T) {
		m := newTestModel(t, `{"v":1}`, Options{})
		press(m, "j", "a")

		assert.Equal(t, modeNormal, m.mode)
		assert.Equal(t, statusWarn, m.statusKind)
		assert.Equal(t, errors.UserMessage(errors.NotAContainer("$.v")), m.status)
	})

	t.Run("appending unfolds a collapsed container", func(t *testing.T) {
		m := newTestModel(t, `{"deep":{"list":[]}}`, Options{ExpandDepth: 1})
		require.Equal(t, []string{"$", "$.deep"}, rowPaths(m))

		press(m, "j", "a", "0")
		assert.Contains(t, rowPaths(m), "$.deep.key")
		assert.Equal(t, "$.deep.key", m.currentPath())
	})

	t.Run("refused append keeps the fold", func(t *testing.T) {
		m := newTestModel(t, `{"deep":{"key":1}}`, Options{ExpandDepth: 1})
		require.Equal(t, []string{"$", "$.deep"}, rowPaths(m))

		press(m, "j", "a", "s")
		assert.Equal(t, statusWarn, m.statusKind)
		assert.True(t, m.isCollapsed(m.session.Tree().Find("$.deep")))
		_, set := m.folds["$.deep"]
		assert.False(t, set)
		assert.Equal(t, []string{"$", "$.deep"}, rowPaths(m))
	})
}

func TestFolds(t *testing.T) {
	doc := `{"a":{"b":{"c":1}},"d":[1,2]}`

	t.Run("expand depth", func(t *testing.T) {
		m := newTestModel(t, doc, Options{ExpandDepth: 1})
		assert.Equal(t, []string{"$", "$.a", "$.d"}, rowPaths(m))
	})

	t.Run("close all and open all", func(t *testing.T) {
		m := newTestModel(t, doc, Options{})
		press(m, "z", "M")
		assert.Equal(t, []string{"$", "$.a", "$.d"}, rowPaths(m))
		press(m, "z", "R")
		assert.Len(t, m.rows, 7)
	})

	t.Run("left collapses then moves to parent", func(t *testing.T) {
		m := newTestModel(t, doc, Options{})
		press(m, "j", "j")
		require.Equal(t, "$.a.b", m.currentPath())

		press(m, "h")
		assert.NotContains(t, rowPaths(m), "$.a.b.c")
		assert.Equal(t, "$.a.b", m.currentPath())

		press(m, "h")
		assert.Equal(t, "$.a", m.currentPath())

		press(m, "l")
		assert.Equal(t, "$.a.b", m.currentPath(), "right on an open container steps inside")
	})

	t.Run("toggle with space", func(t *testing.T) {
		m := newTestModel(t, doc, Options{})
		press(m, "j")
		m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		assert.Equal(t, []string{"$", "$.a", "$.d", "$.d[0]", "$.d[1]"}, rowPaths(m))
	})

	t.Run("folds survive an edit", func(t *testing.T) {
		m := newTestModel(t, doc, Options{})
		press(m, "j", "z", "c", "G", "e")
		typeText(m, "5")
		press(m, "enter")
		assert.NotContains(t, rowPaths(m), "$.a.b")
		assert.Equal(t, "$.d[1]", m.currentPath())
	})
}

func TestSequences(t *testing.T) {
	m := newTestModel(t, `{"a":1,"b":2,"c":3}`, Options{})

	press(m, "G")
	assert.Equal(t, "$.c", m.currentPath())
	press(m, "g", "g")
	assert.Equal(t, "$", m.currentPath())

	// A broken sequence still runs the key that broke it.
	press(m, "g", "j")
	assert.Equal(t, "$.a", m.currentPath())
}

func TestSearch(t *testing.T) {
	m := newTestModel(t, `{"name":"alpha","items":[{"name":"beta"}],"alphabet":true}`, Options{ExpandDepth: 1})

	press(m, "/")
	require.Equal(t, modeSearch, m.mode)
	typeText(m, "alpha")
	press(m, "enter")

	assert.Equal(t, []string{"$.name", "$.alphabet"}, m.hits)
	assert.Equal(t, "$.name", m.currentPath())

	press(m, "n")
	assert.Equal(t, "$.alphabet", m.currentPath())
	press(m, "n")
	assert.Equal(t, "$.name", m.currentPath(), "wraps around")

	t.Run("jumping reveals folded matches", func(t *testing.T) {
		press(m, "/")
		typeText(m, "beta")
		press(m, "enter")
		assert.Equal(t, "$.items[0].name", m.currentPath())
	})

	t.Run("fuzzy fallback on paths", func(t *testing.T) {
		press(m, "/")
		typeText(m, "itnm")
		press(m, "enter")
		assert.Equal(t, []string{"$.items[0].name"}, m.hits)
		assert.Equal(t, "$.items[0].name", m.currentPath())
	})

	t.Run("no match", func(t *testing.T) {
		press(m, "/")
		typeText(m, "zzz")
		press(m, "enter")
		assert.Empty(t, m.hits)
		assert.Equal(t, statusWarn, m.statusKind)
	})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, m.query)
}

func TestYank(t *testing.T) {
	m := newTestModel(t, `{"list":[1,"two",null],"n":5}`, Options{})
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	press(m, "j", "y")
	assert.JSONEq(t, `[1,"two",null]`, copied)
	assert.Equal(t, statusSuccess, m.statusKind)

	press(m, "Y")
	assert.JSONEq(t, `{"list":[1,"two",null],"n":5}`, copied)
	assert.True(t, strings.Index(copied, "list") < strings.Index(copied, `"n"`), "key order kept")

	m.copy = func(string) error { return fmt.Errorf("no clipboard") }
	press(m, "y")
	assert.Equal(t, statusError, m.statusKind)
}

func TestCyclicDocument(t *testing.T) {
	m, err := New(Options{Keys: keymap.DefaultVim(), Logger: quietLogger(), ExpandDepth: 10})
	require.NoError(t, err)

	obj := value.NewObject()
	obj.Set("name", "loop")
	obj.Set("self", obj)
	require.NoError(t, m.Load(obj))
	m.SetSize(80, 20)

	require.Equal(t, []string{"$", "$.name", "$.self"}, rowPaths(m))
	assert.Equal(t, tree.KindSentinel, m.rows[2].node.Kind)
	assert.Contains(t, m.View(), tree.SentinelText)

	m.copy = func(string) error { return nil }
	press(m, "Y")
	assert.Equal(t, statusError, m.statusKind)
}

type memorySink struct {
	saved []value.Value
	err   error
}

func (s *memorySink) Write(_ context.Context, root value.Value) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, root)
	return nil
}

func (s *memorySink) Describe() string { return "memory" }

func TestSave(t *testing.T) {
	sink := &memorySink{}
	m := newTestModel(t, `{"v":1}`, Options{Sink: sink})

	press(m, "j", "e")
	typeText(m, "2")
	press(m, "enter")
	require.True(t, m.Dirty())

	press(m, "w")
	require.Len(t, sink.saved, 1)
	assert.Same(t, m.Session().Root(), sink.saved[0])
	assert.False(t, m.Dirty())
	assert.Equal(t, "Saved to memory", m.status)

	t.Run("no sink", func(t *testing.T) {
		m := newTestModel(t, `{}`, Options{})
		press(m, "w")
		assert.Equal(t, statusWarn, m.statusKind)
	})

	t.Run("failing sink keeps dirty", func(t *testing.T) {
		sink := &memorySink{err: fmt.Errorf("disk full")}
		m := newTestModel(t, `{"v":1}`, Options{Sink: sink})
		press(m, "j", "e")
		typeText(m, "3")
		press(m, "enter", "w")
		assert.True(t, m.Dirty())
		assert.Equal(t, statusError, m.statusKind)
	})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestQuit(t *testing.T) {
	t.Run("clean document quits at once", func(t *testing.T) {
		m := newTestModel(t, `{}`, Options{ConfirmQuit: true})
		assert.True(t, isQuit(press(m, "q")))
	})

	t.Run("unsaved edits ask first", func(t *testing.T) {
		m := newTestModel(t, `{}`, Options{ConfirmQuit: true})
		press(m, "a", "s")
		require.True(t, m.Dirty())

		assert.False(t, isQuit(press(m, "q")))
		assert.Equal(t, modeConfirmQuit, m.mode)
		assert.Contains(t, m.View(), "Unsaved changes")

		press(m, "n")
		assert.Equal(t, modeNormal, m.mode)

		press(m, "q")
		assert.True(t, isQuit(press(m, "y")))
	})
}

type stubSource struct {
	v   value.Value
	err error
}

func (s stubSource) Fetch(context.Context) (value.Value, error) { return s.v, s.err }
func (s stubSource) Describe() string                           { return "stub" }

func TestFetch(t *testing.T) {
	t.Run("success builds the tree", func(t *testing.T) {
		obj := value.NewObject()
		obj.Set("ok", true)
		m, err := New(Options{Source: stubSource{v: obj}, Keys: keymap.DefaultVim(), Logger: quietLogger()})
		require.NoError(t, err)
		m.SetSize(80, 20)
		assert.Contains(t, m.View(), "Fetching stub")

		cmd := m.Init()
		require.NotNil(t, cmd)
		m.Update(cmd())

		require.NotNil(t, m.Session().Tree())
		assert.Equal(t, []string{"$", "$.ok"}, rowPaths(m))
	})

	t.Run("failure shows the error and builds nothing", func(t *testing.T) {
		m, err := New(Options{Source: stubSource{err: fmt.Errorf("connection refused")}, Keys: keymap.DefaultVim(), Logger: quietLogger()})
		require.NoError(t, err)
		m.SetSize(80, 20)
		m.Update(m.Init()())

		assert.Nil(t, m.Session().Tree())
		assert.Equal(t, errors.ErrCodeFetchFailure, errors.GetCode(m.fetchErr))
		assert.Contains(t, m.View(), "failed to fetch document from stub")
		assert.True(t, isQuit(press(m, "q")))
	})

	t.Run("scalar root is rejected", func(t *testing.T) {
		m, err := New(Options{Source: stubSource{v: 3.0}, Keys: keymap.DefaultVim(), Logger: quietLogger()})
		require.NoError(t, err)
		m.Update(m.Init()())

		assert.Nil(t, m.Session().Tree())
		assert.Equal(t, errors.ErrCodeFetchFailure, errors.GetCode(m.fetchErr))
		assert.False(t, errors.IsContractViolation(m.fetchErr))
	})

	t.Run("null document is a fetch failure", func(t *testing.T) {
		m, err := New(Options{Source: stubSource{v: nil}, Keys: keymap.DefaultVim(), Logger: quietLogger()})
		require.NoError(t, err)
		m.SetSize(80, 20)
		m.Update(m.Init()())

		assert.Nil(t, m.Session().Tree())
		assert.True(t, errors.Is(m.fetchErr, errors.ErrCodeInvalidRoot))
		assert.Contains(t, m.View(), "failed to fetch document from stub")
	})
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, `{}`, Options{})
	press(m, "?")
	assert.True(t, m.help.ShowAll)
	press(m, "?")
	assert.False(t, m.help.ShowAll)
}
