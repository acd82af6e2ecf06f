// Package editor drives edits of a document and keeps its tree in sync.
//
// Every accepted edit computes the new document root, then discards the
// current tree and builds a fresh one. Refused edits leave both untouched.
package editor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonedit/cursor"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/logging"
	"github.com/grovetools/jsonedit/tree"
	"github.com/grovetools/jsonedit/value"
)

// DefaultAppendKey is the key used when a child is appended to an object.
const DefaultAppendKey = "key"

// State is the orchestrator state.
type State int

const (
	Idle State = iota
	Rebuilding
)

func (s State) String() string {
	if s == Rebuilding {
		return "rebuilding"
	}
	return "idle"
}

// MountFunc receives every freshly built tree.
type MountFunc func(root *tree.Node)

// Options configure a Session.
type Options struct {
	Hooks     tree.Hooks
	Mount     MountFunc
	AppendKey string
	Logger    *logrus.Entry
}

// Session owns the authoritative document root, the current tree and the
// selection. It is not safe for concurrent use.
type Session struct {
	root       value.Value
	tree       *tree.Node
	hooks      tree.Hooks
	mount      MountFunc
	appendKey  string
	state      State
	generation uint64
	rebuilds   int

	sel    Selection
	hasSel bool

	// cursors and links handed out with the current tree
	cursors map[*cursor.Cursor]bool
	links   map[*tree.ParentLink]bool

	log *logrus.Entry
}

// NewSession returns a session without a document. Call Load or Fetch to
// open one.
func NewSession(opts Options) (*Session, error) {
	if opts.Hooks.Node == nil {
		return nil, errors.InvalidCollaborator("node hook")
	}
	if opts.Hooks.Key == nil {
		return nil, errors.InvalidCollaborator("key hook")
	}
	s := &Session{
		hooks:     opts.Hooks,
		mount:     opts.Mount,
		appendKey: opts.AppendKey,
		log:       opts.Logger,
	}
	if s.appendKey == "" {
		s.appendKey = DefaultAppendKey
	}
	if s.log == nil {
		s.log = logging.NewLogger("editor")
	}
	return s, nil
}

// Open loads the result of fetching from src. A fetch error, or a document
// that is null or a scalar, leaves the session without a tree and returns a
// FETCH_FAILURE.
func (s *Session) Open(src string, v value.Value, err error) error {
	if err == nil && !value.KindOf(v).IsContainer() {
		err = errors.InvalidRoot(value.KindOf(v).String())
	}
	if err != nil {
		if !errors.Is(err, errors.ErrCodeFetchFailure) {
			err = errors.FetchFailure(src, err)
		}
		s.log.WithError(err).WithField("source", src).Warn("Fetch failed")
		return err
	}
	return s.Load(v)
}

// Load replaces the document and builds its tree.
func (s *Session) Load(root value.Value) error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	if !value.KindOf(root).IsContainer() {
		return errors.InvalidRoot(value.KindOf(root).String())
	}
	prev := s.root
	s.root = root
	if err := s.rebuild(); err != nil {
		s.root = prev
		return err
	}
	return nil
}

// Root returns the current document.
func (s *Session) Root() value.Value { return s.root }

// Tree returns the current tree, or nil before a document is loaded.
func (s *Session) Tree() *tree.Node { return s.tree }

// State returns the orchestrator state.
func (s *Session) State() State { return s.state }

// Generation increases with every rebuild.
func (s *Session) Generation() uint64 { return s.generation }

// Rebuilds returns how many trees have been built.
func (s *Session) Rebuilds() int { return s.rebuilds }

// Select records n as the current selection.
func (s *Session) Select(n *tree.Node) {
	if n == nil {
		s.sel, s.hasSel = Selection{}, false
		return
	}
	s.sel = Selection{
		Node:       n,
		Value:      n.Value,
		Cursor:     n.Cursor,
		Parent:     n.Parent,
		generation: s.generation,
	}
	s.hasSel = true
}

// Selection returns the current selection. It reports false when nothing is
// selected or the selection belongs to an earlier tree.
func (s *Session) Selection() (Selection, bool) {
	if !s.hasSel || s.sel.generation != s.generation {
		return Selection{}, false
	}
	return s.sel, true
}

// SetScalar writes v through c and rebuilds.
func (s *Session) SetScalar(c *cursor.Cursor, v value.Value) error {
	if err := s.checkEditable(); err != nil {
		return err
	}
	if c == nil {
		return errors.ContractViolation("SetScalar called with a nil cursor")
	}
	if !s.cursors[c] {
		err := errors.StaleSelection()
		s.refused(err, c.Path())
		return err
	}
	kind := value.KindOf(v)
	if kind == value.Invalid {
		return errors.ContractViolation(fmt.Sprintf("unsupported value type %T", v))
	}
	if c.IsRoot() && !kind.IsContainer() {
		return errors.InvalidRoot(kind.String())
	}

	root, err := c.Write(v)
	if err != nil {
		return err
	}
	s.log.WithField("path", c.Path()).WithField("kind", kind.String()).Debug("Set value")
	return s.commit(root)
}

// CommitText parses text as a literal and writes it through c.
func (s *Session) CommitText(c *cursor.Cursor, text string) error {
	return s.SetScalar(c, ParseLiteral(text))
}

// RenameKey renames oldKey to newKey in the object that link points at and
// writes the renamed copy through the object's own cursor.
func (s *Session) RenameKey(link *tree.ParentLink, oldKey, newKey string) error {
	if err := s.checkEditable(); err != nil {
		return err
	}
	obj, ok := link.Object()
	if !ok || link.Cursor == nil {
		return errors.ContractViolation("RenameKey needs a link to an object")
	}
	if !s.links[link] {
		err := errors.StaleSelection()
		s.refused(err, link.Cursor.Path())
		return err
	}

	renamed, err := value.RenameKey(obj, oldKey, newKey)
	if err != nil {
		s.refused(err, link.Cursor.Path())
		return err
	}
	root, err := link.Cursor.Write(renamed)
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"path": link.Cursor.Path(),
		"old":  oldKey,
		"new":  newKey,
	}).Debug("Renamed key")
	return s.commit(root)
}

// AppendChild adds a default value of kind to the selected container. Arrays
// grow at the end; objects get the entry under the configured append key.
func (s *Session) AppendChild(sel Selection, kind value.Kind) error {
	if err := s.checkEditable(); err != nil {
		return err
	}
	if sel.Node == nil || sel.generation != s.generation {
		err := errors.StaleSelection()
		s.refused(err, sel.Path())
		return err
	}
	if kind == value.Invalid {
		return errors.ContractViolation("AppendChild called with an invalid kind")
	}

	switch c := sel.Value.(type) {
	case *value.Array:
		c.Append(value.Default(kind))
	case *value.Object:
		if c.Has(s.appendKey) {
			err := errors.KeyExists(s.appendKey)
			s.refused(err, sel.Path())
			return err
		}
		c.Set(s.appendKey, value.Default(kind))
	default:
		err := errors.NotAContainer(sel.Path())
		s.refused(err, sel.Path())
		return err
	}

	root, err := sel.Cursor.Write(sel.Value)
	if err != nil {
		return err
	}
	s.log.WithField("path", sel.Path()).WithField("kind", kind.String()).Debug("Appended child")
	return s.commit(root)
}

// Save hands the current document to sink.
func (s *Session) Save(ctx context.Context, sink Sink) error {
	if s.tree == nil {
		return errors.ContractViolation("no document loaded")
	}
	if err := sink.Write(ctx, s.root); err != nil {
		return err
	}
	s.log.WithField("sink", sink.Describe()).Info("Saved document")
	return nil
}

func (s *Session) commit(root value.Value) error {
	s.root = root
	return s.rebuild()
}

func (s *Session) rebuild() error {
	s.state = Rebuilding
	defer func() { s.state = Idle }()

	t, err := tree.Build(s.root, s.hooks)
	if err != nil {
		return err
	}
	s.tree = t
	s.track(t)
	s.generation++
	s.rebuilds++
	s.log.WithField("generation", s.generation).Debug("Rebuilt tree")

	if s.mount != nil {
		s.mount(t)
	}
	return nil
}

// track records the cursors and parent links of t; edits through any other
// cursor or link are refused as stale.
func (s *Session) track(t *tree.Node) {
	s.cursors = make(map[*cursor.Cursor]bool)
	s.links = make(map[*tree.ParentLink]bool)
	t.Walk(func(n *tree.Node) bool {
		s.cursors[n.Cursor] = true
		if n.Parent != nil {
			s.links[n.Parent] = true
		}
		return true
	})
}

func (s *Session) checkIdle() error {
	if s.state == Rebuilding {
		return errors.ContractViolation("edit requested while the tree is being rebuilt")
	}
	return nil
}

func (s *Session) checkEditable() error {
	if err := s.checkIdle(); err != nil {
		return err
	}
	if s.tree == nil {
		return errors.ContractViolation("no document loaded")
	}
	return nil
}

func (s *Session) refused(err error, path string) {
	s.log.WithField("code", errors.GetCode(err)).WithField("path", path).Debug("Edit refused")
}
