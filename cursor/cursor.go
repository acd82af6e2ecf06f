// Package cursor provides write-back handles bound to one slot of a document.
//
// A Cursor remembers a container and a slot in it (an array index or an
// object key) together with the cursor of that container. Writing through a
// cursor replaces exactly that slot and reports the current document root.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// Root holds the authoritative document value for a session.
type Root struct {
	Value value.Value
}

type slotKind int

const (
	rootSlot slotKind = iota
	indexSlot
	keySlot
	noopSlot
)

// Cursor is bound to a single slot. The zero value is not usable; build
// cursors with NewRoot, Index, Key or Noop.
type Cursor struct {
	parent *Cursor
	root   *Root
	kind   slotKind

	arr   *value.Array
	index int

	obj *value.Object
	key string
}

// NewRoot returns the cursor for the whole document held by h.
func NewRoot(h *Root) *Cursor {
	if h == nil {
		h = &Root{}
	}
	return &Cursor{root: h, kind: rootSlot}
}

// Index returns a cursor for arr[i]. parent is the cursor of arr itself.
func Index(parent *Cursor, arr *value.Array, i int) *Cursor {
	return &Cursor{parent: parent, root: rootOf(parent), kind: indexSlot, arr: arr, index: i}
}

// Key returns a cursor for obj[k]. parent is the cursor of obj itself.
func Key(parent *Cursor, obj *value.Object, k string) *Cursor {
	return &Cursor{parent: parent, root: rootOf(parent), kind: keySlot, obj: obj, key: k}
}

// Noop returns an inert cursor. Writing through it changes nothing and
// reports the root.
func Noop(parent *Cursor) *Cursor {
	return &Cursor{parent: parent, root: rootOf(parent), kind: noopSlot}
}

func rootOf(parent *Cursor) *Root {
	if parent == nil {
		return &Root{}
	}
	return parent.root
}

// Write replaces the bound slot with v and returns the current root. Only
// the bound slot is touched: siblings and ancestors keep their identity.
func (c *Cursor) Write(v value.Value) (value.Value, error) {
	switch c.kind {
	case rootSlot:
		c.root.Value = v
	case indexSlot:
		if err := c.arr.SetAt(c.index, v); err != nil {
			return c.Root(), errors.Wrap(err, errors.ErrCodeContractViolation,
				fmt.Sprintf("stale cursor %s", c.Path()))
		}
	case keySlot:
		c.obj.Set(c.key, v)
	case noopSlot:
	}
	return c.Root(), nil
}

// Read returns the value currently stored in the bound slot. A noop cursor
// reads as nil.
func (c *Cursor) Read() value.Value {
	switch c.kind {
	case rootSlot:
		return c.root.Value
	case indexSlot:
		if c.index < 0 || c.index >= c.arr.Len() {
			return nil
		}
		return c.arr.At(c.index)
	case keySlot:
		v, _ := c.obj.Get(c.key)
		return v
	}
	return nil
}

// Root returns the current document root.
func (c *Cursor) Root() value.Value {
	return c.root.Value
}

// Parent returns the cursor of the enclosing container, or nil for the root.
func (c *Cursor) Parent() *Cursor { return c.parent }

// IsNoop reports whether the cursor is inert.
func (c *Cursor) IsNoop() bool { return c.kind == noopSlot }

// IsRoot reports whether the cursor addresses the whole document.
func (c *Cursor) IsRoot() bool { return c.kind == rootSlot }

// SlotKey returns the object key this cursor is bound to.
func (c *Cursor) SlotKey() (string, bool) {
	return c.key, c.kind == keySlot
}

// SlotIndex returns the array index this cursor is bound to.
func (c *Cursor) SlotIndex() (int, bool) {
	return c.index, c.kind == indexSlot
}

// Path renders the slot address, e.g. $.a.b[2] or $["odd key"].
func (c *Cursor) Path() string {
	var parts []string
	for cur := c; cur != nil; cur = cur.parent {
		switch cur.kind {
		case rootSlot:
			parts = append(parts, "$")
		case indexSlot:
			parts = append(parts, "["+strconv.Itoa(cur.index)+"]")
		case keySlot:
			parts = append(parts, keySegment(cur.key))
		}
	}
	if len(parts) == 0 || parts[len(parts)-1] != "$" {
		parts = append(parts, "$")
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}
	return b.String()
}

func keySegment(k string) string {
	if isIdent(k) {
		return "." + k
	}
	return "[" + strconv.Quote(k) + "]"
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
