package editor

import (
	"github.com/grovetools/jsonedit/cursor"
	"github.com/grovetools/jsonedit/tree"
	"github.com/grovetools/jsonedit/value"
)

// Selection is the node the user last picked. It is only valid for the tree
// generation it was taken from.
type Selection struct {
	Node   *tree.Node
	Value  value.Value
	Cursor *cursor.Cursor
	Parent *tree.ParentLink

	generation uint64
}

// Path returns the document path of the selected node.
func (s Selection) Path() string {
	if s.Node == nil {
		return ""
	}
	return s.Node.Path()
}

// Key returns the object key the selection is stored under.
func (s Selection) Key() (string, bool) {
	if s.Node != nil && s.Node.Kind == tree.KindKey {
		k, ok := s.Value.(string)
		return k, ok
	}
	if s.Cursor == nil {
		return "", false
	}
	return s.Cursor.SlotKey()
}
