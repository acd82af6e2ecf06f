package tree

import (
	"strconv"

	"github.com/grovetools/jsonedit/cursor"
	"github.com/grovetools/jsonedit/value"
)

// SentinelText is shown in place of a container that refers back to one of
// its ancestors.
const SentinelText = "visited"

// NodeKind distinguishes rendered node shapes.
type NodeKind int

const (
	KindLeaf NodeKind = iota
	KindArray
	KindObject
	KindKey
	KindSentinel
)

func (k NodeKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindKey:
		return "key"
	case KindSentinel:
		return "sentinel"
	}
	return "unknown"
}

// ParentLink points from a node back to the container holding it. It is
// never used to drive traversal.
type ParentLink struct {
	Data   value.Value
	Cursor *cursor.Cursor
	Parent *ParentLink
}

// Object returns the linked container as an object, if it is one.
func (p *ParentLink) Object() (*value.Object, bool) {
	if p == nil {
		return nil, false
	}
	o, ok := p.Data.(*value.Object)
	return o, ok
}

// Pair is one key/value entry of an object node.
type Pair struct {
	Key   *Node
	Value *Node
}

// Node is one element of a built tree.
type Node struct {
	Kind   NodeKind
	Value  value.Value
	Cursor *cursor.Cursor
	Parent *ParentLink
	Depth  int

	// Token is the identity token of the container for array, object and
	// sentinel nodes.
	Token int

	Children []*Node // array elements
	Pairs    []Pair  // object entries in key order

	// Data is free for node hooks to attach view state.
	Data any
}

// IsContainer reports whether the node has children.
func (n *Node) IsContainer() bool {
	return n.Kind == KindArray || n.Kind == KindObject
}

// Label returns the key or index this node is stored under in its parent.
// The root and key nodes have no label.
func (n *Node) Label() string {
	if n.Cursor == nil || n.Kind == KindKey {
		return ""
	}
	if k, ok := n.Cursor.SlotKey(); ok {
		return k
	}
	if i, ok := n.Cursor.SlotIndex(); ok {
		return strconv.Itoa(i)
	}
	return ""
}

// Path returns the document path of the node's slot.
func (n *Node) Path() string {
	if n.Kind == KindKey && n.Parent != nil && n.Parent.Cursor != nil {
		if k, ok := n.Value.(string); ok {
			return cursor.Key(n.Parent.Cursor, nil, k).Path()
		}
	}
	if n.Cursor == nil {
		return ""
	}
	return n.Cursor.Path()
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	if n.Kind == KindObject {
		return len(n.Pairs)
	}
	return len(n.Children)
}

// Walk visits n and every value node below it depth first. Key nodes are
// reachable through Pairs and are not visited. Returning false from fn skips
// the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
	for _, p := range n.Pairs {
		p.Value.Walk(fn)
	}
}

// Find returns the first value node whose path equals path.
func (n *Node) Find(path string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Path() == path {
			found = c
			return false
		}
		return true
	})
	return found
}
