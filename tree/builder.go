// Package tree turns a document value into a tree of nodes, each carrying a
// cursor that can write a replacement value back into the document.
package tree

import (
	"fmt"

	"github.com/grovetools/jsonedit/cursor"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// NodeFactory is called once for every value node after it is built. v is
// the node's value, c its write-back cursor and p the link to its container
// (nil for the root). Hooks must not start edits while the build runs.
type NodeFactory func(n *Node, v value.Value, c *cursor.Cursor, p *ParentLink)

// KeyFactory is called once per object key. v is the key string and c is an
// inert cursor.
type KeyFactory func(n *Node, v value.Value, c *cursor.Cursor, p *ParentLink)

// Hooks are the view collaborators invoked during a build.
type Hooks struct {
	Node NodeFactory
	Key  KeyFactory
}

// Build constructs the tree for root, which must be an array or an object.
// Containers reachable from themselves are rendered once; the back-edge
// becomes a KindSentinel node.
func Build(root value.Value, hooks Hooks) (*Node, error) {
	if hooks.Node == nil {
		return nil, errors.InvalidCollaborator("node hook")
	}
	if hooks.Key == nil {
		return nil, errors.InvalidCollaborator("key hook")
	}
	if !value.KindOf(root).IsContainer() {
		return nil, errors.InvalidRoot(value.KindOf(root).String())
	}

	b := &builder{hooks: hooks, guard: NewCycleGuard()}
	return b.build(root, cursor.NewRoot(&cursor.Root{Value: root}), nil, 0)
}

type builder struct {
	hooks Hooks
	guard *CycleGuard
}

func (b *builder) build(v value.Value, c *cursor.Cursor, p *ParentLink, depth int) (*Node, error) {
	if value.KindOf(v) == value.Invalid {
		return nil, errors.ContractViolation(
			fmt.Sprintf("unsupported value type %T at %s", v, c.Path()))
	}
	n := &Node{Value: v, Cursor: c, Parent: p, Depth: depth}

	switch t := v.(type) {
	case *value.Array:
		tok, ok := b.guard.Enter(t)
		n.Token = tok
		if !ok {
			n.Kind = KindSentinel
			break
		}
		n.Kind = KindArray
		link := &ParentLink{Data: t, Cursor: c, Parent: p}
		n.Children = make([]*Node, 0, t.Len())
		for i := 0; i < t.Len(); i++ {
			child, err := b.build(t.At(i), cursor.Index(c, t, i), link, depth+1)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
		b.guard.Leave(t)

	case *value.Object:
		tok, ok := b.guard.Enter(t)
		n.Token = tok
		if !ok {
			n.Kind = KindSentinel
			break
		}
		n.Kind = KindObject
		link := &ParentLink{Data: t, Cursor: c, Parent: p}
		n.Pairs = make([]Pair, 0, t.Len())
		var err error
		t.Each(func(k string, child value.Value) bool {
			keyCursor := cursor.Noop(c)
			keyNode := &Node{Kind: KindKey, Value: k, Cursor: keyCursor, Parent: link, Depth: depth + 1}
			b.hooks.Key(keyNode, k, keyCursor, link)

			var valNode *Node
			valNode, err = b.build(child, cursor.Key(c, t, k), link, depth+1)
			if err != nil {
				return false
			}
			n.Pairs = append(n.Pairs, Pair{Key: keyNode, Value: valNode})
			return true
		})
		if err != nil {
			return nil, err
		}
		b.guard.Leave(t)

	default:
		n.Kind = KindLeaf
	}

	b.hooks.Node(n, v, c, p)
	return n, nil
}
