package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonedit/cursor"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

type recorder struct {
	leaves    []*Node
	keys      []string
	keyCursor []*cursor.Cursor
	nodes     int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		Node: func(n *Node, v value.Value, c *cursor.Cursor, p *ParentLink) {
			r.nodes++
			if n.Kind == KindLeaf {
				r.leaves = append(r.leaves, n)
			}
		},
		Key: func(n *Node, v value.Value, c *cursor.Cursor, p *ParentLink) {
			r.keys = append(r.keys, v.(string))
			r.keyCursor = append(r.keyCursor, c)
		},
	}
}

func nested() *value.Object {
	list := value.NewArray(1.0, "two", nil)
	inner := value.NewObject()
	inner.Set("flag", true)
	root := value.NewObject()
	root.Set("list", list)
	root.Set("inner", inner)
	root.Set("name", "n")
	return root
}

func TestBuildLeafReadBackOrder(t *testing.T) {
	r := &recorder{}
	root := nested()
	tr, err := Build(root, r.hooks())
	require.NoError(t, err)

	var got []value.Value
	var paths []string
	for _, leaf := range r.leaves {
		got = append(got, leaf.Cursor.Read())
		paths = append(paths, leaf.Path())
	}
	assert.Equal(t, []value.Value{1.0, "two", nil, true, "n"}, got)
	assert.Equal(t, []string{"$.list[0]", "$.list[1]", "$.list[2]", "$.inner.flag", "$.name"}, paths)
	assert.Equal(t, []string{"list", "inner", "flag", "name"}, r.keys)
	assert.Equal(t, KindObject, tr.Kind)
	assert.Equal(t, 3, tr.Len())
	// 3 containers + 5 leaves
	assert.Equal(t, 8, r.nodes)
}

func TestBuildKeyCursorsAreInert(t *testing.T) {
	r := &recorder{}
	root := nested()
	_, err := Build(root, r.hooks())
	require.NoError(t, err)

	for _, c := range r.keyCursor {
		require.True(t, c.IsNoop())
		got, err := c.Write("x")
		require.NoError(t, err)
		assert.Same(t, root, got)
	}
	assert.Equal(t, []string{"list", "inner", "name"}, root.Keys())
}

func TestBuildCursorWriteStaysInSlot(t *testing.T) {
	r := &recorder{}
	root := nested()
	tr, err := Build(root, r.hooks())
	require.NoError(t, err)

	listNode := tr.Pairs[0].Value
	inner, _ := root.Get("inner")
	list, _ := root.Get("list")

	got, err := listNode.Children[1].Cursor.Write(2.0)
	require.NoError(t, err)
	assert.Same(t, root, got)
	assert.Same(t, list, listNode.Value)
	after, _ := root.Get("inner")
	assert.Same(t, inner, after)
	assert.Equal(t, []value.Value{1.0, 2.0, nil}, list.(*value.Array).Items())
}

func TestBuildSelfReference(t *testing.T) {
	root := value.NewObject()
	root.Set("name", "loop")
	root.Set("self", root)

	r := &recorder{}
	tr, err := Build(root, r.hooks())
	require.NoError(t, err)

	self := tr.Pairs[1].Value
	assert.Equal(t, KindSentinel, self.Kind)
	assert.Equal(t, tr.Token, self.Token)
	assert.Empty(t, self.Pairs)
}

func TestBuildIndirectCycle(t *testing.T) {
	a := value.NewArray()
	b := value.NewObject()
	b.Set("back", a)
	a.Append(b)

	tr, err := Build(a, (&recorder{}).hooks())
	require.NoError(t, err)

	back := tr.Children[0].Pairs[0].Value
	assert.Equal(t, KindSentinel, back.Kind)
	assert.Equal(t, tr.Token, back.Token)
}

func TestBuildSharedContainerRendersTwice(t *testing.T) {
	shared := value.NewArray(1.0)
	root := value.NewObject()
	root.Set("left", shared)
	root.Set("right", shared)

	tr, err := Build(root, (&recorder{}).hooks())
	require.NoError(t, err)

	left, right := tr.Pairs[0].Value, tr.Pairs[1].Value
	assert.Equal(t, KindArray, left.Kind)
	assert.Equal(t, KindArray, right.Kind)
	assert.Equal(t, left.Token, right.Token)
	assert.Len(t, right.Children, 1)
}

func TestBuildRejectsScalarRoot(t *testing.T) {
	for _, root := range []value.Value{nil, true, 1.0, "s"} {
		_, err := Build(root, (&recorder{}).hooks())
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidRoot), "root %v", root)
		assert.True(t, errors.IsContractViolation(err))
	}
}

func TestBuildRequiresHooks(t *testing.T) {
	h := (&recorder{}).hooks()

	_, err := Build(value.NewArray(), Hooks{Key: h.Key})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidCollaborator))

	_, err = Build(value.NewArray(), Hooks{Node: h.Node})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidCollaborator))
}

func TestBuildRejectsForeignTypes(t *testing.T) {
	_, err := Build(value.NewArray(42), (&recorder{}).hooks())
	assert.True(t, errors.Is(err, errors.ErrCodeContractViolation))
}

func TestFind(t *testing.T) {
	tr, err := Build(nested(), (&recorder{}).hooks())
	require.NoError(t, err)

	n := tr.Find("$.inner.flag")
	require.NotNil(t, n)
	assert.Equal(t, true, n.Value)
	assert.Equal(t, "flag", n.Label())
	assert.Nil(t, tr.Find("$.missing"))
}
