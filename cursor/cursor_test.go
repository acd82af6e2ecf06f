package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonedit/value"
)

// doc builds {"a": {"b": [1, 2, 3]}, "s": "x"} and returns the pieces.
func doc() (*value.Object, *value.Object, *value.Array) {
	arr := value.NewArray(1.0, 2.0, 3.0)
	inner := value.NewObject()
	inner.Set("b", arr)
	root := value.NewObject()
	root.Set("a", inner)
	root.Set("s", "x")
	return root, inner, arr
}

func TestRootWrite(t *testing.T) {
	h := &Root{Value: value.NewObject()}
	c := NewRoot(h)

	replacement := value.NewArray()
	got, err := c.Write(replacement)
	require.NoError(t, err)
	assert.Same(t, replacement, got)
	assert.Same(t, replacement, h.Value)
	assert.Equal(t, "$", c.Path())
	assert.True(t, c.IsRoot())
}

func TestDeepWriteTouchesOneSlot(t *testing.T) {
	root, inner, arr := doc()
	rc := NewRoot(&Root{Value: root})
	ac := Key(rc, root, "a")
	bc := Key(ac, inner, "b")
	ic := Index(bc, arr, 2)

	got, err := ic.Write("three")
	require.NoError(t, err)

	assert.Same(t, root, got, "root identity is preserved")
	assert.Equal(t, []value.Value{1.0, 2.0, "three"}, arr.Items())

	a, _ := root.Get("a")
	assert.Same(t, inner, a)
	b, _ := inner.Get("b")
	assert.Same(t, arr, b)
	s, _ := root.Get("s")
	assert.Equal(t, "x", s)
	assert.Equal(t, "$.a.b[2]", ic.Path())
}

func TestSiblingContainersKeepIdentity(t *testing.T) {
	left := value.NewObject()
	right := value.NewArray(1.0)
	root := value.NewArray(left, right, "leaf")
	rc := NewRoot(&Root{Value: root})

	_, err := Index(rc, root, 2).Write(false)
	require.NoError(t, err)

	assert.Same(t, left, root.At(0))
	assert.Same(t, right, root.At(1))
	assert.Equal(t, false, root.At(2))
}

func TestReadBack(t *testing.T) {
	root, inner, arr := doc()
	rc := NewRoot(&Root{Value: root})
	ac := Key(rc, root, "a")

	assert.Same(t, inner, ac.Read())
	assert.Equal(t, 2.0, Index(Key(ac, inner, "b"), arr, 1).Read())
	assert.Equal(t, "x", Key(rc, root, "s").Read())
}

func TestNoopIsInert(t *testing.T) {
	root, _, _ := doc()
	rc := NewRoot(&Root{Value: root})
	n := Noop(rc)

	got, err := n.Write("ignored")
	require.NoError(t, err)
	assert.Same(t, root, got)
	assert.Equal(t, []string{"a", "s"}, root.Keys())
	assert.True(t, n.IsNoop())
	assert.Nil(t, n.Read())
	assert.Equal(t, "$", n.Path())
}

func TestPathQuotesOddKeys(t *testing.T) {
	obj := value.NewObject()
	obj.Set("odd key", 1.0)
	rc := NewRoot(&Root{Value: obj})

	assert.Equal(t, `$["odd key"]`, Key(rc, obj, "odd key").Path())
	assert.Equal(t, `$["1x"]`, Key(rc, obj, "1x").Path())
	assert.Equal(t, `$[""]`, Key(rc, obj, "").Path())
}

func TestSlotAccessors(t *testing.T) {
	root, _, arr := doc()
	rc := NewRoot(&Root{Value: root})

	k, ok := Key(rc, root, "s").SlotKey()
	assert.True(t, ok)
	assert.Equal(t, "s", k)

	i, ok := Index(rc, arr, 1).SlotIndex()
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = rc.SlotKey()
	assert.False(t, ok)
}
