package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want Kind
	}{
		{"null", nil, Null},
		{"bool", true, Boolean},
		{"number", 1.5, Number},
		{"string", "x", String},
		{"array", NewArray(), ArrayKind},
		{"object", NewObject(), ObjectKind},
		{"int is not a number", 3, Invalid},
		{"nil array pointer", (*Array)(nil), Invalid},
		{"map is invalid", map[string]any{}, Invalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.in))
		})
	}
}

func TestObjectKeepsInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", 1.0)
	o.Set("a", 2.0)
	o.Set("c", 3.0)
	o.Set("a", 4.0)

	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
	v, ok := o.Get("a")
	require.True(t, ok)
	assert.Equal(t, 4.0, v)

	assert.True(t, o.Delete("b"))
	assert.False(t, o.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, o.Keys())
}

func TestObjectEachStops(t *testing.T) {
	o := NewObject()
	o.Set("x", 1.0)
	o.Set("y", 2.0)

	var seen []string
	o.Each(func(k string, _ Value) bool {
		seen = append(seen, k)
		return false
	})
	assert.Equal(t, []string{"x"}, seen)
}

func TestArraySetAt(t *testing.T) {
	a := NewArray(1.0, "two", nil)
	require.NoError(t, a.SetAt(1, "deux"))
	assert.Equal(t, []Value{1.0, "deux", nil}, a.Items())
	assert.Error(t, a.SetAt(3, 0.0))
	assert.Error(t, a.SetAt(-1, 0.0))

	items := a.Items()
	items[0] = "changed"
	assert.Equal(t, 1.0, a.At(0), "Items must return a copy")
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "", Default(String))
	assert.Equal(t, 0.0, Default(Number))
	assert.Equal(t, false, Default(Boolean))
	assert.Nil(t, Default(Null))
	assert.Equal(t, 0, Default(ArrayKind).(*Array).Len())
	assert.Equal(t, 0, Default(ObjectKind).(*Object).Len())
	assert.NotSame(t, Default(ObjectKind), Default(ObjectKind))
}
