// Package value holds the in-memory document model edited by jsonedit.
//
// A Value is one of nil, bool, float64, string, *Array or *Object. Containers
// are pointers so they carry reference identity: the same *Object may be
// reachable from several places, including from inside itself.
package value

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is any JSON-like value. See KindOf for the accepted dynamic types.
type Value = any

// Kind classifies a Value.
type Kind int

const (
	Invalid Kind = iota
	Null
	Boolean
	Number
	String
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "invalid"
	}
}

// IsContainer reports whether values of this kind have children.
func (k Kind) IsContainer() bool {
	return k == ArrayKind || k == ObjectKind
}

// KindOf returns the kind of v. Go types outside the model report Invalid.
func KindOf(v Value) Kind {
	switch t := v.(type) {
	case nil:
		return Null
	case bool:
		return Boolean
	case float64:
		return Number
	case string:
		return String
	case *Array:
		if t == nil {
			return Invalid
		}
		return ArrayKind
	case *Object:
		if t == nil {
			return Invalid
		}
		return ObjectKind
	default:
		return Invalid
	}
}

// Array is an ordered, index-addressed sequence of values.
type Array struct {
	items []Value
}

// NewArray returns an array holding items in order.
func NewArray(items ...Value) *Array {
	a := &Array{items: make([]Value, 0, len(items))}
	a.items = append(a.items, items...)
	return a
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// At returns the element at i. It panics when i is out of range, like a slice.
func (a *Array) At(i int) Value { return a.items[i] }

// SetAt replaces the element at i.
func (a *Array) SetAt(i int, v Value) error {
	if i < 0 || i >= len(a.items) {
		return fmt.Errorf("index %d out of range [0,%d)", i, len(a.items))
	}
	a.items[i] = v
	return nil
}

// Append adds v at the end.
func (a *Array) Append(v Value) { a.items = append(a.items, v) }

// Items returns a copy of the elements.
func (a *Array) Items() []Value {
	out := make([]Value, len(a.items))
	copy(out, a.items)
	return out
}

// Object is a string-keyed mapping that remembers insertion order.
type Object struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, Value]()}
}

// Len returns the number of keys.
func (o *Object) Len() int { return o.m.Len() }

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) { return o.m.Get(key) }

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.m.Get(key)
	return ok
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position.
func (o *Object) Set(key string, v Value) { o.m.Set(key, v) }

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	_, ok := o.m.Delete(key)
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every pair in order until fn returns false.
func (o *Object) Each(fn func(key string, v Value) bool) {
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Default returns the initial value used when a child of kind k is created.
func Default(k Kind) Value {
	switch k {
	case Boolean:
		return false
	case Number:
		return float64(0)
	case String:
		return ""
	case ArrayKind:
		return NewArray()
	case ObjectKind:
		return NewObject()
	default:
		return nil
	}
}
