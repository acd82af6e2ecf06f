package value

import (
	"github.com/grovetools/jsonedit/errors"
)

// RenameKey returns a copy of obj in which oldKey is renamed to newKey at the
// same position with its value untouched. obj itself is never modified.
//
// A missing oldKey yields a MISSING_KEY error. When newKey is already present
// (including oldKey == newKey) obj is returned as-is together with a
// COLLISION_NOOP error so callers can tell the rename did not happen.
func RenameKey(obj *Object, oldKey, newKey string) (*Object, error) {
	if obj == nil {
		return nil, errors.ContractViolation("RenameKey called with a nil object")
	}
	if !obj.Has(oldKey) {
		return obj, errors.MissingKey(oldKey)
	}
	if obj.Has(newKey) {
		return obj, errors.CollisionNoop(oldKey, newKey)
	}

	out := NewObject()
	obj.Each(func(k string, v Value) bool {
		if k == oldKey {
			k = newKey
		}
		out.Set(k, v)
		return true
	})
	return out, nil
}
