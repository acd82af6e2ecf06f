package codec

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// DecodeTOML parses a TOML document. TOML tables decode without their
// source order, so keys come back sorted.
func DecodeTOML(data []byte) (value.Value, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.DecodeFailed("toml", err)
	}
	v, err := FromNative(raw)
	if err != nil {
		return nil, errors.DecodeFailed("toml", err)
	}
	return v, nil
}

// EncodeTOML renders v as TOML. Only objects can be the root of a TOML
// document and TOML has no null, so null entries are dropped.
func EncodeTOML(v value.Value) ([]byte, error) {
	if value.KindOf(v) != value.ObjectKind {
		return nil, errors.New(errors.ErrCodeInvalidInput, "TOML output needs an object at the root")
	}
	plain, err := toPlain(v)
	if err != nil {
		return nil, err
	}
	out, err := toml.Marshal(dropNulls(plain))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode TOML")
	}
	return out, nil
}

func dropNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			if item == nil {
				delete(t, k)
				continue
			}
			t[k] = dropNulls(item)
		}
		return t
	case []any:
		out := t[:0]
		for _, item := range t {
			if item != nil {
				out = append(out, dropNulls(item))
			}
		}
		return out
	}
	return v
}
