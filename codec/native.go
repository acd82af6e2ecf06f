package codec

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/grovetools/jsonedit/cursor"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// walker converts a value tree into another representation, failing on
// containers that contain themselves.
type walker struct {
	active map[any]struct{}
}

func newWalker() *walker {
	return &walker{active: make(map[any]struct{})}
}

func (w *walker) enter(c any, at *cursor.Cursor) error {
	if _, busy := w.active[c]; busy {
		return errors.CyclicValue(at.Path())
	}
	w.active[c] = struct{}{}
	return nil
}

func (w *walker) leave(c any) { delete(w.active, c) }

// toOrdered converts v into values encoding/json can marshal with object key
// order preserved.
func toOrdered(v value.Value) (any, error) {
	w := newWalker()
	return w.ordered(v, cursor.NewRoot(&cursor.Root{Value: v}))
}

func (w *walker) ordered(v value.Value, at *cursor.Cursor) (any, error) {
	switch t := v.(type) {
	case *value.Array:
		if err := w.enter(t, at); err != nil {
			return nil, err
		}
		defer w.leave(t)
		out := make([]any, 0, t.Len())
		for i := 0; i < t.Len(); i++ {
			item, err := w.ordered(t.At(i), cursor.Index(at, t, i))
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case *value.Object:
		if err := w.enter(t, at); err != nil {
			return nil, err
		}
		defer w.leave(t)
		out := orderedmap.New[string, any]()
		var err error
		t.Each(func(k string, item value.Value) bool {
			var conv any
			conv, err = w.ordered(item, cursor.Key(at, t, k))
			if err != nil {
				return false
			}
			out.Set(k, conv)
			return true
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				fmt.Sprintf("number at %s is not finite", at.Path()))
		}
		return t, nil
	default:
		return v, nil
	}
}

// toPlain converts v into maps and slices, the shape jmespath and go-toml
// expect. Key order is lost.
func toPlain(v value.Value) (any, error) {
	w := newWalker()
	return w.plain(v, cursor.NewRoot(&cursor.Root{Value: v}))
}

func (w *walker) plain(v value.Value, at *cursor.Cursor) (any, error) {
	switch t := v.(type) {
	case *value.Array:
		if err := w.enter(t, at); err != nil {
			return nil, err
		}
		defer w.leave(t)
		out := make([]any, 0, t.Len())
		for i := 0; i < t.Len(); i++ {
			item, err := w.plain(t.At(i), cursor.Index(at, t, i))
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case *value.Object:
		if err := w.enter(t, at); err != nil {
			return nil, err
		}
		defer w.leave(t)
		out := make(map[string]any, t.Len())
		var err error
		t.Each(func(k string, item value.Value) bool {
			out[k], err = w.plain(item, cursor.Key(at, t, k))
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return v, nil
	}
}

// FromNative converts decoded Go data (maps, slices, numbers of any width)
// into the value model. Map keys are sorted since Go maps carry no order.
func FromNative(v any) (value.Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return t.String(), nil
	case []any:
		arr := value.NewArray()
		for _, item := range t {
			conv, err := FromNative(item)
			if err != nil {
				return nil, err
			}
			arr.Append(conv)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := value.NewObject()
		for _, k := range keys {
			conv, err := FromNative(t[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, conv)
		}
		return obj, nil
	case map[any]any:
		plain := make(map[string]any, len(t))
		for k, item := range t {
			plain[fmt.Sprint(k)] = item
		}
		return FromNative(plain)
	}
	return nil, errors.New(errors.ErrCodeDecodeFailed, "unsupported decoded type "+strconv.Quote(fmt.Sprintf("%T", v)))
}
