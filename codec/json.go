package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/tidwall/jsonc"

	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// DecodeJSON parses a JSON document, keeping object keys in document order.
// Comments and trailing commas are accepted.
func DecodeJSON(data []byte) (value.Value, error) {
	clean := jsonc.ToJSON(data)
	if !json.Valid(clean) {
		return nil, errors.DecodeFailed("json", syntaxError(clean))
	}
	raw, t, _, err := jsonparser.Get(clean)
	if err != nil {
		return nil, errors.DecodeFailed("json", err)
	}
	v, err := decodeJSONValue(raw, t)
	if err != nil {
		return nil, errors.DecodeFailed("json", err)
	}
	return v, nil
}

func syntaxError(data []byte) error {
	var discard any
	if err := json.Unmarshal(data, &discard); err != nil {
		return err
	}
	return fmt.Errorf("invalid JSON")
}

func decodeJSONValue(raw []byte, t jsonparser.ValueType) (value.Value, error) {
	switch t {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(raw)
	case jsonparser.Number:
		return jsonparser.ParseFloat(raw)
	case jsonparser.String:
		return jsonparser.ParseString(raw)
	case jsonparser.Array:
		arr := value.NewArray()
		var inner error
		_, err := jsonparser.ArrayEach(raw, func(item []byte, it jsonparser.ValueType, _ int, err error) {
			if inner != nil {
				return
			}
			if err != nil {
				inner = err
				return
			}
			v, err := decodeJSONValue(item, it)
			if err != nil {
				inner = err
				return
			}
			arr.Append(v)
		})
		if err != nil {
			return nil, err
		}
		return arr, inner
	case jsonparser.Object:
		obj := value.NewObject()
		err := jsonparser.ObjectEach(raw, func(key, item []byte, it jsonparser.ValueType, _ int) error {
			v, err := decodeJSONValue(item, it)
			if err != nil {
				return err
			}
			obj.Set(string(key), v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unexpected JSON token type %v", t)
}

// EncodeJSON renders v as JSON with keys in insertion order. indent <= 0
// produces compact output.
func EncodeJSON(v value.Value, indent int) ([]byte, error) {
	native, err := toOrdered(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", spaces(indent))
	}
	if err := enc.Encode(native); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode JSON")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func spaces(n int) string {
	return string(bytes.Repeat([]byte{' '}, n))
}
