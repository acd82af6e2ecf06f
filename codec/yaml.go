package codec

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/jsonedit/cursor"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// DecodeYAML parses the first document in data. Mapping order is kept, and
// an anchor referenced by several aliases becomes one shared container.
func DecodeYAML(data []byte) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.DecodeFailed("yaml", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	d := &yamlDecoder{seen: make(map[*yaml.Node]value.Value)}
	v, err := d.decode(&doc)
	if err != nil {
		return nil, errors.DecodeFailed("yaml", err)
	}
	return v, nil
}

type yamlDecoder struct {
	seen map[*yaml.Node]value.Value
}

func (d *yamlDecoder) decode(n *yaml.Node) (value.Value, error) {
	if v, ok := d.seen[n]; ok {
		return v, nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.decode(n.Content[0])
	case yaml.AliasNode:
		return d.decode(n.Alias)
	case yaml.SequenceNode:
		arr := value.NewArray()
		d.seen[n] = arr
		for _, item := range n.Content {
			v, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := value.NewObject()
		d.seen[n] = obj
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, item := n.Content[i], n.Content[i+1]
			if key.Tag == "!!merge" {
				if err := d.merge(obj, item); err != nil {
					return nil, err
				}
				continue
			}
			v, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			obj.Set(key.Value, v)
		}
		return obj, nil
	case yaml.ScalarNode:
		return decodeScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// merge applies a "<<" merge key: entries from the referenced mappings are
// added unless already present.
func (d *yamlDecoder) merge(obj *value.Object, n *yaml.Node) error {
	sources := []*yaml.Node{n}
	if n.Kind == yaml.SequenceNode {
		sources = n.Content
	}
	for _, src := range sources {
		v, err := d.decode(src)
		if err != nil {
			return err
		}
		from, ok := v.(*value.Object)
		if !ok {
			return fmt.Errorf("line %d: merge value is not a mapping", src.Line)
		}
		from.Each(func(k string, item value.Value) bool {
			if !obj.Has(k) {
				obj.Set(k, item)
			}
			return true
		})
	}
	return nil
}

func decodeScalar(n *yaml.Node) (value.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return FromNative(v)
	default:
		return n.Value, nil
	}
}

// EncodeYAML renders v as a YAML document.
func EncodeYAML(v value.Value, indent int) ([]byte, error) {
	node, err := yamlNode(newWalker(), v, cursor.NewRoot(&cursor.Root{Value: v}))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(node); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode YAML")
	}
	return buf.Bytes(), nil
}

func yamlNode(w *walker, v value.Value, at *cursor.Cursor) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case float64:
		return yamlNumber(t), nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}, nil
	case *value.Array:
		if err := w.enter(t, at); err != nil {
			return nil, err
		}
		defer w.leave(t)
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 0; i < t.Len(); i++ {
			item, err := yamlNode(w, t.At(i), cursor.Index(at, t, i))
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, item)
		}
		return seq, nil
	case *value.Object:
		if err := w.enter(t, at); err != nil {
			return nil, err
		}
		defer w.leave(t)
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var err error
		t.Each(func(k string, item value.Value) bool {
			var child *yaml.Node
			child, err = yamlNode(w, item, cursor.Key(at, t, k))
			if err != nil {
				return false
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, child)
			return true
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, errors.ContractViolation(fmt.Sprintf("unsupported value type %T at %s", v, at.Path()))
}

func yamlNumber(f float64) *yaml.Node {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatFloat(f, 'f', -1, 64)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(f, 'g', -1, 64)}
}
