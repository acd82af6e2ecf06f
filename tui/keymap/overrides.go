package keymap

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/jsonedit/config"
)

var bindingType = reflect.TypeOf(key.Binding{})

// eachBinding calls fn for every exported key.Binding field of the struct v,
// including fields promoted from embedded structs. name is the snake_case
// config key of the field.
func eachBinding(v reflect.Value, fn func(name string, field reflect.Value)) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		switch {
		case f.Anonymous:
			eachBinding(v.Field(i), fn)
		case f.IsExported() && f.Type == bindingType:
			fn(camelToSnake(f.Name), v.Field(i))
		}
	}
}

// ApplyOverrides replaces the keys of every binding in km (a pointer to a
// keymap struct) named in overrides, so {"yank_all": ["ctrl+y"]} rebinds
// YankAll. Help descriptions are kept; the first key becomes the help key.
func ApplyOverrides(km any, overrides config.KeybindingSectionConfig) {
	if len(overrides) == 0 || reflect.ValueOf(km).Kind() != reflect.Ptr {
		return
	}
	eachBinding(reflect.ValueOf(km), func(name string, field reflect.Value) {
		keys := overrides[name]
		if len(keys) == 0 || !field.CanSet() {
			return
		}
		desc := field.Interface().(key.Binding).Help().Desc
		field.Set(reflect.ValueOf(bind(keys[0], desc, keys...)))
	})
}

// camelToSnake turns a field name into its config key: YankAll becomes
// yank_all and HTTPHeader becomes http_header.
func camelToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
