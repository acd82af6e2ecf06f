package editor

import (
	"math"
	"strconv"

	"github.com/grovetools/jsonedit/value"
)

// ParseLiteral interprets text typed into the value editor. Keywords and
// numbers become their typed values, a matching pair of double or single
// quotes forces a string, and anything else is kept as a string.
func ParseLiteral(text string) value.Value {
	switch text {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' || first == '\'') && first == last {
			return text[1 : len(text)-1]
		}
	}
	return text
}

// FormatLiteral renders v the way ParseLiteral reads it back, used to prefill
// the value editor. Strings that would parse as another type are quoted.
func FormatLiteral(v value.Value) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		if s, ok := ParseLiteral(t).(string); ok && s == t {
			return t
		}
		return `"` + t + `"`
	}
	return ""
}
