// Package codec converts documents between bytes and the value model.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json", "jsonc":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown format '%s'", name)).
		WithDetail("format", name)
}

// DetectFormat guesses the format of a file from its extension. Unknown
// extensions are treated as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatJSON
}

// Decode parses data in the given format.
func Decode(format Format, data []byte) (value.Value, error) {
	switch format {
	case FormatYAML:
		return DecodeYAML(data)
	case FormatTOML:
		return DecodeTOML(data)
	default:
		return DecodeJSON(data)
	}
}

// Encode renders v in the given format. indent applies to JSON and YAML.
func Encode(format Format, v value.Value, indent int) ([]byte, error) {
	switch format {
	case FormatYAML:
		return EncodeYAML(v, indent)
	case FormatTOML:
		return EncodeTOML(v)
	default:
		return EncodeJSON(v, indent)
	}
}
