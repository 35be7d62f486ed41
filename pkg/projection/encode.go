package projection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdesigner/pkg/document"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for formats this package cannot encode.
var ErrUnsupportedFormat = errors.New("projection: unsupported format")

// MarshalJSON encodes the schema with two-space indentation, the layout the
// designer's JSON view has always shown.
func MarshalJSON(schema Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalise(schema)); err != nil {
		return nil, fmt.Errorf("projection: encode json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalYAML encodes the schema as YAML.
func MarshalYAML(schema Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(normalise(schema)); err != nil {
		return nil, fmt.Errorf("projection: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("projection: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Marshal encodes the schema in the named format.
func Marshal(schema Schema, format Format) ([]byte, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatJSON, "":
		return MarshalJSON(schema)
	case FormatYAML, "yml":
		return MarshalYAML(schema)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

// Decode reads a schema previously written by MarshalJSON or MarshalYAML.
// JSON is tried first since YAML would accept it too but loses number types.
func Decode(data []byte) (Schema, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Schema{}, errors.New("projection: schema payload is empty")
	}

	var schema Schema
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &schema); err != nil {
			return Schema{}, fmt.Errorf("projection: decode json: %w", err)
		}
		return normalise(schema), nil
	}
	if err := yaml.Unmarshal(trimmed, &schema); err != nil {
		return Schema{}, fmt.Errorf("projection: decode yaml: %w", err)
	}
	return normalise(schema), nil
}

// normalise replaces nil slices and configs with empty ones so encoders emit
// [] and {} rather than null. The caller's slices are left untouched.
func normalise(schema Schema) Schema {
	sections := make([]Section, len(schema.Sections))
	for idx, section := range schema.Sections {
		fields := make([]Field, len(section.Fields))
		for fIdx, field := range section.Fields {
			if field.Config == nil {
				field.Config = document.Config{}
			}
			fields[fIdx] = field
		}
		section.Fields = fields
		sections[idx] = section
	}
	schema.Sections = sections
	return schema
}
