package schema

import (
	"encoding/json"
	"fmt"
	"slices"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// JSONSchema is a JSON-encoded parameter schema that can be read from JSON,
// YAML and TOML manifests. YAML and TOML values are decoded to native Go
// values first and then marshalled to JSON bytes.
type JSONSchema json.RawMessage

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewJSONSchema creates a JSONSchema from raw JSON bytes.
func NewJSONSchema(data json.RawMessage) JSONSchema {
	return JSONSchema(data)
}

// EmptyObjectSchema is the schema of a tool which takes no arguments
func EmptyObjectSchema() JSONSchema {
	return JSONSchema(`{"type":"object","properties":{}}`)
}

////////////////////////////////////////////////////////////////////////////////
// METHODS

// Bytes returns the underlying JSON bytes.
func (s JSONSchema) Bytes() []byte {
	return []byte(s)
}

// Schema decodes the bytes into a jsonschema-go schema, or returns nil
// when the schema is empty
func (s JSONSchema) Schema() (*jsonschema.Schema, error) {
	if len(s) == 0 {
		return nil, nil
	}
	var result jsonschema.Schema
	if err := json.Unmarshal(s, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Resolve decodes and resolves the schema, checking that it describes an
// object so it can be offered as tool parameters
func (s JSONSchema) Resolve() (*jsonschema.Resolved, error) {
	schema, err := s.Schema()
	if err != nil {
		return nil, err
	} else if schema == nil {
		return nil, nil
	}
	if schema.Type != "" && schema.Type != "object" {
		return nil, fmt.Errorf("parameters must be an object schema, got %q", schema.Type)
	}
	return schema.Resolve(nil)
}

// Properties returns the sorted property names of an object schema, with
// required properties suffixed by "*"
func (s JSONSchema) Properties() []string {
	schema, err := s.Schema()
	if err != nil || schema == nil {
		return nil
	}
	result := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if slices.Contains(schema.Required, name) {
			name += "*"
		}
		result = append(result, name)
	}
	slices.Sort(result)
	return result
}

////////////////////////////////////////////////////////////////////////////////
// JSON MARSHALLING

func (s JSONSchema) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte(s), nil
}

func (s *JSONSchema) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	*s = append((*s)[:0], data...)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// YAML AND TOML UNMARSHALLING

func (s *JSONSchema) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return s.fromValue(v)
}

// UnmarshalTOML is called by BurntSushi/toml with the decoded table
func (s *JSONSchema) UnmarshalTOML(v any) error {
	return s.fromValue(v)
}

func (s *JSONSchema) fromValue(v any) error {
	if v == nil {
		*s = nil
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	*s = data
	return nil
}
