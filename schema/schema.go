// Package schema provides JSON Schema support for function parameter
// declarations.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Reflector is configured for parameter schemas sent to chat-completion
// services. DoNotReference inlines all definitions to avoid $ref, which
// most services reject inside function declarations.
var Reflector = &jsonschema.Reflector{
	DoNotReference: true,
}

// For generates a JSON Schema from a Go type.
// The type should be a struct with json and jsonschema tags.
//
// Example:
//
//	type DateInput struct {
//	    Format string `json:"format,omitempty" jsonschema:"description=Go time layout"`
//	}
//
//	s := schema.For[DateInput]()
func For[T any]() *jsonschema.Schema {
	var zero T
	return Reflector.Reflect(&zero)
}

// Property describes one named parameter of a hand-assembled schema.
// Plugin loaders use it for functions whose parameters come from an
// external descriptor rather than a Go type.
type Property struct {
	Name        string
	Type        string // JSON Schema type, defaults to "string"
	Description string
	Required    bool
}

// Object assembles an object schema from properties, preserving their
// order.
func Object(props ...Property) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, p := range props {
		typ := p.Type
		if typ == "" {
			typ = "string"
		}
		s.Properties.Set(p.Name, &jsonschema.Schema{
			Type:        typ,
			Description: p.Description,
		})
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}

// Parse decodes a JSON Schema document. Used when a descriptor supplies
// the schema verbatim.
func Parse(raw json.RawMessage) (*jsonschema.Schema, error) {
	var s jsonschema.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return &s, nil
}
