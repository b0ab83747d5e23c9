/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Generator wraps jsonschema.Reflector with project defaults.
type Generator struct {
	reflector jsonschema.Reflector
}

// Option configures a Generator.
type Option func(*jsonschema.Reflector)

// WithStrict produces schemas accepted by strict structured-output modes:
// every non-omitempty field is required and no additional properties are
// allowed.
func WithStrict() Option {
	return func(r *jsonschema.Reflector) {
		r.RequiredFromJSONSchemaTags = false
		r.AllowAdditionalProperties = false
	}
}

// NewGenerator constructs a generator for response schemas.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  true,
			DoNotReference:             true,
		},
	}
	for _, opt := range opts {
		opt(&g.reflector)
	}
	return g
}

// Reflect returns the JSON schema for the provided value.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// Reflect derives the JSON schema for the provided value using a default generator.
func Reflect(v any) *jsonschema.Schema {
	return NewGenerator().Reflect(v)
}

// ReflectType reflects the schema of T, dereferencing pointer types.
func ReflectType[T any](opts ...Option) *jsonschema.Schema {
	typ := reflect.TypeFor[T]()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return NewGenerator(opts...).Reflect(reflect.New(typ).Interface())
}

// ToMap round-trips s through JSON so it can be handed to SDKs that take
// schemas as plain maps.
func ToMap(s *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	// Not every provider understands the meta-schema pointer.
	delete(out, "$schema")
	delete(out, "$id")
	return out, nil
}
