/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

// ToGenai converts a JSON schema into the subset understood by Gemini's
// response schema.
func ToGenai(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description: s.Description,
		Title:       s.Title,
		Format:      s.Format,
		Type:        genaiType(s.Type),
		Pattern:     s.Pattern,
	}

	for _, v := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(v))
	}
	out.Required = append(out.Required, s.Required...)

	if s.MaxItems != nil {
		v := int64(*s.MaxItems)
		out.MaxItems = &v
	}
	if s.MinItems != nil {
		v := int64(*s.MinItems)
		out.MinItems = &v
	}

	if s.Properties != nil {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = ToGenai(pair.Value)
			out.PropertyOrdering = append(out.PropertyOrdering, pair.Key)
		}
	}

	if s.Items != nil {
		out.Items = ToGenai(s.Items)
	}

	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return ""
	}
}
