/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
)

// stringLiteral is unexported so that only untyped string constants written
// by the developer can be passed where it is required.
type stringLiteral string

// Prompt is an immutable template with named {{placeholders}}.
type Prompt struct {
	template string
	bindings map[string]binding
}

// NewPrompt parses a developer-written template literal.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	return parse(string(template))
}

// Parse parses a template that is only known at runtime, such as one
// supplied through configuration. The result behaves exactly like a prompt
// returned by NewPrompt.
func Parse(template string) (*Prompt, error) {
	return parse(template)
}

func parse(template string) (*Prompt, error) {
	bindings := make(map[string]binding)
	tmpl, err := walkTemplate(template, func(name string) (string, error) {
		if _, ok := bindings[name]; !ok {
			bindings[name] = &unboundBinding{name: name}
		}
		return "{{" + name + "}}", nil
	})
	if err != nil {
		return nil, err
	}
	return &Prompt{
		template: tmpl,
		bindings: bindings,
	}, nil
}

// GetBindings returns the set of placeholder names found in the template.
func (p *Prompt) GetBindings() map[string]struct{} {
	names := make(map[string]struct{}, len(p.bindings))
	for name := range p.bindings {
		names[name] = struct{}{}
	}
	return names
}

// BindStringLiteral binds a developer-controlled literal to name.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.bind(name, &textBinding{val: string(value)})
}

// BindText binds arbitrary text to name. The text is inserted verbatim; any
// placeholder syntax inside it is left as is because substitution happens
// in a single pass.
func (p *Prompt) BindText(name, value string) (*Prompt, error) {
	return p.bind(name, &textBinding{val: value})
}

func (p *Prompt) bind(name string, b binding) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	np := &Prompt{
		template: p.template,
		bindings: maps.Clone(p.bindings),
	}
	np.bindings[name] = b
	return np, nil
}

// Build renders the prompt. It fails if any placeholder is still unbound.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		v, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = v
	}

	return walkTemplate(p.template, func(name string) (string, error) {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("internal error: binding %q not found in values map", name)
		}
		return v, nil
	})
}
