/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Must panics if err is non-nil and otherwise returns p. It is meant for
// package-level variables:
//
//	var p = promptbuilder.Must(promptbuilder.NewPrompt(`Hello {{name}}`))
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// MustNewPrompt is shorthand for Must(NewPrompt(template)).
func MustNewPrompt(template stringLiteral) *Prompt {
	return Must(NewPrompt(template))
}

// MustBindStringLiteral is shorthand for Must(p.BindStringLiteral(name, value)).
func (p *Prompt) MustBindStringLiteral(name string, value stringLiteral) *Prompt {
	return Must(p.BindStringLiteral(name, value))
}

// MustBindText is shorthand for Must(p.BindText(name, value)).
func (p *Prompt) MustBindText(name, value string) *Prompt {
	return Must(p.BindText(name, value))
}
