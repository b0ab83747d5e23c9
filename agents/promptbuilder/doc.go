/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder builds LLM prompts from templates with named
placeholders.

Templates use {{name}} placeholders, where a name starts with a letter and
continues with letters, digits or underscores. A template is parsed once and
every bind returns a new Prompt, so parsed templates can be shared freely.

	p := promptbuilder.MustNewPrompt(`Classify this {{kind}}: {{title}}`)
	p, err := p.BindStringLiteral("kind", "issue")
	if err != nil {
		return err
	}
	p, err = p.BindText("title", issue.GetTitle())
	if err != nil {
		return err
	}
	out, err := p.Build()

NewPrompt only accepts string literals. Templates coming from configuration
go through Parse instead.

Substitution is single pass: text bound into one placeholder is never
scanned for further placeholders, so user content such as an issue body
that happens to contain "{{title}}" is inserted unchanged.

Errors are returned for malformed templates, binding unknown or already
bound names, and building with unbound placeholders.
*/
package promptbuilder
