/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelreconciler

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"chainguard.dev/labeler/agents/promptbuilder"
	"chainguard.dev/labeler/reconcilers/labelreconciler/event"
)

// Placeholders understood by prompt templates.
const (
	PlaceholderKind           = "content_kind"
	PlaceholderExistingLabels = "existing_labels"
	PlaceholderTitle          = "content_title"
	PlaceholderBody           = "content_body"

	// Names used by older, issue-only templates.
	legacyTitle = "issue_title"
	legacyBody  = "issue_body"
)

// DefaultTemplate is used when no template is configured.
const DefaultTemplate = `Analyze the {{content_kind}} title and body to suggest suitable labels. ` +
	`Here are the existing labels in the repository: {{existing_labels}}. ` +
	`Only suggest labels from that list. ` +
	`Return a JSON object with a "labels" array of strings. ` +
	`Title: {{content_title}} ` +
	`Body: {{content_body}}`

// SystemInstructions frames every request.
var SystemInstructions = promptbuilder.MustNewPrompt(`You triage GitHub issues and discussions by assigning repository labels. ` +
	`Only answer with the structured result.`)

// Request is the content and label context bound into the prompt.
type Request struct {
	Kind           event.Kind
	ExistingLabels []string
	Title          string
	Body           string
}

// NewRequest builds a Request for info against the repository's labels.
func NewRequest(info *event.ContentInfo, existing []string) *Request {
	return &Request{
		Kind:           info.Kind,
		ExistingLabels: existing,
		Title:          info.Title,
		Body:           info.Body,
	}
}

// Bind implements promptbuilder.Bindable. Only placeholders present in the
// template are bound, so legacy and current names can both be served.
func (r *Request) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	values := map[string]string{
		PlaceholderKind:           r.Kind.String(),
		PlaceholderExistingLabels: strings.Join(r.ExistingLabels, ", "),
		PlaceholderTitle:          r.Title,
		PlaceholderBody:           r.Body,
		legacyTitle:               r.Title,
		legacyBody:                r.Body,
	}

	present := prompt.GetBindings()
	var err error
	for name, value := range values {
		if _, ok := present[name]; !ok {
			continue
		}
		if prompt, err = prompt.BindText(name, value); err != nil {
			return nil, err
		}
	}
	return prompt, nil
}

// BuildPrompt renders tmpl for req.
func BuildPrompt(tmpl *promptbuilder.Prompt, req *Request) (string, error) {
	bound, err := req.Bind(tmpl)
	if err != nil {
		return "", err
	}
	return bound.Build()
}

// doubleBrace matches a {{name}} placeholder.
var doubleBrace = regexp.MustCompile(`\{\{\s*\pL[\pL\pN_]*\s*\}\}`)

// fromSingleBrace rewrites an older single-brace template: "{name}" for a
// known placeholder becomes "{{name}}" and the escapes "{{" and "}}" become
// literal braces. Other single braces are kept as they are.
func fromSingleBrace(tmpl string) string {
	known := []string{
		PlaceholderKind, PlaceholderExistingLabels, PlaceholderTitle, PlaceholderBody,
		legacyTitle, legacyBody,
	}

	var out strings.Builder
	out.Grow(len(tmpl))
	for i := 0; i < len(tmpl); {
		rest := tmpl[i:]
		switch {
		case strings.HasPrefix(rest, "{{"):
			out.WriteByte('{')
			i += 2
		case strings.HasPrefix(rest, "}}"):
			out.WriteByte('}')
			i += 2
		case rest[0] == '{':
			if end := strings.IndexByte(rest, '}'); end > 0 && slices.Contains(known, rest[1:end]) {
				out.WriteString("{{" + rest[1:end] + "}}")
				i += end + 1
				continue
			}
			out.WriteByte('{')
			i++
		default:
			out.WriteByte(rest[0])
			i++
		}
	}
	return out.String()
}

// ParseTemplate parses a configured prompt template and checks that it
// references the content kind, the existing labels, the title and the body,
// and nothing else. A template without any {{name}} placeholder is read in
// the older single-brace style: "{existing_labels}" and "{issue_title}"
// are placeholders, "{{" and "}}" are literal braces, and the content kind
// is optional.
func ParseTemplate(tmpl string) (*promptbuilder.Prompt, error) {
	legacy := !doubleBrace.MatchString(tmpl)
	if legacy {
		tmpl = fromSingleBrace(tmpl)
	}

	p, err := promptbuilder.Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}

	bindings := p.GetBindings()
	has := func(names ...string) bool {
		return slices.ContainsFunc(names, func(n string) bool {
			_, ok := bindings[n]
			return ok
		})
	}

	var missing []string
	if !legacy && !has(PlaceholderKind) {
		missing = append(missing, PlaceholderKind)
	}
	if !has(PlaceholderExistingLabels) {
		missing = append(missing, PlaceholderExistingLabels)
	}
	if !has(PlaceholderTitle, legacyTitle) {
		missing = append(missing, PlaceholderTitle)
	}
	if !has(PlaceholderBody, legacyBody) {
		missing = append(missing, PlaceholderBody)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("prompt template is missing placeholders: %s", strings.Join(missing, ", "))
	}

	var unknown []string
	for name := range bindings {
		switch name {
		case PlaceholderKind, PlaceholderExistingLabels, PlaceholderTitle, PlaceholderBody, legacyTitle, legacyBody:
		default:
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, fmt.Errorf("prompt template has unknown placeholders: %s", strings.Join(unknown, ", "))
	}

	return p, nil
}
