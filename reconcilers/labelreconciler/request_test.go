/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelreconciler

import (
	"strings"
	"testing"

	"chainguard.dev/labeler/reconcilers/labelreconciler/event"
)

func TestBuildPromptDefault(t *testing.T) {
	tmpl, err := ParseTemplate(DefaultTemplate)
	if err != nil {
		t.Fatalf("ParseTemplate(DefaultTemplate) error = %v", err)
	}

	req := NewRequest(&event.ContentInfo{
		Number: 1,
		Title:  "Crash on start",
		Body:   "It panics.",
		Kind:   event.KindDiscussion,
	}, []string{"Bug", "help wanted"})

	got, err := BuildPrompt(tmpl, req)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	for _, want := range []string{
		"Analyze the discussion title",
		"existing labels in the repository: Bug, help wanted.",
		"Title: Crash on start",
		"Body: It panics.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BuildPrompt(): got = %q, wanted it to contain %q", got, want)
		}
	}
}

func TestBuildPromptPure(t *testing.T) {
	tmpl, err := ParseTemplate(`{{content_kind}}|{{existing_labels}}|{{content_title}}|{{content_body}}`)
	if err != nil {
		t.Fatalf("ParseTemplate() error = %v", err)
	}
	req := &Request{Kind: event.KindIssue, ExistingLabels: []string{"b", "a"}, Title: "T", Body: "B"}

	first, err := BuildPrompt(tmpl, req)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	for range 5 {
		again, err := BuildPrompt(tmpl, req)
		if err != nil {
			t.Fatalf("BuildPrompt() error = %v", err)
		}
		if again != first {
			t.Fatalf("BuildPrompt(): got = %q, wanted = %q", again, first)
		}
	}
	if want := "issue|b, a|T|B"; first != want {
		t.Errorf("BuildPrompt(): got = %q, wanted = %q", first, want)
	}
}

func TestBuildPromptUserContentNotExpanded(t *testing.T) {
	tmpl, err := ParseTemplate(DefaultTemplate)
	if err != nil {
		t.Fatalf("ParseTemplate() error = %v", err)
	}
	req := &Request{Kind: event.KindIssue, Title: "{{content_body}}", Body: "secret"}

	got, err := BuildPrompt(tmpl, req)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	if !strings.Contains(got, "Title: {{content_body}}") {
		t.Errorf("BuildPrompt(): got = %q, wanted title placeholder text left verbatim", got)
	}
}

func TestParseTemplateLegacy(t *testing.T) {
	legacy := `Analyze the issue title and body to suggest suitable labels. ` +
		`Here are the existing labels in the repository: {existing_labels}. ` +
		`Return a JSON array of strings. ` +
		`Issue Title: {issue_title} ` +
		`Issue Body: {issue_body}`

	tmpl, err := ParseTemplate(legacy)
	if err != nil {
		t.Fatalf("ParseTemplate(legacy) error = %v", err)
	}
	got, err := BuildPrompt(tmpl, &Request{
		Kind:           event.KindIssue,
		ExistingLabels: []string{"bug", "docs"},
		Title:          "T",
		Body:           "",
	})
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	want := `Analyze the issue title and body to suggest suitable labels. ` +
		`Here are the existing labels in the repository: bug, docs. ` +
		`Return a JSON array of strings. ` +
		`Issue Title: T ` +
		`Issue Body: `
	if got != want {
		t.Errorf("BuildPrompt(): got = %q, wanted = %q", got, want)
	}
}

func TestParseTemplateLegacyEscapedBraces(t *testing.T) {
	tmpl, err := ParseTemplate(`Reply like {{"labels": []}}. Labels: {existing_labels}. ` +
		`Title: {issue_title} Body: {issue_body}`)
	if err != nil {
		t.Fatalf("ParseTemplate() error = %v", err)
	}
	got, err := BuildPrompt(tmpl, &Request{
		Kind:           event.KindIssue,
		ExistingLabels: []string{"bug"},
		Title:          "T",
		Body:           "B",
	})
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	want := `Reply like {"labels": []}. Labels: bug. Title: T Body: B`
	if got != want {
		t.Errorf("BuildPrompt(): got = %q, wanted = %q", got, want)
	}
}

func TestParseTemplateErrors(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		wantErr string
	}{{
		name:    "missing kind",
		tmpl:    `{{existing_labels}} {{content_title}} {{content_body}}`,
		wantErr: "missing placeholders: content_kind",
	}, {
		name:    "missing body and labels",
		tmpl:    `{{content_kind}} {{content_title}}`,
		wantErr: "missing placeholders: existing_labels, content_body",
	}, {
		name:    "unknown placeholder",
		tmpl:    `{{content_kind}} {{existing_labels}} {{content_title}} {{content_body}} {{author}}`,
		wantErr: "unknown placeholders: author",
	}, {
		name:    "malformed",
		tmpl:    `{{content_kind}} {{existing_labels}} {{content_title}} {{content_body}} {{bad-name}}`,
		wantErr: "parse prompt template",
	}, {
		name:    "legacy missing body",
		tmpl:    `{existing_labels} {issue_title}`,
		wantErr: "missing placeholders: content_body",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate(tt.tmpl)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseTemplate(): got = %v, wanted error containing %q", err, tt.wantErr)
			}
		})
	}
}
