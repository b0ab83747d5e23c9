/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{{
		name:  "plain json",
		input: `{"labels": ["bug"]}`,
		want:  `{"labels": ["bug"]}`,
	}, {
		name:  "surrounding whitespace",
		input: "\n   {\"labels\": []}\n  ",
		want:  `{"labels": []}`,
	}, {
		name:  "json fence with prose",
		input: "Here you go:\n```json\n{\"labels\": [\"bug\"]}\n```\nAnything else?",
		want:  `{"labels": ["bug"]}`,
	}, {
		name:  "first of several fences",
		input: "```json\n{\"first\": true}\n```\n\n```json\n{\"second\": true}\n```",
		want:  `{"first": true}`,
	}, {
		name:  "empty fence",
		input: "```json\n```",
		want:  "",
	}, {
		name:  "unterminated fence",
		input: "```json\n{\"labels\": [\"bug\"]}",
		want:  `{"labels": ["bug"]}`,
	}, {
		name:  "generic fence",
		input: "```\n{\"labels\": [\"docs\"]}\n```",
		want:  `{"labels": ["docs"]}`,
	}, {
		name:  "inline fence",
		input: "```json{\"labels\": []}```",
		want:  `{"labels": []}`,
	}, {
		name:  "windows line endings",
		input: "```json\r\n{\"labels\": [\"ci\"]}\r\n```",
		want:  `{"labels": ["ci"]}`,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("ExtractJSON(): got = %q, wanted = %q", got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	type labels struct {
		Labels []string `json:"labels"`
	}

	got, err := Extract[labels]("Sure!\n```json\n{\"labels\": [\"bug\", \"help wanted\"]}\n```")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if diff := cmp.Diff(labels{Labels: []string{"bug", "help wanted"}}, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}

	if _, err := Extract[labels]("```json\n```"); !errors.Is(err, ErrEmpty) {
		t.Errorf("Extract(empty): got = %v, wanted = %v", err, ErrEmpty)
	}

	if _, err := Extract[labels]("not json at all"); err == nil {
		t.Error("Extract(malformed): got = nil, wanted error")
	}
}
