/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chainguard.dev/labeler/reconcilers/labelreconciler/event"
	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
)

func TestLoadConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name    string
		env     map[string]string
		want    *config
		wantErr bool
	}{{
		name: "defaults",
		env: map[string]string{
			"INPUT_GITHUB-TOKEN": "gh",
			"INPUT_API-KEY":      "sk",
			"GITHUB_REPOSITORY":  "octo/hello",
			"GITHUB_EVENT_PATH":  "/tmp/event.json",
		},
		want: &config{
			GitHubToken: "gh",
			APIKey:      "sk",
			Provider:    "openai",
			Repository:  "octo/hello",
			EventPath:   "/tmp/event.json",
			APIURL:      "https://api.github.com",
			GraphQLURL:  "https://api.github.com/graphql",
		},
	}, {
		name: "everything set",
		env: map[string]string{
			"INPUT_GITHUB-TOKEN": "gh",
			"INPUT_API-KEY":      "sk",
			"INPUT_BASE-URL":     "https://llm.example.com/v1",
			"INPUT_MODEL":        "claude-sonnet-4-5",
			"INPUT_PROVIDER":     "anthropic",
			"INPUT_PROMPT":       "{existing_labels} {issue_title} {issue_body}",
			"GITHUB_REPOSITORY":  "octo/hello",
			"GITHUB_EVENT_PATH":  "/tmp/event.json",
			"GITHUB_API_URL":     "https://ghe.example.com/api/v3",
			"GITHUB_GRAPHQL_URL": "https://ghe.example.com/api/graphql",
			"RUNNER_DEBUG":       "1",
		},
		want: &config{
			GitHubToken: "gh",
			APIKey:      "sk",
			BaseURL:     "https://llm.example.com/v1",
			Model:       "claude-sonnet-4-5",
			Provider:    "anthropic",
			Prompt:      "{existing_labels} {issue_title} {issue_body}",
			Repository:  "octo/hello",
			EventPath:   "/tmp/event.json",
			APIURL:      "https://ghe.example.com/api/v3",
			GraphQLURL:  "https://ghe.example.com/api/graphql",
			Debug:       true,
		},
	}, {
		name: "missing token",
		env: map[string]string{
			"INPUT_API-KEY":     "sk",
			"GITHUB_REPOSITORY": "octo/hello",
			"GITHUB_EVENT_PATH": "/tmp/event.json",
		},
		wantErr: true,
	}, {
		name: "underscore input names",
		env: map[string]string{
			"INPUT_GITHUB_TOKEN": "gh",
			"INPUT_API_KEY":      "sk",
			"INPUT_BASE_URL":     "http://localhost:11434/v1",
			"GITHUB_REPOSITORY":  "octo/hello",
			"GITHUB_EVENT_PATH":  "/tmp/event.json",
		},
		want: &config{
			GitHubToken: "gh",
			APIKey:      "sk",
			BaseURL:     "http://localhost:11434/v1",
			Provider:    "openai",
			Repository:  "octo/hello",
			EventPath:   "/tmp/event.json",
			APIURL:      "https://api.github.com",
			GraphQLURL:  "https://api.github.com/graphql",
		},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadConfig(context.Background(), envconfig.MapLookuper(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("loadConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestActionInputs(t *testing.T) {
	l := actionInputs(envconfig.MapLookuper(map[string]string{
		"INPUT_GITHUB-TOKEN": "hyphen",
		"INPUT_MODEL":        "gpt-4o",
		"GITHUB_API-URL":     "nope",
	}))

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{key: "INPUT_GITHUB_TOKEN", want: "hyphen", wantOK: true},
		{key: "INPUT_MODEL", want: "gpt-4o", wantOK: true},
		{key: "INPUT_API_KEY", wantOK: false},
		{key: "GITHUB_API_URL", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := l.Lookup(tt.key)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Lookup(%q): got = (%q, %v), wanted = (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestConfigLevel(t *testing.T) {
	if got := (&config{Debug: true}).level(); got != slog.LevelDebug {
		t.Errorf("level(): got = %v, wanted = %v", got, slog.LevelDebug)
	}
	if got := (&config{}).level(); got != slog.LevelInfo {
		t.Errorf("level(): got = %v, wanted = %v", got, slog.LevelInfo)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	eventPath := filepath.Join(t.TempDir(), "event.json")
	if err := os.WriteFile(eventPath, []byte(`{"pull_request": {"number": 1}}`), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	base := config{
		GitHubToken: "gh",
		APIKey:      "sk",
		Provider:    "openai",
		Repository:  "octo/hello",
		EventPath:   eventPath,
		APIURL:      "https://api.github.com",
		GraphQLURL:  "https://api.github.com/graphql",
	}

	tests := []struct {
		name    string
		mutate  func(*config)
		wantErr string
		wantIs  error
	}{{
		name:    "bad template",
		mutate:  func(c *config) { c.Prompt = "{{content_title}}" },
		wantErr: "missing placeholders",
	}, {
		name:    "bad repository",
		mutate:  func(c *config) { c.Repository = "hello" },
		wantErr: "invalid repository",
	}, {
		name:    "unknown provider",
		mutate:  func(c *config) { c.Provider = "mistral" },
		wantErr: "unsupported provider",
	}, {
		name:   "unknown event kind",
		mutate: func(*config) {},
		wantIs: event.ErrUnknownEventKind,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := run(context.Background(), &cfg)
			if err == nil {
				t.Fatal("run(): got = nil, wanted error")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("run(): got = %v, wanted error containing %q", err, tt.wantErr)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("run(): got = %v, wanted = %v", err, tt.wantIs)
			}
		})
	}
}
