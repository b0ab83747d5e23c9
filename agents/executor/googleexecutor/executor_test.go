/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chainguard.dev/labeler/agents/executor/googleexecutor"
	"chainguard.dev/labeler/agents/promptbuilder"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

type request struct {
	Title string
}

func (r *request) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	return p.BindText("title", r.Title)
}

type response struct {
	Labels []string `json:"labels"`
}

var prompt = promptbuilder.MustNewPrompt(`Suggest labels for: {{title}}`)

func newClient(t *testing.T, text string, seen *string) *genai.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent") {
			t.Errorf("path: got = %s, wanted generateContent for gemini-2.5-flash", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if seen != nil {
			*seen = string(body)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     8,
				"candidatesTokenCount": 3,
			},
		})
	}))
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	if err != nil {
		t.Fatalf("genai.NewClient() error = %v", err)
	}
	return client
}

func TestExecute(t *testing.T) {
	var seen string
	client := newClient(t, `{"labels": ["bug"]}`, &seen)

	exec, err := googleexecutor.New[*request, *response](client, prompt,
		googleexecutor.WithModel[*request, *response]("gemini-2.5-flash"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := exec.Execute(context.Background(), &request{Title: "Crash"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff(&response{Labels: []string{"bug"}}, got); diff != "" {
		t.Errorf("Execute() mismatch (-want +got):\n%s", diff)
	}

	for _, want := range []string{"application/json", "Suggest labels for: Crash"} {
		if !strings.Contains(seen, want) {
			t.Errorf("request body: got = %s, wanted it to contain %q", seen, want)
		}
	}
}

func TestExecuteUnparseable(t *testing.T) {
	client := newClient(t, "labels: bug", nil)

	exec, err := googleexecutor.New[*request, *response](client, prompt)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := exec.Execute(context.Background(), &request{Title: "x"}); err == nil {
		t.Error("Execute() error: got = nil, wanted error")
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := googleexecutor.New[*request, *response](nil, prompt); err == nil {
		t.Error("New(nil client): got = nil, wanted error")
	}
}
