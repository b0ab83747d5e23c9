/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/labeler/agents/metrics"
	"chainguard.dev/labeler/agents/promptbuilder"
	"chainguard.dev/labeler/agents/result"
	"chainguard.dev/labeler/agents/schema"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// Interface defines the contract for Google AI executors
type Interface[Request promptbuilder.Bindable, Response any] interface {
	// Execute binds request to the prompt, sends it and decodes the reply.
	Execute(ctx context.Context, request Request) (Response, error)
}

type executor[Request promptbuilder.Bindable, Response any] struct {
	client             *genai.Client
	prompt             *promptbuilder.Prompt
	model              string
	temperature        float32
	maxOutputTokens    int32
	systemInstructions *promptbuilder.Prompt
	genaiMetrics       *metrics.GenAI
}

// New creates a new Google AI executor with the given configuration
func New[Request promptbuilder.Bindable, Response any](
	client *genai.Client,
	prompt *promptbuilder.Prompt,
	options ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	if prompt == nil {
		return nil, errors.New("prompt is required")
	}

	exec := &executor[Request, Response]{
		client:          client,
		prompt:          prompt,
		model:           "gemini-2.5-flash",
		temperature:     0.1,
		maxOutputTokens: 4096,
		genaiMetrics:    metrics.NewGenAI("google"),
	}
	for _, opt := range options {
		if err := opt(exec); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return exec, nil
}

func (e *executor[Request, Response]) Execute(ctx context.Context, request Request) (resp Response, err error) {
	log := clog.FromContext(ctx)

	boundPrompt, err := request.Bind(e.prompt)
	if err != nil {
		return resp, fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	prompt, err := boundPrompt.Build()
	if err != nil {
		return resp, fmt.Errorf("failed to build prompt: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:      ptr(e.temperature),
		MaxOutputTokens:  e.maxOutputTokens,
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema.ToGenai(schema.ReflectType[Response](schema.WithStrict())),
	}
	if e.systemInstructions != nil {
		system, err := e.systemInstructions.Build()
		if err != nil {
			return resp, fmt.Errorf("building system prompt: %w", err)
		}
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	log.With("model", e.model, "prompt_length", len(prompt)).
		Info("Starting Google AI agent execution")

	response, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), config)
	if err != nil {
		return resp, fmt.Errorf("failed to generate content: %w", err)
	}

	if response.UsageMetadata != nil {
		e.genaiMetrics.RecordTokens(ctx, e.model,
			int64(response.UsageMetadata.PromptTokenCount),
			int64(response.UsageMetadata.CandidatesTokenCount))
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return resp, errors.New("no content generated - no candidates")
	}

	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return resp, errors.New("no text content found in response")
	}

	out, err := result.Extract[Response](text.String())
	if err != nil {
		log.With("response", text.String(), "error", err).Error("Failed to parse AI response")
		return resp, fmt.Errorf("failed to parse AI response: %w", err)
	}

	log.Info("Successfully completed Google AI agent execution")
	return out, nil
}

func ptr[T any](v T) *T {
	return &v
}
