/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chainguard.dev/labeler/agents/metrics"
	"chainguard.dev/labeler/agents/promptbuilder"
	"chainguard.dev/labeler/agents/result"
	"chainguard.dev/labeler/agents/schema"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
	"github.com/chainguard-dev/clog"
)

// Interface is the public interface for Claude agent execution
type Interface[Request promptbuilder.Bindable, Response any] interface {
	// Execute binds request to the prompt, sends it and decodes the reply.
	Execute(ctx context.Context, request Request) (Response, error)
}

type executor[Request promptbuilder.Bindable, Response any] struct {
	client             anthropic.Client
	modelName          string
	systemInstructions *promptbuilder.Prompt
	prompt             *promptbuilder.Prompt
	maxTokens          int64
	temperature        float64
	toolName           string
	genaiMetrics       *metrics.GenAI
}

// New creates a new Executor with minimal required configuration
func New[Request promptbuilder.Bindable, Response any](
	client anthropic.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	e := &executor[Request, Response]{
		client:       client,
		modelName:    "claude-sonnet-4-5",
		prompt:       prompt,
		maxTokens:    4096,
		temperature:  0.1,
		toolName:     "submit_result",
		genaiMetrics: metrics.NewGenAI("anthropic"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

func (e *executor[Request, Response]) Execute(ctx context.Context, request Request) (response Response, err error) {
	log := clog.FromContext(ctx)

	boundPrompt, err := request.Bind(e.prompt)
	if err != nil {
		return response, fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	prompt, err := boundPrompt.Build()
	if err != nil {
		return response, fmt.Errorf("failed to build prompt: %w", err)
	}

	s := schema.ReflectType[Response](schema.WithStrict())
	payload, err := schema.ToMap(s)
	if err != nil {
		return response, fmt.Errorf("failed to generate response schema: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.modelName),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(e.temperature),
		Tools: []anthropic.ToolUnionParam{{
			OfTool: &anthropic.ToolParam{
				Name:        e.toolName,
				Description: anthropic.String("Submit the final result."),
				InputSchema: anthropic.ToolInputSchemaParam{
					Type:       constant.Object("object"),
					Properties: payload["properties"],
					Required:   s.Required,
				},
			},
		}},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: e.toolName},
		},
	}

	if e.systemInstructions != nil {
		system, err := e.systemInstructions.Build()
		if err != nil {
			return response, fmt.Errorf("building system prompt: %w", err)
		}
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	log.With("model", e.modelName, "prompt_length", len(prompt)).
		Info("Starting Claude agent execution")

	message, err := e.client.Messages.New(ctx, params)
	if err != nil {
		return response, fmt.Errorf("failed to create Claude message: %w", err)
	}

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		e.genaiMetrics.RecordTokens(ctx, e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
	}

	var textContent string
	for _, content := range message.Content {
		switch content.Type {
		case "tool_use":
			if content.Name != e.toolName {
				log.With("tool", content.Name).Warn("Ignoring unknown tool call")
				continue
			}
			var resp Response
			if err := json.Unmarshal(content.Input, &resp); err != nil {
				return response, fmt.Errorf("failed to decode %s input: %w", e.toolName, err)
			}
			log.Info("Successfully completed Claude agent execution")
			return resp, nil
		case "text":
			textContent = content.Text
		}
	}

	if textContent == "" {
		return response, errors.New("no content in Claude's response")
	}

	resp, err := result.Extract[Response](textContent)
	if err != nil {
		log.With("response", textContent, "error", err).Error("Failed to parse Claude response")
		return response, fmt.Errorf("failed to parse response: %w", err)
	}
	log.Info("Successfully completed Claude agent execution")
	return resp, nil
}
