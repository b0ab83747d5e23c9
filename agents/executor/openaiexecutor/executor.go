/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/labeler/agents/metrics"
	"chainguard.dev/labeler/agents/promptbuilder"
	"chainguard.dev/labeler/agents/result"
	"chainguard.dev/labeler/agents/schema"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
)

// Interface is the public interface for OpenAI agent execution
type Interface[Request promptbuilder.Bindable, Response any] interface {
	// Execute binds request to the prompt, sends it and decodes the reply.
	Execute(ctx context.Context, request Request) (Response, error)
}

type executor[Request promptbuilder.Bindable, Response any] struct {
	client             openai.Client
	modelName          string
	prompt             *promptbuilder.Prompt
	systemInstructions *promptbuilder.Prompt
	temperature        float64
	maxTokens          int64 // 0 = provider default
	schemaName         string
	genaiMetrics       *metrics.GenAI
}

// New creates a new executor with minimal required configuration
func New[Request promptbuilder.Bindable, Response any](
	client openai.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	e := &executor[Request, Response]{
		client:       client,
		modelName:    "gpt-4o",
		prompt:       prompt,
		temperature:  0.1,
		schemaName:   "response",
		genaiMetrics: metrics.NewGenAI("openai"),
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

	responseSchema, err := schema.ToMap(schema.ReflectType[Response](schema.WithStrict()))
	if err != nil {
		return response, fmt.Errorf("failed to generate response schema: %w", err)
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if e.systemInstructions != nil {
		system, err := e.systemInstructions.Build()
		if err != nil {
			return response, fmt.Errorf("building system prompt: %w", err)
		}
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(e.modelName),
		Messages:    messages,
		Temperature: openai.Float(e.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   e.schemaName,
					Schema: responseSchema,
					Strict: openai.Bool(true),
				},
			},
		},
	}
	if e.maxTokens > 0 {
		params.MaxTokens = openai.Int(e.maxTokens)
	}

	log.With("model", e.modelName, "prompt_length", len(prompt)).
		Info("Starting OpenAI agent execution")

	completion, err := e.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return response, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if completion.Usage.PromptTokens > 0 || completion.Usage.CompletionTokens > 0 {
		e.genaiMetrics.RecordTokens(ctx, e.modelName, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	if len(completion.Choices) == 0 {
		return response, errors.New("no choices in chat completion")
	}
	msg := completion.Choices[0].Message
	if msg.Refusal != "" {
		return response, fmt.Errorf("model refused: %s", msg.Refusal)
	}
	if msg.Content == "" {
		return response, errors.New("no content in chat completion")
	}

	resp, err := result.Extract[Response](msg.Content)
	if err != nil {
		log.With("response", msg.Content, "error", err).Error("Failed to parse OpenAI response")
		return response, fmt.Errorf("failed to parse response: %w", err)
	}

	log.Info("Successfully completed OpenAI agent execution")
	return resp, nil
}
