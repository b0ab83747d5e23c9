/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelagent

import (
	"context"
	"fmt"

	"chainguard.dev/labeler/agents/executor/googleexecutor"
	"chainguard.dev/labeler/agents/promptbuilder"
	"google.golang.org/genai"
)

func newGoogle[Req promptbuilder.Bindable](ctx context.Context, config Config) (executor[Req], error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      config.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: config.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating Google AI client: %w", err)
	}

	opts := []googleexecutor.Option[Req, *Labels]{
		googleexecutor.WithTemperature[Req, *Labels](0.1),
	}
	if config.Model != "" {
		opts = append(opts, googleexecutor.WithModel[Req, *Labels](config.Model))
	}
	if config.SystemInstructions != nil {
		opts = append(opts, googleexecutor.WithSystemInstructions[Req, *Labels](config.SystemInstructions))
	}
	if config.Enricher != nil {
		opts = append(opts, googleexecutor.WithAttributeEnricher[Req, *Labels](config.Enricher))
	}

	exec, err := googleexecutor.New[Req, *Labels](client, config.UserPrompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Google executor: %w", err)
	}
	return exec, nil
}
