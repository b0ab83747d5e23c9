/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelagent

import (
	"fmt"

	"chainguard.dev/labeler/agents/executor/openaiexecutor"
	"chainguard.dev/labeler/agents/promptbuilder"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

func newOpenAI[Req promptbuilder.Bindable](config Config) (executor[Req], error) {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(config.BaseURL))
	}
	client := openai.NewClient(clientOpts...)

	opts := []openaiexecutor.Option[Req, *Labels]{
		openaiexecutor.WithTemperature[Req, *Labels](0.1),
		openaiexecutor.WithSchemaName[Req, *Labels]("labels"),
	}
	if config.Model != "" {
		opts = append(opts, openaiexecutor.WithModel[Req, *Labels](config.Model))
	}
	if config.SystemInstructions != nil {
		opts = append(opts, openaiexecutor.WithSystemInstructions[Req, *Labels](config.SystemInstructions))
	}
	if config.Enricher != nil {
		opts = append(opts, openaiexecutor.WithAttributeEnricher[Req, *Labels](config.Enricher))
	}

	exec, err := openaiexecutor.New[Req, *Labels](client, config.UserPrompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI executor: %w", err)
	}
	return exec, nil
}
