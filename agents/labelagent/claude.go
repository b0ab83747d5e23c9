/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelagent

import (
	"fmt"

	"chainguard.dev/labeler/agents/executor/claudeexecutor"
	"chainguard.dev/labeler/agents/promptbuilder"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func newClaude[Req promptbuilder.Bindable](config Config) (executor[Req], error) {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(config.BaseURL))
	}
	client := anthropic.NewClient(clientOpts...)

	opts := []claudeexecutor.Option[Req, *Labels]{
		claudeexecutor.WithTemperature[Req, *Labels](0.1),
		claudeexecutor.WithMaxTokens[Req, *Labels](4096),
		claudeexecutor.WithToolName[Req, *Labels]("submit_labels"),
	}
	if config.Model != "" {
		opts = append(opts, claudeexecutor.WithModel[Req, *Labels](config.Model))
	}
	if config.SystemInstructions != nil {
		opts = append(opts, claudeexecutor.WithSystemInstructions[Req, *Labels](config.SystemInstructions))
	}
	if config.Enricher != nil {
		opts = append(opts, claudeexecutor.WithAttributeEnricher[Req, *Labels](config.Enricher))
	}

	exec, err := claudeexecutor.New[Req, *Labels](client, config.UserPrompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Claude executor: %w", err)
	}
	return exec, nil
}
