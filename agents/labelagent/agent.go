/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelagent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/labeler/agents/promptbuilder"
)

// Agent suggests labels for a request.
type Agent[Req promptbuilder.Bindable] interface {
	// Suggest binds req to the configured prompt and returns the labels the
	// model proposed, in the order it proposed them.
	Suggest(ctx context.Context, req Req) ([]string, error)
}

// executor is the shape shared by every provider executor.
type executor[Req promptbuilder.Bindable] interface {
	Execute(ctx context.Context, request Req) (*Labels, error)
}

type agent[Req promptbuilder.Bindable] struct {
	exec executor[Req]
}

func (a *agent[Req]) Suggest(ctx context.Context, req Req) ([]string, error) {
	out, err := a.exec.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("empty structured response")
	}
	return out.Labels, nil
}

// New creates a label agent for the configured provider.
func New[Req promptbuilder.Bindable](ctx context.Context, config Config) (Agent[Req], error) {
	if config.UserPrompt == nil {
		return nil, errors.New("user prompt is required")
	}
	if config.APIKey == "" {
		return nil, errors.New("API key is required")
	}

	var (
		exec executor[Req]
		err  error
	)
	switch Provider(strings.ToLower(string(config.Provider))) {
	case ProviderOpenAI, "":
		exec, err = newOpenAI[Req](config)
	case ProviderAnthropic:
		exec, err = newClaude[Req](config)
	case ProviderGoogle:
		exec, err = newGoogle[Req](ctx, config)
	default:
		return nil, fmt.Errorf("unsupported provider: %s (expected openai, anthropic or google)", config.Provider)
	}
	if err != nil {
		return nil, err
	}
	return &agent[Req]{exec: exec}, nil
}
