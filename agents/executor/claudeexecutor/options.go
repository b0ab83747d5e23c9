/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/labeler/agents/metrics"
	"chainguard.dev/labeler/agents/promptbuilder"
)

// Option is a functional option for configuring the executor
type Option[Request promptbuilder.Bindable, Response any] func(*executor[Request, Response]) error

// WithMaxTokens sets the maximum tokens for responses
func WithMaxTokens[Request promptbuilder.Bindable, Response any](tokens int64) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		if tokens > 32000 {
			return fmt.Errorf("max tokens %d exceeds maximum of 32000", tokens)
		}
		e.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the temperature for responses.
// Claude models support temperature values from 0.0 to 1.0.
func WithTemperature[Request promptbuilder.Bindable, Response any](temp float64) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if temp < 0.0 || temp > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temp)
		}
		e.temperature = temp
		return nil
	}
}

// WithSystemInstructions sets custom system instructions
func WithSystemInstructions[Request promptbuilder.Bindable, Response any](prompt *promptbuilder.Prompt) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if prompt == nil {
			return errors.New("system instructions prompt cannot be nil")
		}
		e.systemInstructions = prompt
		return nil
	}
}

// WithModel allows overriding the model name
func WithModel[Request promptbuilder.Bindable, Response any](model string) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if !strings.HasPrefix(model, "claude-") {
			return fmt.Errorf("model %q does not appear to be a Claude model (expected claude-* format)", model)
		}
		e.modelName = model
		return nil
	}
}

// WithToolName renames the tool through which the result is submitted.
func WithToolName[Request promptbuilder.Bindable, Response any](name string) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if name == "" {
			return errors.New("tool name cannot be empty")
		}
		e.toolName = name
		return nil
	}
}

// WithAttributeEnricher adds caller attributes to recorded token metrics.
func WithAttributeEnricher[Request promptbuilder.Bindable, Response any](enricher metrics.AttributeEnricher) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		e.genaiMetrics.SetAttributeEnricher(enricher)
		return nil
	}
}
