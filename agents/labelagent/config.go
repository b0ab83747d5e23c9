/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelagent

import (
	"chainguard.dev/labeler/agents/metrics"
	"chainguard.dev/labeler/agents/promptbuilder"
)

// Provider names an LLM API family.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

// Config defines the configuration for a label agent instance.
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	// BaseURL overrides the provider's default endpoint when non-empty.
	BaseURL string

	// SystemInstructions is optional.
	SystemInstructions *promptbuilder.Prompt

	// UserPrompt is the template each request is bound to.
	UserPrompt *promptbuilder.Prompt

	// Enricher, when set, adds attributes to token metrics.
	Enricher metrics.AttributeEnricher
}

// Labels is the structured reply every provider is asked for.
type Labels struct {
	Labels []string `json:"labels" jsonschema:"description=A list of relevant labels for the GitHub issue or discussion."`
}
