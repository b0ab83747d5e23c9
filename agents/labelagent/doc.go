/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package labelagent provides a provider-agnostic agent that suggests labels
// for a piece of content. The provider is chosen by configuration:
//   - "openai" talks to the OpenAI chat completions API or any compatible
//     endpoint (the default)
//   - "anthropic" uses Anthropic's Messages API
//   - "google" uses the Gemini API
//
// SDK-level automatic retries are disabled; a failed call fails the run.
package labelagent
