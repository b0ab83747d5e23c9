/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package googleexecutor runs single-turn structured-output requests against
// Gemini models through the google.golang.org/genai SDK, using a JSON
// response MIME type and a response schema derived from the Go type.
package googleexecutor
