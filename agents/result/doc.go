/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package result extracts JSON payloads from LLM replies.
//
// Models asked for structured output still sometimes wrap it in markdown:
//
//	Here are the labels:
//
//	```json
//	{"labels": ["bug"]}
//	```
//
// ExtractJSON returns just the payload and Extract decodes it:
//
//	out, err := result.Extract[Labels](reply)
package result
