/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrEmpty is returned by Extract when the response holds no JSON payload.
var ErrEmpty = errors.New("empty response")

// ExtractJSON returns the JSON payload of a model reply. The first ```json
// fenced block wins; otherwise the trimmed reply is returned with any
// surrounding ``` fence removed.
func ExtractJSON(text string) string {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start < 0 {
			if trimmed == "```json" {
				start = i + 1
			}
			continue
		}
		if trimmed == "```" {
			return strings.TrimSpace(strings.Join(lines[start:i], "\n"))
		}
	}
	if start >= 0 {
		// Unterminated block: take everything after the opening fence.
		return strings.TrimSpace(strings.Join(lines[start:], "\n"))
	}

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Extract pulls the JSON payload out of text and decodes it into T.
func Extract[T any](text string) (T, error) {
	var out T
	payload := ExtractJSON(text)
	if payload == "" {
		return out, ErrEmpty
	}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return out, err
	}
	return out, nil
}
