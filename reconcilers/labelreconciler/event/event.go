/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package event loads GitHub Actions event payloads and projects them into
// the content a labeler works on.
package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/go-github/v84/github"
)

// ErrUnknownEventKind is returned when a payload carries neither an issue
// nor a discussion.
var ErrUnknownEventKind = errors.New("unknown event kind: payload has neither issue nor discussion")

// Kind is the type of content that can be labeled.
type Kind int

const (
	KindIssue Kind = iota + 1
	KindDiscussion
)

// String returns the lower-case name used in prompts and logs.
func (k Kind) String() string {
	switch k {
	case KindIssue:
		return "issue"
	case KindDiscussion:
		return "discussion"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ContentInfo is the uniform view of an issue or discussion.
type ContentInfo struct {
	Number int
	Title  string
	Body   string
	Kind   Kind
}

// Event is a decoded payload, keyed by its top-level fields.
type Event map[string]json.RawMessage

// Parse decodes a payload. The payload must be a JSON object.
func Parse(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if ev == nil {
		return nil, errors.New("decode event: payload is not a JSON object")
	}
	return ev, nil
}

// has reports whether key is present with a non-null value.
func (ev Event) has(key string) bool {
	raw, ok := ev[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Classify determines the kind of content in ev. An issue wins over a
// discussion when both are present.
func Classify(ev Event) (Kind, error) {
	switch {
	case ev.has("issue"):
		return KindIssue, nil
	case ev.has("discussion"):
		return KindDiscussion, nil
	default:
		return 0, ErrUnknownEventKind
	}
}

// Extract projects the object of the given kind into a ContentInfo. A
// missing or null body becomes the empty string.
func Extract(ev Event, kind Kind) (*ContentInfo, error) {
	switch kind {
	case KindIssue:
		var issue github.Issue
		if err := json.Unmarshal(ev["issue"], &issue); err != nil {
			return nil, fmt.Errorf("decode issue: %w", err)
		}
		return &ContentInfo{
			Number: issue.GetNumber(),
			Title:  issue.GetTitle(),
			Body:   issue.GetBody(),
			Kind:   KindIssue,
		}, nil

	case KindDiscussion:
		var discussion github.Discussion
		if err := json.Unmarshal(ev["discussion"], &discussion); err != nil {
			return nil, fmt.Errorf("decode discussion: %w", err)
		}
		return &ContentInfo{
			Number: discussion.GetNumber(),
			Title:  discussion.GetTitle(),
			Body:   discussion.GetBody(),
			Kind:   KindDiscussion,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownEventKind, kind)
	}
}

// Load reads the payload at path, classifies it and extracts its content.
func Load(path string) (*ContentInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}
	ev, err := Parse(data)
	if err != nil {
		return nil, err
	}
	kind, err := Classify(ev)
	if err != nil {
		return nil, err
	}
	return Extract(ev, kind)
}
