/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudeexecutor runs single-turn structured-output requests
// against Anthropic's Messages API.
//
// The response type is offered to Claude as the input schema of a single
// tool, and tool use is forced, so the reply arrives as the tool's
// arguments:
//
//	client := anthropic.NewClient(option.WithAPIKey(key))
//	exec, err := claudeexecutor.New[*Request, *Response](client, prompt,
//	    claudeexecutor.WithModel[*Request, *Response]("claude-sonnet-4-5"),
//	)
//	if err != nil {
//	    return err
//	}
//	resp, err := exec.Execute(ctx, request)
//
// A plain text reply is still accepted and parsed as JSON.
package claudeexecutor
