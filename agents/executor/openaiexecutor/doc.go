/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaiexecutor runs single-turn structured-output requests against
// the OpenAI chat completions API or any endpoint compatible with it.
//
// The response type is described to the model as a strict JSON schema
// derived from the Go type:
//
//	client := openai.NewClient(option.WithAPIKey(key), option.WithBaseURL(baseURL))
//	exec, err := openaiexecutor.New[*Request, *Response](client, prompt,
//	    openaiexecutor.WithModel[*Request, *Response]("gpt-4o"),
//	)
//	if err != nil {
//	    return err
//	}
//	resp, err := exec.Execute(ctx, request)
package openaiexecutor
