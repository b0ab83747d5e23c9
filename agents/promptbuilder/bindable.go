/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Bindable is implemented by request types that know how to fill a prompt
// template with their own data. Executors bind each request to their
// configured template before building it.
type Bindable interface {
	Bind(prompt *Prompt) (*Prompt, error)
}
