/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package labelreconciler suggests labels for an issue or discussion with an
LLM agent and applies the ones that exist in the repository.

A run is a single pass:

 1. load the triggering event and project it into an event.ContentInfo
 2. list the repository's labels (a failure here degrades to an empty list)
 3. bind a Request to the prompt template and ask the agent for labels
 4. keep the suggestions that match a repository label case-insensitively,
    replaced by the repository's spelling
 5. apply them: issues get the union of their current and new labels in one
    replace call, discussions get the new labels added server-side

Nothing is retried. Fatal failures are returned wrapped in ErrSuggestion or
ErrApply so callers can log them.
*/
package labelreconciler
