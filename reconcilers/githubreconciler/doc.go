/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubreconciler talks to GitHub on behalf of the label
// reconciler. Issues and repository labels go through the REST API;
// discussions, which REST cannot label, go through GraphQL.
//
// # Usage
//
//	client, err := githubreconciler.NewClient(ctx, token, "octo/hello",
//		githubreconciler.WithAPIURL(os.Getenv("GITHUB_API_URL")),
//		githubreconciler.WithGraphQLURL(os.Getenv("GITHUB_GRAPHQL_URL")),
//	)
//	if err != nil {
//		return err
//	}
//	labels, err := client.ListRepositoryLabels(ctx)
package githubreconciler
