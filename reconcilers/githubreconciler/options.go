/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubreconciler

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint.
	DefaultAPIURL = "https://api.github.com"
	// DefaultGraphQLURL is the public GitHub GraphQL endpoint.
	DefaultGraphQLURL = "https://api.github.com/graphql"
)

// Option configures a Client.
type Option func(*options) error

type options struct {
	apiURL     string
	graphqlURL string
}

// WithAPIURL points the REST client at apiURL, such as a GitHub Enterprise
// Server "https://host/api/v3". Empty keeps the default.
func WithAPIURL(apiURL string) Option {
	return func(o *options) error {
		if apiURL == "" {
			return nil
		}
		if _, err := url.Parse(apiURL); err != nil {
			return fmt.Errorf("invalid API URL %q: %w", apiURL, err)
		}
		o.apiURL = strings.TrimSuffix(apiURL, "/")
		return nil
	}
}

// WithGraphQLURL points the GraphQL client at graphqlURL. Empty keeps the
// default.
func WithGraphQLURL(graphqlURL string) Option {
	return func(o *options) error {
		if graphqlURL == "" {
			return nil
		}
		if _, err := url.Parse(graphqlURL); err != nil {
			return fmt.Errorf("invalid GraphQL URL %q: %w", graphqlURL, err)
		}
		o.graphqlURL = graphqlURL
		return nil
	}
}
