/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubreconciler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"chainguard.dev/labeler/reconcilers/labelreconciler"
	"chainguard.dev/labeler/reconcilers/labelreconciler/event"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Client reads and writes labels in a single repository.
type Client struct {
	owner string
	repo  string
	rest  *github.Client
	gql   *githubv4.Client
}

var _ labelreconciler.SourceControl = (*Client)(nil)

// ParseRepository splits "owner/name".
func ParseRepository(repository string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: want owner/name", repository)
	}
	return owner, repo, nil
}

// NewClient creates a Client for repository ("owner/name") authenticated
// with token.
func NewClient(ctx context.Context, token, repository string, opts ...Option) (*Client, error) {
	owner, repo, err := ParseRepository(repository)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errors.New("GitHub token is required")
	}

	o := options{apiURL: DefaultAPIURL, graphqlURL: DefaultGraphQLURL}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	rest := github.NewClient(httpClient)
	if o.apiURL != DefaultAPIURL {
		base, err := url.Parse(o.apiURL + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", o.apiURL, err)
		}
		rest.BaseURL = base
	}

	return &Client{
		owner: owner,
		repo:  repo,
		rest:  rest,
		gql:   githubv4.NewEnterpriseClient(o.graphqlURL, httpClient),
	}, nil
}

func (c *Client) listLabels(ctx context.Context) ([]*github.Label, error) {
	var all []*github.Label
	opts := &github.ListOptions{PerPage: 100}
	for {
		labels, resp, err := c.rest.Issues.ListLabels(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing labels for %s/%s: %w", c.owner, c.repo, err)
		}
		all = append(all, labels...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListRepositoryLabels returns the names of every label defined in the
// repository, in the order GitHub lists them.
func (c *Client) ListRepositoryLabels(ctx context.Context) ([]string, error) {
	labels, err := c.listLabels(ctx)
	if err != nil {
		return nil, err
	}
	return names(labels), nil
}

// GetIssue fetches issue number.
func (c *Client) GetIssue(ctx context.Context, number int) (*event.ContentInfo, error) {
	issue, _, err := c.rest.Issues.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("getting issue #%d: %w", number, err)
	}
	return &event.ContentInfo{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		Kind:   event.KindIssue,
	}, nil
}

// ListIssueLabels returns the labels currently on issue number.
func (c *Client) ListIssueLabels(ctx context.Context, number int) ([]string, error) {
	var all []*github.Label
	opts := &github.ListOptions{PerPage: 100}
	for {
		labels, resp, err := c.rest.Issues.ListLabelsByIssue(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing labels of issue #%d: %w", number, err)
		}
		all = append(all, labels...)
		if resp.NextPage == 0 {
			return names(all), nil
		}
		opts.Page = resp.NextPage
	}
}

// ReplaceIssueLabels sets the labels of issue number to exactly labels and
// returns what GitHub reports back.
func (c *Client) ReplaceIssueLabels(ctx context.Context, number int, labels []string) ([]string, error) {
	got, _, err := c.rest.Issues.ReplaceLabelsForIssue(ctx, c.owner, c.repo, number, labels)
	if err != nil {
		return nil, fmt.Errorf("replacing labels of issue #%d: %w", number, err)
	}
	return names(got), nil
}

type discussionNode struct {
	ID     githubv4.ID
	Number int
	Title  string
	Body   string
}

func (c *Client) discussion(ctx context.Context, number int) (*discussionNode, error) {
	var query struct {
		Repository struct {
			Discussion *discussionNode `graphql:"discussion(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}
	variables := map[string]any{
		"owner":  githubv4.String(c.owner),
		"repo":   githubv4.String(c.repo),
		"number": githubv4.Int(number),
	}
	if err := c.gql.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("querying discussion #%d: %w", number, err)
	}
	if query.Repository.Discussion == nil || query.Repository.Discussion.ID == nil {
		return nil, fmt.Errorf("discussion #%d not found in %s/%s", number, c.owner, c.repo)
	}
	return query.Repository.Discussion, nil
}

// GetDiscussion fetches discussion number.
func (c *Client) GetDiscussion(ctx context.Context, number int) (*event.ContentInfo, error) {
	d, err := c.discussion(ctx, number)
	if err != nil {
		return nil, err
	}
	return &event.ContentInfo{
		Number: d.Number,
		Title:  d.Title,
		Body:   d.Body,
		Kind:   event.KindDiscussion,
	}, nil
}

// AddDiscussionLabels adds labels to discussion number and returns the
// labels the discussion carries afterwards. Labels are matched to
// repository labels by exact name.
func (c *Client) AddDiscussionLabels(ctx context.Context, number int, labels []string) ([]string, error) {
	log := clog.FromContext(ctx)

	d, err := c.discussion(ctx, number)
	if err != nil {
		return nil, err
	}

	repoLabels, err := c.listLabels(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(repoLabels))
	for _, l := range repoLabels {
		ids[l.GetName()] = l.GetNodeID()
	}

	labelIDs := make([]githubv4.ID, 0, len(labels))
	for _, name := range labels {
		id, ok := ids[name]
		if !ok || id == "" {
			log.With("label", name).Warn("No node ID for label, skipping")
			continue
		}
		labelIDs = append(labelIDs, githubv4.ID(id))
	}
	if len(labelIDs) == 0 {
		return nil, fmt.Errorf("none of %v resolve to repository labels", labels)
	}

	var mutation struct {
		AddLabelsToLabelable struct {
			Labelable struct {
				Labels struct {
					Nodes []struct {
						Name string
					}
				} `graphql:"labels(first: 100)"`
			}
		} `graphql:"addLabelsToLabelable(input: $input)"`
	}
	input := githubv4.AddLabelsToLabelableInput{
		LabelableID: d.ID,
		LabelIDs:    labelIDs,
	}
	if err := c.gql.Mutate(ctx, &mutation, input, nil); err != nil {
		return nil, fmt.Errorf("adding labels to discussion #%d: %w", number, err)
	}

	nodes := mutation.AddLabelsToLabelable.Labelable.Labels.Nodes
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out, nil
}

func names(labels []*github.Label) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.GetName())
	}
	return out
}
