/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main is the entrypoint of the labeler GitHub Action. It reads the
// triggering issue or discussion, asks an LLM for labels and applies the
// ones that exist in the repository.
//
// Failures are logged and the process still exits 0 so a labeling problem
// never fails the workflow.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"chainguard.dev/labeler/agents/labelagent"
	"chainguard.dev/labeler/reconcilers/githubreconciler"
	"chainguard.dev/labeler/reconcilers/labelreconciler"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
	"go.opentelemetry.io/otel/attribute"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	level := new(slog.LevelVar)
	ctx = clog.WithLogger(ctx, clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := loadConfig(ctx, envconfig.OsLookuper())
	if err != nil {
		clog.ErrorContextf(ctx, "processing config: %v", err)
		return
	}
	level.Set(cfg.level())

	if err := run(ctx, cfg); err != nil {
		clog.ErrorContextf(ctx, "labeling failed: %v", err)
	}
}

// run wires the GitHub client and the label agent together and processes
// the event once.
func run(ctx context.Context, cfg *config) error {
	log := clog.FromContext(ctx).With("repository", cfg.Repository, "provider", cfg.Provider)

	tmpl := labelreconciler.DefaultTemplate
	if cfg.Prompt != "" {
		tmpl = cfg.Prompt
	}
	prompt, err := labelreconciler.ParseTemplate(tmpl)
	if err != nil {
		return err
	}

	gh, err := githubreconciler.NewClient(ctx, cfg.GitHubToken, cfg.Repository,
		githubreconciler.WithAPIURL(cfg.APIURL),
		githubreconciler.WithGraphQLURL(cfg.GraphQLURL),
	)
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}

	agent, err := labelagent.New[*labelreconciler.Request](ctx, labelagent.Config{
		Provider:           labelagent.Provider(cfg.Provider),
		Model:              cfg.Model,
		APIKey:             cfg.APIKey,
		BaseURL:            cfg.BaseURL,
		SystemInstructions: labelreconciler.SystemInstructions,
		UserPrompt:         prompt,
		Enricher: func(_ context.Context, attrs []attribute.KeyValue) []attribute.KeyValue {
			return append(attrs, attribute.String("repository", cfg.Repository))
		},
	})
	if err != nil {
		return fmt.Errorf("creating label agent: %w", err)
	}

	ctx = clog.WithLogger(ctx, log)
	outcome, err := labelreconciler.New(gh, agent).Run(ctx, cfg.EventPath)
	if err != nil {
		return err
	}
	log.With("outcome", outcome.String()).Info("Labeling finished")
	return nil
}
