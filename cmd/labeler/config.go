/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// config mirrors the action inputs and the runner environment.
type config struct {
	GitHubToken string `env:"INPUT_GITHUB_TOKEN, required"`
	APIKey      string `env:"INPUT_API_KEY, required"`
	BaseURL     string `env:"INPUT_BASE_URL"`
	// Model is left to the provider default when empty.
	Model    string `env:"INPUT_MODEL"`
	Provider string `env:"INPUT_PROVIDER, default=openai"`
	Prompt   string `env:"INPUT_PROMPT"`

	Repository string `env:"GITHUB_REPOSITORY, required"`
	EventPath  string `env:"GITHUB_EVENT_PATH, required"`
	APIURL     string `env:"GITHUB_API_URL, default=https://api.github.com"`
	GraphQLURL string `env:"GITHUB_GRAPHQL_URL, default=https://api.github.com/graphql"`

	Debug bool `env:"RUNNER_DEBUG, default=false"`
}

// loadConfig reads a .env file from the working directory, if any, and
// then the environment through lookuper. Variables already set win over
// the file.
func loadConfig(ctx context.Context, lookuper envconfig.Lookuper) (*config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: actionInputs(lookuper),
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// actionInputs lets underscore keys such as INPUT_GITHUB_TOKEN also match
// the hyphenated names the runner exports for action inputs, here
// INPUT_GITHUB-TOKEN.
func actionInputs(l envconfig.Lookuper) envconfig.Lookuper {
	return envconfig.LookuperFunc(func(key string) (string, bool) {
		if v, ok := l.Lookup(key); ok {
			return v, true
		}
		name, ok := strings.CutPrefix(key, "INPUT_")
		if !ok {
			return "", false
		}
		return l.Lookup("INPUT_" + strings.ReplaceAll(name, "_", "-"))
	})
}

func (c *config) level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
