// Package config loads the application configuration from the environment.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Linked issue sources.
const (
	LinkedIssuesScrape  = "scrape"
	LinkedIssuesGraphQL = "graphql"
)

// Config holds the application configuration.
type Config struct {
	GitHubToken  string `env:"GITHUB_TOKEN"`
	Owner        string `env:"RELEASE_NOTES_OWNER,default=OasisLMF"`
	APIURL       string `env:"RELEASE_NOTES_API_URL,default=https://api.github.com/"`
	GraphQLURL   string `env:"RELEASE_NOTES_GRAPHQL_URL,default=https://api.github.com/graphql"`
	WebURL       string `env:"RELEASE_NOTES_WEB_URL,default=https://github.com"`
	LinkedIssues string `env:"RELEASE_NOTES_LINKED_ISSUES,default=scrape"`
	Concurrency  int    `env:"RELEASE_NOTES_CONCURRENCY,default=3"`
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads the configuration from l and normalizes it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if !strings.HasSuffix(cfg.APIURL, "/") {
		cfg.APIURL += "/"
	}
	cfg.WebURL = strings.TrimSuffix(cfg.WebURL, "/")

	switch cfg.LinkedIssues {
	case LinkedIssuesScrape, LinkedIssuesGraphQL:
	default:
		return nil, fmt.Errorf("invalid RELEASE_NOTES_LINKED_ISSUES %q, expected %q or %q",
			cfg.LinkedIssues, LinkedIssuesScrape, LinkedIssuesGraphQL)
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &cfg, nil
}

// RepoURL returns the web URL of a repository of the configured owner.
func (c *Config) RepoURL(repo string) string {
	return fmt.Sprintf("%s/%s/%s", c.WebURL, c.Owner, repo)
}
