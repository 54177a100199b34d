package cmd

import (
	"context"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/oasislmf/release-notes/internal/config"
	"github.com/oasislmf/release-notes/internal/domain"
	"github.com/oasislmf/release-notes/internal/gateway"
	"github.com/oasislmf/release-notes/internal/gitlog"
	"github.com/oasislmf/release-notes/internal/output"
	"github.com/oasislmf/release-notes/internal/usecase"
)

type releaseLoader interface {
	Load(ctx context.Context, r domain.TagRange) (*domain.RepositoryRelease, error)
	LoadAll(ctx context.Context, ranges []domain.TagRange) ([]*domain.RepositoryRelease, error)
}

// services bundles the dependencies of a command run.
type services struct {
	logger *clog.Logger
	tags   gateway.TagLister
	loader releaseLoader
	writer *output.Writer
}

// newServices wires the configured gateways into the use cases. Tests replace it.
var newServices = func(cmd *cobra.Command) (*services, error) {
	ctx := cmd.Context()
	logger := newLogger(cmd)

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if token, _ := cmd.Flags().GetString("github-token"); token != "" {
		cfg.GitHubToken = token
	}

	// Inject dependencies.
	githubGateway, err := gateway.NewGitHubGateway(gateway.GatewayOptions{
		Owner:      cfg.Owner,
		Token:      cfg.GitHubToken,
		APIURL:     cfg.APIURL,
		GraphQLURL: cfg.GraphQLURL,
	}, logger)
	if err != nil {
		return nil, err
	}
	loader := usecase.NewLoader(
		gitlog.NewMiner(logger),
		githubGateway,
		gateway.NewWebScraper(logger),
		usecase.LoaderOptions{
			RepoURL:     cfg.RepoURL,
			UseGraphQL:  cfg.LinkedIssues == config.LinkedIssuesGraphQL,
			Concurrency: cfg.Concurrency,
		},
		logger,
	)

	return &services{
		logger: logger,
		tags:   gateway.NewTagClient(cfg.APIURL, cfg.Owner, logger),
		loader: loader,
		writer: output.NewWriter(logger),
	}, nil
}
