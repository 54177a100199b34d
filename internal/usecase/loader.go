// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"github.com/oasislmf/release-notes/internal/domain"
	"github.com/oasislmf/release-notes/internal/gateway"
	"github.com/oasislmf/release-notes/internal/gitlog"
)

// Loader is the use case for loading the release data of a repository.
// It orchestrates commit scanning, pull request resolution and linked issue lookup.
type Loader struct {
	scanner     gitlog.RefScanner
	fetcher     gateway.Fetcher
	scraper     gateway.LinkScraper
	repoURL     func(repo string) string
	useGraphQL  bool
	concurrency int
	logger      *clog.Logger
}

// LoaderOptions configures NewLoader.
type LoaderOptions struct {
	// RepoURL maps a repository name to its web URL.
	RepoURL func(repo string) string
	// UseGraphQL selects the GraphQL API instead of page scraping for linked issues.
	UseGraphQL  bool
	Concurrency int
}

// NewLoader creates a new Loader instance.
func NewLoader(scanner gitlog.RefScanner, fetcher gateway.Fetcher, scraper gateway.LinkScraper, opts LoaderOptions, logger *clog.Logger) *Loader {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Loader{
		scanner:     scanner,
		fetcher:     fetcher,
		scraper:     scraper,
		repoURL:     opts.RepoURL,
		useGraphQL:  opts.UseGraphQL,
		concurrency: opts.Concurrency,
		logger:      logger,
	}
}

// Load fetches the pull requests, and the issues linked to them, referenced
// by commits between the tags of r.
func (l *Loader) Load(ctx context.Context, r domain.TagRange) (*domain.RepositoryRelease, error) {
	repoURL := l.repoURL(r.Repository)

	refs, err := l.scanner.CommitRefs(ctx, repoURL, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("failed to scan commits of %s: %w", r.Repository, err)
	}

	prs, err := l.fetcher.FetchPullRequests(ctx, r.Repository, refs)
	if err != nil {
		return nil, err
	}

	for i := range prs {
		issues, err := l.linkedIssues(ctx, r.Repository, repoURL, prs[i].Number)
		if err != nil {
			return nil, err
		}
		prs[i].LinkedIssues = issues
	}

	l.logger.Infof("%s - Github data fetch complete", r.Repository)
	return &domain.RepositoryRelease{
		Name:         r.Repository,
		URL:          repoURL,
		TagFrom:      r.From,
		TagTo:        r.To,
		PullRequests: prs,
	}, nil
}

func (l *Loader) linkedIssues(ctx context.Context, repo, repoURL string, number int) ([]domain.Issue, error) {
	if l.useGraphQL {
		return l.fetcher.FetchClosingIssues(ctx, repo, number)
	}

	refs, err := l.scraper.LinkedIssueNumbers(ctx, repoURL, number)
	if err != nil {
		return nil, err
	}
	issues := make([]domain.Issue, 0, len(refs))
	for _, ref := range refs {
		issue, err := l.fetcher.FetchIssue(ctx, repo, ref)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// LoadAll loads every range, at most l.concurrency at a time.
// The result has the order of ranges.
func (l *Loader) LoadAll(ctx context.Context, ranges []domain.TagRange) ([]*domain.RepositoryRelease, error) {
	releases := make([]*domain.RepositoryRelease, len(ranges))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(l.concurrency)
	for i, r := range ranges {
		eg.Go(func() error {
			release, err := l.Load(egCtx, r)
			if err != nil {
				return err
			}
			releases[i] = release
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return releases, nil
}
