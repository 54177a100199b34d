// Package gateway provides a gateway to the GitHub API and web UI,
// abstracting away the underlying REST, GraphQL and HTTP clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/oasislmf/release-notes/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching pull requests and issues from GitHub.
type Fetcher interface {
	FetchPullRequests(ctx context.Context, repo string, refs []int) ([]domain.PullRequest, error)
	FetchIssue(ctx context.Context, repo string, number int) (domain.Issue, error)
	// FetchClosingIssues returns the issues a pull request is linked to, using the GraphQL API.
	FetchClosingIssues(ctx context.Context, repo string, number int) ([]domain.Issue, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	owner         string
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *clog.Logger
}

// closingIssuesQuery fetches the issues linked to a single pull request.
type closingIssuesQuery struct {
	Repository struct {
		PullRequest struct {
			ClosingIssuesReferences struct {
				Nodes []struct {
					Number int
					Title  string
				}
			} `graphql:"closingIssuesReferences(first: 50)"`
		} `graphql:"pullRequest(number: $number)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// GatewayOptions configures NewGitHubGateway.
type GatewayOptions struct {
	Owner      string
	Token      string
	APIURL     string
	GraphQLURL string
}

// NewHTTPClient returns an HTTP client that waits out GitHub secondary rate limits
// and, when token is not empty, authenticates every request with it.
func NewHTTPClient(token string) (*http.Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	if token == "" {
		return &http.Client{Transport: rateLimitWaiter}, nil
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}, nil
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts GatewayOptions, logger *clog.Logger) (Fetcher, error) {
	httpClient, err := NewHTTPClient(opts.Token)
	if err != nil {
		return nil, err
	}
	restClient := github.NewClient(httpClient)
	if opts.APIURL != "" {
		baseURL, err := url.Parse(opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse API URL: %w", err)
		}
		restClient.BaseURL = baseURL
	}
	graphqlURL := opts.GraphQLURL
	if graphqlURL == "" {
		graphqlURL = "https://api.github.com/graphql"
	}
	return &GitHubGateway{
		owner:         opts.Owner,
		restClient:    restClient,
		graphqlClient: githubv4.NewEnterpriseClient(graphqlURL, httpClient),
		logger:        logger,
	}, nil
}

// FetchPullRequests resolves each reference as a pull request. References that
// are not pull requests (the API answers 404) are dropped. The result is sorted by number.
func (g *GitHubGateway) FetchPullRequests(ctx context.Context, repo string, refs []int) ([]domain.PullRequest, error) {
	g.logger.Infof("Resolving %d references against %s/%s pull requests...", len(refs), g.owner, repo)
	prs := make([]domain.PullRequest, 0, len(refs))
	for _, ref := range refs {
		pr, _, err := g.restClient.PullRequests.Get(ctx, g.owner, repo, ref)
		if err != nil {
			if isNotFound(err) {
				g.logger.Debugf("  #%d is not a pull request, skipping", ref)
				continue
			}
			return nil, fmt.Errorf("failed to get pull request #%d: %w", ref, err)
		}
		prs = append(prs, domain.PullRequest{
			Number: pr.GetNumber(),
			Title:  pr.GetTitle(),
			URL:    pr.GetHTMLURL(),
			Body:   pr.GetBody(),
		})
	}
	slices.SortFunc(prs, func(a, b domain.PullRequest) int { return a.Number - b.Number })

	numbers := make([]int, 0, len(prs))
	for _, pr := range prs {
		numbers = append(numbers, pr.Number)
	}
	g.logger.Infof("Filtered github references to pull requests: %v", numbers)
	return prs, nil
}

// FetchIssue fetches the number and title of a single issue.
func (g *GitHubGateway) FetchIssue(ctx context.Context, repo string, number int) (domain.Issue, error) {
	issue, _, err := g.restClient.Issues.Get(ctx, g.owner, repo, number)
	if err != nil {
		return domain.Issue{}, fmt.Errorf("failed to get issue #%d: %w", number, err)
	}
	return domain.Issue{Number: issue.GetNumber(), Title: issue.GetTitle()}, nil
}

// FetchClosingIssues asks the GraphQL API for the issues linked to a pull request.
func (g *GitHubGateway) FetchClosingIssues(ctx context.Context, repo string, number int) ([]domain.Issue, error) {
	variables := map[string]interface{}{
		"owner":  githubv4.String(g.owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(number),
	}
	var q closingIssuesQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for linked issues of #%d: %w", number, err)
	}

	nodes := q.Repository.PullRequest.ClosingIssuesReferences.Nodes
	issues := make([]domain.Issue, 0, len(nodes))
	for _, n := range nodes {
		issues = append(issues, domain.Issue{Number: n.Number, Title: n.Title})
	}
	slices.SortFunc(issues, func(a, b domain.Issue) int { return a.Number - b.Number })
	g.logger.Infof("PR-%d linked issues: %v", number, issueNumbers(issues))
	return issues, nil
}

func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}

func issueNumbers(issues []domain.Issue) []int {
	numbers := make([]int, 0, len(issues))
	for _, i := range issues {
		numbers = append(numbers, i.Number)
	}
	return numbers
}
