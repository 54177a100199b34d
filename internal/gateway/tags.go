package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

var ErrTagIndexOutOfRange = errors.New("tag index out of range")

// TagLister looks up the published tags of a repository.
type TagLister interface {
	// ListTags returns every tag name in API order, most recent first.
	ListTags(ctx context.Context, repo string) ([]string, error)
	// Tag returns the tag at idx: 0 is the latest tag, 1 the one before it.
	Tag(ctx context.Context, repo string, idx int) (string, error)
}

// TagClient lists tags with plain unauthenticated requests to the REST API.
type TagClient struct {
	owner  string
	client *resty.Client
	logger *clog.Logger
}

// NewTagClient creates a TagClient for the repositories of owner served at apiURL.
func NewTagClient(apiURL, owner string, logger *clog.Logger) *TagClient {
	client := resty.New().
		SetHostURL(apiURL).
		SetHeader("Accept", "application/vnd.github.v3+json")
	return &TagClient{
		owner:  owner,
		client: client,
		logger: logger,
	}
}

func (c *TagClient) ListTags(ctx context.Context, repo string) ([]string, error) {
	c.logger.Debugf("Listing tags of %s/%s", c.owner, repo)
	r, err := c.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"owner": c.owner, "repo": repo}).
		SetQueryParam("per_page", "100").
		Get("/repos/{owner}/{repo}/tags")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags of %s: %w", repo, err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("failed to list tags of %s: %s", repo, r.Status())
	}

	var tags []string
	gjson.ParseBytes(r.Body()).ForEach(func(_, value gjson.Result) bool {
		tags = append(tags, value.Get("name").String())
		return true
	})
	return tags, nil
}

func (c *TagClient) Tag(ctx context.Context, repo string, idx int) (string, error) {
	tags, err := c.ListTags(ctx, repo)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(tags) {
		return "", fmt.Errorf("%w: %s has %d tags, requested index %d", ErrTagIndexOutOfRange, repo, len(tags), idx)
	}
	return tags[idx], nil
}
