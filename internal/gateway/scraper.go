package gateway

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/chainguard-dev/clog"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
)

// LinkScraper finds the issue numbers linked to a pull request.
type LinkScraper interface {
	LinkedIssueNumbers(ctx context.Context, repoURL string, number int) ([]int, error)
}

// WebScraper reads linked issues from the "Link issues" form of the pull request web page.
// There is no REST endpoint exposing these links, so this depends on the page markup.
type WebScraper struct {
	client *resty.Client
	logger *clog.Logger
}

// NewWebScraper creates a WebScraper.
func NewWebScraper(logger *clog.Logger) *WebScraper {
	return &WebScraper{
		client: resty.New(),
		logger: logger,
	}
}

var (
	linkIssuesLabel = regexp.MustCompile(`Link issues`)
	digits          = regexp.MustCompile(`\d+`)
)

// LinkedIssueNumbers fetches {repoURL}/pull/{number} and returns the issue numbers
// found in the link form, sorted and deduplicated. A page without the form has no linked issues.
func (s *WebScraper) LinkedIssueNumbers(ctx context.Context, repoURL string, number int) ([]int, error) {
	r, err := s.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/pull/%d", repoURL, number))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request page #%d: %w", number, err)
	}
	if r.IsError() {
		s.logger.Warnf("PR-%d page returned %s, assuming no linked issues", number, r.Status())
		return []int{}, nil
	}

	refs, err := ParseLinkedIssues(r.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pull request page #%d: %w", number, err)
	}
	s.logger.Infof("PR-%d linked issues: %v", number, refs)
	return refs, nil
}

// ParseLinkedIssues extracts every digit run from the anchors of the "Link issues" form of page.
func ParseLinkedIssues(page []byte) ([]int, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	form := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "form" && linkIssuesLabel.MatchString(attr(n, "aria-label"))
	})
	if form == nil {
		return []int{}, nil
	}

	refs := []int{}
	eachNode(form, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		for _, m := range digits.FindAllString(attr(n, "href"), -1) {
			ref, err := strconv.Atoi(m)
			if err != nil || slices.Contains(refs, ref) {
				continue
			}
			refs = append(refs, ref)
		}
	})
	slices.Sort(refs)
	return refs, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func eachNode(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		eachNode(c, fn)
	}
}
