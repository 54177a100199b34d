package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pullRequestPage = `<!DOCTYPE html>
<html><body>
<a href="/OasisLMF/OasisLMF/issues/1">unrelated</a>
<div class="discussion-sidebar-item">
  <form aria-label="Link issues" action="/OasisLMF/OasisLMF/pull/774/linked_issues" method="post">
    <span class="css-truncate">
      <a href="https://github.com/OasisLMF/OasisLMF/issues/777">#777</a>
      <a href="https://github.com/OasisLMF/OasisLMF/issues/771">#771</a>
      <a href="https://github.com/OasisLMF/OasisLMF/issues/777">#777</a>
    </span>
  </form>
</div>
</body></html>`

func TestParseLinkedIssues(t *testing.T) {
	testCases := []struct {
		name     string
		page     string
		expected []int
	}{
		{
			name:     "linked issues are deduplicated and sorted",
			page:     pullRequestPage,
			expected: []int{771, 777},
		},
		{
			name:     "form without anchors",
			page:     `<html><body><form aria-label="Link issues"></form></body></html>`,
			expected: []int{},
		},
		{
			name:     "form missing",
			page:     `<html><body><form aria-label="Reviewers"><a href="/issues/5">#5</a></form></body></html>`,
			expected: []int{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			refs, err := ParseLinkedIssues([]byte(tc.page))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, refs)
		})
	}
}

func TestWebScraper_LinkedIssueNumbers(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		expected []int
	}{
		{
			name:     "happy path",
			status:   http.StatusOK,
			body:     pullRequestPage,
			expected: []int{771, 777},
		},
		{
			name:     "page not found means no linked issues",
			status:   http.StatusNotFound,
			body:     "Not Found",
			expected: []int{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/OasisLMF/OasisLMF/pull/774", r.URL.Path)
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			defer server.Close()

			refs, err := NewWebScraper(discardLogger()).LinkedIssueNumbers(context.Background(), server.URL+"/OasisLMF/OasisLMF", 774)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, refs)
		})
	}
}
