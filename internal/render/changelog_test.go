package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasislmf/release-notes/internal/domain"
)

const prURL = "https://github.com/OasisLMF/OasisLMF/pull/815"

func TestChangelogBullet(t *testing.T) {
	testCases := []struct {
		name     string
		issues   []domain.Issue
		expected string
	}{
		{
			name:     "no linked issues cites the pull request",
			expected: "* [#815](" + prURL + ") - Fix/dev package requirements",
		},
		{
			name:     "one linked issue cites the issue but links the pull request",
			issues:   []domain.Issue{{Number: 777, Title: "Insured loss summary terms when running ground up only"}},
			expected: "* [#777](" + prURL + ") - Insured loss summary terms when running ground up only",
		},
		{
			name: "several linked issues are comma joined",
			issues: []domain.Issue{
				{Number: 771, Title: "genbash"},
				{Number: 777, Title: "summary terms"},
			},
			expected: "* [#771, #777](" + prURL + ") - Fix/dev package requirements",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pr := domain.PullRequest{Number: 815, Title: "Fix/dev package requirements", URL: prURL, LinkedIssues: tc.issues}
			assert.Equal(t, tc.expected, ChangelogBullet(pr))
		})
	}
}

func TestChangelog(t *testing.T) {
	release := &domain.RepositoryRelease{
		Name:    "OasisLMF",
		URL:     "https://github.com/OasisLMF/OasisLMF",
		TagFrom: "1.15.0",
		TagTo:   "1.16.0",
		PullRequests: []domain.PullRequest{
			{Number: 815, Title: "Fix/dev package requirements", URL: prURL},
		},
	}

	expected := []string{
		"`1.16.0`_\n",
		" ---------\n",
		"* [#815](" + prURL + ") - Fix/dev package requirements\n",
		".. _`1.16.0`:  https://github.com/OasisLMF/OasisLMF/compare/1.15.0...1.16.0\n",
		"\n",
	}
	assert.Equal(t, expected, Changelog(release))
}

func TestChangelog_NoPullRequests(t *testing.T) {
	release := &domain.RepositoryRelease{URL: "https://github.com/OasisLMF/ktools", TagFrom: "v3.9.0", TagTo: "v3.9.0"}
	lines := Changelog(release)
	assert.Len(t, lines, 4)
	assert.Equal(t, ".. _`v3.9.0`:  https://github.com/OasisLMF/ktools/compare/v3.9.0...v3.9.0\n", lines[2])
}
