// Package render turns release data into changelog and release notes text.
//
// Every rendered line keeps its line terminator, so the output can be written
// to disk as is and spliced into previously rendered files.
package render

import (
	"fmt"
	"strings"

	"github.com/oasislmf/release-notes/internal/domain"
)

// Changelog renders the RST changelog block of one release.
func Changelog(r *domain.RepositoryRelease) []string {
	lines := []string{
		fmt.Sprintf("`%s`_", r.TagTo),
		" ---------",
	}
	for _, pr := range r.PullRequests {
		lines = append(lines, ChangelogBullet(pr))
	}
	lines = append(lines,
		fmt.Sprintf(".. _`%s`:  %s/compare/%s...%s", r.TagTo, r.URL, r.TagFrom, r.TagTo),
		"",
	)

	for i := range lines {
		lines[i] += "\n"
	}
	return lines
}

// ChangelogBullet describes a pull request with the most specific reference available:
// the pull request itself when no issue is linked, the issue when exactly one is,
// and every issue number with the pull request title otherwise.
func ChangelogBullet(pr domain.PullRequest) string {
	switch len(pr.LinkedIssues) {
	case 0:
		return fmt.Sprintf("* [#%d](%s) - %s", pr.Number, pr.URL, pr.Title)
	case 1:
		issue := pr.LinkedIssues[0]
		return fmt.Sprintf("* [#%d](%s) - %s", issue.Number, pr.URL, issue.Title)
	default:
		refs := make([]string, 0, len(pr.LinkedIssues))
		for _, issue := range pr.LinkedIssues {
			refs = append(refs, fmt.Sprintf("#%d", issue.Number))
		}
		return fmt.Sprintf("* [%s](%s) - %s", strings.Join(refs, ", "), pr.URL, pr.Title)
	}
}
