// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"errors"
	"slices"
)

// Repository names this tool knows how to build changelogs for.
const (
	Ktools        = "ktools"
	OasisLMF      = "OasisLMF"
	OasisPlatform = "OasisPlatform"
	OasisUI       = "OasisUI"
)

// Repositories lists the valid values of the --repo flag.
var Repositories = []string{Ktools, OasisLMF, OasisPlatform, OasisUI}

var ErrUnknownRepository = errors.New("unknown repository")

// IsKnownRepository reports whether name is one of Repositories. The match is case sensitive.
func IsKnownRepository(name string) bool {
	return slices.Contains(Repositories, name)
}

// TagRange delimits the commits of one release of one repository.
// Equal tags are allowed and produce an empty release.
type TagRange struct {
	Repository string
	From       string
	To         string
}

// Issue is an issue tracker entry linked to a pull request.
type Issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// PullRequest is a resolved pull request together with the issues linked to it.
type PullRequest struct {
	Number       int     `json:"number"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Body         string  `json:"body"`
	LinkedIssues []Issue `json:"linked_issues"`
}

// RepositoryRelease is the unit passed to both renderers.
type RepositoryRelease struct {
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	TagFrom      string        `json:"tag_from"`
	TagTo        string        `json:"tag_to"`
	PullRequests []PullRequest `json:"pull_requests"`
}
