package render

import (
	"fmt"
	"strings"

	"github.com/oasislmf/release-notes/internal/domain"
)

const (
	releaseNotesStart = "<!--start_release_notes-->\r\n"
	releaseNotesEnd   = "<!--end_release_notes-->"
)

// HeaderTags are the released versions named in the release notes header.
type HeaderTags struct {
	Platform string
	UI       string
	OasisLMF string
	Ktools   string
}

// ReleaseHeader renders the Docker image and component links of a platform release.
func ReleaseHeader(t HeaderTags) []string {
	return []string{
		"## Docker Images (Platform)\n",
		fmt.Sprintf("* [coreoasis/api_server:%[1]s](https://hub.docker.com/r/coreoasis/api_server/tags?name=%[1]s)\n", t.Platform),
		fmt.Sprintf("* [coreoasis/model_worker:%[1]s](https://hub.docker.com/r/coreoasis/model_worker/tags?name=%[1]s)\n", t.Platform),
		fmt.Sprintf("* [coreoasis/model_worker:%[1]s-debian](https://hub.docker.com/r/coreoasis/model_worker/tags?name=%[1]s-debian)\n", t.Platform),
		fmt.Sprintf("* [coreoasis/piwind_worker:%[1]s](https://hub.docker.com/r/coreoasis/piwind_worker/tags?name=%[1]s)\n", t.Platform),
		"## Docker Images (User Interface)\n",
		fmt.Sprintf("* [coreoasis/oasisui_app:%[1]s](https://hub.docker.com/r/coreoasis/oasisui_app/tags?name=%[1]s)\n", t.UI),
		fmt.Sprintf("* [coreoasis/oasisui_proxy:%[1]s](https://hub.docker.com/r/coreoasis/oasisui_proxy/tags?name=%[1]s)\n", t.UI),
		"## Components\n",
		fmt.Sprintf("* [oasislmf %[1]s](https://github.com/OasisLMF/OasisLMF/releases/tag/%[1]s)\n", t.OasisLMF),
		fmt.Sprintf("* [ktools %[1]s](https://github.com/OasisLMF/ktools/releases/tag/%[1]s)\n", t.Ktools),
		fmt.Sprintf("* [Oasis UI %[1]s](https://github.com/OasisLMF/OasisUI/releases/tag/%[1]s)\n", t.UI),
		"\n",
	}
}

// ExtractReleaseNotes returns the text between the release notes markers of a
// pull request body. It reports false when a marker is missing or the text is blank.
func ExtractReleaseNotes(body string) (string, bool) {
	start := strings.Index(body, releaseNotesStart)
	end := strings.LastIndex(body, releaseNotesEnd)
	if start == -1 || end == -1 {
		return "", false
	}
	start += len(releaseNotesStart)
	if end < start {
		return "", false
	}
	notes := body[start:end]
	if strings.TrimSpace(notes) == "" {
		return "", false
	}
	return notes, true
}

// ReleaseNotes renders the header followed by a notes section for every release
// with at least one pull request carrying release notes. Releases keep their order.
func ReleaseNotes(tags HeaderTags, releases ...*domain.RepositoryRelease) []string {
	lines := ReleaseHeader(tags)
	for _, r := range releases {
		if r == nil {
			continue
		}
		var notes []string
		for _, pr := range r.PullRequests {
			if text, ok := ExtractReleaseNotes(pr.Body); ok {
				notes = append(notes, text)
			}
		}
		if len(notes) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("## %s Notes\r\n", r.Name))
		lines = append(lines, notes...)
		lines = append(lines, "\r\n")
	}
	return lines
}
