package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oasislmf/release-notes/internal/domain"
	"github.com/oasislmf/release-notes/internal/render"
	"github.com/oasislmf/release-notes/internal/usecase"
)

func newReleaseNotesCmd() *cobra.Command {
	releaseNotesCmd := &cobra.Command{
		Use:   "build-release-notes",
		Short: "Builds the platform release notes",
		Long: `Builds the release notes of a platform release: Docker image and component links,
followed by the release notes sections found in the pull requests of OasisPlatform,
OasisLMF and ktools. Unset "to" tags default to the latest tag of the repository,
unset "from" tags to the tag before it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flag := func(name string) string {
				v, _ := cmd.Flags().GetString(name)
				return v
			}

			svc, err := newServices(cmd)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			ranges := []domain.TagRange{
				{Repository: domain.OasisPlatform, From: flag("platform-from-tag"), To: flag("platform-to-tag")},
				{Repository: domain.OasisLMF, From: flag("lmf-from-tag"), To: flag("lmf-to-tag")},
				{Repository: domain.Ktools, From: flag("ktools-from-tag"), To: flag("ktools-to-tag")},
			}
			for i := range ranges {
				if ranges[i], err = usecase.DefaultRange(ctx, svc.tags, ranges[i]); err != nil {
					return err
				}
			}
			uiTag := flag("ui-tag")
			if uiTag == "" {
				if uiTag, err = svc.tags.Tag(ctx, domain.OasisUI, 0); err != nil {
					return err
				}
			}

			releases, err := svc.loader.LoadAll(ctx, ranges)
			if err != nil {
				return fmt.Errorf("failed to load release data: %w", err)
			}

			platformTag := ranges[0].To
			lines := render.ReleaseNotes(render.HeaderTags{
				Platform: platformTag,
				UI:       uiTag,
				OasisLMF: ranges[1].To,
				Ktools:   ranges[2].To,
			}, releases...)
			svc.logger.Debugf("RELEASE NOTES OUTPUT: \n%s", strings.Join(lines, ""))

			if _, err := svc.writer.WriteReleaseNotes(flag("output-path"), platformTag, lines); err != nil {
				return err
			}
			return nil
		},
	}

	releaseNotesCmd.Flags().String("platform-from-tag", "", "OasisPlatform tag to track changes from")
	releaseNotesCmd.Flags().String("platform-to-tag", "", "OasisPlatform tag to track changes to")
	releaseNotesCmd.Flags().String("ktools-from-tag", "", "ktools tag to track changes from")
	releaseNotesCmd.Flags().String("ktools-to-tag", "", "ktools tag to track changes to")
	releaseNotesCmd.Flags().String("lmf-from-tag", "", "OasisLMF tag to track changes from")
	releaseNotesCmd.Flags().String("lmf-to-tag", "", "OasisLMF tag to track changes to")
	releaseNotesCmd.Flags().String("ui-tag", "", "OasisUI tag named in the Docker image links (defaults to the latest tag)")
	releaseNotesCmd.Flags().String("output-path", "./RELEASE.md", "release notes output path")
	return releaseNotesCmd
}
