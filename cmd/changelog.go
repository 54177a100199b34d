package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oasislmf/release-notes/internal/domain"
	"github.com/oasislmf/release-notes/internal/render"
	"github.com/oasislmf/release-notes/internal/usecase"
)

func newChangelogCmd() *cobra.Command {
	changelogCmd := &cobra.Command{
		Use:   "build-changelog",
		Short: "Builds the changelog of one repository between two tags",
		Long: `Collects the pull requests referenced by commits between --from-tag and --to-tag,
and writes one RST bullet per pull request to --output-path. An existing file
keeps its 3-line header and previous entries below the new block.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, _ := cmd.Flags().GetString("repo")
			fromTag, _ := cmd.Flags().GetString("from-tag")
			toTag, _ := cmd.Flags().GetString("to-tag")
			outputPath, _ := cmd.Flags().GetString("output-path")

			if !domain.IsKnownRepository(repo) {
				return fmt.Errorf("%w: repo=%s\nValid options: %v", domain.ErrUnknownRepository, repo, domain.Repositories)
			}

			svc, err := newServices(cmd)
			if err != nil {
				return err
			}

			// Check the tags before anything is written.
			tagRange := domain.TagRange{Repository: repo, From: fromTag, To: toTag}
			if err := usecase.ValidateRange(ctx, svc.tags, tagRange); err != nil {
				return err
			}
			cmd.SilenceUsage = true

			release, err := svc.loader.Load(ctx, tagRange)
			if err != nil {
				return fmt.Errorf("failed to load release data: %w", err)
			}

			lines := render.Changelog(release)
			svc.logger.Debugf("CHANGELOG OUTPUT: \n%s", strings.Join(lines, ""))

			if _, err := svc.writer.WriteChangelog(outputPath, repo, lines); err != nil {
				return err
			}
			return nil
		},
	}

	changelogCmd.Flags().String("repo", "", fmt.Sprintf("Repository to build the changelog for %v (required)", domain.Repositories))
	changelogCmd.Flags().String("from-tag", "", "Github tag to track changes from (required)")
	changelogCmd.Flags().String("to-tag", "", "Github tag to track changes to (required)")
	changelogCmd.Flags().String("output-path", "./CHANGELOG.rst", "changelog output path")
	changelogCmd.MarkFlagRequired("repo")
	changelogCmd.MarkFlagRequired("from-tag")
	changelogCmd.MarkFlagRequired("to-tag")
	return changelogCmd
}
