// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"log/slog"
	"os"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "release-notes",
		Short: "A CLI tool to build changelogs and release notes from GitHub history.",
		Long: `release-notes collects the pull requests referenced by commits between two tags,
looks up the issues linked to them and renders a changelog (RST) or release
notes (Markdown) document. New content is spliced into existing files after
their header.`,
	}

	// Persistent flags are available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("github-token", "", "Github OAuth token (defaults to $GITHUB_TOKEN)")

	rootCmd.AddCommand(
		newChangelogCmd(),
		newReleaseNotesCmd(),
	)
	return rootCmd
}

// Execute builds the command tree and runs it.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newLogger logs text to standard error, at debug level when verbose is set.
func newLogger(cmd *cobra.Command) *clog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
