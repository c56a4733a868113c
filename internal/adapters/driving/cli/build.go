package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
)

var (
	buildIn    string
	buildOut   string
	buildForce bool
	buildJSON  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site from the proposal corpus",
	Long: `Runs the full pipeline: parse headers, resolve cross-references,
derive the index, render pages, and publish atomically.

A malformed header in any document aborts the build before anything is
written. Dangling references and render problems are reported as
warnings and never block publishing.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildIn, "in", "", "corpus directory (default from config, else \".\")")
	buildCmd.Flags().StringVar(&buildOut, "out", "", "output directory (default from config, else \"public\")")
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "re-render every page, ignoring the build cache")
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "print the build report as JSON")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	builder, cleanup, err := newBuilder(resolveInDir(buildIn), resolveOutDir(buildOut))
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := builder.Build(context.Background(), driving.BuildOptions{Force: buildForce})
	if err != nil {
		var failure *domain.BuildFailure
		if errors.As(err, &failure) {
			printBuildFailure(cmd, failure)
		}
		return err
	}

	if buildJSON {
		return printJSON(cmd, report)
	}
	printBuildReport(cmd, report)
	return nil
}
