package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

var browseIn string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the proposal index interactively",
	Long: `Opens a terminal UI listing every proposal in the corpus.

Controls:
  ↑/k, ↓/j - Navigate entries
  f        - Cycle status filter
  /        - Search titles
  Enter    - Show entry details
  Esc      - Back
  q        - Quit`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseIn, "in", "", "corpus directory (default from config, else \".\")")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	builder, cleanup, err := newBuilder(resolveInDir(browseIn), resolveOutDir(""))
	if err != nil {
		return err
	}
	defer cleanup()

	ix, err := builder.Index(context.Background())
	if err != nil {
		var failure *domain.BuildFailure
		if errors.As(err, &failure) {
			printBuildFailure(cmd, failure)
		}
		return err
	}

	app, err := tui.NewApp(ix)
	if err != nil {
		return fmt.Errorf("creating browse UI: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse UI: %w", err)
	}
	return nil
}
