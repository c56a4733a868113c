package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

var (
	indexIn       string
	indexJSON     bool
	indexByStatus bool
	indexByType   bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Print the proposal index",
	Long: `Derives the index from the corpus and prints it to stdout,
identifier ascending. Grouped views match the published index page.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexIn, "in", "", "corpus directory (default from config, else \".\")")
	indexCmd.Flags().BoolVar(&indexJSON, "json", false, "output the index as JSON")
	indexCmd.Flags().BoolVar(&indexByStatus, "by-status", false, "group entries by status")
	indexCmd.Flags().BoolVar(&indexByType, "by-type", false, "group entries by proposal type")
	indexCmd.MarkFlagsMutuallyExclusive("by-status", "by-type")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	builder, cleanup, err := newBuilder(resolveInDir(indexIn), resolveOutDir(""))
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

	if indexJSON {
		return printJSON(cmd, ix)
	}

	st := newOutStyles(stdoutIsTerminal())
	switch {
	case indexByStatus:
		for _, g := range ix.ByStatus {
			cmd.Println(st.title.Render(string(g.Status)) + st.muted.Render(" ("+strconv.Itoa(len(g.Entries))+")"))
			printEntries(cmd, g.Entries)
			cmd.Println()
		}
	case indexByType:
		for _, g := range ix.ByKind {
			cmd.Println(st.title.Render(string(g.Kind)) + st.muted.Render(" ("+strconv.Itoa(len(g.Entries))+")"))
			printEntries(cmd, g.Entries)
			cmd.Println()
		}
	default:
		printEntries(cmd, ix.Entries)
	}
	cmd.Printf("Total: %d proposals\n", ix.Len())
	return nil
}

func printEntries(cmd *cobra.Command, entries []domain.IndexEntry) {
	for _, e := range entries {
		cmd.Printf("  %4d  %-42s  %-11s  %s\n", e.ID, e.Title, e.Status, e.Kind)
	}
}
