package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

var checkIn string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the corpus without writing output",
	Long: `Parses every document and resolves cross-references, reporting
malformed headers and dangling references. Nothing is rendered or
published.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkIn, "in", "", "corpus directory (default from config, else \".\")")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	builder, cleanup, err := newBuilder(resolveInDir(checkIn), resolveOutDir(""))
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := builder.Check(context.Background())
	if err != nil {
		var failure *domain.BuildFailure
		if errors.As(err, &failure) {
			printBuildFailure(cmd, failure)
		}
		return err
	}

	st := newOutStyles(stdoutIsTerminal())
	cmd.Printf("Parsed %d documents.\n", result.Documents)
	if len(result.Dangling) == 0 {
		cmd.Println(st.ok.Render("No dangling references."))
		return nil
	}
	printDangling(cmd, st, result.Dangling)
	return nil
}
