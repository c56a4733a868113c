package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent builds",
	Long:  `Lists recent builds recorded in the build cache, newest first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of builds to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	builder, cleanup, err := newBuilder(resolveInDir(""), resolveOutDir(""))
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := builder.History(context.Background(), historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		cmd.Println("No builds recorded.")
		return nil
	}

	st := newOutStyles(stdoutIsTerminal())
	cmd.Println(st.title.Render("Recent builds"))
	for _, rec := range records {
		elapsed := rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond)
		cmd.Printf("  %s  %s  %3d docs  %3d pages  %2d warnings  (%s)\n",
			rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
			shortID(rec.BuildID), rec.Documents, rec.Pages, rec.Warnings, elapsed)
	}
	return nil
}
