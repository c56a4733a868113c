package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// outStyles holds the lipgloss styles for command output. When stdout
// is not a terminal every style is a no-op so piped output stays plain.
type outStyles struct {
	title lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
}

func newOutStyles(tty bool) outStyles {
	if !tty {
		plain := lipgloss.NewStyle()
		return outStyles{title: plain, ok: plain, warn: plain, muted: plain}
	}
	return outStyles{
		title: lipgloss.NewStyle().Bold(true),
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// shortID abbreviates a build UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printBuildReport prints a human-readable build summary.
func printBuildReport(cmd *cobra.Command, report *domain.BuildReport) {
	st := newOutStyles(stdoutIsTerminal())
	elapsed := report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)

	cmd.Println(st.title.Render(fmt.Sprintf("Build %s", shortID(report.BuildID))))
	cmd.Printf("  Documents: %d\n", report.Documents)
	cmd.Printf("  Pages:     %d written, %d skipped\n", report.PagesWritten, report.PagesSkipped)
	cmd.Printf("  Elapsed:   %s\n", elapsed)

	printDangling(cmd, st, report.Dangling)

	if len(report.RenderWarnings) > 0 {
		cmd.Println(st.warn.Render(fmt.Sprintf("  Render warnings: %d", len(report.RenderWarnings))))
		for _, w := range report.RenderWarnings {
			cmd.Printf("    proposal %d: %s\n", w.DocID, w.Message)
		}
	}

	if report.Clean() {
		cmd.Println(st.ok.Render("Build clean."))
	} else {
		cmd.Println(st.warn.Render(fmt.Sprintf("Build finished with %d warnings.", report.WarningCount())))
	}
}

// printDangling lists unresolvable cross-references, one per marker.
func printDangling(cmd *cobra.Command, st outStyles, dangling []domain.Dangling) {
	if len(dangling) == 0 {
		return
	}
	cmd.Println(st.warn.Render(fmt.Sprintf("  Dangling references: %d", len(dangling))))
	for _, d := range dangling {
		cmd.Printf("    proposal %d -> proposal %d (%q)\n", d.SourceID, d.TargetID, d.Marker)
	}
}

// printBuildFailure lists every malformed document with its field
// errors. Goes to stderr since the build produced nothing.
func printBuildFailure(cmd *cobra.Command, failure *domain.BuildFailure) {
	cmd.PrintErrln(failure.Error())
	for _, f := range failure.Failures {
		for _, e := range f.Errs {
			cmd.PrintErrf("  %v\n", e)
		}
	}
}
