package domain

import "time"

// RenderWarning records a non-fatal problem while rendering one
// document. The document's page is still produced, with a placeholder
// where the problem occurred.
type RenderWarning struct {
	// DocID is the affected document.
	DocID int

	// Message describes the problem (e.g., a missing embedded asset).
	Message string
}

// BuildReport summarises one full build run. A build that completes
// with only non-fatal warnings still produces complete output; the
// report surfaces the warnings alongside the counts.
type BuildReport struct {
	// BuildID uniquely identifies this run.
	BuildID string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Documents is the number of documents parsed.
	Documents int

	// PagesWritten is the number of pages rendered and published,
	// including the index page.
	PagesWritten int

	// PagesSkipped counts documents skipped by the incremental build
	// cache because their content was unchanged.
	PagesSkipped int

	// Dangling lists every unresolvable cross-reference found.
	Dangling []Dangling

	// RenderWarnings lists per-document render problems.
	RenderWarnings []RenderWarning
}

// Clean reports whether the build finished without any warnings.
func (r *BuildReport) Clean() bool {
	return len(r.Dangling) == 0 && len(r.RenderWarnings) == 0
}

// WarningCount returns the total number of non-fatal warnings.
func (r *BuildReport) WarningCount() int {
	return len(r.Dangling) + len(r.RenderWarnings)
}

// BuildRecord is a persisted summary of a past build, kept in the
// build cache for the history listing.
type BuildRecord struct {
	BuildID    string
	StartedAt  time.Time
	FinishedAt time.Time
	Documents  int
	Pages      int
	Warnings   int
}
