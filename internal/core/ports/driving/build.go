package driving

import (
	"context"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// BuildOptions controls one build run.
type BuildOptions struct {
	// Force disables the incremental-build cache and re-renders every
	// page.
	Force bool
}

// CheckResult is the outcome of a parse-and-resolve dry run.
type CheckResult struct {
	// Documents is the number of documents parsed.
	Documents int

	// Dangling lists every unresolvable cross-reference.
	Dangling []domain.Dangling
}

// Builder runs the document pipeline: Parsing, Resolving, Indexing,
// Rendering. The stages are strictly sequential; parse errors are
// fatal for the whole run while resolve/render problems accumulate
// into the report.
type Builder interface {
	// Build runs the full pipeline and publishes the site atomically.
	// A fatal parse failure returns a *domain.BuildFailure naming
	// every offending document and field; nothing is published.
	Build(ctx context.Context, opts BuildOptions) (*domain.BuildReport, error)

	// Check parses and resolves without writing any output.
	Check(ctx context.Context) (*CheckResult, error)

	// Index parses the corpus and returns the derived index without
	// writing any output.
	Index(ctx context.Context) (*domain.Index, error)

	// History returns recent build records, newest first.
	History(ctx context.Context, limit int) ([]domain.BuildRecord, error)
}
