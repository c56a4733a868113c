package driven

import (
	"context"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// BuildCache persists per-document fingerprints between builds and the
// build history. Backed by SQLite; optional, builds run non-
// incrementally without it.
type BuildCache interface {
	// Fingerprint returns the stored fingerprint for a document.
	// Returns domain.ErrNotFound when the document has never been
	// rendered.
	Fingerprint(ctx context.Context, docID int) (string, error)

	// SaveFingerprint stores or updates a document's fingerprint.
	SaveFingerprint(ctx context.Context, docID int, fingerprint string) error

	// SaveBuild appends a build record to the history.
	SaveBuild(ctx context.Context, rec domain.BuildRecord) error

	// ListBuilds returns the most recent build records, newest first.
	ListBuilds(ctx context.Context, limit int) ([]domain.BuildRecord, error)

	// Close releases the underlying storage.
	Close() error
}
