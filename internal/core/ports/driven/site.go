package driven

// SiteWriter stages rendered pages and publishes them atomically.
// Nothing is visible at the output path until Publish succeeds, so an
// aborted or failed build never leaves partial output behind.
type SiteWriter interface {
	// Begin creates a fresh staging area. Must be called before any
	// write; a previous unpublished staging area is discarded.
	Begin() error

	// WritePage writes one file into the staging area. The path is
	// output-relative and may contain subdirectories.
	WritePage(path string, data []byte) error

	// CarryOver copies one file from the currently published site into
	// the staging area, for pages skipped by the incremental build.
	// Returns domain.ErrNotFound when no published copy exists.
	CarryOver(path string) error

	// Publish atomically swaps the staging area into the output path.
	Publish() error

	// Discard removes the staging area without publishing.
	Discard() error
}
