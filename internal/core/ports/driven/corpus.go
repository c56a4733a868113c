package driven

import (
	"context"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// CorpusReader reads the input corpus: proposal files plus the assets
// they embed. Backed by a local directory.
type CorpusReader interface {
	// List returns every proposal file in the corpus, in path order.
	List(ctx context.Context) ([]domain.RawDocument, error)

	// HasAsset reports whether an embedded asset path exists under the
	// corpus assets directory.
	HasAsset(path string) bool

	// Assets returns every asset file for copying into the output,
	// paths relative to the assets directory.
	Assets(ctx context.Context) ([]domain.RawDocument, error)
}
