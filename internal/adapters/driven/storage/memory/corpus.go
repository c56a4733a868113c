// Package memory provides in-memory implementations of the driven
// storage ports, used by tests and as graceful fallbacks.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
)

// Ensure Corpus implements the interface.
var _ driven.CorpusReader = (*Corpus)(nil)

// Corpus is an in-memory implementation of driven.CorpusReader.
type Corpus struct {
	mu     sync.RWMutex
	files  map[string][]byte
	assets map[string][]byte
}

// NewCorpus creates an empty in-memory corpus.
func NewCorpus() *Corpus {
	return &Corpus{
		files:  make(map[string][]byte),
		assets: make(map[string][]byte),
	}
}

// AddFile adds or replaces a proposal file.
func (c *Corpus) AddFile(path string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = content
}

// AddAsset adds or replaces an asset file.
func (c *Corpus) AddAsset(path string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assets[path] = content
}

// List returns every proposal file in path order.
func (c *Corpus) List(_ context.Context) ([]domain.RawDocument, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	docs := make([]domain.RawDocument, 0, len(paths))
	for _, p := range paths {
		docs = append(docs, domain.RawDocument{Path: p, Content: c.files[p]})
	}
	return docs, nil
}

// HasAsset reports whether an asset path exists.
func (c *Corpus) HasAsset(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.assets[path]
	return ok
}

// Assets returns every asset file in path order.
func (c *Corpus) Assets(_ context.Context) ([]domain.RawDocument, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := make([]string, 0, len(c.assets))
	for p := range c.assets {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	assets := make([]domain.RawDocument, 0, len(paths))
	for _, p := range paths {
		assets = append(assets, domain.RawDocument{Path: p, Content: c.assets[p]})
	}
	return assets, nil
}
