package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.BuildCache = (*Cache)(nil)

// Cache is an in-memory implementation of driven.BuildCache.
type Cache struct {
	mu           sync.RWMutex
	fingerprints map[int]string
	builds       []domain.BuildRecord
}

// NewCache creates an empty in-memory build cache.
func NewCache() *Cache {
	return &Cache{fingerprints: make(map[int]string)}
}

// Fingerprint returns the stored fingerprint for a document.
func (c *Cache) Fingerprint(_ context.Context, docID int) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fp, ok := c.fingerprints[docID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return fp, nil
}

// SaveFingerprint stores or updates a document's fingerprint.
func (c *Cache) SaveFingerprint(_ context.Context, docID int, fingerprint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fingerprints[docID] = fingerprint
	return nil
}

// SaveBuild appends a build record.
func (c *Cache) SaveBuild(_ context.Context, rec domain.BuildRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builds = append(c.builds, rec)
	return nil
}

// ListBuilds returns the most recent build records, newest first.
func (c *Cache) ListBuilds(_ context.Context, limit int) ([]domain.BuildRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.BuildRecord, 0, limit)
	for i := len(c.builds) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, c.builds[i])
	}
	return out, nil
}

// Close is a no-op for the in-memory cache.
func (c *Cache) Close() error {
	return nil
}
