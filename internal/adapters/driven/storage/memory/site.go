package memory

import (
	"sync"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
)

// Ensure Site implements the interface.
var _ driven.SiteWriter = (*Site)(nil)

// Site is an in-memory implementation of driven.SiteWriter. Pages are
// staged in one map and moved to the published map on Publish,
// mirroring the atomic swap of the directory adapter.
type Site struct {
	mu        sync.Mutex
	staged    map[string][]byte
	published map[string][]byte
	begun     bool
}

// NewSite creates an in-memory site writer.
func NewSite() *Site {
	return &Site{published: make(map[string][]byte)}
}

// Begin creates a fresh staging area.
func (s *Site) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = make(map[string][]byte)
	s.begun = true
	return nil
}

// WritePage writes one file into the staging area.
func (s *Site) WritePage(path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.begun {
		return domain.ErrInvalidInput
	}
	s.staged[path] = append([]byte(nil), data...)
	return nil
}

// CarryOver copies a published file into the staging area.
func (s *Site) CarryOver(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.published[path]
	if !ok {
		return domain.ErrNotFound
	}
	s.staged[path] = data
	return nil
}

// Publish swaps the staging area into place.
func (s *Site) Publish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = s.staged
	s.staged = nil
	s.begun = false
	return nil
}

// Discard drops the staging area.
func (s *Site) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = nil
	s.begun = false
	return nil
}

// Published returns a published file's content, for tests.
func (s *Site) Published(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.published[path]
	return data, ok
}

// PublishedCount returns the number of published files, for tests.
func (s *Site) PublishedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published)
}
