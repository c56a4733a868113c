package domain

import (
	"sort"
	"time"
)

// Document is one parsed proposal: the typed header fields plus the
// raw body text. Documents are immutable once parsed for the duration
// of a build; every later stage works on a shared read-only snapshot.
type Document struct {
	// ID is the proposal number. Unique across the corpus.
	ID int

	// Title is the human-readable title from the header.
	Title string

	// Authors is the ordered author list from the header.
	Authors []string

	// Status is the declared lifecycle status.
	Status Status

	// Kind is the proposal category (standards track, informational,
	// process).
	Kind Kind

	// Created is the creation date from the header.
	Created time.Time

	// Requires lists proposal numbers this document depends on.
	Requires []int

	// Replaces lists proposal numbers this document supersedes.
	Replaces []int

	// SupersededBy lists proposal numbers that supersede this one.
	SupersededBy []int

	// SourcePath is the corpus-relative path of the input file.
	SourcePath string

	// Body is the raw body text following the header block.
	Body string
}

// Snapshot is the immutable set of all parsed documents for one build.
// It is constructed once after the parsing stage and never mutated, so
// the resolver, indexer and renderer can fan out over it without locks.
type Snapshot struct {
	byID  map[int]*Document
	order []int
}

// NewSnapshot builds a snapshot from parsed documents.
// Iteration order is identifier ascending regardless of input order.
func NewSnapshot(docs []Document) *Snapshot {
	s := &Snapshot{byID: make(map[int]*Document, len(docs))}
	for i := range docs {
		d := docs[i]
		if _, ok := s.byID[d.ID]; ok {
			continue // parser rejects duplicate identifiers upstream
		}
		s.byID[d.ID] = &d
		s.order = append(s.order, d.ID)
	}
	sort.Ints(s.order)
	return s
}

// Get returns the document with the given identifier.
func (s *Snapshot) Get(id int) (*Document, bool) {
	d, ok := s.byID[id]
	return d, ok
}

// Has reports whether a document with the given identifier exists.
func (s *Snapshot) Has(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of documents in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// IDs returns all identifiers in ascending order.
// The returned slice must not be modified.
func (s *Snapshot) IDs() []int {
	return s.order
}

// All returns the documents in identifier order.
func (s *Snapshot) All() []*Document {
	docs := make([]*Document, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, s.byID[id])
	}
	return docs
}
