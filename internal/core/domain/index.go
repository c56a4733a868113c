package domain

// IndexEntry is a read-only projection of a Document for listing
// purposes. Entries are derived on every build and never persisted
// independently of their source document.
type IndexEntry struct {
	// ID is the proposal number.
	ID int

	// Title is the document title.
	Title string

	// Status is the declared status.
	Status Status

	// Kind is the proposal category.
	Kind Kind

	// Authors is the ordered author list.
	Authors []string
}

// StatusGroup is one by-status grouping of index entries.
// Entries keep the identifier-ascending sub-order.
type StatusGroup struct {
	Status  Status
	Entries []IndexEntry
}

// KindGroup is one by-kind grouping of index entries.
type KindGroup struct {
	Kind    Kind
	Entries []IndexEntry
}

// Index is the aggregated, sorted listing of all documents with the
// derived groupings and summary counts. Same input set always yields
// the same index.
type Index struct {
	// Entries is the full listing, identifier ascending.
	Entries []IndexEntry

	// ByStatus groups entries per status in Statuses display order.
	// Statuses with no documents are omitted.
	ByStatus []StatusGroup

	// ByKind groups entries per kind in Kinds display order.
	// Kinds with no documents are omitted.
	ByKind []KindGroup
}

// Len returns the number of index entries.
func (ix *Index) Len() int {
	return len(ix.Entries)
}

// CountByStatus returns the number of documents with the given status.
func (ix *Index) CountByStatus(s Status) int {
	for _, g := range ix.ByStatus {
		if g.Status == s {
			return len(g.Entries)
		}
	}
	return 0
}

// CountByKind returns the number of documents of the given kind.
func (ix *Index) CountByKind(k Kind) int {
	for _, g := range ix.ByKind {
		if g.Kind == k {
			return len(g.Entries)
		}
	}
	return 0
}
