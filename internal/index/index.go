// Package index derives the aggregated document listing for a corpus
// snapshot: the full identifier-ordered entry list, the by-status and
// by-kind groupings, and their summary counts.
package index

import (
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// Build derives the Index for a snapshot. Deterministic: the same
// document set always yields the same ordering and counts, regardless
// of the order documents were supplied in (the snapshot already
// normalises to identifier order).
func Build(snap *domain.Snapshot) *domain.Index {
	ix := &domain.Index{}

	byStatus := make(map[domain.Status][]domain.IndexEntry)
	byKind := make(map[domain.Kind][]domain.IndexEntry)

	for _, doc := range snap.All() {
		entry := domain.IndexEntry{
			ID:      doc.ID,
			Title:   doc.Title,
			Status:  doc.Status,
			Kind:    doc.Kind,
			Authors: doc.Authors,
		}
		ix.Entries = append(ix.Entries, entry)
		byStatus[doc.Status] = append(byStatus[doc.Status], entry)
		byKind[doc.Kind] = append(byKind[doc.Kind], entry)
	}

	// Groupings follow the enumeration display order; empty groups are
	// omitted. Sub-order within a group stays identifier ascending.
	for _, s := range domain.Statuses {
		if entries := byStatus[s]; len(entries) > 0 {
			ix.ByStatus = append(ix.ByStatus, domain.StatusGroup{Status: s, Entries: entries})
		}
	}
	for _, k := range domain.Kinds {
		if entries := byKind[k]; len(entries) > 0 {
			ix.ByKind = append(ix.ByKind, domain.KindGroup{Kind: k, Entries: entries})
		}
	}

	return ix
}
