// Package resolver finds cross-references between proposal documents.
//
// A reference marker is a body token of the form "Proposal N"
// (case-insensitive, word-bounded). Markers whose target exists in the
// snapshot become Reference edges; the rest are reported as dangling
// warnings. Resolution is a pure function of the snapshot, so the edge
// set is identical regardless of the order documents were supplied in.
package resolver

import (
	"regexp"
	"strconv"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// markerPattern matches reference markers in body text.
// Group 1 is the target identifier.
var markerPattern = regexp.MustCompile(`(?i)\bproposal\s+(\d+)\b`)

// Marker is one reference marker found in a body, with its position.
type Marker struct {
	// TargetID is the identifier the marker points at.
	TargetID int

	// Text is the literal marker as it appears in the body.
	Text string

	// Start and End are byte offsets into the body.
	Start int
	End   int
}

// Scan returns all reference markers in a body, in body order.
// Used by the renderer to substitute links at the marker positions.
func Scan(body string) []Marker {
	matches := markerPattern.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return nil
	}

	markers := make([]Marker, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.Atoi(body[m[2]:m[3]])
		if err != nil {
			continue // digits guaranteed by the pattern
		}
		markers = append(markers, Marker{
			TargetID: id,
			Text:     body[m[0]:m[1]],
			Start:    m[0],
			End:      m[1],
		})
	}
	return markers
}

// Resolve scans every document in the snapshot and produces the full
// edge set plus all dangling markers. Per-source edges keep body
// order; sources are visited in identifier order, so the dangling list
// is deterministic too. A document's reference to itself produces no
// edge and no warning.
func Resolve(snap *domain.Snapshot) *domain.Resolution {
	res := &domain.Resolution{
		Edges: make(map[int][]domain.Reference),
	}

	for _, doc := range snap.All() {
		for _, marker := range Scan(doc.Body) {
			if marker.TargetID == doc.ID {
				continue
			}
			if snap.Has(marker.TargetID) {
				res.Edges[doc.ID] = append(res.Edges[doc.ID], domain.Reference{
					SourceID: doc.ID,
					TargetID: marker.TargetID,
				})
				continue
			}
			res.Dangling = append(res.Dangling, domain.Dangling{
				SourceID: doc.ID,
				TargetID: marker.TargetID,
				Marker:   marker.Text,
			})
		}
	}
	return res
}
