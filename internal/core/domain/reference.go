package domain

// Reference is a directed cross-reference edge between two documents,
// created during resolution. The target is guaranteed to exist in the
// snapshot; markers whose target does not exist become Dangling
// entries instead and are never silently dropped.
type Reference struct {
	// SourceID is the referencing document.
	SourceID int

	// TargetID is the referenced document.
	TargetID int
}

// Dangling records a reference marker whose target identifier does not
// exist in the corpus. Collected as a non-fatal build warning.
type Dangling struct {
	// SourceID is the document containing the marker.
	SourceID int

	// TargetID is the identifier the marker points at.
	TargetID int

	// Marker is the literal marker text as it appears in the body.
	Marker string
}

// Resolution is the outcome of the cross-reference stage: per-source
// edges in body order, plus every dangling marker found.
type Resolution struct {
	// Edges maps source document ID to its ordered outgoing references.
	Edges map[int][]Reference

	// Dangling lists unresolvable markers in (source, body-position)
	// order.
	Dangling []Dangling
}

// Outgoing returns the ordered outgoing references for a document.
func (r *Resolution) Outgoing(id int) []Reference {
	if r == nil {
		return nil
	}
	return r.Edges[id]
}
