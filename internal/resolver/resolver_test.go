package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// TestScan_FindsMarkers tests marker extraction with positions
func TestScan_FindsMarkers(t *testing.T) {
	body := "See Proposal 7 and also proposal 12 for background."

	markers := Scan(body)

	require.Len(t, markers, 2)
	assert.Equal(t, 7, markers[0].TargetID)
	assert.Equal(t, "Proposal 7", markers[0].Text)
	assert.Equal(t, 12, markers[1].TargetID)
	assert.Equal(t, "proposal 12", markers[1].Text)
	assert.Equal(t, body[markers[0].Start:markers[0].End], markers[0].Text)
}

// TestScan_WordBoundaries tests non-marker tokens are not matched
func TestScan_WordBoundaries(t *testing.T) {
	assert.Nil(t, Scan("counterproposal 7 is not a marker"))
	assert.Nil(t, Scan("proposal seven"))
	assert.Nil(t, Scan(""))
}

// TestResolve_EdgesAndDangling tests the 3-document corpus from the
// acceptance criteria: A references B (existing), C references 999
// (non-existent)
func TestResolve_EdgesAndDangling(t *testing.T) {
	snap := domain.NewSnapshot([]domain.Document{
		{ID: 1, Body: "Builds on Proposal 2."},
		{ID: 2, Body: "No references here."},
		{ID: 3, Body: "Depends on Proposal 999."},
	})

	res := Resolve(snap)

	require.Len(t, res.Outgoing(1), 1)
	assert.Equal(t, domain.Reference{SourceID: 1, TargetID: 2}, res.Outgoing(1)[0])
	assert.Empty(t, res.Outgoing(2))
	assert.Empty(t, res.Outgoing(3))

	require.Len(t, res.Dangling, 1)
	assert.Equal(t, 3, res.Dangling[0].SourceID)
	assert.Equal(t, 999, res.Dangling[0].TargetID)
	assert.Equal(t, "Proposal 999", res.Dangling[0].Marker)
}

// TestResolve_OrderIndependent tests the edge set does not depend on
// document supply order
func TestResolve_OrderIndependent(t *testing.T) {
	docs := []domain.Document{
		{ID: 5, Body: "Proposal 9 and Proposal 100."},
		{ID: 9, Body: "Proposal 5."},
		{ID: 30, Body: "nothing"},
	}
	reversed := []domain.Document{docs[2], docs[1], docs[0]}

	a := Resolve(domain.NewSnapshot(docs))
	b := Resolve(domain.NewSnapshot(reversed))

	assert.Equal(t, a.Edges, b.Edges)
	assert.Equal(t, a.Dangling, b.Dangling)
}

// TestResolve_SelfReferenceIgnored tests self-references make no edge
func TestResolve_SelfReferenceIgnored(t *testing.T) {
	snap := domain.NewSnapshot([]domain.Document{
		{ID: 4, Body: "This document, Proposal 4, supersedes Proposal 2."},
		{ID: 2, Body: ""},
	})

	res := Resolve(snap)

	require.Len(t, res.Outgoing(4), 1)
	assert.Equal(t, 2, res.Outgoing(4)[0].TargetID)
	assert.Empty(t, res.Dangling)
}

// TestResolve_RepeatedMarkers tests each marker yields its own edge
func TestResolve_RepeatedMarkers(t *testing.T) {
	snap := domain.NewSnapshot([]domain.Document{
		{ID: 1, Body: "Proposal 2 ... later Proposal 2 again."},
		{ID: 2, Body: ""},
	})

	res := Resolve(snap)

	assert.Len(t, res.Outgoing(1), 2)
}
