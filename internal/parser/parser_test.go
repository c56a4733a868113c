package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

const validHeader = `Proposal: 12
Title: Low-Overhead Monitoring API
Author: Ada Byron <ada@example.org>, Charles B.
Status: Draft
Type: Standards Track
Created: 2024-05-01
Requires: 3, 7

# Abstract

Body text here.
`

func rawDoc(content string) *domain.RawDocument {
	return &domain.RawDocument{Path: "proposals/0012.txt", Content: []byte(content)}
}

// TestParse_ValidHeader tests all typed fields come through
func TestParse_ValidHeader(t *testing.T) {
	doc, err := Parse(rawDoc(validHeader))

	require.NoError(t, err)
	assert.Equal(t, 12, doc.ID)
	assert.Equal(t, "Low-Overhead Monitoring API", doc.Title)
	assert.Equal(t, []string{"Ada Byron <ada@example.org>", "Charles B."}, doc.Authors)
	assert.Equal(t, domain.StatusDraft, doc.Status)
	assert.Equal(t, domain.KindStandards, doc.Kind)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), doc.Created)
	assert.Equal(t, []int{3, 7}, doc.Requires)
	assert.Equal(t, "proposals/0012.txt", doc.SourcePath)
	assert.Contains(t, doc.Body, "# Abstract")
}

// TestParse_FieldReordering tests that header field order is irrelevant
func TestParse_FieldReordering(t *testing.T) {
	reordered := `Created: 2024-05-01
Type: Standards Track
Status: Draft
Title: Low-Overhead Monitoring API
Proposal: 12

body`

	doc, err := Parse(rawDoc(reordered))

	require.NoError(t, err)
	assert.Equal(t, 12, doc.ID)
	assert.Equal(t, domain.StatusDraft, doc.Status)
}

// TestParse_MissingRequiredField tests failure names the field
func TestParse_MissingRequiredField(t *testing.T) {
	noStatus := `Proposal: 12
Title: Something
Type: Process
Created: 2024-05-01

body`

	_, err := Parse(rawDoc(noStatus))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedHeader)
	assert.Contains(t, err.Error(), `"status"`)
	assert.Contains(t, err.Error(), "proposals/0012.txt")
}

// TestParse_CollectsAllErrors tests every bad field is reported
func TestParse_CollectsAllErrors(t *testing.T) {
	bad := `Proposal: twelve
Title: Something
Status: Pending
Type: Process
Created: May 2024

body`

	_, err := Parse(rawDoc(bad))

	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `"proposal"`)
	assert.Contains(t, msg, `"status"`)
	assert.Contains(t, msg, `"created"`)
}

// TestParse_DuplicateField tests duplicate keys are rejected
func TestParse_DuplicateField(t *testing.T) {
	dup := `Proposal: 12
Title: First Title
Title: Second Title
Status: Draft
Type: Process
Created: 2024-05-01

body`

	_, err := Parse(rawDoc(dup))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateField)
	assert.Contains(t, err.Error(), `"title"`)
}

// TestParse_ContinuationLines tests indented lines extend the field
func TestParse_ContinuationLines(t *testing.T) {
	folded := `Proposal: 12
Title: Something
Author: Ada Byron <ada@example.org>,
        Charles B. <cb@example.org>
Status: Draft
Type: Process
Created: 2024-05-01

body`

	doc, err := Parse(rawDoc(folded))

	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Ada Byron <ada@example.org>", "Charles B. <cb@example.org>"},
		doc.Authors)
}

// TestParse_UnknownFieldIgnored tests forward compatibility
func TestParse_UnknownFieldIgnored(t *testing.T) {
	extra := `Proposal: 12
Title: Something
Status: Draft
Type: Process
Created: 2024-05-01
Discussions-To: list@example.org

body`

	doc, err := Parse(rawDoc(extra))

	require.NoError(t, err)
	assert.Equal(t, 12, doc.ID)
}

// TestParse_NoHeader tests files without a header block
func TestParse_NoHeader(t *testing.T) {
	_, err := Parse(rawDoc("just prose, no header\n"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedHeader)
}

// TestParse_EmptyBody tests a header-only file parses
func TestParse_EmptyBody(t *testing.T) {
	headerOnly := `Proposal: 1
Title: Minimal
Status: Final
Type: Process
Created: 2020-01-15
`

	doc, err := Parse(rawDoc(headerOnly))

	require.NoError(t, err)
	assert.Empty(t, doc.Body)
}

// TestFormat_RoundTrip tests parse(format(doc)) == doc for the header
func TestFormat_RoundTrip(t *testing.T) {
	original, err := Parse(rawDoc(validHeader))
	require.NoError(t, err)

	serialised := Format(original) + "\n" + original.Body
	reparsed, err := Parse(&domain.RawDocument{
		Path:    original.SourcePath,
		Content: []byte(serialised),
	})

	require.NoError(t, err)
	assert.Equal(t, original, reparsed)
}

// TestFormat_OmitsEmptyOptionalFields tests optional fields drop out
func TestFormat_OmitsEmptyOptionalFields(t *testing.T) {
	doc := &domain.Document{
		ID:      4,
		Title:   "Election Process",
		Status:  domain.StatusActive,
		Kind:    domain.KindProcess,
		Created: time.Date(2019, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	out := Format(doc)

	assert.False(t, strings.Contains(out, "Requires"))
	assert.False(t, strings.Contains(out, "Superseded-By"))
	assert.Contains(t, out, "Proposal: 4\n")
	assert.Contains(t, out, "Type: Process\n")
}
