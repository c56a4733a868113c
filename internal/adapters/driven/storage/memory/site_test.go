package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

func TestSite_PublishSwapsStaging(t *testing.T) {
	site := NewSite()
	require.NoError(t, site.Begin())
	require.NoError(t, site.WritePage("index.html", []byte("<html>")))

	// Nothing visible before publish.
	assert.Equal(t, 0, site.PublishedCount())

	require.NoError(t, site.Publish())

	data, ok := site.Published("index.html")
	assert.True(t, ok)
	assert.Equal(t, []byte("<html>"), data)
}

func TestSite_DiscardDropsStaging(t *testing.T) {
	site := NewSite()
	require.NoError(t, site.Begin())
	require.NoError(t, site.WritePage("index.html", []byte("x")))

	require.NoError(t, site.Discard())
	require.NoError(t, site.Begin())
	require.NoError(t, site.Publish())

	assert.Equal(t, 0, site.PublishedCount())
}

func TestSite_WritePageWithoutBegin(t *testing.T) {
	site := NewSite()

	err := site.WritePage("index.html", []byte("x"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSite_CarryOver(t *testing.T) {
	site := NewSite()
	require.NoError(t, site.Begin())
	require.NoError(t, site.WritePage("a.html", []byte("first")))
	require.NoError(t, site.Publish())

	require.NoError(t, site.Begin())
	require.NoError(t, site.CarryOver("a.html"))
	assert.ErrorIs(t, site.CarryOver("missing.html"), domain.ErrNotFound)
	require.NoError(t, site.Publish())

	data, ok := site.Published("a.html")
	assert.True(t, ok)
	assert.Equal(t, []byte("first"), data)
	assert.Equal(t, 1, site.PublishedCount())
}

func TestSite_PublishReplacesPrevious(t *testing.T) {
	site := NewSite()
	require.NoError(t, site.Begin())
	require.NoError(t, site.WritePage("old.html", []byte("old")))
	require.NoError(t, site.Publish())

	require.NoError(t, site.Begin())
	require.NoError(t, site.WritePage("new.html", []byte("new")))
	require.NoError(t, site.Publish())

	_, ok := site.Published("old.html")
	assert.False(t, ok)
	_, ok = site.Published("new.html")
	assert.True(t, ok)
}
