package staging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	return NewWriter(filepath.Join(t.TempDir(), "public"))
}

func TestWriter_PublishMakesPagesVisible(t *testing.T) {
	w := newTestWriter(t)

	require.NoError(t, w.Begin())
	require.NoError(t, w.WritePage("index.html", []byte("<html>")))

	// Nothing at the output path before publish.
	_, err := os.Stat(w.OutDir())
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, w.Publish())

	data, err := os.ReadFile(filepath.Join(w.OutDir(), "index.html"))
	require.NoError(t, err)
	assert.Equal(t, []byte("<html>"), data)

	// Staging area is gone after the swap.
	_, err = os.Stat(w.OutDir() + ".staging")
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_PublishReplacesPreviousSite(t *testing.T) {
	w := newTestWriter(t)

	require.NoError(t, w.Begin())
	require.NoError(t, w.WritePage("old.html", []byte("old")))
	require.NoError(t, w.Publish())

	require.NoError(t, w.Begin())
	require.NoError(t, w.WritePage("new.html", []byte("new")))
	require.NoError(t, w.Publish())

	_, err := os.Stat(filepath.Join(w.OutDir(), "old.html"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(w.OutDir(), "new.html"))
	assert.NoError(t, err)
	// The moved-aside previous site was removed.
	_, err = os.Stat(w.OutDir() + ".old")
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_DiscardLeavesPublishedSiteAlone(t *testing.T) {
	w := newTestWriter(t)

	require.NoError(t, w.Begin())
	require.NoError(t, w.WritePage("index.html", []byte("v1")))
	require.NoError(t, w.Publish())

	require.NoError(t, w.Begin())
	require.NoError(t, w.WritePage("index.html", []byte("v2")))
	require.NoError(t, w.Discard())

	data, err := os.ReadFile(filepath.Join(w.OutDir(), "index.html"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)
}

func TestWriter_CarryOver(t *testing.T) {
	w := newTestWriter(t)

	require.NoError(t, w.Begin())
	require.NoError(t, w.WritePage("a.html", []byte("first")))
	require.NoError(t, w.Publish())

	require.NoError(t, w.Begin())
	require.NoError(t, w.CarryOver("a.html"))
	require.NoError(t, w.Publish())

	data, err := os.ReadFile(filepath.Join(w.OutDir(), "a.html"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)
}

func TestWriter_CarryOverMissing(t *testing.T) {
	w := newTestWriter(t)
	require.NoError(t, w.Begin())

	err := w.CarryOver("never-published.html")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWriter_WritePageNested(t *testing.T) {
	w := newTestWriter(t)
	require.NoError(t, w.Begin())

	require.NoError(t, w.WritePage("assets/diagram.png", []byte{0x89}))
	require.NoError(t, w.Publish())

	_, err := os.Stat(filepath.Join(w.OutDir(), "assets", "diagram.png"))
	assert.NoError(t, err)
}

func TestWriter_RejectsEscapingPaths(t *testing.T) {
	w := newTestWriter(t)
	require.NoError(t, w.Begin())

	for _, path := range []string{"../outside.html", "/abs.html", "."} {
		err := w.WritePage(path, []byte("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "path %q", path)
	}
}

func TestWriter_BeginClearsLeftoverStaging(t *testing.T) {
	w := newTestWriter(t)

	require.NoError(t, w.Begin())
	require.NoError(t, w.WritePage("stale.html", []byte("x")))

	// A second Begin drops anything from an aborted run.
	require.NoError(t, w.Begin())
	require.NoError(t, w.Publish())

	_, err := os.Stat(filepath.Join(w.OutDir(), "stale.html"))
	assert.True(t, os.IsNotExist(err))
}
