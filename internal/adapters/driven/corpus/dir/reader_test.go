package dir

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReader_ListSortedAndFiltered(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "0002.txt"), "two")
	writeFile(t, filepath.Join(root, "0001.md"), "one")
	writeFile(t, filepath.Join(root, "notes.rst"), "skipped extension")
	writeFile(t, filepath.Join(root, ".hidden.txt"), "skipped hidden")
	writeFile(t, filepath.Join(root, "assets", "pic.txt"), "skipped asset")
	writeFile(t, filepath.Join(root, ".git", "x.txt"), "skipped hidden dir")

	reader := NewReader(root, nil)
	docs, err := reader.List(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "0001.md", docs[0].Path)
	assert.Equal(t, "0002.txt", docs[1].Path)
	assert.Equal(t, []byte("one"), docs[0].Content)
}

func TestReader_ListSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "accepted", "0001.txt"), "nested")

	reader := NewReader(root, nil)
	docs, err := reader.List(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 1)
	// Paths are corpus-relative with forward slashes.
	assert.Equal(t, "accepted/0001.txt", docs[0].Path)
}

func TestReader_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.rst"), "rst")
	writeFile(t, filepath.Join(root, "b.txt"), "txt")

	// Extensions normalise to a leading dot.
	reader := NewReader(root, []string{"rst"})
	docs, err := reader.List(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a.rst", docs[0].Path)
}

func TestReader_HasAsset(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "assets", "diagram.png"), "png")

	reader := NewReader(root, nil)

	assert.True(t, reader.HasAsset("diagram.png"))
	assert.False(t, reader.HasAsset("missing.png"))
	// Escapes are rejected, not resolved.
	assert.False(t, reader.HasAsset("../0001.txt"))
	assert.False(t, reader.HasAsset("/etc/passwd"))
}

func TestReader_Assets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "assets", "b.png"), "b")
	writeFile(t, filepath.Join(root, "assets", "a.png"), "a")
	writeFile(t, filepath.Join(root, "assets", "sub", "c.png"), "c")

	reader := NewReader(root, nil)
	assets, err := reader.Assets(context.Background())

	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, "a.png", assets[0].Path)
	assert.Equal(t, "b.png", assets[1].Path)
	assert.Equal(t, "sub/c.png", assets[2].Path)
}

func TestReader_AssetsMissingDirectory(t *testing.T) {
	reader := NewReader(t.TempDir(), nil)

	assets, err := reader.Assets(context.Background())

	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestReader_MissingRoot(t *testing.T) {
	reader := NewReader(filepath.Join(t.TempDir(), "nope"), nil)

	_, err := reader.List(context.Background())

	assert.Error(t, err)
}
