// Package dir reads a proposal corpus from a local directory.
//
// Proposal files are the *.txt and *.md files directly under the
// corpus root (extension list configurable); embedded assets live
// under the root's assets/ subdirectory.
package dir

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
)

// assetsDirName is the corpus subdirectory holding embedded assets.
const assetsDirName = "assets"

// Ensure Reader implements the interface.
var _ driven.CorpusReader = (*Reader)(nil)

// Reader is a directory-backed implementation of driven.CorpusReader.
type Reader struct {
	root string
	exts map[string]bool
}

// NewReader creates a corpus reader rooted at dir. extensions lists
// the proposal file extensions to include; empty defaults to
// .txt and .md.
func NewReader(root string, extensions []string) *Reader {
	if len(extensions) == 0 {
		extensions = []string{".txt", ".md"}
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[strings.ToLower(e)] = true
	}
	return &Reader{root: root, exts: exts}
}

// List returns every proposal file under the root in path order.
// The assets directory and hidden files are skipped.
func (r *Reader) List(ctx context.Context) ([]domain.RawDocument, error) {
	var docs []domain.RawDocument

	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		rel, rerr := filepath.Rel(r.root, path)
		if rerr != nil {
			return rerr
		}
		if d.IsDir() {
			if rel != "." && (d.Name() == assetsDirName || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !r.exts[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		content, rerr := os.ReadFile(path)
		if rerr != nil {
			return fmt.Errorf("read %s: %w", rel, rerr)
		}
		docs = append(docs, domain.RawDocument{
			Path:    filepath.ToSlash(rel),
			Content: content,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus %s: %w", r.root, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// HasAsset reports whether an asset path exists under assets/.
// Paths escaping the assets directory are rejected.
func (r *Reader) HasAsset(path string) bool {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return false
	}
	info, err := os.Stat(filepath.Join(r.root, assetsDirName, clean))
	return err == nil && !info.IsDir()
}

// Assets returns every asset file, paths relative to assets/.
func (r *Reader) Assets(ctx context.Context) ([]domain.RawDocument, error) {
	assetsRoot := filepath.Join(r.root, assetsDirName)
	if _, err := os.Stat(assetsRoot); os.IsNotExist(err) {
		return nil, nil
	}

	var assets []domain.RawDocument
	err := filepath.WalkDir(assetsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, rerr := filepath.Rel(assetsRoot, path)
		if rerr != nil {
			return rerr
		}
		content, rerr := os.ReadFile(path)
		if rerr != nil {
			return fmt.Errorf("read asset %s: %w", rel, rerr)
		}
		assets = append(assets, domain.RawDocument{
			Path:    filepath.ToSlash(rel),
			Content: content,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk assets %s: %w", assetsRoot, err)
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].Path < assets[j].Path })
	return assets, nil
}
