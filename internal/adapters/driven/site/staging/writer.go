// Package staging writes the rendered site through a staging
// directory and swaps it into place on publish, so an aborted build
// never leaves partial output at the published path.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.SiteWriter = (*Writer)(nil)

// Writer is a directory-backed implementation of driven.SiteWriter.
type Writer struct {
	outDir     string
	stagingDir string
	oldDir     string
}

// NewWriter creates a site writer publishing to outDir. The staging
// area lives next to it so the final swap is a same-filesystem rename.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:     outDir,
		stagingDir: outDir + ".staging",
		oldDir:     outDir + ".old",
	}
}

// Begin creates a fresh staging area, discarding any leftover one.
func (w *Writer) Begin() error {
	if err := os.RemoveAll(w.stagingDir); err != nil {
		return fmt.Errorf("clear staging dir: %w", err)
	}
	if err := os.MkdirAll(w.stagingDir, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	return nil
}

// WritePage writes one file into the staging area.
func (w *Writer) WritePage(path string, data []byte) error {
	rel, err := w.safeRel(path)
	if err != nil {
		return err
	}
	target := filepath.Join(w.stagingDir, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create page dir: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write page %s: %w", path, err)
	}
	return nil
}

// CarryOver copies a file from the published site into staging.
func (w *Writer) CarryOver(path string) error {
	rel, err := w.safeRel(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(w.outDir, rel))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("read published %s: %w", path, err)
	}
	return w.WritePage(path, data)
}

// Publish atomically swaps the staging area into the output path.
// The previous output is moved aside first and removed once the swap
// succeeded, so a crash mid-publish leaves either the old or the new
// site at the output path, never a mixture.
func (w *Writer) Publish() error {
	if err := os.RemoveAll(w.oldDir); err != nil {
		return fmt.Errorf("clear old dir: %w", err)
	}

	hadPrevious := true
	if err := os.Rename(w.outDir, w.oldDir); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("move previous output aside: %w", err)
		}
		hadPrevious = false
	}

	if err := os.Rename(w.stagingDir, w.outDir); err != nil {
		if hadPrevious {
			if rerr := os.Rename(w.oldDir, w.outDir); rerr != nil {
				return fmt.Errorf("swap staging into place: %w (restore failed: %v)", err, rerr)
			}
		}
		return fmt.Errorf("swap staging into place: %w", err)
	}

	if hadPrevious {
		if err := os.RemoveAll(w.oldDir); err != nil {
			return fmt.Errorf("remove old output: %w", err)
		}
	}
	return nil
}

// Discard removes the staging area without publishing.
func (w *Writer) Discard() error {
	if err := os.RemoveAll(w.stagingDir); err != nil {
		return fmt.Errorf("discard staging dir: %w", err)
	}
	return nil
}

// OutDir returns the published output path, for display.
func (w *Writer) OutDir() string {
	return w.outDir
}

// safeRel validates an output-relative path.
func (w *Writer) safeRel(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: output path %q", domain.ErrInvalidInput, path)
	}
	return clean, nil
}
