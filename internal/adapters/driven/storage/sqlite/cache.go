// Package sqlite implements the build cache on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.BuildCache = (*Cache)(nil)

// Cache is a SQLite-backed implementation of driven.BuildCache.
type Cache struct {
	db   *sql.DB
	path string
}

// NewCache opens (or creates) the build cache in dataDir.
// If dataDir is empty, defaults to ~/.scribe/data/cache.db.
func NewCache(dataDir string) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".scribe", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// WAL mode for better concurrency during parallel renders.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Cache{db: db, path: dbPath}
	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Fingerprint returns the stored fingerprint for a document.
func (c *Cache) Fingerprint(ctx context.Context, docID int) (string, error) {
	var fp string
	err := c.db.QueryRowContext(ctx,
		"SELECT fingerprint FROM fingerprints WHERE doc_id = ?", docID).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query fingerprint: %w", err)
	}
	return fp, nil
}

// SaveFingerprint stores or updates a document's fingerprint.
func (c *Cache) SaveFingerprint(ctx context.Context, docID int, fingerprint string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO fingerprints (doc_id, fingerprint, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			updated_at = excluded.updated_at
	`, docID, fingerprint, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save fingerprint: %w", err)
	}
	return nil
}

// SaveBuild appends a build record to the history.
func (c *Cache) SaveBuild(ctx context.Context, rec domain.BuildRecord) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO builds (build_id, started_at, finished_at, documents, pages, warnings)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.BuildID, rec.StartedAt.UTC(), rec.FinishedAt.UTC(),
		rec.Documents, rec.Pages, rec.Warnings)
	if err != nil {
		return fmt.Errorf("save build record: %w", err)
	}
	return nil
}

// ListBuilds returns the most recent build records, newest first.
func (c *Cache) ListBuilds(ctx context.Context, limit int) ([]domain.BuildRecord, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT build_id, started_at, finished_at, documents, pages, warnings
		FROM builds ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var records []domain.BuildRecord
	for rows.Next() {
		var rec domain.BuildRecord
		if err := rows.Scan(&rec.BuildID, &rec.StartedAt, &rec.FinishedAt,
			&rec.Documents, &rec.Pages, &rec.Warnings); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return records, nil
}

// migrate runs all pending migrations.
func (c *Cache) migrate(fsys embed.FS) error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := c.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}
