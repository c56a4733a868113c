// Package services implements the driving ports on top of the pure
// pipeline packages and the driven infrastructure ports.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scribe-cli/internal/index"
	"github.com/custodia-labs/scribe-cli/internal/logger"
	"github.com/custodia-labs/scribe-cli/internal/parser"
	"github.com/custodia-labs/scribe-cli/internal/renderer"
	"github.com/custodia-labs/scribe-cli/internal/resolver"
)

// renderWorkers bounds the parse and render fan-out.
const renderWorkers = 8

// Ensure BuildService implements the interface.
var _ driving.Builder = (*BuildService)(nil)

// BuildService coordinates the document pipeline:
// Parsing -> Resolving -> Indexing -> Rendering -> Done.
//
// Parsing fans out over the input files; the resulting snapshot is
// immutable, so resolving and rendering fan out over it without locks.
// Parse errors abort the whole run before any output exists; resolve
// and render problems are isolated per document and accumulate into
// the final report.
type BuildService struct {
	corpus driven.CorpusReader
	site   driven.SiteWriter
	cache  driven.BuildCache // optional; nil disables incremental builds
	rend   *renderer.Renderer

	mu       sync.Mutex
	building bool
}

// NewBuildService creates a build service. cache may be nil.
func NewBuildService(
	corpus driven.CorpusReader,
	site driven.SiteWriter,
	cache driven.BuildCache,
	rend *renderer.Renderer,
) *BuildService {
	return &BuildService{
		corpus: corpus,
		site:   site,
		cache:  cache,
		rend:   rend,
	}
}

// Build runs the full pipeline and publishes the site atomically.
func (s *BuildService) Build(ctx context.Context, opts driving.BuildOptions) (*domain.BuildReport, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	report := &domain.BuildReport{
		BuildID:   uuid.New().String(),
		StartedAt: time.Now(),
	}
	logger.Section("Build " + report.BuildID)

	// 1. PARSING (fatal on error: later stages assume a complete set)
	stop := logger.Stage("PARSING")
	snap, err := s.parseAll(ctx)
	if err != nil {
		return nil, err
	}
	stop()
	report.Documents = snap.Len()
	logger.Info("Parsed %d documents", snap.Len())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. RESOLVING (dangling references are warnings, never fatal)
	stop = logger.Stage("RESOLVING")
	res := resolver.Resolve(snap)
	stop()
	report.Dangling = res.Dangling
	logger.Info("Resolved references: %s", danglingSummary(res.Dangling))

	// 3. INDEXING
	stop = logger.Stage("INDEXING")
	ix := index.Build(snap)
	stop()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4. RENDERING into the staging area
	stop = logger.Stage("RENDERING")
	if err := s.site.Begin(); err != nil {
		return nil, fmt.Errorf("begin staging: %w", err)
	}
	if err := s.renderAll(ctx, snap, res, ix, opts, report); err != nil {
		if derr := s.site.Discard(); derr != nil {
			logger.Warn("Discard staging: %v", derr)
		}
		return nil, err
	}
	stop()

	// 5. PUBLISH (atomic swap; partial output is never visible)
	if err := s.site.Publish(); err != nil {
		if derr := s.site.Discard(); derr != nil {
			logger.Warn("Discard staging: %v", derr)
		}
		return nil, fmt.Errorf("publish site: %w", err)
	}

	report.FinishedAt = time.Now()
	s.recordBuild(ctx, report)
	logger.Info("Build complete: %d pages, %d warnings", report.PagesWritten, report.WarningCount())
	return report, nil
}

// Check parses and resolves without writing output.
func (s *BuildService) Check(ctx context.Context) (*driving.CheckResult, error) {
	snap, err := s.parseAll(ctx)
	if err != nil {
		return nil, err
	}
	res := resolver.Resolve(snap)
	return &driving.CheckResult{
		Documents: snap.Len(),
		Dangling:  res.Dangling,
	}, nil
}

// Index parses the corpus and derives the index without writing output.
func (s *BuildService) Index(ctx context.Context) (*domain.Index, error) {
	snap, err := s.parseAll(ctx)
	if err != nil {
		return nil, err
	}
	return index.Build(snap), nil
}

// History returns recent build records from the cache.
func (s *BuildService) History(ctx context.Context, limit int) ([]domain.BuildRecord, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheUnavailable
	}
	return s.cache.ListBuilds(ctx, limit)
}

// parseAll reads and parses every corpus file in parallel and builds
// the immutable snapshot. Any parse error is fatal; all files are
// still parsed first so the failure names every offending document.
func (s *BuildService) parseAll(ctx context.Context) (*domain.Snapshot, error) {
	raws, err := s.corpus.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpus: %w", err)
	}

	type result struct {
		doc  *domain.Document
		fail *domain.ParseFailure
	}
	results := make([]result, len(raws))

	var wg sync.WaitGroup
	sem := make(chan struct{}, renderWorkers)
	for i := range raws {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			raw := raws[i]
			logger.Debug("Parsing %s", raw.Path)
			doc, err := parser.Parse(&raw)
			if err != nil {
				results[i] = result{fail: &domain.ParseFailure{
					Source: raw.Path,
					Errs:   unwrapJoined(err),
				}}
				return
			}
			results[i] = result{doc: doc}
		}(i)
	}
	wg.Wait()

	var docs []domain.Document
	var failures []domain.ParseFailure
	seen := make(map[int]string)
	for _, r := range results {
		if r.fail != nil {
			failures = append(failures, *r.fail)
			continue
		}
		if prev, dup := seen[r.doc.ID]; dup {
			failures = append(failures, domain.ParseFailure{
				Source: r.doc.SourcePath,
				Errs: []error{fmt.Errorf("%w: %d already declared by %s",
					domain.ErrDuplicateID, r.doc.ID, prev)},
			})
			continue
		}
		seen[r.doc.ID] = r.doc.SourcePath
		docs = append(docs, *r.doc)
	}

	if len(failures) > 0 {
		sort.Slice(failures, func(i, j int) bool { return failures[i].Source < failures[j].Source })
		return nil, &domain.BuildFailure{Failures: failures}
	}
	return domain.NewSnapshot(docs), nil
}

// renderAll renders every page into the staging area: the document
// pages (fan-out over the snapshot), the index page, the stylesheet
// and the corpus assets.
func (s *BuildService) renderAll(
	ctx context.Context,
	snap *domain.Snapshot,
	res *domain.Resolution,
	ix *domain.Index,
	opts driving.BuildOptions,
	report *domain.BuildReport,
) error {
	contextHash := s.contextHash(ix, res)

	var mu sync.Mutex
	var firstErr error
	var wg sync.WaitGroup
	sem := make(chan struct{}, renderWorkers)

	for _, doc := range snap.All() {
		wg.Add(1)
		sem <- struct{}{}
		go func(doc *domain.Document) {
			defer wg.Done()
			defer func() { <-sem }()

			written, skipped, warnings, err := s.renderOne(ctx, doc, res, ix, opts, contextHash)

			mu.Lock()
			defer mu.Unlock()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			if written {
				report.PagesWritten++
			}
			if skipped {
				report.PagesSkipped++
			}
			report.RenderWarnings = append(report.RenderWarnings, warnings...)
		}(doc)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	sort.Slice(report.RenderWarnings, func(i, j int) bool {
		a, b := report.RenderWarnings[i], report.RenderWarnings[j]
		if a.DocID != b.DocID {
			return a.DocID < b.DocID
		}
		return a.Message < b.Message
	})

	// Index page, stylesheet, assets.
	indexPage, err := s.rend.Index(ix)
	if err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	if err := s.site.WritePage(indexPage.Path, indexPage.HTML); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	report.PagesWritten++

	style, err := renderer.Stylesheet()
	if err != nil {
		return fmt.Errorf("read stylesheet: %w", err)
	}
	if err := s.site.WritePage(renderer.StylePath, style); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}

	assets, err := s.corpus.Assets(ctx)
	if err != nil {
		return fmt.Errorf("list assets: %w", err)
	}
	for _, asset := range assets {
		if err := s.site.WritePage("assets/"+asset.Path, asset.Content); err != nil {
			return fmt.Errorf("write asset %s: %w", asset.Path, err)
		}
	}
	return nil
}

// renderOne renders a single document page, consulting the build cache
// first. A render failure is isolated: the page is replaced by a
// placeholder and reported as a warning, never as a build error.
func (s *BuildService) renderOne(
	ctx context.Context,
	doc *domain.Document,
	res *domain.Resolution,
	ix *domain.Index,
	opts driving.BuildOptions,
	contextHash string,
) (written, skipped bool, warnings []domain.RenderWarning, err error) {
	path := renderer.PagePath(doc.ID)
	fp := fingerprint(doc, contextHash)

	if !opts.Force && s.cache != nil {
		stored, ferr := s.cache.Fingerprint(ctx, doc.ID)
		if ferr == nil && stored == fp {
			if cerr := s.site.CarryOver(path); cerr == nil {
				logger.Debug("Unchanged, carried over: %s", path)
				return false, true, nil, nil
			}
			// No published copy to carry over; fall through and render.
		}
	}

	page, pageWarnings, rerr := s.rend.Document(doc, res.Outgoing(doc.ID), ix, s.corpus.HasAsset)
	warnings = pageWarnings
	if rerr != nil {
		logger.Warn("Render %s failed: %v", doc.SourcePath, rerr)
		warnings = append(warnings, domain.RenderWarning{
			DocID:   doc.ID,
			Message: fmt.Sprintf("page render failed, placeholder emitted: %v", rerr),
		})
		page = s.rend.Placeholder(doc, rerr.Error())
	}

	if werr := s.site.WritePage(page.Path, page.HTML); werr != nil {
		return false, false, warnings, fmt.Errorf("write page %s: %w", page.Path, werr)
	}

	// A page that rendered with warnings is never fingerprinted, so the
	// next build re-renders it and the warnings reappear in the report
	// instead of vanishing behind a carry-over.
	if s.cache != nil && rerr == nil && len(warnings) == 0 {
		if serr := s.cache.SaveFingerprint(ctx, doc.ID, fp); serr != nil {
			logger.Warn("Save fingerprint for %d: %v", doc.ID, serr)
		}
	}
	return true, false, warnings, nil
}

// contextHash digests everything that feeds into every page besides
// the document itself: the index listing and the dangling set. A page
// may only be carried over when neither its own content nor this
// shared context changed.
func (s *BuildService) contextHash(ix *domain.Index, res *domain.Resolution) string {
	h := sha256.New()
	for _, e := range ix.Entries {
		fmt.Fprintf(h, "%d|%s|%s|%s\n", e.ID, e.Title, e.Status, e.Kind)
	}
	for _, d := range res.Dangling {
		fmt.Fprintf(h, "dangling:%d->%d\n", d.SourceID, d.TargetID)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// fingerprint digests one document plus the shared context.
func fingerprint(doc *domain.Document, contextHash string) string {
	h := sha256.New()
	h.Write([]byte(parser.Format(doc)))
	h.Write([]byte{0})
	h.Write([]byte(doc.Body))
	h.Write([]byte{0})
	h.Write([]byte(contextHash))
	return hex.EncodeToString(h.Sum(nil))
}

// recordBuild appends the run to the build history, best effort.
func (s *BuildService) recordBuild(ctx context.Context, report *domain.BuildReport) {
	if s.cache == nil {
		return
	}
	rec := domain.BuildRecord{
		BuildID:    report.BuildID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Documents:  report.Documents,
		Pages:      report.PagesWritten,
		Warnings:   report.WarningCount(),
	}
	if err := s.cache.SaveBuild(ctx, rec); err != nil {
		logger.Warn("Save build record: %v", err)
	}
}

// acquire marks a build as running.
func (s *BuildService) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.building {
		return domain.ErrBuildInProgress
	}
	s.building = true
	return nil
}

// release clears the running flag.
func (s *BuildService) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.building = false
}

// unwrapJoined flattens an errors.Join result into its parts.
func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// danglingSummary formats the dangling list for logs and reports.
func danglingSummary(dangling []domain.Dangling) string {
	if len(dangling) == 0 {
		return "no dangling references"
	}
	return fmt.Sprintf("%d dangling references", len(dangling))
}
