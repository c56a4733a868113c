// Package renderer turns parsed documents and the derived index into
// final HTML pages. Rendering one document never mutates shared state,
// so the build can fan out over the snapshot without locks.
package renderer

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/renderer/templates"
)

// Site carries the site-wide rendering options from configuration.
type Site struct {
	// Title is the site title shown on the index page and page titles.
	Title string

	// ColorScheme is the default color-scheme preference marker
	// emitted on every page ("light", "dark" or "auto").
	ColorScheme string
}

// AssetFunc reports whether an embedded asset path exists in the
// corpus assets directory.
type AssetFunc func(path string) bool

// Page is one rendered output file.
type Page struct {
	// Path is the output-relative file path.
	Path string

	// HTML is the rendered page content.
	HTML []byte
}

// PagePath returns the output file name for a document.
func PagePath(id int) string {
	return fmt.Sprintf("proposal-%04d.html", id)
}

// IndexPath is the output file name of the generated index page.
const IndexPath = "index.html"

// StylePath is the output file name of the site stylesheet.
const StylePath = "style.css"

// Stylesheet returns the embedded static stylesheet, written once per
// build next to the rendered pages.
func Stylesheet() ([]byte, error) {
	return templates.FS.ReadFile(StylePath)
}

// Renderer renders documents against the embedded page templates.
type Renderer struct {
	tmpl *template.Template
	site Site
}

// New creates a renderer with the embedded templates.
func New(site Site) (*Renderer, error) {
	if site.ColorScheme == "" {
		site.ColorScheme = "auto"
	}
	tmpl, err := template.ParseFS(templates.FS, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, site: site}, nil
}

// refLink is a resolved link in the page metadata block. Href is empty
// when the target does not exist in the corpus.
type refLink struct {
	Label string
	Href  string
}

// crumb is one breadcrumb trail element.
type crumb struct {
	Label string
	Href  string
}

// sidebarItem is one entry of the per-page sidebar listing.
type sidebarItem struct {
	ID      int
	Title   string
	Href    string
	Current bool
}

// pageData is the view model for the page template.
type pageData struct {
	SiteTitle   string
	ColorScheme string

	ID          int
	Title       string
	Status      domain.Status
	StatusClass string
	Kind        domain.Kind
	Created     string
	Authors     []string

	Requires     []refLink
	Replaces     []refLink
	SupersededBy []refLink
	References   []refLink

	Breadcrumb []crumb
	TOC        []tocEntry
	Body       template.HTML
	Sidebar    []sidebarItem
}

// Document renders one document page. Non-fatal problems (missing
// embedded assets) come back as warnings next to a complete page with
// placeholders; an error means the page could not be produced at all.
func (r *Renderer) Document(
	doc *domain.Document,
	refs []domain.Reference,
	ix *domain.Index,
	assets AssetFunc,
) (*Page, []domain.RenderWarning, error) {
	known := knownIDs(ix)

	body := newBodyRenderer(doc.ID, known, assets)
	bodyHTML := body.render(doc.Body)

	data := pageData{
		SiteTitle:    r.site.Title,
		ColorScheme:  r.site.ColorScheme,
		ID:           doc.ID,
		Title:        doc.Title,
		Status:       doc.Status,
		StatusClass:  statusClass(doc.Status),
		Kind:         doc.Kind,
		Created:      doc.Created.Format("2006-01-02"),
		Authors:      doc.Authors,
		Requires:     idLinks(doc.Requires, known),
		Replaces:     idLinks(doc.Replaces, known),
		SupersededBy: idLinks(doc.SupersededBy, known),
		References:   referenceLinks(refs),
		Breadcrumb: []crumb{
			{Label: "Home", Href: IndexPath},
			{Label: "Proposals", Href: IndexPath},
			{Label: fmt.Sprintf("Proposal %d", doc.ID)},
		},
		TOC:     body.toc,
		Body:    bodyHTML,
		Sidebar: sidebar(ix, doc.ID),
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, body.warnings, fmt.Errorf("execute page template: %w", err)
	}
	return &Page{Path: PagePath(doc.ID), HTML: buf.Bytes()}, body.warnings, nil
}

// indexEntryData is the view model for one index table row.
type indexEntryData struct {
	ID          int
	Title       string
	Href        string
	Status      domain.Status
	StatusClass string
	Kind        domain.Kind
	Authors     []string
}

// indexData is the view model for the index template.
type indexData struct {
	SiteTitle   string
	ColorScheme string
	Total       int
	ByStatus    []indexGroupData
	ByKind      []indexGroupData
}

// indexGroupData is one grouping section on the index page.
type indexGroupData struct {
	Status  domain.Status
	Kind    domain.Kind
	Entries []indexEntryData
}

// Index renders the generated index page.
func (r *Renderer) Index(ix *domain.Index) (*Page, error) {
	data := indexData{
		SiteTitle:   r.site.Title,
		ColorScheme: r.site.ColorScheme,
		Total:       ix.Len(),
	}
	for _, g := range ix.ByStatus {
		data.ByStatus = append(data.ByStatus, indexGroupData{
			Status:  g.Status,
			Entries: entryRows(g.Entries),
		})
	}
	for _, g := range ix.ByKind {
		data.ByKind = append(data.ByKind, indexGroupData{
			Kind:    g.Kind,
			Entries: entryRows(g.Entries),
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "index", data); err != nil {
		return nil, fmt.Errorf("execute index template: %w", err)
	}
	return &Page{Path: IndexPath, HTML: buf.Bytes()}, nil
}

// Placeholder renders a minimal stand-in page for a document whose
// full render failed. Built without templates so it cannot fail
// itself; one malformed document must never abort the site build.
func (r *Renderer) Placeholder(doc *domain.Document, reason string) *Page {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>")
	b.WriteString(html.EscapeString(fmt.Sprintf("Proposal %d", doc.ID)))
	b.WriteString("</title></head><body><h1>")
	b.WriteString(html.EscapeString(fmt.Sprintf("Proposal %d: %s", doc.ID, doc.Title)))
	b.WriteString("</h1><p class=\"render-error\">This page could not be rendered: ")
	b.WriteString(html.EscapeString(reason))
	b.WriteString("</p><p><a href=\"index.html\">Back to index</a></p></body></html>\n")
	return &Page{Path: PagePath(doc.ID), HTML: []byte(b.String())}
}

// knownIDs collects the identifiers present in the index.
func knownIDs(ix *domain.Index) map[int]bool {
	known := make(map[int]bool, ix.Len())
	for _, e := range ix.Entries {
		known[e.ID] = true
	}
	return known
}

// idLinks builds metadata links for a header identifier list.
func idLinks(ids []int, known map[int]bool) []refLink {
	var links []refLink
	for _, id := range ids {
		link := refLink{Label: fmt.Sprintf("Proposal %d", id)}
		if known[id] {
			link.Href = PagePath(id)
		}
		links = append(links, link)
	}
	return links
}

// referenceLinks builds the footer links from resolved outgoing edges,
// deduplicated by target in first-occurrence order.
func referenceLinks(refs []domain.Reference) []refLink {
	var links []refLink
	seen := make(map[int]bool)
	for _, ref := range refs {
		if seen[ref.TargetID] {
			continue
		}
		seen[ref.TargetID] = true
		links = append(links, refLink{
			Label: fmt.Sprintf("Proposal %d", ref.TargetID),
			Href:  PagePath(ref.TargetID),
		})
	}
	return links
}

// sidebar builds the per-page sidebar from the index.
func sidebar(ix *domain.Index, currentID int) []sidebarItem {
	items := make([]sidebarItem, 0, ix.Len())
	for _, e := range ix.Entries {
		items = append(items, sidebarItem{
			ID:      e.ID,
			Title:   e.Title,
			Href:    PagePath(e.ID),
			Current: e.ID == currentID,
		})
	}
	return items
}

// entryRows converts index entries to table rows.
func entryRows(entries []domain.IndexEntry) []indexEntryData {
	rows := make([]indexEntryData, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, indexEntryData{
			ID:          e.ID,
			Title:       e.Title,
			Href:        PagePath(e.ID),
			Status:      e.Status,
			StatusClass: statusClass(e.Status),
			Kind:        e.Kind,
			Authors:     e.Authors,
		})
	}
	return rows
}

// statusClass maps a status to its CSS class suffix.
func statusClass(s domain.Status) string {
	return strings.ToLower(string(s))
}
