package renderer

import (
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/resolver"
)

// Inline patterns operate on already-escaped text. Images before
// links: the image syntax contains the link syntax.
var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	imagePattern   = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	linkPattern    = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	listPattern    = regexp.MustCompile(`^\s*[-*]\s+(.+)$`)
	slugStrip      = regexp.MustCompile(`[^a-z0-9]+`)
)

// tocEntry is one table-of-contents line, derived from the document's
// own section headings.
type tocEntry struct {
	Level  int
	Anchor string
	Text   string
}

// bodyRenderer converts one document body to HTML, collecting the
// table of contents and any non-fatal warnings along the way.
type bodyRenderer struct {
	docID    int
	known    map[int]bool
	assets   AssetFunc
	toc      []tocEntry
	warnings []domain.RenderWarning
	anchors  map[string]int
}

func newBodyRenderer(docID int, known map[int]bool, assets AssetFunc) *bodyRenderer {
	return &bodyRenderer{
		docID:   docID,
		known:   known,
		assets:  assets,
		anchors: make(map[string]int),
	}
}

// render converts the body text. The body format is line-oriented:
// "#" headings, "-"/"*" list items, fenced code blocks, and paragraphs
// separated by blank lines. Inline syntax covers images, links and
// cross-reference markers.
func (b *bodyRenderer) render(body string) template.HTML {
	var out strings.Builder
	var paragraph []string
	var list []string
	var code []string
	inCode := false

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		out.WriteString("<p>")
		out.WriteString(b.inline(strings.Join(paragraph, " ")))
		out.WriteString("</p>\n")
		paragraph = nil
	}
	flushList := func() {
		if len(list) == 0 {
			return
		}
		out.WriteString("<ul>\n")
		for _, item := range list {
			out.WriteString("<li>")
			out.WriteString(b.inline(item))
			out.WriteString("</li>\n")
		}
		out.WriteString("</ul>\n")
		list = nil
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")

		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inCode {
				out.WriteString("<pre><code>")
				out.WriteString(html.EscapeString(strings.Join(code, "\n")))
				out.WriteString("</code></pre>\n")
				code = nil
				inCode = false
			} else {
				flushParagraph()
				flushList()
				inCode = true
			}
			continue
		}
		if inCode {
			code = append(code, line)
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			flushParagraph()
			flushList()
			level := len(m[1])
			text := strings.TrimSpace(m[2])
			anchor := b.anchor(text)
			b.toc = append(b.toc, tocEntry{Level: level, Anchor: anchor, Text: text})
			fmt.Fprintf(&out, "<h%d id=%q>%s</h%d>\n", level+1, anchor, b.inline(text), level+1)
			continue
		}

		if m := listPattern.FindStringSubmatch(line); m != nil {
			flushParagraph()
			list = append(list, m[1])
			continue
		}

		if strings.TrimSpace(line) == "" {
			flushParagraph()
			flushList()
			continue
		}

		flushList()
		paragraph = append(paragraph, strings.TrimSpace(line))
	}

	// Unterminated code fence: emit what was collected.
	if inCode && len(code) > 0 {
		out.WriteString("<pre><code>")
		out.WriteString(html.EscapeString(strings.Join(code, "\n")))
		out.WriteString("</code></pre>\n")
	}
	flushParagraph()
	flushList()

	return template.HTML(out.String())
}

// inline processes inline syntax in one escaped text segment.
func (b *bodyRenderer) inline(text string) string {
	escaped := html.EscapeString(text)

	escaped = imagePattern.ReplaceAllStringFunc(escaped, func(match string) string {
		m := imagePattern.FindStringSubmatch(match)
		alt, src := m[1], m[2]
		if b.assets != nil && b.assets(src) {
			return fmt.Sprintf(`<img src="assets/%s" alt="%s">`, src, alt)
		}
		b.warn("missing embedded asset %q", src)
		return fmt.Sprintf(`<span class="missing-asset">[missing asset: %s]</span>`, src)
	})

	escaped = linkPattern.ReplaceAllString(escaped, `<a href="$2">$1</a>`)

	return b.linkMarkers(escaped)
}

// linkMarkers replaces cross-reference markers with links to the
// target page, or a flagged span when the target does not exist.
func (b *bodyRenderer) linkMarkers(text string) string {
	markers := resolver.Scan(text)
	if len(markers) == 0 {
		return text
	}

	var out strings.Builder
	last := 0
	for _, m := range markers {
		out.WriteString(text[last:m.Start])
		switch {
		case m.TargetID == b.docID:
			out.WriteString(m.Text)
		case b.known[m.TargetID]:
			fmt.Fprintf(&out, `<a href="%s">%s</a>`, PagePath(m.TargetID), m.Text)
		default:
			fmt.Fprintf(&out, `<span class="dangling-reference" title="no such proposal">%s</span>`, m.Text)
		}
		last = m.End
	}
	out.WriteString(text[last:])
	return out.String()
}

// anchor derives a unique slug for a heading.
func (b *bodyRenderer) anchor(text string) string {
	slug := strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(text), "-"), "-")
	if slug == "" {
		slug = "section"
	}
	b.anchors[slug]++
	if n := b.anchors[slug]; n > 1 {
		return fmt.Sprintf("%s-%d", slug, n)
	}
	return slug
}

// warn records a non-fatal render warning for this document.
func (b *bodyRenderer) warn(format string, args ...any) {
	b.warnings = append(b.warnings, domain.RenderWarning{
		DocID:   b.docID,
		Message: fmt.Sprintf(format, args...),
	})
}
