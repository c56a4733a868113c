// Package tui implements the interactive proposal index browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

// App is the browse TUI following the Elm architecture. It implements
// tea.Model for use with Bubbletea.
type App struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	index  *domain.Index

	// filters cycles through "" (all) plus every status present in the
	// corpus, in display order.
	filters   []domain.Status
	filterIdx int

	// query narrows entries to titles containing it, case-insensitive.
	query       string
	searchInput textinput.Model
	searching   bool

	// entries is the currently visible, filtered listing.
	entries      []domain.IndexEntry
	selected     int
	scrollOffset int

	// showDetail displays the detail panel for the selected entry.
	showDetail bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a browse TUI over the given index.
func NewApp(ix *domain.Index) (*App, error) {
	if ix == nil {
		return nil, fmt.Errorf("creating app: index is nil")
	}

	filters := []domain.Status{""}
	for _, g := range ix.ByStatus {
		filters = append(filters, g.Status)
	}

	input := textinput.New()
	input.Placeholder = "title contains..."
	input.CharLimit = 64

	a := &App{
		styles:      styles.DefaultStyles(),
		keys:        keymap.DefaultKeyMap(),
		index:       ix,
		filters:     filters,
		searchInput: input,
	}
	a.applyFilter()
	return a, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if a.searching {
			return a.updateSearch(msg)
		}
		if a.showDetail {
			return a.updateDetail(msg)
		}
		return a.updateList(msg)
	}

	return a, nil
}

// updateSearch routes keys to the search box. The filter tracks the
// input live; enter keeps it, esc clears it.
func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	case "esc":
		a.searching = false
		a.searchInput.Blur()
		a.searchInput.SetValue("")
		a.query = ""
		a.applyFilter()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.query = strings.TrimSpace(a.searchInput.Value())
	a.applyFilter()
	return a, cmd
}

// updateDetail handles keys while the detail panel is open.
func (a *App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, a.keys.Quit):
		return a, tea.Quit
	case keymap.Matches(keyStr, a.keys.Back), keymap.Matches(keyStr, a.keys.Select):
		a.showDetail = false
	}
	return a, nil
}

// updateList handles keys in list mode.
func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, a.keys.Quit):
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keys.Back):
		if a.query != "" {
			a.searchInput.SetValue("")
			a.query = ""
			a.applyFilter()
			return a, nil
		}
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keys.Up):
		if a.selected > 0 {
			a.selected--
			a.adjustScroll()
		}

	case keymap.Matches(keyStr, a.keys.Down):
		if a.selected < len(a.entries)-1 {
			a.selected++
			a.adjustScroll()
		}

	case keymap.Matches(keyStr, a.keys.Select):
		if len(a.entries) > 0 {
			a.showDetail = true
		}

	case keymap.Matches(keyStr, a.keys.Filter):
		a.filterIdx = (a.filterIdx + 1) % len(a.filters)
		a.applyFilter()

	case keymap.Matches(keyStr, a.keys.Search):
		a.searching = true
		return a, a.searchInput.Focus()
	}

	return a, nil
}

// applyFilter recomputes the visible entries from the status filter
// and the title query, keeping identifier order.
func (a *App) applyFilter() {
	status := a.filters[a.filterIdx]
	query := strings.ToLower(a.query)

	a.entries = a.entries[:0]
	for _, e := range a.index.Entries {
		if status != "" && e.Status != status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(e.Title), query) {
			continue
		}
		a.entries = append(a.entries, e)
	}

	if a.selected >= len(a.entries) {
		a.selected = 0
		a.scrollOffset = 0
	}
}

// adjustScroll keeps the selected entry visible.
func (a *App) adjustScroll() {
	visible := a.visibleItemCount()
	if a.selected < a.scrollOffset {
		a.scrollOffset = a.selected
	} else if a.selected >= a.scrollOffset+visible {
		a.scrollOffset = a.selected - visible + 1
	}
}

// visibleItemCount returns the number of list lines that fit.
func (a *App) visibleItemCount() int {
	// Reserve lines for title, filter, search, help, and padding.
	reserved := 8
	available := a.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render(fmt.Sprintf("Proposal Index (%d)", len(a.entries))))
	b.WriteString("\n")
	b.WriteString(a.styles.Subtitle.Render("Filter: " + a.filterLabel()))
	b.WriteString("\n\n")

	if a.searching {
		b.WriteString(a.styles.InputField.Render(a.searchInput.View()))
		b.WriteString("\n\n")
	} else if a.query != "" {
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("Search: %q", a.query)))
		b.WriteString("\n\n")
	}

	if a.showDetail {
		b.WriteString(a.renderDetail())
		b.WriteString("\n\n")
		b.WriteString(a.styles.Help.Render("[esc] back  [q] quit"))
		return b.String()
	}

	if len(a.entries) == 0 {
		b.WriteString(a.styles.Muted.Render("No proposals match."))
		b.WriteString("\n\n")
		b.WriteString(a.renderHelp())
		return b.String()
	}

	visible := a.visibleItemCount()
	for i := a.scrollOffset; i < len(a.entries) && i < a.scrollOffset+visible; i++ {
		b.WriteString(a.renderEntry(i))
		b.WriteString("\n")
	}

	if len(a.entries) > visible {
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			a.scrollOffset+1,
			min(a.scrollOffset+visible, len(a.entries)),
			len(a.entries))))
	}

	b.WriteString("\n\n")
	b.WriteString(a.renderHelp())
	return b.String()
}

// renderEntry renders one list line.
func (a *App) renderEntry(i int) string {
	e := a.entries[i]

	title := e.Title
	maxTitle := a.width - 30
	if maxTitle < 20 {
		maxTitle = 20
	}
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	if i == a.selected {
		return a.styles.Selected.Render(fmt.Sprintf("> %4d  %-*s  %s", e.ID, maxTitle, title, e.Status))
	}

	return a.styles.Normal.Render(fmt.Sprintf("  %4d  %-*s  ", e.ID, maxTitle, title)) +
		a.statusStyle(e.Status).Render(string(e.Status))
}

// renderDetail renders the detail panel for the selected entry.
func (a *App) renderDetail() string {
	if a.selected >= len(a.entries) {
		return ""
	}
	e := a.entries[a.selected]

	var b strings.Builder
	b.WriteString(a.styles.Subtitle.Render(fmt.Sprintf("Proposal %d", e.ID)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Title:   %s\n", e.Title))
	b.WriteString("Status:  " + a.statusStyle(e.Status).Render(string(e.Status)) + "\n")
	b.WriteString(fmt.Sprintf("Type:    %s\n", e.Kind))
	b.WriteString(fmt.Sprintf("Authors: %s", strings.Join(e.Authors, ", ")))

	return a.styles.Detail.Render(b.String())
}

// renderHelp renders the help footer from the keymap.
func (a *App) renderHelp() string {
	var parts []string
	for _, binding := range a.keys.ListHelp() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return a.styles.Help.Render(strings.Join(parts, "  "))
}

// filterLabel names the active status filter.
func (a *App) filterLabel() string {
	status := a.filters[a.filterIdx]
	if status == "" {
		return "All"
	}
	return string(status)
}

// statusStyle picks a colour for a status badge.
func (a *App) statusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusAccepted, domain.StatusFinal:
		return a.styles.Accepted
	case domain.StatusRejected, domain.StatusWithdrawn, domain.StatusSuperseded:
		return a.styles.Rejected
	default:
		return a.styles.Active
	}
}

// Entries returns the currently visible entries.
func (a *App) Entries() []domain.IndexEntry {
	return a.entries
}

// SelectedEntry returns the highlighted entry, or nil when the list is
// empty.
func (a *App) SelectedEntry() *domain.IndexEntry {
	if a.selected < len(a.entries) {
		return &a.entries[a.selected]
	}
	return nil
}

// FilterLabel returns the active filter name, for display and tests.
func (a *App) FilterLabel() string {
	return a.filterLabel()
}

// IsShowingDetail reports whether the detail panel is open.
func (a *App) IsShowingDetail() bool {
	return a.showDetail
}
