package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

func testIndex() *domain.Index {
	e1 := domain.IndexEntry{ID: 1, Title: "Alpha Transport", Status: domain.StatusDraft, Kind: domain.KindProcess, Authors: []string{"Ada"}}
	e2 := domain.IndexEntry{ID: 2, Title: "Beta Storage", Status: domain.StatusFinal, Kind: domain.KindStandards, Authors: []string{"Grace", "Barbara"}}
	e3 := domain.IndexEntry{ID: 3, Title: "Gamma Codec", Status: domain.StatusDraft, Kind: domain.KindProcess, Authors: []string{"Ada"}}

	return &domain.Index{
		Entries: []domain.IndexEntry{e1, e2, e3},
		ByStatus: []domain.StatusGroup{
			{Status: domain.StatusDraft, Entries: []domain.IndexEntry{e1, e3}},
			{Status: domain.StatusFinal, Entries: []domain.IndexEntry{e2}},
		},
		ByKind: []domain.KindGroup{
			{Kind: domain.KindStandards, Entries: []domain.IndexEntry{e2}},
			{Kind: domain.KindProcess, Entries: []domain.IndexEntry{e1, e3}},
		},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(testIndex())
	require.NoError(t, err)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return model.(*App)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_NilIndex(t *testing.T) {
	app, err := NewApp(nil)

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_ListsAllEntries(t *testing.T) {
	app := newTestApp(t)

	assert.Len(t, app.Entries(), 3)
	assert.Equal(t, "All", app.FilterLabel())

	view := app.View()
	assert.Contains(t, view, "Proposal Index (3)")
	assert.Contains(t, view, "Alpha Transport")
	assert.Contains(t, view, "Gamma Codec")
}

func TestApp_Navigation(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, 1, app.SelectedEntry().ID)

	model, _ := app.Update(keyRunes("j"))
	app = model.(*App)
	assert.Equal(t, 2, app.SelectedEntry().ID)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(*App)
	assert.Equal(t, 3, app.SelectedEntry().ID)

	// Bottom of the list: stays put.
	model, _ = app.Update(keyRunes("j"))
	app = model.(*App)
	assert.Equal(t, 3, app.SelectedEntry().ID)

	model, _ = app.Update(keyRunes("k"))
	app = model.(*App)
	assert.Equal(t, 2, app.SelectedEntry().ID)
}

func TestApp_StatusFilterCycles(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(keyRunes("f"))
	app = model.(*App)
	assert.Equal(t, "Draft", app.FilterLabel())
	assert.Len(t, app.Entries(), 2)

	model, _ = app.Update(keyRunes("f"))
	app = model.(*App)
	assert.Equal(t, "Final", app.FilterLabel())
	assert.Len(t, app.Entries(), 1)
	assert.Equal(t, 2, app.Entries()[0].ID)

	// Cycles back to all.
	model, _ = app.Update(keyRunes("f"))
	app = model.(*App)
	assert.Equal(t, "All", app.FilterLabel())
	assert.Len(t, app.Entries(), 3)
}

func TestApp_SearchNarrowsByTitle(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(keyRunes("/"))
	app = model.(*App)

	for _, r := range "gamma" {
		model, _ = app.Update(keyRunes(string(r)))
		app = model.(*App)
	}

	require.Len(t, app.Entries(), 1)
	assert.Equal(t, 3, app.Entries()[0].ID)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	assert.Len(t, app.Entries(), 1)

	// Esc in list mode clears the search.
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.Len(t, app.Entries(), 3)
}

func TestApp_SearchEscCancels(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(keyRunes("/"))
	app = model.(*App)
	model, _ = app.Update(keyRunes("x"))
	app = model.(*App)
	require.Empty(t, app.Entries())

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.Len(t, app.Entries(), 3)
}

func TestApp_DetailPanel(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(keyRunes("j"))
	app = model.(*App)
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	require.True(t, app.IsShowingDetail())
	view := app.View()
	assert.Contains(t, view, "Proposal 2")
	assert.Contains(t, view, "Beta Storage")
	assert.Contains(t, view, "Grace, Barbara")

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.False(t, app.IsShowingDetail())
}

func TestApp_QuitKey(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(keyRunes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
