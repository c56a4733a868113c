package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
	assert.True(t, s.Title.GetBold())
	assert.True(t, s.Selected.GetBold())
}

func TestNewStyles_NilThemeDefaults(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestStyles_RenderDoesNotPanic(t *testing.T) {
	s := DefaultStyles()

	assert.NotEmpty(t, s.Title.Render("Proposal Index"))
	assert.NotEmpty(t, s.Accepted.Render("Final"))
	assert.NotEmpty(t, s.Rejected.Render("Withdrawn"))
}
