package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid(rater domain.Rater) MovieGrid {
	g := NewMovieGrid("Movies")
	g.SetSize(100, 20)
	g.SetFocused(true)
	g.SetMovies(sampleMovies(), rater, true)
	return g
}

func TestGridNavigation(t *testing.T) {
	g := newTestGrid(newFakeRater())

	g, _ = g.Update(runes("j"))
	g, _ = g.Update(runes("j"))
	assert.Equal(t, "Interstellar", g.Selected().Movie().Title)

	g, _ = g.Update(runes("G"))
	assert.Equal(t, 3, g.Cursor())

	g, _ = g.Update(runes("j"))
	assert.Equal(t, 3, g.Cursor())

	g, _ = g.Update(runes("g"))
	assert.Equal(t, 0, g.Cursor())
}

func TestGridIgnoresKeysWhenUnfocused(t *testing.T) {
	g := newTestGrid(newFakeRater())
	g.SetFocused(false)

	g, _ = g.Update(runes("j"))

	assert.Equal(t, 0, g.Cursor())
}

func TestGridFilter(t *testing.T) {
	g := newTestGrid(newFakeRater())

	g, _ = g.Update(runes("/"))
	require.True(t, g.IsFilterTyping())

	for _, r := range "inter" {
		g, _ = g.Update(runes(string(r)))
	}
	require.Equal(t, "Interstellar", g.Selected().Movie().Title)

	// Accept, then navigate within the filtered results
	g, _ = g.Update(press(tea.KeyEnter))
	assert.False(t, g.IsFilterTyping())
	assert.True(t, g.IsFiltering())

	g, _ = g.Update(press(tea.KeyEsc))
	assert.False(t, g.IsFiltering())
	assert.Equal(t, "Inception", g.Selected().Movie().Title)
}

func TestGridLikeSelected(t *testing.T) {
	rater := newFakeRater()
	g := newTestGrid(rater)
	g, _ = g.Update(runes("j"))

	title, changed := g.LikeSelected()
	assert.Equal(t, "Cats", title)
	assert.True(t, changed)
	assert.Equal(t, domain.PreferenceLike, g.Selected().Preference())

	_, changed = g.LikeSelected()
	assert.False(t, changed)
	assert.Equal(t, 1, rater.calls)
}

func TestGridEmpty(t *testing.T) {
	g := NewMovieGrid("Movies")
	g.SetSize(40, 10)
	g.SetEmptyText("Nothing here")

	assert.Nil(t, g.Selected())
	_, changed := g.LikeSelected()
	assert.False(t, changed)
	assert.Contains(t, g.View(), "Nothing here")
}
