package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountedGenrePage(t *testing.T, client *fakeClient) *GenrePage {
	t.Helper()
	svc, _ := newTestService(t, client)
	p := sized(NewGenrePage(svc, quietLogger()))
	run(p, p.Mount())
	return p
}

// submitGenres moves to the action row and presses enter
func submitGenres(p *GenrePage) []tea.Msg {
	for i := 0; i <= len(p.Selector().Genres()); i++ {
		p.Update(keyRunes("j"))
	}
	return run(p, p.Update(keyType(tea.KeyEnter)))
}

func TestGenreMountLoadsGenres(t *testing.T) {
	client := &fakeClient{genres: []string{"Action", "Comedy", "Drama"}}
	p := mountedGenrePage(t, client)

	assert.Equal(t, StateSuccess, p.GenresState())
	assert.Equal(t, StateIdle, p.RecommendationsState())
	assert.Equal(t, []string{"Action", "Comedy", "Drama"}, p.Selector().Genres())
	assert.Contains(t, p.View(), "Comedy")
}

func TestGenreLoadFailureAndRetry(t *testing.T) {
	client := &fakeClient{genresErr: errors.New("boom")}
	p := mountedGenrePage(t, client)

	assert.Equal(t, StateFailure, p.GenresState())
	assert.Equal(t, "Failed to load genres. Please try again.", p.ErrorText())

	client.genresErr = nil
	client.genres = []string{"Drama"}
	run(p, p.Update(keyRunes("r")))

	assert.Equal(t, StateSuccess, p.GenresState())
	assert.Empty(t, p.ErrorText())
	assert.Equal(t, 2, client.count("genres"))
}

func TestGenreSubmitWithoutSelection(t *testing.T) {
	client := &fakeClient{genres: []string{"Action", "Comedy"}}
	p := mountedGenrePage(t, client)

	submitGenres(p)

	assert.Equal(t, "Please select at least one genre", p.ErrorText())
	assert.Zero(t, client.count("genre"))
	assert.Equal(t, StateIdle, p.RecommendationsState())
}

func TestGenreRecommendations(t *testing.T) {
	client := &fakeClient{
		genres:  []string{"Action", "Comedy", "Drama"},
		byGenre: movies("Superbad", "Amélie"),
	}
	p := mountedGenrePage(t, client)

	// Toggle Comedy and Drama with the keyboard
	p.Update(keyRunes("j"))
	p.Update(keyType(tea.KeySpace))
	p.Update(keyRunes("j"))
	p.Update(keyType(tea.KeySpace))
	require.Equal(t, []string{"Comedy", "Drama"}, p.Selector().Selected())

	submitGenres(p)

	assert.Equal(t, 1, client.count("genre"))
	assert.Equal(t, []string{"Comedy", "Drama"}, client.lastGenres)
	assert.Equal(t, 12, client.lastCount)
	assert.Equal(t, StateSuccess, p.RecommendationsState())
	assert.Equal(t, []string{"Superbad", "Amélie"}, titlesOf(p.Results()))
	assert.Equal(t, focusResults, p.focus)

	// h returns to the selector with the selection intact
	p.Update(keyRunes("h"))
	assert.Equal(t, focusSelector, p.focus)
	assert.Equal(t, []string{"Comedy", "Drama"}, p.Selector().Selected())
}

func TestGenreRecommendationFailure(t *testing.T) {
	client := &fakeClient{
		genres:   []string{"Horror"},
		genreErr: domain.ErrRequestFailed,
	}
	p := mountedGenrePage(t, client)
	p.Selector().Toggle("Horror")

	submitGenres(p)

	assert.Equal(t, StateFailure, p.RecommendationsState())
	assert.Equal(t, "Failed to get recommendations. Please try again.", p.ErrorText())
	assert.Empty(t, p.Results())
}

func TestGenreRemountClearsSelection(t *testing.T) {
	client := &fakeClient{genres: []string{"Action"}}
	p := mountedGenrePage(t, client)
	p.Selector().Toggle("Action")

	run(p, p.Mount())

	assert.Empty(t, p.Selector().Selected())
}
