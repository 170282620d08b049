package components

import (
	"strings"
	"testing"

	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMovieCardReadsInitialState(t *testing.T) {
	rater := newFakeRater()
	rater.prefs["Cats"] = domain.PreferenceDislike

	card := NewMovieCard(domain.Movie{Title: "Cats"}, rater, true)

	assert.Equal(t, domain.PreferenceDislike, card.Preference())
}

func TestMovieCardLikeThenDislike(t *testing.T) {
	rater := newFakeRater()
	card := NewMovieCard(domain.Movie{Title: "Inception"}, rater, true)

	assert.True(t, card.Like())
	assert.Equal(t, domain.PreferenceLike, rater.prefs["Inception"])

	// Pressing the active action again is a no-op
	assert.False(t, card.Like())
	assert.Equal(t, 1, rater.calls)

	assert.True(t, card.Dislike())
	assert.Equal(t, domain.PreferenceDislike, card.Preference())
	assert.Equal(t, domain.PreferenceDislike, rater.prefs["Inception"])
}

func TestMovieCardWithoutActionsIgnoresRatings(t *testing.T) {
	rater := newFakeRater()
	card := NewMovieCard(domain.Movie{Title: "Heat"}, rater, false)

	assert.False(t, card.Like())
	assert.Zero(t, rater.calls)

	assert.False(t, NewMovieCard(domain.Movie{Title: "Heat"}, nil, true).ShowsActions())
}

func TestMovieCardView(t *testing.T) {
	movies := sampleMovies()
	card := NewMovieCard(movies[0], newFakeRater(), true)

	view := card.View(60, true)

	assert.Contains(t, view, "Inception")
	assert.Contains(t, view, "8.8/10")
	assert.Contains(t, view, "Science Fiction")
	assert.NotContains(t, view, "Thriller")
	assert.Contains(t, view, "Like")

	plain := NewMovieCard(movies[1], nil, false).View(60, false)
	assert.Contains(t, plain, domain.PosterPlaceholder[:20])
	assert.False(t, strings.Contains(plain, "Dislike"))
}
