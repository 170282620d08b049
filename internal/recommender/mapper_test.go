package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapMoviesPreservesOrder(t *testing.T) {
	rating := 8.1
	dtos := []MovieDTO{
		{Title: "Heat", VoteAverage: &rating, Genres: "Action, Crime"},
		{Title: "Up"},
	}

	movies := MapMovies(dtos)

	assert.Len(t, movies, 2)
	assert.Equal(t, "Heat", movies[0].Title)
	assert.Equal(t, "8.1/10", movies[0].FormattedRating())
	assert.Equal(t, "Up", movies[1].Title)
	assert.False(t, movies[1].HasRating())
}

func TestMapMoviesEmpty(t *testing.T) {
	assert.NotNil(t, MapMovies(nil))
	assert.Empty(t, MapMovies(nil))
}
