package recommender

import "github.com/mmcdole/cinematch/internal/domain"

// MapMovies converts service movies to domain movies, preserving order.
func MapMovies(dtos []MovieDTO) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, d := range dtos {
		movies = append(movies, MapMovie(d))
	}
	return movies
}

// MapMovie converts a single service movie.
func MapMovie(d MovieDTO) domain.Movie {
	return domain.Movie{
		Title:       d.Title,
		PosterURL:   d.PosterURL,
		VoteAverage: d.VoteAverage,
		Overview:    d.Overview,
		Genres:      d.Genres,
	}
}

// nonNil keeps empty lists encoding as [] instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
