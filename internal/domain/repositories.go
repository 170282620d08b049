package domain

import (
	"context"
)

// RecommendationClient talks to the remote recommendation service.
// Every failure is reported as an error matching ErrRequestFailed.
type RecommendationClient interface {
	// GetGenres returns the genre labels the service knows about
	GetGenres(ctx context.Context) ([]string, error)

	// GetRandomMovies returns count random movies
	GetRandomMovies(ctx context.Context, count int) ([]Movie, error)

	// SearchMovies returns movies whose title matches query
	SearchMovies(ctx context.Context, query string) ([]Movie, error)

	// GetGenreRecommendations returns count movies for the selected genres
	GetGenreRecommendations(ctx context.Context, genres []string, count int) ([]Movie, error)

	// GetFeedbackRecommendations returns count movies ranked by liked/disliked titles.
	// The call is issued even when both lists are empty.
	GetFeedbackRecommendations(ctx context.Context, liked, disliked []string, count int) ([]Movie, error)
}

// HealthChecker probes the recommendation service.
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}
