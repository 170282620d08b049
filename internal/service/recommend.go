package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/cinematch/internal/domain"
)

var _ domain.Rater = (*RecommendationService)(nil)

// DefaultCount is the number of movies requested when the caller passes none
const DefaultCount = 12

// RecommendationService combines the recommendation client with the local
// preference store for the views
type RecommendationService struct {
	client domain.RecommendationClient
	store  domain.PreferenceStore
	count  int
	logger *slog.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(client domain.RecommendationClient, store domain.PreferenceStore, count int, logger *slog.Logger) *RecommendationService {
	if logger == nil {
		logger = slog.Default()
	}
	if count <= 0 {
		count = DefaultCount
	}
	return &RecommendationService{
		client: client,
		store:  store,
		count:  count,
		logger: logger,
	}
}

// Count returns the configured listing size
func (s *RecommendationService) Count() int {
	return s.count
}

func (s *RecommendationService) resolveCount(count int) int {
	if count <= 0 {
		return s.count
	}
	return count
}

// Genres returns the genres offered by the service
func (s *RecommendationService) Genres(ctx context.Context) ([]string, error) {
	genres, err := s.client.GetGenres(ctx)
	if err != nil {
		s.logger.Error("failed to load genres", "error", err)
		return nil, err
	}
	s.logger.Debug("loaded genres", "count", len(genres))
	return genres, nil
}

// Random returns count random movies
func (s *RecommendationService) Random(ctx context.Context, count int) ([]domain.Movie, error) {
	count = s.resolveCount(count)
	movies, err := s.client.GetRandomMovies(ctx, count)
	if err != nil {
		s.logger.Error("failed to load random movies", "count", count, "error", err)
		return nil, err
	}
	return movies, nil
}

// Search finds movies by title and orders them by closeness to the query
func (s *RecommendationService) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	s.logger.Debug("searching", "query", query)

	results, err := s.client.SearchMovies(ctx, query)
	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		return nil, err
	}

	ranked := rankResults(results, query)
	s.logger.Debug("search complete", "query", query, "results", len(ranked))
	return ranked, nil
}

// ByGenre returns recommendations for the selected genres
func (s *RecommendationService) ByGenre(ctx context.Context, genres []string, count int) ([]domain.Movie, error) {
	if len(genres) == 0 {
		return nil, domain.ErrNoGenres
	}
	count = s.resolveCount(count)

	movies, err := s.client.GetGenreRecommendations(ctx, genres, count)
	if err != nil {
		s.logger.Error("genre recommendations failed", "genres", genres, "error", err)
		return nil, err
	}
	s.logger.Info("genre recommendations", "genres", len(genres), "results", len(movies))
	return movies, nil
}

// ByFeedback returns recommendations for the given liked and disliked titles.
// At least one list must be non-empty.
func (s *RecommendationService) ByFeedback(ctx context.Context, liked, disliked []string, count int) ([]domain.Movie, error) {
	if len(liked) == 0 && len(disliked) == 0 {
		return nil, domain.ErrNoFeedback
	}
	count = s.resolveCount(count)

	movies, err := s.client.GetFeedbackRecommendations(ctx, liked, disliked, count)
	if err != nil {
		s.logger.Error("feedback recommendations failed",
			"liked", len(liked), "disliked", len(disliked), "error", err)
		return nil, err
	}
	s.logger.Info("feedback recommendations",
		"liked", len(liked), "disliked", len(disliked), "results", len(movies))
	return movies, nil
}

// SetPreference records the user's rating for a title
func (s *RecommendationService) SetPreference(title string, pref domain.Preference) {
	s.logger.Debug("rating movie", "title", title, "preference", pref.String())
	s.store.SetPreference(title, pref)
}

// Preference returns the stored preference for a title
func (s *RecommendationService) Preference(title string) domain.Preference {
	return s.store.Preference(title)
}

// SavedFeedback returns the stored liked and disliked titles
func (s *RecommendationService) SavedFeedback() domain.Feedback {
	return domain.Feedback{
		Liked:    s.store.GetLiked(),
		Disliked: s.store.GetDisliked(),
	}
}

// ClearPreferences forgets every rating
func (s *RecommendationService) ClearPreferences() {
	s.logger.Info("clearing preferences")
	s.store.ClearAll()
}

// Stats returns the preference counts
func (s *RecommendationService) Stats() domain.Stats {
	return s.store.Stats()
}

// rankResults orders search results by match quality, keeping the service's
// order among equal scores
func rankResults(movies []domain.Movie, query string) []domain.Movie {
	if len(movies) == 0 {
		return movies
	}

	query = strings.ToLower(query)

	type rankedMovie struct {
		movie domain.Movie
		score int
	}

	ranked := make([]rankedMovie, 0, len(movies))
	for _, m := range movies {
		ranked = append(ranked, rankedMovie{movie: m, score: matchScore(strings.ToLower(m.Title), query)})
	}

	// Lower is better
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.Movie, len(ranked))
	for i, r := range ranked {
		results[i] = r.movie
	}
	return results
}

// matchScore scores a lowercase title against a lowercase query.
// Lower score = better match
func matchScore(title, query string) int {
	if title == query {
		return 0
	}
	if strings.HasPrefix(title, query) {
		return 10
	}
	if strings.Contains(title, query) {
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, title)
}
