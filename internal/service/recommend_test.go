package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/mmcdole/cinematch/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	genres []string
	movies []domain.Movie
	err    error

	calls        []string
	lastCount    int
	lastQuery    string
	lastGenres   []string
	lastLiked    []string
	lastDisliked []string
}

func (f *fakeClient) GetGenres(ctx context.Context) ([]string, error) {
	f.calls = append(f.calls, "genres")
	return f.genres, f.err
}

func (f *fakeClient) GetRandomMovies(ctx context.Context, count int) ([]domain.Movie, error) {
	f.calls = append(f.calls, "random")
	f.lastCount = count
	return f.movies, f.err
}

func (f *fakeClient) SearchMovies(ctx context.Context, query string) ([]domain.Movie, error) {
	f.calls = append(f.calls, "search")
	f.lastQuery = query
	return f.movies, f.err
}

func (f *fakeClient) GetGenreRecommendations(ctx context.Context, genres []string, count int) ([]domain.Movie, error) {
	f.calls = append(f.calls, "genre")
	f.lastGenres = genres
	f.lastCount = count
	return f.movies, f.err
}

func (f *fakeClient) GetFeedbackRecommendations(ctx context.Context, liked, disliked []string, count int) ([]domain.Movie, error) {
	f.calls = append(f.calls, "feedback")
	f.lastLiked = liked
	f.lastDisliked = disliked
	f.lastCount = count
	return f.movies, f.err
}

func newTestService(t *testing.T, client *fakeClient) (*RecommendationService, *store.PreferenceStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := store.NewPreferenceStore("", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewRecommendationService(client, s, 0, logger), s
}

func titles(movies []domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestByGenreRequiresSelection(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	_, err := svc.ByGenre(context.Background(), nil, 0)

	assert.ErrorIs(t, err, domain.ErrNoGenres)
	assert.Empty(t, client.calls)
}

func TestByGenreUsesDefaultCount(t *testing.T) {
	client := &fakeClient{movies: []domain.Movie{{Title: "Superbad"}}}
	svc, _ := newTestService(t, client)

	movies, err := svc.ByGenre(context.Background(), []string{"Comedy", "Drama"}, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"genre"}, client.calls)
	assert.Equal(t, []string{"Comedy", "Drama"}, client.lastGenres)
	assert.Equal(t, DefaultCount, client.lastCount)
	assert.Equal(t, []string{"Superbad"}, titles(movies))
}

func TestByFeedbackRequiresRatings(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	_, err := svc.ByFeedback(context.Background(), []string{}, nil, 12)

	assert.ErrorIs(t, err, domain.ErrNoFeedback)
	assert.Empty(t, client.calls)
}

func TestByFeedbackWithOnlyDislikes(t *testing.T) {
	client := &fakeClient{movies: []domain.Movie{{Title: "Heat"}}}
	svc, _ := newTestService(t, client)

	_, err := svc.ByFeedback(context.Background(), nil, []string{"Cats"}, 6)
	require.NoError(t, err)

	assert.Equal(t, []string{"Cats"}, client.lastDisliked)
	assert.Equal(t, 6, client.lastCount)
}

func TestSearchRejectsBlankQuery(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	_, err := svc.Search(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	assert.Empty(t, client.calls)
}

func TestSearchRanksResults(t *testing.T) {
	client := &fakeClient{movies: []domain.Movie{
		{Title: "The Matrix Reloaded"},
		{Title: "Matrix"},
		{Title: "Matrix Revolutions"},
		{Title: "Metropolis"},
		{Title: "Matrix Resurrections"},
	}}
	svc, _ := newTestService(t, client)

	movies, err := svc.Search(context.Background(), " matrix ")
	require.NoError(t, err)

	assert.Equal(t, "matrix", client.lastQuery)
	assert.Equal(t, []string{
		"Matrix",
		"Matrix Revolutions",
		"Matrix Resurrections",
		"The Matrix Reloaded",
		"Metropolis",
	}, titles(movies))
}

func TestRequestErrorsPassThrough(t *testing.T) {
	client := &fakeClient{err: domain.ErrServiceOffline}
	svc, _ := newTestService(t, client)

	_, err := svc.Genres(context.Background())
	assert.ErrorIs(t, err, domain.ErrRequestFailed)

	_, err = svc.Random(context.Background(), 0)
	assert.True(t, errors.Is(err, domain.ErrServiceOffline))
	assert.Equal(t, DefaultCount, client.lastCount)
}

func TestSetPreferenceKeepsSetsExclusive(t *testing.T) {
	svc, s := newTestService(t, &fakeClient{})

	svc.SetPreference("Inception", domain.PreferenceLike)
	svc.SetPreference("Cats", domain.PreferenceDislike)
	assert.Equal(t, domain.Stats{LikedCount: 1, DislikedCount: 1, TotalCount: 2}, svc.Stats())

	svc.SetPreference("Inception", domain.PreferenceDislike)
	assert.False(t, s.IsLiked("Inception"))
	assert.Equal(t, domain.PreferenceDislike, svc.Preference("Inception"))

	fb := svc.SavedFeedback()
	assert.Empty(t, fb.Liked)
	assert.Equal(t, []string{"Cats", "Inception"}, fb.Disliked)

	svc.SetPreference("Cats", domain.PreferenceNone)
	assert.Equal(t, []string{"Inception"}, svc.SavedFeedback().Disliked)
}

func TestClearPreferences(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{})
	svc.SetPreference("Inception", domain.PreferenceLike)

	svc.ClearPreferences()

	assert.True(t, svc.SavedFeedback().IsEmpty())
	assert.Equal(t, 0, svc.Stats().TotalCount)
}
