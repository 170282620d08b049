package recommender

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Body        string
}

// fakeService records every request and answers with a canned response.
type fakeService struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		RawQuery:    r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(body),
	})
	status, respBody := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(respBody))
}

func (f *fakeService) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, status int, body string) (*Client, *fakeService) {
	t.Helper()
	fake := &fakeService{status: status, body: body}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, quietLogger()), fake
}

const twoMovies = `[
	{"title":"Superbad","poster_url":"https://img/superbad.jpg","vote_average":7.2,"overview":"Two friends.","genres":"Comedy"},
	{"title":"Amélie","poster_url":null,"vote_average":null,"overview":"","genres":"Comedy, Romance"}
]`

func TestGetGenreRecommendations(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK, twoMovies)

	movies, err := client.GetGenreRecommendations(context.Background(), []string{"Comedy", "Drama"}, 12)
	require.NoError(t, err)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/recommend/genre", reqs[0].Path)
	assert.Equal(t, "application/json", reqs[0].ContentType)
	assert.JSONEq(t, `{"genres":["Comedy","Drama"],"count":12}`, reqs[0].Body)

	require.Len(t, movies, 2)
	assert.Equal(t, "Superbad", movies[0].Title)
	assert.Equal(t, "https://img/superbad.jpg", movies[0].PosterURL)
	require.NotNil(t, movies[0].VoteAverage)
	assert.InDelta(t, 7.2, *movies[0].VoteAverage, 0.0001)
	assert.Equal(t, "Amélie", movies[1].Title)
	assert.Nil(t, movies[1].VoteAverage)
	assert.Equal(t, "Comedy, Romance", movies[1].Genres)
}

func TestGetFeedbackRecommendationsSendsEmptyLists(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK, `[]`)

	movies, err := client.GetFeedbackRecommendations(context.Background(), nil, []string{}, 12)
	require.NoError(t, err)
	assert.Empty(t, movies)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/recommend/feedback", reqs[0].Path)
	assert.JSONEq(t, `{"liked":[],"disliked":[],"count":12}`, reqs[0].Body)
}

func TestGetFeedbackRecommendationsBody(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK, twoMovies)

	_, err := client.GetFeedbackRecommendations(context.Background(), []string{"Inception"}, []string{"Cats"}, 6)
	require.NoError(t, err)

	assert.JSONEq(t, `{"liked":["Inception"],"disliked":["Cats"],"count":6}`, fake.Requests()[0].Body)
}

func TestGetGenres(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK, `{"genres":["Action","Comedy","Drama"]}`)

	genres, err := client.GetGenres(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Action", "Comedy", "Drama"}, genres)
	assert.Equal(t, http.MethodGet, fake.Requests()[0].Method)
	assert.Equal(t, "/genres", fake.Requests()[0].Path)
}

func TestGetRandomMovies(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK, twoMovies)

	movies, err := client.GetRandomMovies(context.Background(), 12)
	require.NoError(t, err)

	assert.Len(t, movies, 2)
	assert.Equal(t, "/movies/random", fake.Requests()[0].Path)
	assert.Equal(t, "count=12", fake.Requests()[0].RawQuery)
}

func TestSearchMoviesEncodesQuery(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK, `[]`)

	_, err := client.SearchMovies(context.Background(), "star wars & co")
	require.NoError(t, err)

	assert.Equal(t, "/movies/search", fake.Requests()[0].Path)
	assert.Equal(t, "q=star+wars+%26+co", fake.Requests()[0].RawQuery)
}

func TestNonSuccessStatusIsRequestFailure(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadRequest, `{"error":"At least one genre is required"}`)

	movies, err := client.GetGenreRecommendations(context.Background(), nil, 12)

	assert.Nil(t, movies)
	require.ErrorIs(t, err, domain.ErrRequestFailed)
	assert.Contains(t, err.Error(), "At least one genre is required")
	assert.Contains(t, err.Error(), "400")
}

func TestServerErrorWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, http.StatusInternalServerError, ``)

	_, err := client.GetGenres(context.Background())

	require.ErrorIs(t, err, domain.ErrRequestFailed)
	assert.NotErrorIs(t, err, domain.ErrServiceOffline)
}

func TestMalformedBodyIsRequestFailure(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{"not":"a list"}`)

	_, err := client.GetRandomMovies(context.Background(), 3)

	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}

func TestUnreachableServiceIsOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, quietLogger())
	_, err := client.GetGenres(context.Background())

	assert.ErrorIs(t, err, domain.ErrServiceOffline)
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}

func TestHealth(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK, `{"status":"healthy","message":"Movie Recommendation API is running"}`)

	status, err := client.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "healthy", status)
	assert.Equal(t, "/", fake.Requests()[0].Path)
}
