package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/mmcdole/cinematch/internal/service"
	"github.com/mmcdole/cinematch/internal/store"
	"github.com/stretchr/testify/require"
)

// fakeClient answers every endpoint from canned data
type fakeClient struct {
	genres    []string
	random    []domain.Movie
	search    []domain.Movie
	byGenre   []domain.Movie
	byRatings []domain.Movie

	genresErr   error
	randomErr   error
	searchErr   error
	genreErr    error
	feedbackErr error

	calls        []string
	deadlines    int // calls whose context carried a deadline
	lastCount    int
	lastGenres   []string
	lastLiked    []string
	lastDisliked []string
}

func (f *fakeClient) GetGenres(ctx context.Context) ([]string, error) {
	f.record(ctx, "genres")
	return f.genres, f.genresErr
}

func (f *fakeClient) GetRandomMovies(ctx context.Context, count int) ([]domain.Movie, error) {
	f.record(ctx, "random")
	f.lastCount = count
	return f.random, f.randomErr
}

func (f *fakeClient) SearchMovies(ctx context.Context, query string) ([]domain.Movie, error) {
	f.record(ctx, "search")
	return f.search, f.searchErr
}

func (f *fakeClient) GetGenreRecommendations(ctx context.Context, genres []string, count int) ([]domain.Movie, error) {
	f.record(ctx, "genre")
	f.lastGenres = genres
	f.lastCount = count
	return f.byGenre, f.genreErr
}

func (f *fakeClient) GetFeedbackRecommendations(ctx context.Context, liked, disliked []string, count int) ([]domain.Movie, error) {
	f.record(ctx, "feedback")
	f.lastLiked = liked
	f.lastDisliked = disliked
	f.lastCount = count
	return f.byRatings, f.feedbackErr
}

func (f *fakeClient) record(ctx context.Context, call string) {
	f.calls = append(f.calls, call)
	if _, ok := ctx.Deadline(); ok {
		f.deadlines++
	}
}

func (f *fakeClient) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, client *fakeClient) (*service.RecommendationService, *store.PreferenceStore) {
	t.Helper()
	s, err := store.NewPreferenceStore("", quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return service.NewRecommendationService(client, s, 12, quietLogger()), s
}

func movies(titles ...string) []domain.Movie {
	out := make([]domain.Movie, len(titles))
	for i, title := range titles {
		out[i] = domain.Movie{Title: title}
	}
	return out
}

func titlesOf(ms []domain.Movie) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Title
	}
	return out
}

// run executes cmd and feeds page responses back into p, returning every
// message produced
func run(p Page, cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, run(p, c)...)
		}
	case taggedMsg:
		out = append(out, msg)
		out = append(out, run(p, p.Update(msg))...)
	default:
		out = append(out, msg)
	}
	return out
}

func sized[P Page](p P) P {
	p.SetSize(120, 40)
	return p
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func statusMessages(msgs []tea.Msg) []string {
	var out []string
	for _, m := range msgs {
		if s, ok := m.(StatusMsg); ok {
			out = append(out, s.Message)
		}
	}
	return out
}
