package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinematch/internal/service"
)

// Command factories for async operations. Request deadlines come from the
// HTTP client's configured api.timeout.

// LoadGenresCmd loads the genre list
func LoadGenresCmd(svc *service.RecommendationService, tag requestTag) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		genres, err := svc.Genres(ctx)
		if err != nil {
			return RequestFailedMsg{requestTag: tag, Source: SourceGenres, Err: err}
		}
		return GenresLoadedMsg{requestTag: tag, Genres: genres}
	}
}

// LoadRandomCmd loads count random movies
func LoadRandomCmd(svc *service.RecommendationService, tag requestTag, count int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		movies, err := svc.Random(ctx, count)
		if err != nil {
			return RequestFailedMsg{requestTag: tag, Source: SourceRandom, Err: err}
		}
		return MoviesLoadedMsg{requestTag: tag, Source: SourceRandom, Movies: movies}
	}
}

// SearchCmd searches movies by title
func SearchCmd(svc *service.RecommendationService, tag requestTag, query string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		movies, err := svc.Search(ctx, query)
		if err != nil {
			return RequestFailedMsg{requestTag: tag, Source: SourceSearch, Err: err}
		}
		return MoviesLoadedMsg{requestTag: tag, Source: SourceSearch, Movies: movies, Query: query}
	}
}

// GenreRecommendationsCmd requests recommendations for the selected genres
func GenreRecommendationsCmd(svc *service.RecommendationService, tag requestTag, genres []string, count int) tea.Cmd {
	genres = append([]string(nil), genres...)
	return func() tea.Msg {
		ctx := context.Background()
		movies, err := svc.ByGenre(ctx, genres, count)
		if err != nil {
			return RequestFailedMsg{requestTag: tag, Source: SourceGenre, Err: err}
		}
		return MoviesLoadedMsg{requestTag: tag, Source: SourceGenre, Movies: movies}
	}
}

// FeedbackRecommendationsCmd requests recommendations from liked and
// disliked titles. auto marks the request made on mount from stored ratings.
func FeedbackRecommendationsCmd(svc *service.RecommendationService, tag requestTag, liked, disliked []string, count int, auto bool) tea.Cmd {
	liked = append([]string(nil), liked...)
	disliked = append([]string(nil), disliked...)
	return func() tea.Msg {
		ctx := context.Background()
		movies, err := svc.ByFeedback(ctx, liked, disliked, count)
		if err != nil {
			return RequestFailedMsg{requestTag: tag, Source: SourceFeedback, Err: err, Auto: auto}
		}
		return MoviesLoadedMsg{requestTag: tag, Source: SourceFeedback, Movies: movies, Auto: auto}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// StatusCmd sets the status line
func StatusCmd(message string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isError}
	}
}
