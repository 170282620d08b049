package recommender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/cinematch/internal/domain"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the circuit breaker around the API client.
type BreakerSettings struct {
	Failures uint32        // Consecutive failures before opening (0 disables the breaker)
	Timeout  time.Duration // Time spent open before a trial request is let through
}

// BreakerClient wraps Client so that a dead service fails fast instead of
// making every view wait for the HTTP timeout. It never retries.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[any]
	logger *slog.Logger
}

var (
	_ domain.RecommendationClient = (*BreakerClient)(nil)
	_ domain.HealthChecker        = (*BreakerClient)(nil)
)

// NewBreakerClient wraps client with a circuit breaker.
func NewBreakerClient(client *Client, settings BreakerSettings, logger *slog.Logger) *BreakerClient {
	if logger == nil {
		logger = slog.Default()
	}
	failures := settings.Failures

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "recommender-api",
		MaxRequests: 1,
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if failures == 0 {
				return false
			}
			trip := counts.ConsecutiveFailures >= failures
			if trip {
				logger.Warn("opening recommender circuit", "consecutive_failures", counts.ConsecutiveFailures)
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &BreakerClient{client: client, cb: cb, logger: logger}
}

// State returns the breaker's current state
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// execute runs fn through the breaker. Rejections match domain.ErrRequestFailed
// like any other failure.
func execute[T any](b *BreakerClient, fn func() (T, error)) (T, error) {
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			b.logger.Warn("recommender request rejected", "error", err)
			return zero, fmt.Errorf("%w: %w", domain.ErrRequestFailed, err)
		}
		return zero, err
	}
	value, ok := result.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: unexpected result type %T", domain.ErrRequestFailed, result)
	}
	return value, nil
}

func (b *BreakerClient) GetGenres(ctx context.Context) ([]string, error) {
	return execute(b, func() ([]string, error) {
		return b.client.GetGenres(ctx)
	})
}

func (b *BreakerClient) GetRandomMovies(ctx context.Context, count int) ([]domain.Movie, error) {
	return execute(b, func() ([]domain.Movie, error) {
		return b.client.GetRandomMovies(ctx, count)
	})
}

func (b *BreakerClient) SearchMovies(ctx context.Context, query string) ([]domain.Movie, error) {
	return execute(b, func() ([]domain.Movie, error) {
		return b.client.SearchMovies(ctx, query)
	})
}

func (b *BreakerClient) GetGenreRecommendations(ctx context.Context, genres []string, count int) ([]domain.Movie, error) {
	return execute(b, func() ([]domain.Movie, error) {
		return b.client.GetGenreRecommendations(ctx, genres, count)
	})
}

func (b *BreakerClient) GetFeedbackRecommendations(ctx context.Context, liked, disliked []string, count int) ([]domain.Movie, error) {
	return execute(b, func() ([]domain.Movie, error) {
		return b.client.GetFeedbackRecommendations(ctx, liked, disliked, count)
	})
}

func (b *BreakerClient) Health(ctx context.Context) (string, error) {
	return execute(b, func() (string, error) {
		return b.client.Health(ctx)
	})
}
