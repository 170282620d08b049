package recommender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/mmcdole/cinematch/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "CineMatch/1.0"
)

// Client implements domain.RecommendationClient over the service's JSON API.
// It holds no state besides its configuration.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.RecommendationClient = (*Client)(nil)

// NewClient creates a new recommendation API client.
// A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs a request and returns the body of a 2xx response.
// Every failure wraps domain.ErrRequestFailed.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request: %v", domain.ErrRequestFailed, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrRequestFailed, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("recommender request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("recommender request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceOffline, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("recommender request error", "path", path, "status", resp.StatusCode, "body", string(respBody))
		var apiErr ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%w: status %d: %s", domain.ErrRequestFailed, resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrRequestFailed, resp.StatusCode)
	}

	return respBody, nil
}

// decode unmarshals a response body into dest
func (c *Client) decode(body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: parse response: %v", domain.ErrRequestFailed, err)
	}
	return nil
}

func (c *Client) fetchMovies(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]domain.Movie, error) {
	body, err := c.doRequest(ctx, method, path, query, payload)
	if err != nil {
		return nil, err
	}

	var dtos []MovieDTO
	if err := c.decode(body, &dtos); err != nil {
		return nil, err
	}
	return MapMovies(dtos), nil
}

// GetGenres returns the genre labels from the "genres" field
func (c *Client) GetGenres(ctx context.Context) ([]string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/genres", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp GenresResponse
	if err := c.decode(body, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// GetRandomMovies returns count random movies
func (c *Client) GetRandomMovies(ctx context.Context, count int) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("count", strconv.Itoa(count))
	return c.fetchMovies(ctx, http.MethodGet, "/movies/random", query, nil)
}

// SearchMovies returns movies matching a free-text query
func (c *Client) SearchMovies(ctx context.Context, query string) ([]domain.Movie, error) {
	q := url.Values{}
	q.Set("q", query)
	return c.fetchMovies(ctx, http.MethodGet, "/movies/search", q, nil)
}

// GetGenreRecommendations posts {genres, count} to /recommend/genre
func (c *Client) GetGenreRecommendations(ctx context.Context, genres []string, count int) ([]domain.Movie, error) {
	payload := GenreRequest{Genres: nonNil(genres), Count: count}
	return c.fetchMovies(ctx, http.MethodPost, "/recommend/genre", nil, payload)
}

// GetFeedbackRecommendations posts {liked, disliked, count} to /recommend/feedback.
// Empty lists are sent as-is; deciding whether to call at all is the caller's job.
func (c *Client) GetFeedbackRecommendations(ctx context.Context, liked, disliked []string, count int) ([]domain.Movie, error) {
	payload := FeedbackRequest{Liked: nonNil(liked), Disliked: nonNil(disliked), Count: count}
	return c.fetchMovies(ctx, http.MethodPost, "/recommend/feedback", nil, payload)
}

// Health probes the service root and returns its status string
func (c *Client) Health(ctx context.Context) (string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return "", err
	}

	var resp HealthResponse
	if err := c.decode(body, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}
