package recommender

// Wire types for the recommendation service JSON API.

// MovieDTO is a single movie as returned by the service.
type MovieDTO struct {
	Title       string   `json:"title"`
	PosterURL   string   `json:"poster_url"`
	VoteAverage *float64 `json:"vote_average"`
	Overview    string   `json:"overview"`
	Genres      string   `json:"genres"`
}

// GenresResponse is the /genres payload
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// GenreRequest is the /recommend/genre body
type GenreRequest struct {
	Genres []string `json:"genres"`
	Count  int      `json:"count"`
}

// FeedbackRequest is the /recommend/feedback body
type FeedbackRequest struct {
	Liked    []string `json:"liked"`
	Disliked []string `json:"disliked"`
	Count    int      `json:"count"`
}

// ErrorResponse is the body the service sends with non-2xx statuses
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the / payload
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
