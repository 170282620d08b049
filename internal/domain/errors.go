package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrRequestFailed covers every failed call to the recommendation service
	ErrRequestFailed = errors.New("recommendation request failed")

	// ErrServiceOffline indicates the recommendation service is unreachable
	ErrServiceOffline = fmt.Errorf("%w: service is unreachable", ErrRequestFailed)

	// ErrNoGenres indicates a genre recommendation was requested with no selection
	ErrNoGenres = errors.New("please select at least one genre")

	// ErrNoFeedback indicates feedback recommendations were requested with no ratings
	ErrNoFeedback = errors.New("rate at least one movie first")

	// ErrEmptyQuery indicates a search with a blank query
	ErrEmptyQuery = errors.New("search query is empty")
)
