package tui

import (
	"github.com/mmcdole/cinematch/internal/domain"
)

// Message types for the TUI

// MovieSource names the request that produced a movie list
type MovieSource int

const (
	SourceRandom MovieSource = iota
	SourceSearch
	SourceGenre
	SourceFeedback
	SourceGenres // genre list, not movies
)

func (s MovieSource) String() string {
	switch s {
	case SourceRandom:
		return "random"
	case SourceSearch:
		return "search"
	case SourceGenre:
		return "genre"
	case SourceFeedback:
		return "feedback"
	case SourceGenres:
		return "genres"
	default:
		return "unknown"
	}
}

// GenresLoadedMsg signals that the genre list has been loaded
type GenresLoadedMsg struct {
	requestTag
	Genres []string
}

// MoviesLoadedMsg signals that a movie list has been loaded
type MoviesLoadedMsg struct {
	requestTag
	Source MovieSource
	Movies []domain.Movie
	Query  string // search query when Source is SourceSearch
	Auto   bool   // feedback recommendations requested on mount
}

// RequestFailedMsg signals that a request to the recommendation service failed
type RequestFailedMsg struct {
	requestTag
	Source MovieSource
	Err    error
	Auto   bool
}

// Error implements the error interface
func (e RequestFailedMsg) Error() string {
	return e.Source.String() + ": " + e.Err.Error()
}

// TickMsg is sent periodically for spinner animation
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
