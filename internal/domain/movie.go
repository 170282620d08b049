package domain

import (
	"fmt"
	"strings"
)

// PosterPlaceholder is shown for movies the service returns without a poster.
const PosterPlaceholder = "https://via.placeholder.com/300x450?text=No+Poster"

// Movie is a recommendation result as returned by the recommendation service.
// Only Title is guaranteed; the rest may be empty.
type Movie struct {
	Title       string   // Display title, also the preference key
	PosterURL   string   // Poster image URL
	VoteAverage *float64 // Audience rating on a 0-10 scale (nil = unknown)
	Overview    string   // Plot synopsis
	Genres      string   // Comma-joined genre names, e.g. "Action, Thriller"
}

// HasRating reports whether the service supplied a rating.
func (m Movie) HasRating() bool {
	return m.VoteAverage != nil && *m.VoteAverage != 0
}

// FormattedRating returns the rating as "7.3/10", or "" when unknown.
func (m Movie) FormattedRating() string {
	if !m.HasRating() {
		return ""
	}
	return fmt.Sprintf("%.1f/10", *m.VoteAverage)
}

// Poster returns the poster URL or the placeholder image.
func (m Movie) Poster() string {
	if m.PosterURL == "" {
		return PosterPlaceholder
	}
	return m.PosterURL
}

// GenreList splits the comma-joined genres and returns at most limit of them.
// limit <= 0 returns all genres.
func (m Movie) GenreList(limit int) []string {
	if strings.TrimSpace(m.Genres) == "" {
		return nil
	}
	var out []string
	for _, g := range strings.Split(m.Genres, ",") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		out = append(out, g)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// ShortOverview returns the first n runes of the overview followed by "...".
func (m Movie) ShortOverview(n int) string {
	if m.Overview == "" {
		return ""
	}
	runes := []rune(m.Overview)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}
