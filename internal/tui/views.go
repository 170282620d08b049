package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/mmcdole/cinematch/internal/tui/styles"
)

// User-facing error text
const (
	msgLoadMovies     = "Failed to load movies. Please try again."
	msgLoadGenres     = "Failed to load genres. Please try again."
	msgNoGenres       = "Please select at least one genre"
	msgRecommend      = "Failed to get recommendations. Please try again."
	msgSearch         = "Search failed. Please try again."
	msgNoFeedback     = "Like or dislike at least one movie first"
	msgServiceOffline = "Recommendation service is unreachable"
)

// userMessage maps an error to the text shown in a view
func userMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, domain.ErrNoGenres):
		return msgNoGenres
	case errors.Is(err, domain.ErrNoFeedback):
		return msgNoFeedback
	default:
		return fallback
	}
}

// statusForError returns the status line text for a failed request
func statusForError(err error) string {
	if errors.Is(err, domain.ErrServiceOffline) {
		return msgServiceOffline
	}
	return ""
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}

// RenderError renders an error message
func RenderError(text string, width int) string {
	return styles.ErrorStyle.Render(styles.WordWrap(text, width-4))
}

// renderPageHeader renders a page title and subtitle
func renderPageHeader(title, subtitle string, width int) string {
	out := styles.TitleStyle.Render(title)
	if subtitle != "" {
		out += "\n" + styles.SubtitleStyle.Render(styles.WordWrap(subtitle, width-2))
	}
	return out
}

// renderStats renders the liked/disliked counters
func renderStats(liked, disliked int) string {
	return styles.SuccessStyle.Render(fmt.Sprintf("%s %d liked", styles.LikedChar, liked)) +
		styles.DimStyle.Render("  ·  ") +
		styles.ErrorStyle.Render(fmt.Sprintf("%s %d disliked", styles.DislikedChar, disliked))
}

// renderStoredStats renders the persisted preference counts
func renderStoredStats(stats domain.Stats) string {
	if stats.TotalCount == 0 {
		return styles.DimStyle.Render("No ratings yet. Rate movies to get personalized picks.")
	}
	return renderStats(stats.LikedCount, stats.DislikedCount) +
		styles.DimStyle.Render(fmt.Sprintf("  ·  %d rated", stats.TotalCount))
}

// renderLoading renders a loading line
func renderLoading(text string) string {
	return styles.DimStyle.Render(text)
}

// renderKeyHints renders bindings as "key desc" pairs
func renderKeyHints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, styles.DimStyle.Render("  "))
}
