package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/mmcdole/cinematch/internal/tui/styles"
)

// Card layout
const (
	OverviewLimit = 120 // Characters of overview shown on a card
	GenreLimit    = 3   // Genre tags shown on a card
)

// MovieCard renders a single movie and, with actions enabled, lets the user
// like or dislike it
type MovieCard struct {
	movie       domain.Movie
	rater       domain.Rater
	pref        domain.Preference
	showActions bool
}

// NewMovieCard creates a card. The initial like/dislike state is read from
// rater; a nil rater leaves the card unrated and without actions.
func NewMovieCard(movie domain.Movie, rater domain.Rater, showActions bool) MovieCard {
	c := MovieCard{
		movie:       movie,
		rater:       rater,
		showActions: showActions && rater != nil,
	}
	if rater != nil && movie.Title != "" {
		c.pref = rater.Preference(movie.Title)
	}
	return c
}

// Movie returns the card's movie
func (c MovieCard) Movie() domain.Movie {
	return c.movie
}

// Preference returns the card's current like/dislike state
func (c MovieCard) Preference() domain.Preference {
	return c.pref
}

// ShowsActions reports whether the card accepts ratings
func (c MovieCard) ShowsActions() bool {
	return c.showActions
}

// Like marks the movie liked. Returns false when nothing changed.
func (c *MovieCard) Like() bool {
	return c.rate(domain.PreferenceLike)
}

// Dislike marks the movie disliked. Returns false when nothing changed.
func (c *MovieCard) Dislike() bool {
	return c.rate(domain.PreferenceDislike)
}

func (c *MovieCard) rate(pref domain.Preference) bool {
	if !c.showActions || c.movie.Title == "" || c.pref == pref {
		return false
	}
	c.pref = pref
	c.rater.SetPreference(c.movie.Title, pref)
	return true
}

// Indicator returns the row marker for the card's preference
func (c MovieCard) Indicator() (string, lipgloss.Color) {
	switch c.pref {
	case domain.PreferenceLike:
		return styles.LikedChar, styles.Green
	case domain.PreferenceDislike:
		return styles.DislikedChar, styles.Red
	default:
		return styles.UnratedChar, styles.DimGray
	}
}

// View renders the card at the given width
func (c MovieCard) View(width int, focused bool) string {
	style := styles.InactiveBorder
	if focused {
		style = styles.ActiveBorder
	}
	frameW, _ := style.GetFrameSize()
	inner := width - frameW - 2
	if inner < 10 {
		inner = 10
	}

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(styles.Truncate(c.movie.Title, inner)))

	if c.movie.HasRating() {
		lines = append(lines, styles.RatingStyle.Render(styles.RatingChar+" "+c.movie.FormattedRating()))
	}

	if overview := c.movie.ShortOverview(OverviewLimit); overview != "" {
		lines = append(lines, "", styles.SubtitleStyle.Render(styles.WordWrap(overview, inner)))
	}

	if genres := c.movie.GenreList(GenreLimit); len(genres) > 0 {
		tags := make([]string, len(genres))
		for i, g := range genres {
			tags[i] = styles.TagStyle.Render(g)
		}
		lines = append(lines, "", strings.Join(tags, " "))
	}

	lines = append(lines, "", styles.DimStyle.Render(styles.Truncate(c.movie.Poster(), inner)))

	if c.showActions {
		lines = append(lines, "", c.renderActions())
	}

	return style.Padding(0, 1).Width(width - frameW).Render(strings.Join(lines, "\n"))
}

func (c MovieCard) renderActions() string {
	like := styles.DimStyle.Render("[+] " + styles.LikedChar + " Like")
	if c.pref == domain.PreferenceLike {
		like = styles.LikedBadgeStyle.Render(styles.LikedChar + " Liked")
	}
	dislike := styles.DimStyle.Render("[-] " + styles.DislikedChar + " Dislike")
	if c.pref == domain.PreferenceDislike {
		dislike = styles.DislikedBadgeStyle.Render(styles.DislikedChar + " Disliked")
	}
	return like + "  " + dislike
}
