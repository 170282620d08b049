package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/mmcdole/cinematch/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Title line at top of content area
	TitleLines = 1

	// Extra safety margin for item width calculations
	ItemWidthMargin = 2

	// Below this width the detail card is hidden
	DetailMinWidth = 70
	DetailPercent  = 45
)

// MovieGrid is a scrolling movie list with a detail card for the
// selected movie
type MovieGrid struct {
	cards []MovieCard

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title     string
	emptyText string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into cards
}

// NewMovieGrid creates a new movie grid
func NewMovieGrid(title string) MovieGrid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return MovieGrid{
		title:       title,
		emptyText:   "No movies",
		filterInput: ti,
	}
}

// SetMovies replaces the grid content. Card state is read from rater.
func (g *MovieGrid) SetMovies(movies []domain.Movie, rater domain.Rater, showActions bool) {
	g.cards = make([]MovieCard, len(movies))
	for i, m := range movies {
		g.cards[i] = NewMovieCard(m, rater, showActions)
	}
	g.cursor = 0
	g.offset = 0
	g.clearFilter()
}

// Clear removes all movies
func (g *MovieGrid) Clear() {
	g.SetMovies(nil, nil, false)
}

// Movies returns the movies in display order, ignoring the filter
func (g MovieGrid) Movies() []domain.Movie {
	out := make([]domain.Movie, len(g.cards))
	for i, c := range g.cards {
		out[i] = c.Movie()
	}
	return out
}

// SetTitle sets the text displayed above the list
func (g *MovieGrid) SetTitle(title string) {
	g.title = title
}

// SetEmptyText sets the text shown when there are no movies
func (g *MovieGrid) SetEmptyText(text string) {
	g.emptyText = text
}

// SetSize updates the component dimensions
func (g *MovieGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcMaxVisible()
}

// recalcMaxVisible calculates maxVisible accounting for title and filter bar
func (g *MovieGrid) recalcMaxVisible() {
	interiorHeight := g.height - BorderHeight
	g.maxVisible = interiorHeight - ScrollIndicatorLines - TitleLines
	if g.filterActive {
		g.maxVisible--
	}
	if g.maxVisible < 1 {
		g.maxVisible = 1
	}
}

// SetFocused sets the focus state
func (g *MovieGrid) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns the focus state
func (g MovieGrid) IsFocused() bool {
	return g.focused
}

// Cursor returns the current cursor position
func (g MovieGrid) Cursor() int {
	return g.cursor
}

// Len returns the total number of movies
func (g MovieGrid) Len() int {
	return len(g.cards)
}

// IsEmpty returns true if there are no visible items
func (g MovieGrid) IsEmpty() bool {
	return g.itemCount() == 0
}

// Selected returns the card under the cursor, or nil
func (g *MovieGrid) Selected() *MovieCard {
	if g.itemCount() == 0 {
		return nil
	}
	return &g.cards[g.mapIndex(g.cursor)]
}

// LikeSelected likes the movie under the cursor
func (g *MovieGrid) LikeSelected() (string, bool) {
	card := g.Selected()
	if card == nil {
		return "", false
	}
	return card.Movie().Title, card.Like()
}

// DislikeSelected dislikes the movie under the cursor
func (g *MovieGrid) DislikeSelected() (string, bool) {
	card := g.Selected()
	if card == nil {
		return "", false
	}
	return card.Movie().Title, card.Dislike()
}

// ensureVisible adjusts offset so the cursor is within the visible range
func (g *MovieGrid) ensureVisible() {
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	if g.cursor >= g.offset+g.maxVisible {
		g.offset = g.cursor - g.maxVisible + 1
	}
}

// IsFilterTyping returns true if the filter input has focus
func (g MovieGrid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// IsFiltering returns true if filter mode is active
func (g MovieGrid) IsFiltering() bool {
	return g.filterActive
}

func (g *MovieGrid) startFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalcMaxVisible()
}

func (g *MovieGrid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcMaxVisible()
}

// applyFilter narrows the list to titles matching the current query
func (g *MovieGrid) applyFilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
	} else {
		lowerTitles := make([]string, len(g.cards))
		for i, c := range g.cards {
			lowerTitles[i] = strings.ToLower(c.Movie().Title)
		}
		matches := fuzzy.Find(strings.ToLower(query), lowerTitles)
		g.filteredIdx = make([]int, len(matches))
		for i, match := range matches {
			g.filteredIdx[i] = match.Index
		}
	}

	g.cursor = 0
	g.offset = 0
}

// itemCount returns the number of items (accounting for filter)
func (g MovieGrid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.cards)
}

// mapIndex maps a visible index to an index into cards
func (g MovieGrid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// Update handles navigation and filter keys
func (g MovieGrid) Update(msg tea.Msg) (MovieGrid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Typing into the filter
	if g.IsFilterTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, MovieGridKeys.Escape):
				g.clearFilter()
				return g, nil
			case key.Matches(keyMsg, MovieGridKeys.Enter):
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case keyMsg.Type == tea.KeyBackspace && g.filterInput.Value() == "":
				g.clearFilter()
				return g, nil
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	switch {
	case key.Matches(keyMsg, MovieGridKeys.Filter):
		if g.filterActive {
			g.filterInput.Focus()
		} else if len(g.cards) > 0 {
			g.startFilter()
		}
		return g, nil
	case g.filterActive && key.Matches(keyMsg, MovieGridKeys.Escape):
		g.clearFilter()
		return g, nil
	}

	count := g.itemCount()
	if count == 0 {
		return g, nil
	}

	switch {
	case key.Matches(keyMsg, MovieGridKeys.Down):
		if g.cursor < count-1 {
			g.cursor++
			g.ensureVisible()
		}
	case key.Matches(keyMsg, MovieGridKeys.Up):
		if g.cursor > 0 {
			g.cursor--
			g.ensureVisible()
		}
	case key.Matches(keyMsg, MovieGridKeys.Home):
		g.cursor = 0
		g.offset = 0
	case key.Matches(keyMsg, MovieGridKeys.End):
		g.cursor = count - 1
		g.ensureVisible()
	case key.Matches(keyMsg, MovieGridKeys.HalfDown):
		g.cursor += g.maxVisible / 2
		if g.cursor >= count {
			g.cursor = count - 1
		}
		g.ensureVisible()
	case key.Matches(keyMsg, MovieGridKeys.HalfUp):
		g.cursor -= g.maxVisible / 2
		if g.cursor < 0 {
			g.cursor = 0
		}
		g.ensureVisible()
	}

	return g, nil
}

// View renders the list and, when there is room, the selected movie's card
func (g MovieGrid) View() string {
	listWidth := g.width
	detailWidth := 0
	selected := g.Selected()
	if g.width >= DetailMinWidth && selected != nil {
		detailWidth = g.width * DetailPercent / 100
		listWidth = g.width - detailWidth
	}

	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()

	list := style.
		Padding(0, 1).
		Width(listWidth - frameW).
		Height(g.height - frameH).
		Render(g.renderList(listWidth))

	if detailWidth == 0 {
		return list
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, list, selected.View(detailWidth, false))
}

// renderList renders the list view
func (g MovieGrid) renderList(width int) string {
	itemWidth := width - BorderWidth - HorizontalPadding - ItemWidthMargin

	titleLine := " "
	if g.title != "" {
		title := g.title
		if len(g.cards) > 0 {
			title = fmt.Sprintf("%s (%d)", g.title, len(g.cards))
		}
		titleLine = styles.AccentStyle.Render(styles.Truncate(title, itemWidth))
	}

	count := g.itemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render(g.emptyText)
		if g.filterActive && g.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n \n" + emptyMsg + "\n "
		if g.filterActive {
			content += "\n" + g.renderFilterBar()
		}
		return content
	}

	end := g.offset + g.maxVisible
	if end > count {
		end = count
	}

	lines := make([]string, 0, end-g.offset)
	for i := g.offset; i < end; i++ {
		lines = append(lines, g.renderRow(g.cards[g.mapIndex(i)], i == g.cursor, itemWidth))
	}

	// Always reserve the scroll indicator lines to prevent layout shifts
	header := " "
	if g.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}
	return content
}

// renderRow renders a movie row: preference marker, title and rating
func (g MovieGrid) renderRow(card MovieCard, selected bool, width int) string {
	indicator, indicatorFg := card.Indicator()
	movie := card.Movie()

	rating := ""
	if movie.HasRating() {
		rating = " " + styles.RatingChar + " " + fmt.Sprintf("%.1f", *movie.VoteAverage)
	}
	title := styles.Truncate(movie.Title, width-lipgloss.Width(rating)-4)
	gold := styles.Gold

	parts := []styles.RowPart{
		{Text: indicator, Foreground: &indicatorFg},
		{Text: " " + title, Foreground: nil},
		{Text: rating, Foreground: &gold},
	}

	return styles.RenderListRow(parts, selected, width)
}

// renderFilterBar renders the filter input with the match count
func (g MovieGrid) renderFilterBar() string {
	countStr := ""
	if g.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.itemCount(), len(g.cards)))
	}
	return g.filterInput.View() + countStr
}
