package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/cinematch/internal/tui/styles"
)

// GenreSelector is a multi-select list of genre chips followed by an
// action row that submits the selection
type GenreSelector struct {
	genres   []string
	selected map[string]bool
	visible  []int // indices into genres, in display order

	// cursor ranges over visible plus the trailing action row
	cursor int
	offset int

	width   int
	height  int
	focused bool

	actionLabel string

	filterActive bool
	filterInput  textinput.Model
}

// NewGenreSelector creates a selector whose action row reads actionLabel
func NewGenreSelector(actionLabel string) GenreSelector {
	ti := textinput.New()
	ti.Placeholder = "type to narrow..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return GenreSelector{
		selected:    make(map[string]bool),
		actionLabel: actionLabel,
		filterInput: ti,
	}
}

// SetGenres replaces the genre list, keeping selections that still exist
func (s *GenreSelector) SetGenres(genres []string) {
	s.genres = genres
	kept := make(map[string]bool)
	for _, g := range genres {
		if s.selected[g] {
			kept[g] = true
		}
	}
	s.selected = kept
	s.cursor = 0
	s.offset = 0
	s.clearFilter()
}

// Genres returns every genre
func (s GenreSelector) Genres() []string {
	return s.genres
}

// Toggle flips the selection of genre
func (s *GenreSelector) Toggle(genre string) {
	if s.selected[genre] {
		delete(s.selected, genre)
	} else {
		s.selected[genre] = true
	}
}

// IsSelected reports whether genre is selected
func (s GenreSelector) IsSelected(genre string) bool {
	return s.selected[genre]
}

// Selected returns the selected genres in list order
func (s GenreSelector) Selected() []string {
	out := make([]string, 0, len(s.selected))
	for _, g := range s.genres {
		if s.selected[g] {
			out = append(out, g)
		}
	}
	return out
}

// ClearSelection deselects every genre
func (s *GenreSelector) ClearSelection() {
	s.selected = make(map[string]bool)
}

// SetSize updates the component dimensions
func (s *GenreSelector) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets the focus state
func (s *GenreSelector) SetFocused(focused bool) {
	s.focused = focused
}

// IsFilterTyping returns true if the filter input has focus
func (s GenreSelector) IsFilterTyping() bool {
	return s.filterActive && s.filterInput.Focused()
}

// OnAction reports whether the cursor is on the action row
func (s GenreSelector) OnAction() bool {
	return s.cursor == len(s.visible)
}

// Current returns the genre under the cursor, or "" on the action row
func (s GenreSelector) Current() string {
	if s.OnAction() {
		return ""
	}
	return s.genres[s.visible[s.cursor]]
}

func (s *GenreSelector) clearFilter() {
	s.filterActive = false
	s.filterInput.SetValue("")
	s.filterInput.Blur()
	s.applyFilter()
}

// applyFilter narrows visible genres to fuzzy matches of the query, best
// matches first
func (s *GenreSelector) applyFilter() {
	query := s.filterInput.Value()
	if query == "" {
		s.visible = make([]int, len(s.genres))
		for i := range s.genres {
			s.visible[i] = i
		}
	} else {
		ranks := fuzzy.RankFindFold(query, s.genres)
		sort.SliceStable(ranks, func(i, j int) bool {
			if ranks[i].Distance != ranks[j].Distance {
				return ranks[i].Distance < ranks[j].Distance
			}
			return ranks[i].OriginalIndex < ranks[j].OriginalIndex
		})
		s.visible = make([]int, len(ranks))
		for i, r := range ranks {
			s.visible[i] = r.OriginalIndex
		}
	}
	s.cursor = 0
	s.offset = 0
}

// Update handles input events, returns (selector, cmd, submitted)
func (s GenreSelector) Update(msg tea.Msg) (GenreSelector, tea.Cmd, bool) {
	if !s.focused {
		return s, nil, false
	}

	if s.IsFilterTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, GenreSelectorKeys.Escape):
				s.clearFilter()
				return s, nil, false
			case key.Matches(keyMsg, GenreSelectorKeys.Enter):
				s.filterInput.Blur()
				return s, nil, false
			}
		}
		var cmd tea.Cmd
		s.filterInput, cmd = s.filterInput.Update(msg)
		s.applyFilter()
		return s, cmd, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}

	switch {
	case key.Matches(keyMsg, GenreSelectorKeys.Down):
		if s.cursor < len(s.visible) {
			s.cursor++
			s.ensureVisible()
		}
	case key.Matches(keyMsg, GenreSelectorKeys.Up):
		if s.cursor > 0 {
			s.cursor--
			s.ensureVisible()
		}
	case key.Matches(keyMsg, GenreSelectorKeys.Toggle):
		if !s.OnAction() {
			s.Toggle(s.Current())
		}
	case key.Matches(keyMsg, GenreSelectorKeys.Enter):
		if s.OnAction() {
			return s, nil, true
		}
		s.Toggle(s.Current())
	case key.Matches(keyMsg, GenreSelectorKeys.Filter):
		s.filterActive = true
		s.filterInput.Focus()
	case key.Matches(keyMsg, GenreSelectorKeys.Escape):
		if s.filterActive {
			s.clearFilter()
		}
	}

	return s, nil, false
}

func (s GenreSelector) listHeight() int {
	// Border, header, blank line, action row and optional filter bar
	h := s.height - BorderHeight - 4
	if s.filterActive {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (s *GenreSelector) ensureVisible() {
	if s.OnAction() {
		return
	}
	h := s.listHeight()
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+h {
		s.offset = s.cursor - h + 1
	}
}

// View renders the selector
func (s GenreSelector) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	itemWidth := s.width - BorderWidth - HorizontalPadding - ItemWidthMargin

	header := styles.AccentStyle.Render("Genres")
	if n := len(s.selected); n > 0 {
		header += styles.DimStyle.Render(fmt.Sprintf("  %d selected", n))
	}

	var rows []string
	if len(s.visible) == 0 {
		if s.filterActive {
			rows = append(rows, styles.DimStyle.Render("No matches"))
		} else {
			rows = append(rows, styles.DimStyle.Render("No genres"))
		}
	}

	end := s.offset + s.listHeight()
	if end > len(s.visible) {
		end = len(s.visible)
	}
	for i := s.offset; i < end; i++ {
		genre := s.genres[s.visible[i]]
		rows = append(rows, s.renderChip(genre, i == s.cursor && s.focused, itemWidth))
	}

	action := styles.ButtonStyle
	if len(s.selected) == 0 {
		action = styles.ButtonDisabledStyle
	}
	if s.OnAction() && s.focused {
		action = styles.ButtonFocusedStyle
	}
	actionRow := action.Render(s.actionLabel)

	content := header + "\n" + strings.Join(rows, "\n") + "\n\n" + actionRow
	if s.filterActive {
		content += "\n" + s.filterInput.View()
	}

	return style.
		Padding(0, 1).
		Width(s.width - frameW).
		Height(s.height - frameH).
		Render(content)
}

func (s GenreSelector) renderChip(genre string, cursor bool, width int) string {
	mark := styles.AddChar
	chip := styles.ChipStyle
	if s.selected[genre] {
		mark = styles.SelectedChar
		chip = styles.ChipSelectedStyle
	}
	if cursor {
		chip = styles.ChipCursorStyle
		if s.selected[genre] {
			chip = chip.Foreground(styles.Green)
		}
	}
	return chip.Render(mark + " " + styles.Truncate(genre, width-4))
}
