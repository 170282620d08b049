package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/mmcdole/cinematch/internal/service"
	"github.com/mmcdole/cinematch/internal/tui/components"
)

type genreFocus int

const (
	focusSelector genreFocus = iota
	focusResults
)

// GenrePage lets the user pick genres and shows recommendations for them
type GenrePage struct {
	pageBase

	genresState PageState
	recsState   PageState
	errText     string

	selector components.GenreSelector
	grid     components.MovieGrid
	focus    genreFocus
}

// NewGenrePage creates the genre page
func NewGenrePage(svc *service.RecommendationService, logger *slog.Logger) *GenrePage {
	return &GenrePage{
		pageBase: newPageBase(PageGenre, svc, logger),
		selector: components.NewGenreSelector("Get Recommendations"),
		grid:     components.NewMovieGrid("Recommended for you"),
	}
}

// Mount resets the page and loads the genre list
func (p *GenrePage) Mount() tea.Cmd {
	p.beginMount()
	p.selector = components.NewGenreSelector("Get Recommendations")
	p.grid.Clear()
	p.grid.SetEmptyText("Select genres and press enter on Get Recommendations")
	p.recsState = StateIdle
	p.errText = ""
	p.setFocus(focusSelector)
	p.layout()
	return p.loadGenres()
}

func (p *GenrePage) loadGenres() tea.Cmd {
	p.genresState = StateLoading
	p.errText = ""
	return LoadGenresCmd(p.svc, p.nextTag())
}

// GenresState returns the state of the genre list request
func (p *GenrePage) GenresState() PageState {
	return p.genresState
}

// RecommendationsState returns the state of the recommendation request
func (p *GenrePage) RecommendationsState() PageState {
	return p.recsState
}

// ErrorText returns the error shown on the page
func (p *GenrePage) ErrorText() string {
	return p.errText
}

// Selector exposes the genre selector
func (p *GenrePage) Selector() *components.GenreSelector {
	return &p.selector
}

// Results returns the recommended movies
func (p *GenrePage) Results() []domain.Movie {
	return p.grid.Movies()
}

func (p *GenrePage) Loading() bool {
	return p.genresState == StateLoading || p.recsState == StateLoading
}

func (p *GenrePage) Capturing() bool {
	return p.selector.IsFilterTyping() || p.grid.IsFilterTyping()
}

func (p *GenrePage) Help() []key.Binding {
	if p.focus == focusResults {
		return []key.Binding{Keys.Left, components.MovieGridKeys.Filter}
	}
	bindings := []key.Binding{components.GenreSelectorKeys.Toggle, components.GenreSelectorKeys.Enter, components.GenreSelectorKeys.Filter}
	if p.grid.Len() > 0 {
		bindings = append(bindings, Keys.Right)
	}
	if p.genresState == StateFailure {
		bindings = append(bindings, Keys.Reload)
	}
	return bindings
}

func (p *GenrePage) SetSize(width, height int) {
	p.pageBase.SetSize(width, height)
	p.layout()
}

func (p *GenrePage) layout() {
	left, right := splitColumns(p.width, SelectorColumnPercent)
	h := p.height - headerHeight(p.header())
	p.selector.SetSize(left, h)
	p.grid.SetSize(right, h)
}

func (p *GenrePage) setFocus(f genreFocus) {
	p.focus = f
	p.selector.SetFocused(f == focusSelector)
	p.grid.SetFocused(f == focusResults)
}

// Update handles messages addressed to the page
func (p *GenrePage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case GenresLoadedMsg:
		if !p.accept(msg) {
			return nil
		}
		p.genresState = StateSuccess
		p.selector.SetGenres(msg.Genres)
		return nil

	case MoviesLoadedMsg:
		if !p.accept(msg) || msg.Source != SourceGenre {
			return nil
		}
		p.recsState = StateSuccess
		p.errText = ""
		p.grid.SetEmptyText("No recommendations found for these genres")
		p.grid.SetMovies(msg.Movies, p.svc, false)
		if len(msg.Movies) > 0 {
			p.setFocus(focusResults)
		}
		return nil

	case RequestFailedMsg:
		if !p.accept(msg) {
			return nil
		}
		if msg.Source == SourceGenres {
			p.genresState = StateFailure
			p.errText = userMessage(msg.Err, msgLoadGenres)
		} else {
			p.recsState = StateFailure
			p.errText = userMessage(msg.Err, msgRecommend)
		}
		if status := statusForError(msg.Err); status != "" {
			return StatusCmd(status, true)
		}
		return nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *GenrePage) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.focus == focusResults {
		if !p.grid.IsFiltering() && (key.Matches(msg, Keys.Left) || key.Matches(msg, Keys.Back)) {
			p.setFocus(focusSelector)
			return nil
		}
		var cmd tea.Cmd
		p.grid, cmd = p.grid.Update(msg)
		return cmd
	}

	if !p.selector.IsFilterTyping() {
		switch {
		case key.Matches(msg, Keys.Right):
			if p.grid.Len() > 0 {
				p.setFocus(focusResults)
			}
			return nil
		case key.Matches(msg, Keys.Reload) && p.genresState == StateFailure:
			return p.loadGenres()
		}
	}

	var cmd tea.Cmd
	var submitted bool
	p.selector, cmd, submitted = p.selector.Update(msg)
	if submitted {
		return p.recommend()
	}
	return cmd
}

// recommend requests recommendations for the selected genres
func (p *GenrePage) recommend() tea.Cmd {
	genres := p.selector.Selected()
	if len(genres) == 0 {
		p.errText = userMessage(domain.ErrNoGenres, "")
		return nil
	}
	p.recsState = StateLoading
	p.errText = ""
	return GenreRecommendationsCmd(p.svc, p.nextTag(), genres, p.svc.Count())
}

func (p *GenrePage) header() string {
	return renderPageHeader(
		"Discover by Genre",
		"Select one or more genres to get personalized movie recommendations.",
		p.width,
	) + "\n" + p.statusLine()
}

func (p *GenrePage) statusLine() string {
	switch {
	case p.errText != "":
		return RenderError(p.errText, p.width)
	case p.genresState == StateLoading:
		return renderLoading("Loading genres...")
	case p.recsState == StateLoading:
		return renderLoading("Finding movies...")
	default:
		return " "
	}
}

// View renders the page
func (p *GenrePage) View() string {
	return p.header() + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, p.selector.View(), p.grid.View())
}
