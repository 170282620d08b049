package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/mmcdole/cinematch/internal/service"
	"github.com/mmcdole/cinematch/internal/tui/components"
)

// HomePage shows a random selection of movies to rate, the stored rating
// counts and a title search
type HomePage struct {
	pageBase

	state   PageState
	errText string

	grid   components.MovieGrid
	search components.InputModal

	query  string         // active search, "" for the random list
	random []domain.Movie // last random list, restored by an empty search
	stats  domain.Stats
}

// NewHomePage creates the home page
func NewHomePage(svc *service.RecommendationService, logger *slog.Logger) *HomePage {
	p := &HomePage{
		pageBase: newPageBase(PageHome, svc, logger),
		grid:     components.NewMovieGrid("Discover"),
		search:   components.NewInputModal("movie title..."),
	}
	p.grid.SetFocused(true)
	return p
}

// Mount resets the page and loads random movies
func (p *HomePage) Mount() tea.Cmd {
	p.beginMount()
	p.errText = ""
	p.query = ""
	p.random = nil
	p.search.Hide()
	p.search.SetValue("")
	p.grid.Clear()
	p.stats = p.svc.Stats()
	return p.loadRandom()
}

func (p *HomePage) loadRandom() tea.Cmd {
	p.state = StateLoading
	p.errText = ""
	return LoadRandomCmd(p.svc, p.nextTag(), p.svc.Count())
}

// State returns the request state
func (p *HomePage) State() PageState {
	return p.state
}

// Movies returns the movies on display
func (p *HomePage) Movies() []domain.Movie {
	return p.grid.Movies()
}

// Query returns the active search query
func (p *HomePage) Query() string {
	return p.query
}

// ErrorText returns the error shown on the page
func (p *HomePage) ErrorText() string {
	return p.errText
}

func (p *HomePage) Loading() bool {
	return p.state == StateLoading
}

func (p *HomePage) Capturing() bool {
	return p.search.IsVisible() || p.grid.IsFilterTyping()
}

func (p *HomePage) Help() []key.Binding {
	return []key.Binding{Keys.Like, Keys.Dislike, Keys.Search, Keys.Reload, components.MovieGridKeys.Filter}
}

func (p *HomePage) SetSize(width, height int) {
	p.pageBase.SetSize(width, height)
	p.grid.SetSize(width, height-headerHeight(p.header()))
}

// Update handles messages addressed to the page
func (p *HomePage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case MoviesLoadedMsg:
		if !p.accept(msg) {
			return nil
		}
		p.state = StateSuccess
		p.errText = ""
		switch msg.Source {
		case SourceSearch:
			p.query = msg.Query
			p.grid.SetTitle(fmt.Sprintf("Results for %q", msg.Query))
			p.grid.SetEmptyText("No movies match your search")
		default:
			p.query = ""
			p.random = msg.Movies
			p.grid.SetTitle("Discover")
			p.grid.SetEmptyText("No movies")
		}
		p.grid.SetMovies(msg.Movies, p.svc, true)
		return nil

	case RequestFailedMsg:
		if !p.accept(msg) {
			return nil
		}
		p.state = StateFailure
		if msg.Source == SourceSearch {
			p.errText = userMessage(msg.Err, msgSearch)
		} else {
			p.errText = userMessage(msg.Err, msgLoadMovies)
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

func (p *HomePage) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.search.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		p.search, cmd, submitted = p.search.Update(msg)
		if submitted {
			return p.submitSearch(p.search.Value())
		}
		return cmd
	}

	if p.grid.IsFilterTyping() {
		var cmd tea.Cmd
		p.grid, cmd = p.grid.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, Keys.Search):
		p.search.Show("Search movies")
		return nil
	case key.Matches(msg, Keys.Reload):
		p.search.SetValue("")
		return p.loadRandom()
	case key.Matches(msg, Keys.Like):
		if title, ok := p.grid.LikeSelected(); ok {
			p.stats = p.svc.Stats()
			return StatusCmd("Liked "+title, false)
		}
		return nil
	case key.Matches(msg, Keys.Dislike):
		if title, ok := p.grid.DislikeSelected(); ok {
			p.stats = p.svc.Stats()
			return StatusCmd("Disliked "+title, false)
		}
		return nil
	}

	var cmd tea.Cmd
	p.grid, cmd = p.grid.Update(msg)
	return cmd
}

// submitSearch runs a search; an empty query restores the random list
func (p *HomePage) submitSearch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		p.query = ""
		p.state = StateSuccess
		p.errText = ""
		p.grid.SetTitle("Discover")
		p.grid.SetEmptyText("No movies")
		p.grid.SetMovies(p.random, p.svc, true)
		return nil
	}
	p.state = StateLoading
	p.errText = ""
	return SearchCmd(p.svc, p.nextTag(), query)
}

func (p *HomePage) header() string {
	return renderPageHeader(
		"Welcome to CineMatch",
		"Discover movies you'll love. Search by title, pick genres, or rate movies for personalized picks.",
		p.width,
	) + "\n" + renderStoredStats(p.stats)
}

// View renders the page
func (p *HomePage) View() string {
	header := p.header()

	var body string
	switch {
	case p.state == StateLoading && p.grid.Len() == 0:
		if p.search.Value() != "" {
			body = renderLoading("Searching...")
		} else {
			body = renderLoading("Loading movies...")
		}
	case p.state == StateFailure:
		body = RenderError(p.errText, p.width) + "\n" + renderLoading("Press r to reload.")
		if p.grid.Len() > 0 {
			body += "\n\n" + p.grid.View()
		}
	default:
		body = p.grid.View()
	}

	view := header + "\n\n" + body
	if p.search.IsVisible() {
		view = lipgloss.Place(p.width, p.height,
			lipgloss.Center, lipgloss.Center,
			p.search.View())
	}
	return view
}
