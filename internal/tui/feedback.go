package tui

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinematch/internal/domain"
	"github.com/mmcdole/cinematch/internal/service"
	"github.com/mmcdole/cinematch/internal/tui/components"
	"github.com/mmcdole/cinematch/internal/tui/styles"
)

// FeedbackPage lets the user rate movies and get recommendations from
// those ratings
type FeedbackPage struct {
	pageBase

	state   PageState
	errText string

	// Ratings made in this session, seeded from the store on mount
	liked    []string
	disliked []string

	candidates  components.MovieGrid
	results     components.MovieGrid
	showResults bool
}

// NewFeedbackPage creates the feedback page
func NewFeedbackPage(svc *service.RecommendationService, logger *slog.Logger) *FeedbackPage {
	p := &FeedbackPage{
		pageBase:   newPageBase(PageFeedback, svc, logger),
		candidates: components.NewMovieGrid("Rate These Movies"),
		results:    components.NewMovieGrid("Your Personalized Recommendations"),
	}
	p.candidates.SetFocused(true)
	p.results.SetFocused(true)
	return p
}

// Mount reads the stored ratings. With ratings it requests recommendations
// straight away, otherwise it loads movies to rate.
func (p *FeedbackPage) Mount() tea.Cmd {
	p.beginMount()
	p.errText = ""
	p.showResults = false
	p.candidates.Clear()
	p.results.Clear()

	saved := p.svc.SavedFeedback()
	p.liked = saved.Liked
	p.disliked = saved.Disliked

	if !saved.IsEmpty() {
		p.logger.Info("recommending from stored ratings", "liked", len(p.liked), "disliked", len(p.disliked))
		p.state = StateLoading
		return FeedbackRecommendationsCmd(p.svc, p.nextTag(), p.liked, p.disliked, p.svc.Count(), true)
	}
	return p.loadCandidates()
}

func (p *FeedbackPage) loadCandidates() tea.Cmd {
	p.state = StateLoading
	return LoadRandomCmd(p.svc, p.nextTag(), p.svc.Count())
}

// State returns the request state
func (p *FeedbackPage) State() PageState {
	return p.state
}

// Liked returns the titles liked in this session
func (p *FeedbackPage) Liked() []string {
	return p.liked
}

// Disliked returns the titles disliked in this session
func (p *FeedbackPage) Disliked() []string {
	return p.disliked
}

// ShowingResults reports whether recommendations are on display
func (p *FeedbackPage) ShowingResults() bool {
	return p.showResults
}

// Candidates returns the movies offered for rating
func (p *FeedbackPage) Candidates() []domain.Movie {
	return p.candidates.Movies()
}

// Results returns the recommended movies
func (p *FeedbackPage) Results() []domain.Movie {
	return p.results.Movies()
}

// ErrorText returns the error shown on the page
func (p *FeedbackPage) ErrorText() string {
	return p.errText
}

func (p *FeedbackPage) hasRatings() bool {
	return len(p.liked) > 0 || len(p.disliked) > 0
}

func (p *FeedbackPage) Loading() bool {
	return p.state == StateLoading
}

func (p *FeedbackPage) Capturing() bool {
	return p.activeGrid().IsFilterTyping()
}

func (p *FeedbackPage) Help() []key.Binding {
	if p.showResults {
		return []key.Binding{Keys.StartOver, components.MovieGridKeys.Filter}
	}
	recommend := Keys.Recommend
	recommend.SetEnabled(p.hasRatings() && !p.Loading())
	clearRatings := Keys.Clear
	clearRatings.SetEnabled(p.hasRatings())
	return []key.Binding{Keys.Like, Keys.Dislike, recommend, Keys.LoadMore, clearRatings}
}

func (p *FeedbackPage) activeGrid() *components.MovieGrid {
	if p.showResults {
		return &p.results
	}
	return &p.candidates
}

func (p *FeedbackPage) SetSize(width, height int) {
	p.pageBase.SetSize(width, height)
	h := height - headerHeight(p.header())
	p.candidates.SetSize(width, h)
	p.results.SetSize(width, h)
}

// Update handles messages addressed to the page
func (p *FeedbackPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case MoviesLoadedMsg:
		if !p.accept(msg) {
			return nil
		}
		p.state = StateSuccess
		p.errText = ""
		if msg.Source == SourceFeedback {
			p.results.SetMovies(msg.Movies, p.svc, false)
			p.showResults = true
		} else {
			p.candidates.SetMovies(msg.Movies, p.svc, true)
		}
		return nil

	case RequestFailedMsg:
		if !p.accept(msg) {
			return nil
		}
		if msg.Source == SourceFeedback && msg.Auto {
			p.logger.Warn("stored ratings recommendation failed, loading movies to rate", "error", msg.Err)
			return p.loadCandidates()
		}
		p.state = StateFailure
		if msg.Source == SourceFeedback {
			p.errText = userMessage(msg.Err, msgRecommend)
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

func (p *FeedbackPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	grid := p.activeGrid()
	if grid.IsFilterTyping() {
		var cmd tea.Cmd
		*grid, cmd = grid.Update(msg)
		return cmd
	}

	if p.showResults {
		if key.Matches(msg, Keys.StartOver) {
			return p.startOver()
		}
	} else {
		switch {
		case key.Matches(msg, Keys.Like):
			if title, ok := p.candidates.LikeSelected(); ok {
				p.recordRating(title, domain.PreferenceLike)
				return StatusCmd("Liked "+title, false)
			}
			return nil
		case key.Matches(msg, Keys.Dislike):
			if title, ok := p.candidates.DislikeSelected(); ok {
				p.recordRating(title, domain.PreferenceDislike)
				return StatusCmd("Disliked "+title, false)
			}
			return nil
		case key.Matches(msg, Keys.Recommend):
			return p.recommend()
		case key.Matches(msg, Keys.LoadMore):
			p.errText = ""
			return p.loadCandidates()
		case key.Matches(msg, Keys.Clear):
			if p.hasRatings() {
				return p.clearPreferences()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	*grid, cmd = grid.Update(msg)
	return cmd
}

// recordRating mirrors a card rating in the session lists, keeping a title
// in at most one of them
func (p *FeedbackPage) recordRating(title string, pref domain.Preference) {
	p.liked = slices.DeleteFunc(p.liked, func(t string) bool { return t == title })
	p.disliked = slices.DeleteFunc(p.disliked, func(t string) bool { return t == title })
	switch pref {
	case domain.PreferenceLike:
		p.liked = append(p.liked, title)
	case domain.PreferenceDislike:
		p.disliked = append(p.disliked, title)
	}
}

// recommend requests recommendations for the session ratings
func (p *FeedbackPage) recommend() tea.Cmd {
	if !p.hasRatings() {
		p.errText = userMessage(domain.ErrNoFeedback, "")
		return nil
	}
	if p.Loading() {
		return nil
	}
	p.state = StateLoading
	p.errText = ""
	return FeedbackRecommendationsCmd(p.svc, p.nextTag(), p.liked, p.disliked, p.svc.Count(), false)
}

// clearPreferences forgets every stored rating and starts fresh
func (p *FeedbackPage) clearPreferences() tea.Cmd {
	p.svc.ClearPreferences()
	p.reset()
	return tea.Batch(p.loadCandidates(), StatusCmd("Preferences cleared", false))
}

// startOver drops the session ratings but keeps the stored ones
func (p *FeedbackPage) startOver() tea.Cmd {
	p.reset()
	return p.loadCandidates()
}

func (p *FeedbackPage) reset() {
	p.liked = nil
	p.disliked = nil
	p.results.Clear()
	p.showResults = false
	p.errText = ""
}

func (p *FeedbackPage) header() string {
	header := renderPageHeader(
		"Rate & Discover",
		"Like or dislike movies to help us understand your taste and get personalized recommendations.",
		p.width,
	)
	if p.showResults {
		return header + "\n" + styles.DimStyle.Render(fmt.Sprintf("%d movies", p.results.Len()))
	}
	return header + "\n" + renderStats(len(p.liked), len(p.disliked))
}

// View renders the page
func (p *FeedbackPage) View() string {
	header := p.header()

	var body string
	switch {
	case p.state == StateLoading && p.activeGrid().Len() == 0:
		body = renderLoading("Loading movies...")
	case p.showResults:
		body = p.results.View()
	default:
		body = p.candidates.View()
	}

	if p.errText != "" {
		body = RenderError(p.errText, p.width) + "\n" + body
	}

	return header + "\n\n" + body
}
