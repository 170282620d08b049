package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinematch/internal/service"
	"github.com/mmcdole/cinematch/internal/tui/styles"
)

const (
	tickInterval  = 100 * time.Millisecond
	statusTimeout = 3 * time.Second
)

// Model is the main Bubble Tea model for the application: a tab bar routing
// between the pages, the active page, and a footer
type Model struct {
	Ready bool

	Svc    *service.RecommendationService
	Logger *slog.Logger

	pages  []Page
	active PageID

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	ShowHelp     bool
}

// NewModel creates a new application model starting on the home page
func NewModel(svc *service.RecommendationService, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		Svc:    svc,
		Logger: logger,
		pages: []Page{
			NewHomePage(svc, logger),
			NewGenrePage(svc, logger),
			NewFeedbackPage(svc, logger),
		},
		active: PageHome,
	}
}

// Active returns the active page ID
func (m Model) Active() PageID {
	return m.active
}

// Page returns the page with the given ID
func (m Model) Page(id PageID) Page {
	return m.pages[id]
}

// Init mounts the first page
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.pages[m.active].Mount(),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		for _, p := range m.pages {
			p.SetSize(msg.Width, msg.Height-ChromeHeight)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(statusTimeout)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case taggedMsg:
		target := msg.tag().Page
		if int(target) < 0 || int(target) >= len(m.pages) {
			return m, nil
		}
		return m, m.pages[target].Update(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	page := m.pages[m.active]
	if page.Capturing() {
		return m, page.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	case key.Matches(msg, Keys.HomeTab):
		return m.switchTo(PageHome)
	case key.Matches(msg, Keys.GenreTab):
		return m.switchTo(PageGenre)
	case key.Matches(msg, Keys.FeedbackTab):
		return m.switchTo(PageFeedback)
	case key.Matches(msg, Keys.NextTab):
		return m.switchTo((m.active + 1) % PageID(len(m.pages)))
	case key.Matches(msg, Keys.PrevTab):
		return m.switchTo((m.active + PageID(len(m.pages)) - 1) % PageID(len(m.pages)))
	}

	return m, page.Update(msg)
}

// switchTo routes to a page, mounting it afresh
func (m Model) switchTo(id PageID) (tea.Model, tea.Cmd) {
	if id == m.active {
		return m, nil
	}
	m.Logger.Debug("navigate", "from", m.active.String(), "to", id.String())
	m.active = id
	m.StatusMsg = ""
	return m, m.pages[id].Mount()
}

// View renders the tab bar, the active page and the footer
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	page := m.pages[m.active]
	content := lipgloss.NewStyle().
		Width(m.Width).
		Height(m.Height - ChromeHeight).
		MaxHeight(m.Height - ChromeHeight).
		Render(page.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		content,
		m.renderFooter(),
	)
}

// renderTabs renders the brand and the page tabs
func (m Model) renderTabs() string {
	tabs := []string{styles.BrandStyle.Render("CineMatch")}
	for _, p := range m.pages {
		label := p.ID().String()
		if p.ID() == m.active {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderFooter renders a single-line footer: status on the left, page key
// hints in the middle, help on the right
func (m Model) renderFooter() string {
	page := m.pages[m.active]

	var left string
	if page.Loading() {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	center := renderKeyHints(page.Help())
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth+2 >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
PAGES                           HOME
  1          Home                 s      Search by title
  2          By Genre             r      Reload random movies
  3          Rate Movies
  tab        Next page          BY GENRE
  q          Quit                 space  Toggle genre
                                  enter  Toggle / get recommendations
LISTS                             h/l    Genres / results
  j/k        Up/down
  g/G        First/last         RATE MOVIES
  Ctrl+u/d   Half page            +/-    Like / dislike
  /          Filter               enter  Get recommendations
  Esc        Clear filter         m      Load more movies
                                  c      Clear my preferences
                                  o      Start over

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ActiveBorder.Padding(1, 2).Render(help))
}
