package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinematch/internal/service"
)

// PageID identifies a routed page
type PageID int

const (
	PageHome PageID = iota
	PageGenre
	PageFeedback
)

// String returns the tab label
func (p PageID) String() string {
	switch p {
	case PageHome:
		return "Home"
	case PageGenre:
		return "By Genre"
	case PageFeedback:
		return "Rate Movies"
	default:
		return "Unknown"
	}
}

// PageState tracks a page's request lifecycle:
// idle -> loading -> success | failure
type PageState int

const (
	StateIdle PageState = iota
	StateLoading
	StateSuccess
	StateFailure
)

func (s PageState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "idle"
	}
}

// Page is a routed view. Pages are mounted each time they are shown.
type Page interface {
	ID() PageID
	// Mount resets the page and starts its initial loads
	Mount() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Loading reports whether a request is outstanding
	Loading() bool
	// Capturing reports whether the page is consuming raw text input
	Capturing() bool
	// Help returns the page's key bindings for the footer
	Help() []key.Binding
}

// requestTag identifies the page mount and request that produced a response
type requestTag struct {
	Page  PageID
	Mount int
	Seq   int
}

func (t requestTag) tag() requestTag { return t }

// taggedMsg is a response addressed to a page
type taggedMsg interface {
	tag() requestTag
}

// pageBase carries what every page needs
type pageBase struct {
	id     PageID
	svc    *service.RecommendationService
	logger *slog.Logger

	mount int
	seq   int

	width  int
	height int
}

func newPageBase(id PageID, svc *service.RecommendationService, logger *slog.Logger) pageBase {
	if logger == nil {
		logger = slog.Default()
	}
	return pageBase{id: id, svc: svc, logger: logger.With("page", id.String())}
}

func (b *pageBase) ID() PageID {
	return b.id
}

// beginMount starts a new mount; responses to earlier mounts are dropped
func (b *pageBase) beginMount() {
	b.mount++
	b.seq = 0
}

// nextTag tags a new request. Requests are never cancelled, so within a
// mount the last response to arrive wins; the sequence number is logged.
func (b *pageBase) nextTag() requestTag {
	b.seq++
	return requestTag{Page: b.id, Mount: b.mount, Seq: b.seq}
}

// accept reports whether a response belongs to the current mount
func (b *pageBase) accept(msg taggedMsg) bool {
	t := msg.tag()
	if t.Page != b.id || t.Mount != b.mount {
		b.logger.Debug("dropping stale response", "mount", t.Mount, "current", b.mount, "seq", t.Seq)
		return false
	}
	if t.Seq != b.seq {
		b.logger.Debug("out of order response", "seq", t.Seq, "latest", b.seq)
	}
	return true
}

func (b *pageBase) SetSize(width, height int) {
	b.width = width
	b.height = height
}
