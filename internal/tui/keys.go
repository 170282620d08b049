package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Routing
	HomeTab     key.Binding
	GenreTab    key.Binding
	FeedbackTab key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding

	// Focus
	Left  key.Binding
	Right key.Binding
	Back  key.Binding

	// Actions
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Search    key.Binding
	Reload    key.Binding
	Like      key.Binding
	Dislike   key.Binding
	Recommend key.Binding
	LoadMore  key.Binding
	Clear     key.Binding
	StartOver key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Routing
		HomeTab: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		GenreTab: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "by genre"),
		),
		FeedbackTab: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "rate movies"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous page"),
		),

		// Focus
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "genres"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "results"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "search"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Like: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "like"),
		),
		Dislike: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "dislike"),
		),
		Recommend: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "recommend"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear ratings"),
		),
		StartOver: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "start over"),
		),
	}
}

// Keys is the package-level key map
var Keys = DefaultKeyMap()
