package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinematch/internal/domain"
)

// fakeRater records ratings in memory
type fakeRater struct {
	prefs map[string]domain.Preference
	calls int
}

func newFakeRater() *fakeRater {
	return &fakeRater{prefs: make(map[string]domain.Preference)}
}

func (r *fakeRater) Preference(title string) domain.Preference {
	return r.prefs[title]
}

func (r *fakeRater) SetPreference(title string, pref domain.Preference) {
	r.calls++
	r.prefs[title] = pref
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func sampleMovies() []domain.Movie {
	r := 8.8
	return []domain.Movie{
		{Title: "Inception", VoteAverage: &r, Overview: "A thief who steals secrets.", Genres: "Action, Science Fiction, Adventure, Thriller"},
		{Title: "Cats", Genres: "Comedy"},
		{Title: "Interstellar"},
		{Title: "Heat"},
	}
}
