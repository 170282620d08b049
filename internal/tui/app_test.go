package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, client *fakeClient) Model {
	t.Helper()
	svc, _ := newTestService(t, client)
	m := NewModel(svc, quietLogger())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

// send feeds msg to the model
func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestModelRoutesBetweenPages(t *testing.T) {
	client := &fakeClient{
		random: movies("Heat"),
		genres: []string{"Drama"},
	}
	m := newTestModel(t, client)
	assert.Equal(t, PageHome, m.Active())

	m, cmd := send(m, keyRunes("2"))
	assert.Equal(t, PageGenre, m.Active())
	require.NotNil(t, cmd)

	// The response is routed to the genre page
	m, _ = send(m, cmd())
	genre := m.Page(PageGenre).(*GenrePage)
	assert.Equal(t, StateSuccess, genre.GenresState())

	m, _ = send(m, keyType(tea.KeyTab))
	assert.Equal(t, PageFeedback, m.Active())

	m, _ = send(m, keyType(tea.KeyTab))
	assert.Equal(t, PageHome, m.Active())

	m, _ = send(m, keyType(tea.KeyShiftTab))
	assert.Equal(t, PageFeedback, m.Active())

	// Selecting the active tab does not remount
	_, cmd = send(m, keyRunes("3"))
	assert.Nil(t, cmd)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &fakeClient{})

	_, cmd := send(m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelTypingDoesNotTriggerShortcuts(t *testing.T) {
	client := &fakeClient{random: movies("Heat")}
	m := newTestModel(t, client)

	m, _ = send(m, keyRunes("s"))
	m, _ = send(m, keyRunes("q"))
	m, _ = send(m, keyRunes("2"))

	assert.Equal(t, PageHome, m.Active())
	assert.Equal(t, "q2", m.Page(PageHome).(*HomePage).search.Value())

	_, cmd := send(m, keyType(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelStatusLine(t *testing.T) {
	m := newTestModel(t, &fakeClient{})

	m, cmd := send(m, StatusMsg{Message: "Liked Heat"})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Liked Heat")

	m, _ = send(m, ClearStatusMsg{})
	assert.NotContains(t, m.View(), "Liked Heat")
}

func TestModelViewAndHelp(t *testing.T) {
	m := newTestModel(t, &fakeClient{random: movies("Heat")})

	view := m.View()
	assert.Contains(t, view, "CineMatch")
	assert.Contains(t, view, "Home")
	assert.Contains(t, view, "By Genre")
	assert.Contains(t, view, "Rate Movies")

	m, _ = send(m, keyRunes("?"))
	assert.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "Press any key to return")

	m, _ = send(m, keyRunes("x"))
	assert.False(t, m.ShowHelp)
}
