package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/vovakirdan/tileblast/internal/games/tileblast"
)

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok)
	return sm
}

func newTestSession() SessionModel {
	return NewSessionModel(nil, modelConfig, log.New(io.Discard))
}

func TestSessionMenuToGame(t *testing.T) {
	m := newTestSession()
	assert.Equal(t, viewMenu, m.view)
	assert.Contains(t, m.View(), "TileBlast")

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewDifficulty, m.view)
	assert.Equal(t, "tileblast", m.game.ID())
	assert.Contains(t, m.View(), "Select difficulty")

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewGame, m.view)
	require.NotNil(t, m.gameModel)

	m = sendSession(t, m, runeKey("q"))
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestSessionDifficultyBack(t *testing.T) {
	m := newTestSession()
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewDifficulty, m.view)

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewMenu, m.view)
	assert.Nil(t, m.game)
	assert.Nil(t, m.menu.Selected())
}

func TestSessionScoreboard(t *testing.T) {
	m := newTestSession()
	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, viewScoreboard, m.view)
	assert.Contains(t, m.View(), "HIGH SCORES")

	m = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewMenu, m.view)
	assert.False(t, m.quitting)
}

func TestDifficultyModel(t *testing.T) {
	m := NewDifficultyModel("TileBlast", 80, 24)
	assert.Empty(t, m.Selected())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(DifficultyModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(DifficultyModel)
	assert.Equal(t, "hard", m.Selected())

	next, _ = NewDifficultyModel("TileBlast", 80, 24).Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(DifficultyModel).WantsBack())
}
