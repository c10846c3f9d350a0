package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/storage"
)

// fakeGame records what the model does to it.
type fakeGame struct {
	state     core.GameState
	resets    int
	steps     int
	lastClick []core.Point
	confirmed bool
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastClick = append([]core.Point(nil), in.Clicks...)
	g.confirmed = in.Has(core.ActionConfirm)
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState   { return g.state }

// resizableGame also keeps its session across resizes.
type resizableGame struct {
	fakeGame
	w, h int
}

func (g *resizableGame) Resize(w, h int) { g.w, g.h = w, h }

var modelConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm
}

func TestGameModelForwardsInput(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, modelConfig, nil)
	m.Init()
	assert.Equal(t, 1, game.resets)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})

	assert.Equal(t, 1, game.steps)
	assert.True(t, game.confirmed)
	assert.Equal(t, []core.Point{{X: 5, Y: 6}}, game.lastClick)

	// Input is consumed by the tick
	update(t, m, TickMsg{})
	assert.False(t, game.confirmed)
	assert.Empty(t, game.lastClick)
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	game := &fakeGame{}
	m := NewGameModel(game, store, modelConfig, nil)
	m.Init()

	game.state = core.GameState{
		GameOver:  true,
		Score:     42,
		MovesUsed: 7,
		RunID:     "run-1",
		Outcome:   "out of moves",
	}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	scores, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "run-1", scores[0].RunID)
	assert.Equal(t, 42, scores[0].Score)
	assert.Equal(t, 7, scores[0].MovesUsed)
	assert.Equal(t, "out of moves", scores[0].Status)

	// Restart starts a fresh run
	m = update(t, m, runeKey("r"))
	update(t, m, TickMsg{})
	assert.Equal(t, 2, game.resets)
}

func TestGameModelSkipsRunsWithoutMoves(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	game := &fakeGame{}
	m := NewGameModel(game, store, modelConfig, nil)
	m.Init()

	game.state = core.GameState{GameOver: true, RunID: "run-2", Outcome: "no moves left on board"}
	update(t, m, TickMsg{})

	scores, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestGameModelResize(t *testing.T) {
	plain := &fakeGame{}
	m := NewGameModel(plain, nil, modelConfig, nil)
	m.Init()
	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 2, plain.resets, "games without Resize restart")

	resizable := &resizableGame{}
	m = NewGameModel(resizable, nil, modelConfig, nil)
	m.Init()
	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 1, resizable.resets, "resizable games keep their session")
	assert.Equal(t, 100, resizable.w)
	assert.Equal(t, 30, resizable.h)
}

func TestGameModelBackToMenu(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, modelConfig, nil)
	m.Init()

	m = update(t, m, runeKey("b"))
	assert.False(t, m.BackToMenu(), "back is ignored mid-game")

	game.state = core.GameState{GameOver: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey("b"))
	assert.True(t, m.BackToMenu())
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&fakeGame{}, nil, modelConfig, nil)
	next, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	gm := next.(GameModel)
	assert.True(t, gm.IsQuitting())
	assert.Empty(t, gm.View())
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, tickInterval(60))
	assert.Equal(t, time.Second/30, tickInterval(30))
	assert.Equal(t, time.Second/60, tickInterval(0), "zero rate falls back to the default")
}
