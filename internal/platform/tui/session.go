package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/registry"
	"github.com/vovakirdan/tileblast/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewScoreboard
	viewDifficulty
	viewGame
)

// SessionModel chains the screens of one connection inside a single
// program: menu, optional difficulty picker, game, and back to the menu.
// The scoreboard is reachable from the menu.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	log    *log.Logger
	view   sessionView

	menu       MenuModel
	scoreboard ScoreboardModel
	difficulty DifficultyModel
	game       registry.Game
	gameModel  *GameModel

	quitting bool
}

// NewSessionModel starts a session on the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		log:    logger,
		menu:   NewMenuModel(store, cfg),
	}
}

// forward runs msg through a child model. Children signal completion by
// returning tea.Quit, so the caller inspects their state instead of
// passing that command on.
func forward[M tea.Model](child M, msg tea.Msg) (M, tea.Cmd) {
	next, cmd := child.Update(msg)
	if m, ok := next.(M); ok {
		child = m
	}
	return child, cmd
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes msg to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	switch m.view {
	case viewScoreboard:
		return m.updateScoreboard(msg)
	case viewDifficulty:
		return m.updateDifficulty(msg)
	case viewGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// backToMenu rebuilds the menu so best scores are current.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.game, m.gameModel = nil, nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = forward(m.menu, msg)

	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScoreboard
		return m, m.scoreboard.Init()
	case m.menu.Selected() != nil:
		return m.selectGame(m.menu.Selected().GameID)
	}
	return m, cmd
}

// selectGame creates the chosen mode and asks for a difficulty if the
// mode offers presets.
func (m SessionModel) selectGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.log.Error("cannot create game", "id", id, "error", err)
		return m.backToMenu()
	}
	m.game = game
	m.config = m.menu.Config()

	if _, ok := game.(registry.Tunable); !ok {
		return m.startGame()
	}
	m.difficulty = NewDifficultyModel(game.Title(), m.config.ScreenW, m.config.ScreenH)
	m.view = viewDifficulty
	return m, m.difficulty.Init()
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scoreboard, cmd = forward(m.scoreboard, msg)

	switch {
	case m.scoreboard.IsQuitting():
		return m.quit()
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.difficulty, cmd = forward(m.difficulty, msg)

	switch {
	case m.difficulty.IsQuitting():
		return m.quit()
	case m.difficulty.WantsBack():
		return m.backToMenu()
	case m.difficulty.Selected() != "":
		preset := m.difficulty.Selected()
		if err := m.game.(registry.Tunable).SetDifficulty(preset); err != nil {
			m.log.Warn("cannot apply difficulty", "preset", preset, "error", err)
		}
		m.log.Info("game started", "mode", m.game.ID(), "difficulty", preset)
		return m.startGame()
	}
	return m, cmd
}

func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	gm := NewGameModel(m.game, m.store, m.config, m.log)
	m.gameModel = &gm
	m.view = viewGame
	return m, gm.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	gm, cmd := forward(*m.gameModel, msg)
	m.gameModel = &gm

	switch {
	case gm.BackToMenu():
		return m.backToMenu()
	case gm.IsQuitting():
		return m.quit()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.view == viewScoreboard:
		return m.scoreboard.View()
	case m.view == viewDifficulty:
		return m.difficulty.View()
	case m.view == viewGame && m.gameModel != nil:
		return m.gameModel.View()
	}
	return m.menu.View()
}
