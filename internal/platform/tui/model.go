package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/registry"
	"github.com/vovakirdan/tileblast/internal/storage"
)

// GameModel hosts one game inside Bubble Tea. Keys and mouse presses are
// buffered into an input frame that the next tick hands to Step; a run
// that ends is recorded in the store once.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	log    *log.Logger
	config core.RuntimeConfig

	keys    *KeyMapper
	pending core.InputFrame // input since the last tick
	last    core.GameState  // state after the last tick

	recorded   bool // last run already saved
	quitting   bool
	backToMenu bool
}

// NewGameModel wraps game. A zero seed is replaced by the clock and a nil
// logger discards.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return GameModel{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		log:     logger,
		config:  cfg,
		keys:    NewKeyMapper(),
		pending: core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop. The model's copy of the
// game state is filled in by the first tick.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.onKey(msg)
	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.pending)
	case tea.WindowSizeMsg:
		m.onResize(msg.Width, msg.Height)
	case TickMsg:
		m.onTick()
		return m, tickCmd(m.config.TickRate)
	}
	return m, nil
}

func (m GameModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.log.Warn("screenshot failed", "error", err)
		} else {
			m.log.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.pending) {
		m.quitting = true
		return m, tea.Quit
	}
	// leaving mid-run is not allowed, pause first
	if m.pending.Has(core.ActionBack) && (m.last.GameOver || m.last.Paused) {
		m.backToMenu = true
	}
	return m, nil
}

// onResize keeps the run when the game supports it and otherwise restarts
// a run still in progress at the new size.
func (m *GameModel) onResize(w, h int) {
	m.config.ScreenW, m.config.ScreenH = w, h
	m.screen.Resize(w, h)

	switch r, ok := m.game.(registry.Resizer); {
	case ok:
		r.Resize(w, h)
	case !m.last.GameOver:
		m.game.Reset(m.config)
	}
}

func (m *GameModel) onTick() {
	defer m.pending.Clear()

	if m.last.GameOver && m.pending.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.last = m.game.State()
		m.recorded = false
		return
	}

	m.last = m.game.Step(m.pending).State
	if m.last.GameOver && !m.recorded {
		m.recordRun()
		m.recorded = true
	}
}

// recordRun stores the finished run. Runs without a single move are not
// worth a scoreboard row.
func (m *GameModel) recordRun() {
	st := m.last
	if m.store == nil || st.RunID == "" || st.MovesUsed == 0 {
		return
	}
	entry := storage.ScoreEntry{
		RunID:     st.RunID,
		Mode:      m.game.ID(),
		Score:     st.Score,
		MovesUsed: st.MovesUsed,
		Status:    st.Outcome,
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.log.Warn("could not save score", "run", st.RunID, "error", err)
		return
	}
	m.log.Info("score saved", "run", st.RunID, "mode", entry.Mode, "score", st.Score)
}

// saveScreenshot writes the current frame as plain text under
// ~/.tileblast/screenshots.
func (m *GameModel) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".tileblast", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	m.game.Render(m.screen)
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.last
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewGameModel(game, store, cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
