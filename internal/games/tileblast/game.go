// Package tileblast adapts the TileBlast engine to the platform's Game
// interface: cursor and mouse input become tile clicks, ticks drive the
// cascade clock and the board is drawn into the screen buffer.
package tileblast

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileblast/internal/config"
	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/board"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/session"
	"github.com/vovakirdan/tileblast/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMoves   Mode = "moves"
	ModeEndless Mode = "endless"
)

const (
	gameID        = "tileblast"
	endlessGameID = "tileblast_endless"

	// hintTicks is how long a rejection hint stays in the HUD (at 60 ticks/s).
	hintTicks = 90
)

// Package-level settings shared by every game the registry creates.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultTileBlastConfig()
	logger     = log.New(io.Discard)
)

// Configure sets the config and logger used by games created afterwards.
func Configure(cfg config.TileBlastConfig, l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
	if l != nil {
		logger = l
	}
}

func currentSettings() (config.TileBlastConfig, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings, logger
}

// ModeFromID returns the mode for a registered game id.
func ModeFromID(id string) (Mode, bool) {
	switch id {
	case gameID:
		return ModeMoves, true
	case endlessGameID:
		return ModeEndless, true
	default:
		return "", false
	}
}

// Game implements the TileBlast puzzle game.
type Game struct {
	mode Mode
	cfg  config.TileBlastConfig
	log  *log.Logger

	ctrl     *session.Controller
	colors   map[string]core.Color
	err      error       // session could not start
	seedGrid *board.Grid // used by the next Reset instead of a random board

	tick    uint64
	tickDur time.Duration

	// Screen dimensions
	screenW int
	screenH int

	cursor   board.Pos
	paused   bool
	tooSmall bool

	message      string
	messageTicks int
	lastGain     int
	maxCascade   int
	result       *session.Result
}

// New creates a moves-limited game.
func New() *Game {
	return newGame(ModeMoves)
}

// NewEndless creates a game with no move limit and no target.
func NewEndless() *Game {
	return newGame(ModeEndless)
}

func newGame(mode Mode) *Game {
	cfg, l := currentSettings()
	if mode == ModeEndless {
		config.ApplyEndless(&cfg)
	}
	return &Game{mode: mode, cfg: cfg, log: l}
}

func init() {
	registry.Register(gameID, func() registry.Game {
		return New()
	})
	registry.Register(endlessGameID, func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return endlessGameID
	}
	return gameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "TileBlast (Endless)"
	}
	return "TileBlast"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.message = ""
	g.messageTicks = 0
	g.lastGain = 0
	g.maxCascade = 0
	g.result = nil
	g.err = nil

	rate := cfg.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	g.tickDur = time.Second / time.Duration(rate)

	sc := g.cfg.Session()
	sc.Seed = uint64(cfg.Seed)
	g.colors = g.cfg.Colors()

	opts := []session.Option{
		session.WithListener(g),
		session.WithLogger(g.log),
	}
	if g.seedGrid != nil {
		opts = append(opts, session.WithGrid(g.seedGrid))
		g.seedGrid = nil
	}

	ctrl, err := session.New(sc, opts...)
	if err != nil {
		g.err = err
		g.ctrl = nil
		g.log.Error("cannot start session", "err", err)
		return
	}
	g.ctrl = ctrl
	grid := ctrl.Grid()
	g.cursor = board.P(grid.Width()/2, grid.Height()/2)
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for board and HUD.
func (g *Game) checkScreenSize() {
	if g.ctrl == nil {
		return
	}
	l := g.layout()
	g.tooSmall = g.screenW < l.hud.W || g.screenH < l.frame.Bottom()+1
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
	}

	if g.ctrl == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.result == nil {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform calling Reset
	if g.result != nil {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if in.Has(core.ActionConfirm) {
		g.ctrl.ClickAt(g.cursor)
	}
	l := g.layout()
	for _, p := range in.Clicks {
		col, row, ok := l.board.CellAt(p, cellWidth, cellHeight)
		if !ok {
			continue
		}
		g.cursor = board.P(col, row)
		g.ctrl.ClickAt(g.cursor)
	}

	g.ctrl.Advance(g.tickDur)
	g.maxCascade = max(g.maxCascade, g.ctrl.CascadeDepth())

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	grid := g.ctrl.Grid()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	case in.Has(core.ActionLeft):
		g.cursor.Col--
	case in.Has(core.ActionRight):
		g.cursor.Col++
	}
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, grid.Width()-1)
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, grid.Height()-1)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Paused:   g.paused || g.tooSmall,
		GameOver: g.err != nil,
	}
	if g.ctrl == nil {
		return st
	}
	p := g.ctrl.Progress()
	st.Score = p.Score
	st.MovesUsed = p.MovesUsed
	st.RunID = g.ctrl.RunID()
	if g.result != nil {
		st.GameOver = true
		st.Won = g.result.Status == session.StatusGoalReached
		st.Outcome = g.result.Status.String()
	}
	return st
}

// SetDifficulty applies a preset (easy, normal, hard) to the configured
// settings. It takes effect on the next Reset.
func (g *Game) SetDifficulty(name string) error {
	preset, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	cfg, _ := currentSettings()
	if g.mode == ModeEndless {
		config.ApplyEndless(&cfg)
	}
	config.ApplyTileBlastPreset(&cfg, preset)
	g.cfg = cfg
	return nil
}

// Controller exposes the running session, nil if it failed to start.
func (g *Game) Controller() *session.Controller {
	return g.ctrl
}

// Err returns the error that kept the last Reset from starting a session.
func (g *Game) Err() error {
	return g.err
}

// MovePerformed implements session.Listener.
func (g *Game) MovePerformed() {}

// TilesRemoved implements session.Listener.
func (g *Game) TilesRemoved(tiles []board.Tile) {
	g.lastGain = 0
	for _, t := range tiles {
		if !t.Special() {
			g.lastGain++
		}
	}
}

// MoveRejected implements session.Listener.
func (g *Game) MoveRejected(_ board.TileID, reason session.Reason) {
	if reason == session.ReasonBusy {
		return
	}
	g.message = reason.String()
	g.messageTicks = hintTicks
}

// SessionEnded implements session.Listener.
func (g *Game) SessionEnded(r session.Result) {
	g.result = &r
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space/Enter/Click: Blast | P: Pause | R: Restart | Q: Quit"
}

// Resize updates the screen size without restarting the session.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.checkScreenSize()
}
