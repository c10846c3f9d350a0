// Package session drives one TileBlast game: it turns clicks into
// detonations, runs cascades through the effect scheduler, commits the
// grid once per interaction and keeps score.
package session

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tileblast/internal/games/tileblast/behaviour"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/board"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/effects"
)

// DefaultBaseDelay is the cascade delay per cell of Chebyshev distance.
const DefaultBaseDelay = 100 * time.Millisecond

// State is the controller's interaction state.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateCommitting
	StateOver
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateCommitting:
		return "committing"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Config is fixed for the lifetime of a session.
type Config struct {
	Width           int
	Height          int
	Types           []string
	BaseDelay       time.Duration
	Thresholds      behaviour.Thresholds
	MovesLimit      int // 0 = unlimited
	ScoreTarget     int // 0 = no target
	ShuffleAttempts int
	Seed            uint64 // 0 picks a random seed
}

// DefaultConfig returns an 8x7 board with four tile types.
func DefaultConfig() Config {
	return Config{
		Width:           8,
		Height:          7,
		Types:           []string{"red", "green", "blue", "yellow"},
		BaseDelay:       DefaultBaseDelay,
		Thresholds:      behaviour.DefaultThresholds(),
		MovesLimit:      20,
		ScoreTarget:     100,
		ShuffleAttempts: 5,
	}
}

// Detonation is the payload of every scheduled effect.
type Detonation struct {
	Cause board.TileID
	Depth int // 0 for the clicked tile, n for the nth link of a cascade
}

// Outcome is the immediate answer to a click.
type Outcome struct {
	Accepted bool
	Reason   Reason
	CommitID board.CommitID
	Affected int
}

// Result summarises a finished session.
type Result struct {
	RunID        string
	Status       Status
	Score        int
	MovesUsed    int
	Interactions int
	Detonations  int
	Duration     time.Duration
}

// Option configures a Controller.
type Option func(*Controller)

// WithListener sets the notification target.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		if l != nil {
			c.listener = l
		}
	}
}

// WithLogger sets the logger used for interaction traces.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRand replaces the random source for tile generation, spawn direction
// and shuffles.
func WithRand(rng board.Source) Option {
	return func(c *Controller) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithGrid starts the session on a prepared grid instead of a random one.
func WithGrid(g *board.Grid) Option {
	return func(c *Controller) {
		c.initial = g
	}
}

// Controller owns one grid and one scheduler. It is not safe for
// concurrent use; the host loop drives it from a single goroutine.
type Controller struct {
	cfg      Config
	grid     *board.Grid
	initial  *board.Grid
	resolver behaviour.Resolver
	policy   behaviour.SpawnPolicy
	sched    *effects.Scheduler[Detonation]
	progress Progress
	state    State
	listener Listener
	log      *log.Logger
	rng      board.Source
	runID    string

	triggered    mapset.Set[board.TileID]
	cascadeDepth int
	lastCommit   board.CommitResult
	interactions int
	detonations  int
	status       Status
}

// New creates a session and its initial board.
func New(cfg Config, opts ...Option) (*Controller, error) {
	if len(cfg.Types) == 0 {
		return nil, fmt.Errorf("session: %w", board.ErrNoTileTypes)
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if cfg.BaseDelay < 0 {
		cfg.BaseDelay = 0
	}

	c := &Controller{
		cfg:       cfg,
		resolver:  behaviour.NewResolver(),
		listener:  NopListener{},
		log:       log.New(io.Discard),
		triggered: mapset.New[board.TileID](),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	c.policy = behaviour.NewSpawnPolicy(cfg.Thresholds, c.rng)
	c.sched = effects.New[Detonation](c.handle, c.drained)

	if err := c.start(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) start() error {
	c.runID = uuid.NewString()
	c.progress = NewProgress(c.cfg.MovesLimit, c.cfg.ScoreTarget)
	c.sched.Reset()
	c.triggered = mapset.New[board.TileID]()
	c.cascadeDepth = 0
	c.lastCommit = board.CommitResult{}
	c.interactions = 0
	c.detonations = 0
	c.status = StatusPlaying
	c.state = StateIdle

	if c.initial != nil {
		c.grid, c.initial = c.initial, nil
	} else {
		g, err := board.New(c.cfg.Width, c.cfg.Height, c.cfg.Types, c.rng)
		if err != nil {
			return fmt.Errorf("session: %w", err)
		}
		c.grid = g
	}

	c.log.Info("session started",
		"run", c.runID,
		"board", fmt.Sprintf("%dx%d", c.grid.Width(), c.grid.Height()),
		"types", len(c.cfg.Types),
		"moves", c.cfg.MovesLimit,
		"target", c.cfg.ScoreTarget)

	if !c.ensureMoves() {
		c.status = StatusNoMoves
		c.finish()
	}
	return nil
}

// Retry discards the current board, including any unresolved interaction,
// and starts over with a fresh one.
func (c *Controller) Retry() error {
	return c.start()
}

// OnTileClicked is the only way a player changes the board. Rejected
// clicks leave the grid untouched and are reported to the listener.
func (c *Controller) OnTileClicked(id board.TileID) Outcome {
	reject := func(r Reason) Outcome {
		c.log.Debug("click rejected", "tile", id, "reason", r)
		c.listener.MoveRejected(id, r)
		return Outcome{Reason: r}
	}

	switch c.state {
	case StateIdle:
	case StateOver:
		return reject(ReasonOver)
	default:
		return reject(ReasonBusy)
	}

	tile := c.grid.TileByID(id)
	if tile == nil {
		return reject(ReasonUnknownTile)
	}
	if tile.Staged() {
		return reject(ReasonStaged)
	}
	affected := c.resolver.Run(tile, c.grid)
	if len(affected) <= 1 {
		return reject(ReasonTooSmall)
	}

	commit := c.sched.Begin()
	c.state = StateResolving
	c.interactions++
	c.cascadeDepth = 0
	c.triggered = mapset.New[board.TileID]()
	c.triggered.Put(id)
	c.sched.Add(0, Detonation{Cause: id})

	c.log.Debug("click accepted",
		"tile", id, "pos", tile.Pos, "behaviour", tile.Behaviour,
		"affected", len(affected), "commit", commit)
	return Outcome{Accepted: true, CommitID: commit, Affected: len(affected)}
}

// ClickAt clicks the tile at a board cell.
func (c *Controller) ClickAt(p board.Pos) Outcome {
	if t := c.grid.At(p); t != nil {
		return c.OnTileClicked(t.ID)
	}
	return c.OnTileClicked(board.TileID{})
}

// handle stages one detonation. A plain cause may leave a special tile at
// its position; a special cause queues every other special it reaches.
func (c *Controller) handle(e *effects.Effect[Detonation]) {
	cause := c.grid.TileByID(e.Data.Cause)
	if cause == nil {
		return
	}
	c.detonations++
	pos, kind := cause.Pos, cause.Behaviour
	special := cause.Special()

	affected := c.resolver.Run(cause, c.grid)
	var chained []*board.Tile
	if special {
		chained = behaviour.Chained(cause, affected, c.triggered)
	}

	c.grid.Stage([]*board.Tile{cause}, e.CommitID)
	staged := c.grid.Stage(affected, e.CommitID)

	if !special {
		if b, ok := c.policy.Behaviour(len(affected)); ok {
			c.grid.SpawnSpecial(pos, b)
			c.log.Debug("special spawned", "pos", pos, "behaviour", b, "match", len(affected))
		}
	}

	for _, t := range chained {
		delay := time.Duration(behaviour.Chebyshev(pos, t.Pos)) * c.cfg.BaseDelay
		c.sched.Add(delay, Detonation{Cause: t.ID, Depth: e.Data.Depth + 1})
		c.cascadeDepth = max(c.cascadeDepth, e.Data.Depth+1)
	}

	c.log.Debug("detonation",
		"commit", e.CommitID, "cause", pos, "behaviour", kind,
		"depth", e.Data.Depth, "staged", staged, "chained", len(chained))
}

// drained commits the interaction once its last effect has been handled.
func (c *Controller) drained(commit board.CommitID) {
	c.state = StateCommitting
	res := c.grid.Commit(commit)
	c.lastCommit = res

	c.progress.MovePerformed()
	c.listener.MovePerformed()
	gained := c.progress.TilesRemoved(res.Removed)
	c.listener.TilesRemoved(res.Removed)

	c.log.Info("move committed",
		"commit", commit, "removed", len(res.Removed), "moved", len(res.Moved),
		"spawned", len(res.Spawned), "cascade", c.cascadeDepth,
		"score", c.progress.Score, "gained", gained, "moves_left", c.progress.MovesLeft)

	c.status = c.progress.Status()
	if c.status == StatusPlaying && !c.ensureMoves() {
		c.status = StatusNoMoves
	}
	if c.status != StatusPlaying {
		c.finish()
		return
	}
	c.state = StateIdle
}

// ensureMoves shuffles a deadlocked board up to ShuffleAttempts times.
func (c *Controller) ensureMoves() bool {
	for i := 0; !c.grid.HasMoves(); i++ {
		if i >= c.cfg.ShuffleAttempts {
			c.log.Warn("board deadlocked", "attempts", i)
			return false
		}
		c.grid.Shuffle(c.rng)
		c.log.Debug("board shuffled", "attempt", i+1)
	}
	return true
}

func (c *Controller) finish() {
	c.state = StateOver
	r := c.Result()
	c.log.Info("session ended", "run", r.RunID, "status", r.Status, "score", r.Score, "moves", r.MovesUsed)
	c.listener.SessionEnded(r)
}

// Advance moves the effect clock forward by dt.
func (c *Controller) Advance(dt time.Duration) {
	c.sched.Advance(dt)
}

// Settle runs the open interaction to completion without waiting for
// cascade delays.
func (c *Controller) Settle(ctx context.Context) error {
	return c.sched.Drain(ctx)
}

// Grid returns the live board. Callers must not mutate it.
func (c *Controller) Grid() *board.Grid {
	return c.grid
}

// State returns the interaction state.
func (c *Controller) State() State {
	return c.state
}

// Progress returns a copy of the score bookkeeping.
func (c *Controller) Progress() Progress {
	return c.progress
}

// Config returns the session configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// LastCommit returns what the most recent commit changed.
func (c *Controller) LastCommit() board.CommitResult {
	return c.lastCommit
}

// CascadeDepth returns the deepest cascade link of the current or last
// interaction.
func (c *Controller) CascadeDepth() int {
	return c.cascadeDepth
}

// Pending returns the number of queued detonations.
func (c *Controller) Pending() int {
	return c.sched.Pending()
}

// RunID identifies this play-through in logs and stored scores.
func (c *Controller) RunID() string {
	return c.runID
}

// Result returns the session summary so far.
func (c *Controller) Result() Result {
	return Result{
		RunID:        c.runID,
		Status:       c.status,
		Score:        c.progress.Score,
		MovesUsed:    c.progress.MovesUsed,
		Interactions: c.interactions,
		Detonations:  c.detonations,
		Duration:     c.sched.Now(),
	}
}
