package tileblast

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tileblast/internal/config"
	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/board"
	"github.com/vovakirdan/tileblast/internal/registry"
)

// zeroSource always refills with the first palette type.
type zeroSource struct{}

func (zeroSource) IntN(int) int { return 0 }

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

// newTestGame starts a moves-mode game. With rows it plays on that board,
// letters standing for the first letter of each palette type.
func newTestGame(t *testing.T, mutate func(*config.TileBlastConfig), rows ...string) *Game {
	t.Helper()
	g := New()
	if mutate != nil {
		mutate(&g.cfg)
	}
	if len(rows) > 0 {
		grid, err := board.Parse(rows, g.cfg.TypeNames(), zeroSource{})
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}
		g.seedGrid = grid
	}
	g.Reset(testRuntime)
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func click(g *Game, x, y int) core.StepResult {
	in := core.NewInputFrame()
	in.Click(x, y)
	return g.Step(in)
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"tileblast", "tileblast_endless"} {
		if !registry.Exists(id) {
			t.Errorf("%s should be registered", id)
		}
	}

	game, err := registry.Create("tileblast_endless")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g := game.(*Game)
	if g.ID() != "tileblast_endless" || g.Title() != "TileBlast (Endless)" {
		t.Errorf("endless game = %s / %s", g.ID(), g.Title())
	}
	if g.cfg.Progress.MovesLimit != 0 || g.cfg.Progress.ScoreTarget != 0 {
		t.Errorf("endless mode should have no limits, got %+v", g.cfg.Progress)
	}

	if m, ok := ModeFromID("tileblast"); !ok || m != ModeMoves {
		t.Errorf("ModeFromID(tileblast) = %q, %v", m, ok)
	}
}

func TestConfirmBlastsTileUnderCursor(t *testing.T) {
	g := newTestGame(t, nil,
		"rrg",
		"gbb",
	)
	if g.cursor != board.P(1, 1) {
		t.Fatalf("cursor starts at %v, expected board centre", g.cursor)
	}

	res := step(g, core.ActionConfirm)
	if res.State.Score != 2 {
		t.Errorf("Score = %d, expected 2", res.State.Score)
	}
	if res.State.MovesUsed != 1 {
		t.Errorf("MovesUsed = %d, expected 1", res.State.MovesUsed)
	}
	if got := g.ctrl.Grid().String(); got != "rrr\ngrg\n" {
		t.Errorf("board after blast =\n%s", got)
	}
	if g.lastGain != 2 {
		t.Errorf("lastGain = %d, expected 2", g.lastGain)
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t, nil,
		"rrg",
		"gbb",
	)
	for range 5 {
		step(g, core.ActionLeft)
		step(g, core.ActionUp)
	}
	if g.cursor != board.P(0, 0) {
		t.Errorf("cursor = %v, expected (0,0)", g.cursor)
	}
	for range 5 {
		step(g, core.ActionRight)
		step(g, core.ActionDown)
	}
	if g.cursor != board.P(2, 1) {
		t.Errorf("cursor = %v, expected (2,1)", g.cursor)
	}
}

func TestMouseClickMapsToCell(t *testing.T) {
	g := newTestGame(t, nil,
		"rrg",
		"gbb",
	)
	// 3 columns of 4 cells plus border centred on 80 columns: board starts at x=34, y=4
	click(g, 0, 0)
	if g.State().Score != 0 {
		t.Fatal("click outside the board should do nothing")
	}

	res := click(g, 34, 4)
	if g.cursor != board.P(0, 0) {
		t.Errorf("cursor = %v, expected (0,0)", g.cursor)
	}
	if res.State.Score != 2 {
		t.Errorf("Score = %d, expected 2", res.State.Score)
	}
}

func TestRejectedClickShowsHint(t *testing.T) {
	g := newTestGame(t, nil,
		"rgg",
		"grb",
	)
	click(g, 35, 4)
	if g.message != "nothing to match" || g.messageTicks == 0 {
		t.Errorf("message = %q (%d ticks)", g.message, g.messageTicks)
	}
	if g.State().MovesUsed != 0 {
		t.Error("a rejected click must not cost a move")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t, nil,
		"rrg",
		"gbb",
	)
	res := step(g, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}
	step(g, core.ActionConfirm)
	if g.State().Score != 0 {
		t.Error("clicks while paused should be ignored")
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("snapshot state = %s", g.Snapshot().State)
	}

	step(g, core.ActionPause)
	step(g, core.ActionConfirm)
	if g.State().Score != 2 {
		t.Error("clicks should work after unpausing")
	}
}

func TestSessionEndIsGameOver(t *testing.T) {
	g := newTestGame(t, func(c *config.TileBlastConfig) { c.Progress.MovesLimit = 1 },
		"rrg",
		"gbb",
	)
	runID := g.State().RunID
	if runID == "" {
		t.Fatal("running game should expose its run id")
	}

	res := step(g, core.ActionConfirm)
	if !res.State.GameOver || res.State.Won {
		t.Errorf("state = %+v, expected a loss", res.State)
	}
	if res.State.Outcome != "out of moves" {
		t.Errorf("Outcome = %q", res.State.Outcome)
	}
	if res.State.RunID != runID {
		t.Error("run id should not change before restart")
	}
	if g.Snapshot().State != StateFailed {
		t.Errorf("snapshot state = %s", g.Snapshot().State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "OUT OF MOVES") {
		t.Error("loss overlay missing")
	}

	g.Reset(testRuntime)
	if g.State().GameOver || g.State().RunID == runID {
		t.Error("Reset should start a fresh run")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	play := func() Snapshot {
		g := New()
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
		inputs := [][]core.Action{
			{core.ActionConfirm},
			{core.ActionRight},
			{core.ActionConfirm},
			{core.ActionDown},
			{core.ActionConfirm},
		}
		for _, in := range inputs {
			step(g, in...)
		}
		for range 120 {
			step(g)
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if a != b {
		t.Errorf("same seed and input diverged:\n%+v\n%+v", a, b)
	}
	if a.Tick != 125 {
		t.Errorf("Tick = %d, expected 125", a.Tick)
	}
}

func TestRenderBoard(t *testing.T) {
	g := newTestGame(t, nil,
		"r-g",
		"gbb",
	)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "TileBlast") {
		t.Errorf("title row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "Score: 0/100") || !strings.Contains(screen.Row(1), "Moves: 20/20") {
		t.Errorf("HUD row = %q", screen.Row(1))
	}
	if screen.Get(33, 3) != '┌' {
		t.Errorf("frame corner = %q", screen.Get(33, 3))
	}

	tests := []struct {
		name  string
		x, y  int
		r     rune
		color core.Color
	}{
		{"red tile", 35, 4, '█', core.ColorRed},
		{"row destroyer", 39, 4, '═', core.ColorBrightYellow},
		{"blue tile", 40, 5, '█', core.ColorBlue},
		{"cursor left", 38, 5, '[', core.ColorBrightWhite},
		{"cursor right", 41, 5, ']', core.ColorBrightWhite},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := screen.GetCell(tc.x, tc.y)
			if c.Rune != tc.r || c.Color != tc.color {
				t.Errorf("cell (%d, %d) = %q/%v, expected %q/%v", tc.x, tc.y, c.Rune, c.Color, tc.r, tc.color)
			}
		})
	}
}

func TestTooSmallAndResize(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, TickRate: 60, Seed: 3})
	if !g.State().Paused || g.Snapshot().State != StatePausedSmall {
		t.Fatal("small window should pause the game")
	}
	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too small message missing")
	}

	runID := g.State().RunID
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("game should resume after enlarging the window")
	}
	if g.State().RunID != runID {
		t.Error("resize must not restart the session")
	}
}

func TestInvalidConfigReportsError(t *testing.T) {
	g := newTestGame(t, func(c *config.TileBlastConfig) { c.Tiles.Types = nil })
	if !errors.Is(g.Err(), board.ErrNoTileTypes) {
		t.Fatalf("Err() = %v, expected ErrNoTileTypes", g.Err())
	}
	if !g.State().GameOver {
		t.Error("a game that cannot start is over")
	}
	step(g, core.ActionConfirm)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start TileBlast") {
		t.Error("error message missing")
	}
}

func TestSetDifficulty(t *testing.T) {
	g := New()
	if err := g.SetDifficulty("easy"); err != nil {
		t.Fatalf("SetDifficulty() failed: %v", err)
	}
	if len(g.cfg.Tiles.Types) != 3 || g.cfg.Progress.MovesLimit != 30 {
		t.Errorf("easy config = %d types, %d moves", len(g.cfg.Tiles.Types), g.cfg.Progress.MovesLimit)
	}
	if err := g.SetDifficulty("impossible"); err == nil {
		t.Error("unknown preset should fail")
	}

	e := NewEndless()
	if err := e.SetDifficulty("hard"); err != nil {
		t.Fatal(err)
	}
	if e.cfg.Progress.MovesLimit != 0 || e.cfg.Progress.ScoreTarget != 0 {
		t.Errorf("endless stays unlimited, got %+v", e.cfg.Progress)
	}
}
