package tileblast

import "github.com/vovakirdan/tileblast/internal/games/tileblast/session"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StatePaused      GameStateType = "paused"
	StateGoalReached GameStateType = "goal_reached"
	StateFailed      GameStateType = "failed"
	StateNoMoves     GameStateType = "no_moves"
	StatePausedSmall GameStateType = "paused_small_window"
	StateError       GameStateType = "error"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Score     int
	MovesLeft int
	MovesUsed int
	Board     string // board dump, see board.Grid.String
	Cursor    [2]int // col, row
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   g.tick,
		Mode:   string(g.mode),
		Cursor: [2]int{g.cursor.Col, g.cursor.Row},
		State:  g.stateType(),
	}
	if g.ctrl != nil {
		p := g.ctrl.Progress()
		s.Score = p.Score
		s.MovesLeft = p.MovesLeft
		s.MovesUsed = p.MovesUsed
		s.Board = g.ctrl.Grid().String()
	}
	return s
}

func (g *Game) stateType() GameStateType {
	switch {
	case g.ctrl == nil:
		return StateError
	case g.tooSmall:
		return StatePausedSmall
	case g.result != nil:
		switch g.result.Status {
		case session.StatusGoalReached:
			return StateGoalReached
		case session.StatusFailed:
			return StateFailed
		default:
			return StateNoMoves
		}
	case g.paused:
		return StatePaused
	case g.ctrl.State() == session.StateResolving:
		return StateResolving
	default:
		return StatePlaying
	}
}
