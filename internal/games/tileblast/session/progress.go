package session

import "github.com/vovakirdan/tileblast/internal/games/tileblast/board"

// Status is the outcome state of a session.
type Status int

const (
	StatusPlaying Status = iota
	StatusGoalReached
	StatusFailed
	StatusNoMoves
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusGoalReached:
		return "goal reached"
	case StatusFailed:
		return "out of moves"
	case StatusNoMoves:
		return "no moves left on board"
	default:
		return "unknown"
	}
}

// Progress tracks moves left and score toward a target.
// A zero MovesLimit means unlimited moves; a zero ScoreTarget means the
// score is uncapped and the goal is never reached.
type Progress struct {
	MovesLimit  int
	ScoreTarget int
	MovesLeft   int
	MovesUsed   int
	Score       int
}

// NewProgress creates progress for the given limits.
func NewProgress(movesLimit, scoreTarget int) Progress {
	p := Progress{MovesLimit: movesLimit, ScoreTarget: scoreTarget}
	p.Reset()
	return p
}

// Reset restores full moves and zero score.
func (p *Progress) Reset() {
	p.MovesLeft = p.MovesLimit
	p.MovesUsed = 0
	p.Score = 0
}

// Endless reports whether the session has neither a move limit nor a target.
func (p *Progress) Endless() bool {
	return p.MovesLimit == 0 && p.ScoreTarget == 0
}

// MovePerformed spends one move.
func (p *Progress) MovePerformed() {
	p.MovesUsed++
	if p.MovesLimit > 0 && p.MovesLeft > 0 {
		p.MovesLeft--
	}
}

// TilesRemoved adds one point per removed plain tile. Specials score nothing.
// Returns the points gained after capping.
func (p *Progress) TilesRemoved(tiles []board.Tile) int {
	gained := 0
	for _, t := range tiles {
		if !t.Special() {
			gained++
		}
	}
	prev := p.Score
	p.Score += gained
	if p.ScoreTarget > 0 && p.Score > p.ScoreTarget {
		p.Score = p.ScoreTarget
	}
	return p.Score - prev
}

// Status reports whether the goal was reached or the moves ran out.
// Reaching the target on the last move counts as a win.
func (p *Progress) Status() Status {
	if p.ScoreTarget > 0 && p.Score >= p.ScoreTarget {
		return StatusGoalReached
	}
	if p.MovesLimit > 0 && p.MovesLeft <= 0 {
		return StatusFailed
	}
	return StatusPlaying
}
