package session

import "github.com/vovakirdan/tileblast/internal/games/tileblast/board"

// Reason explains why a click was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonBusy
	ReasonUnknownTile
	ReasonStaged
	ReasonTooSmall
	ReasonOver
)

// String returns the string representation of a rejection reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonBusy:
		return "busy"
	case ReasonUnknownTile:
		return "unknown tile"
	case ReasonStaged:
		return "tile already staged"
	case ReasonTooSmall:
		return "nothing to match"
	case ReasonOver:
		return "session over"
	default:
		return "unknown"
	}
}

// Listener receives session notifications. Calls are made synchronously
// from whichever method drove the session (OnTileClicked or Advance).
type Listener interface {
	// MovePerformed fires once per accepted click, after its commit.
	MovePerformed()
	// TilesRemoved reports every tile removed by an interaction's commit.
	TilesRemoved(tiles []board.Tile)
	// MoveRejected reports a click that changed nothing.
	MoveRejected(id board.TileID, reason Reason)
	// SessionEnded fires once when the goal is reached or moves run out.
	SessionEnded(result Result)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) MovePerformed()                    {}
func (NopListener) TilesRemoved([]board.Tile)         {}
func (NopListener) MoveRejected(board.TileID, Reason) {}
func (NopListener) SessionEnded(Result)               {}

// Multi fans notifications out to several listeners in order.
type Multi []Listener

func (m Multi) MovePerformed() {
	for _, l := range m {
		l.MovePerformed()
	}
}

func (m Multi) TilesRemoved(tiles []board.Tile) {
	for _, l := range m {
		l.TilesRemoved(tiles)
	}
}

func (m Multi) MoveRejected(id board.TileID, reason Reason) {
	for _, l := range m {
		l.MoveRejected(id, reason)
	}
}

func (m Multi) SessionEnded(result Result) {
	for _, l := range m {
		l.SessionEnded(result)
	}
}
