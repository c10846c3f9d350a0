// Package board provides the TileBlast grid model: tiles, connectivity
// groups, gravity, refill and the stage/commit mutation protocol.
// This package is UI-agnostic and deterministic for a given random source.
package board

import "fmt"

// SpecialType is the type tag carried by every tile with a behaviour.
const SpecialType = "special"

// Behaviour is the removal pattern a special tile applies when triggered.
type Behaviour uint8

const (
	BehaviourNone Behaviour = iota
	BehaviourRowDestroyer
	BehaviourColumnDestroyer
	BehaviourRegionDestroyer
	BehaviourFieldDestroyer
)

// String returns the string representation of a behaviour.
func (b Behaviour) String() string {
	switch b {
	case BehaviourNone:
		return "none"
	case BehaviourRowDestroyer:
		return "rowDestroyer"
	case BehaviourColumnDestroyer:
		return "columnDestroyer"
	case BehaviourRegionDestroyer:
		return "regionDestroyer"
	case BehaviourFieldDestroyer:
		return "fieldDestroyer"
	default:
		return "unknown"
	}
}

// Glyph returns the rune used for this behaviour in board dumps.
// Plain tiles have no glyph and return 0.
func (b Behaviour) Glyph() rune {
	switch b {
	case BehaviourRowDestroyer:
		return '-'
	case BehaviourColumnDestroyer:
		return '|'
	case BehaviourRegionDestroyer:
		return '#'
	case BehaviourFieldDestroyer:
		return '*'
	default:
		return 0
	}
}

// behaviourForGlyph is the inverse of Glyph.
func behaviourForGlyph(r rune) (Behaviour, bool) {
	switch r {
	case '-':
		return BehaviourRowDestroyer, true
	case '|':
		return BehaviourColumnDestroyer, true
	case '#':
		return BehaviourRegionDestroyer, true
	case '*':
		return BehaviourFieldDestroyer, true
	default:
		return BehaviourNone, false
	}
}

// Pos is a cell coordinate. Col increases to the right, Row increases downward.
type Pos struct {
	Col int
	Row int
}

// P is a convenience constructor for Pos.
func P(col, row int) Pos {
	return Pos{Col: col, Row: row}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Chebyshev returns the chessboard distance to another position.
func (p Pos) Chebyshev(other Pos) int {
	dc := abs(p.Col - other.Col)
	dr := abs(p.Row - other.Row)
	if dc > dr {
		return dc
	}
	return dr
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// TileID is an arena handle. The zero value never refers to a live tile.
type TileID struct {
	slot uint32
	gen  uint32
}

// Valid reports whether the id was issued by an arena.
func (id TileID) Valid() bool {
	return id.gen != 0
}

// String returns the opaque string form handed to collaborators.
func (id TileID) String() string {
	if !id.Valid() {
		return "t-"
	}
	return fmt.Sprintf("t%d.%d", id.slot, id.gen)
}

// ParseTileID parses the form produced by TileID.String.
func ParseTileID(s string) (TileID, error) {
	var slot, gen uint32
	if _, err := fmt.Sscanf(s, "t%d.%d", &slot, &gen); err != nil || gen == 0 {
		return TileID{}, fmt.Errorf("board: invalid tile id %q", s)
	}
	return TileID{slot: slot, gen: gen}, nil
}

// GroupID identifies a connectivity group. 0 means no group.
type GroupID int

// CommitID tags tiles staged for removal. 0 means stable.
type CommitID int

// Tile is a single occupant of a grid cell.
type Tile struct {
	ID        TileID
	Type      string
	Behaviour Behaviour
	Pos       Pos
	Group     GroupID
	CommitID  CommitID
}

// Special reports whether the tile carries a behaviour.
func (t *Tile) Special() bool {
	return t.Behaviour != BehaviourNone
}

// Staged reports whether the tile is marked for removal.
func (t *Tile) Staged() bool {
	return t.CommitID != 0
}

// Rune returns the rune used for the tile in board dumps.
// Staged plain tiles are upper-cased.
func (t *Tile) Rune() rune {
	if g := t.Behaviour.Glyph(); g != 0 {
		return g
	}
	r := '?'
	for _, c := range t.Type {
		r = c
		break
	}
	if t.Staged() && r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	return r
}
