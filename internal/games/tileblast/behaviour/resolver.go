// Package behaviour decides which tiles a detonation affects and whether a
// plain match is large enough to leave a special tile behind.
package behaviour

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tileblast/internal/games/tileblast/board"
)

// DefaultRegionRadius is the Chebyshev radius of a region blast (3x3 block).
const DefaultRegionRadius = 1

// Resolver computes the affected set of a detonation.
type Resolver struct {
	RegionRadius int
}

// NewResolver returns a resolver with the default region radius.
func NewResolver() Resolver {
	return Resolver{RegionRadius: DefaultRegionRadius}
}

// Run returns the unstaged tiles affected by detonating cause, in row-major
// order. A plain cause affects its group; special causes affect their row,
// column, surrounding region or the whole field. Staged tiles are never
// returned, so a staged cause is absent from its own result.
func (r Resolver) Run(cause *board.Tile, g *board.Grid) []*board.Tile {
	if cause == nil || g == nil {
		return nil
	}
	switch cause.Behaviour {
	case board.BehaviourNone:
		return g.GroupTiles(cause.Group)
	case board.BehaviourRowDestroyer:
		return collect(g, cause.Pos.Row, cause.Pos.Row, 0, g.Width()-1)
	case board.BehaviourColumnDestroyer:
		return collect(g, 0, g.Height()-1, cause.Pos.Col, cause.Pos.Col)
	case board.BehaviourRegionDestroyer:
		rad := r.RegionRadius
		if rad <= 0 {
			rad = DefaultRegionRadius
		}
		return collect(g,
			max(0, cause.Pos.Row-rad), min(g.Height()-1, cause.Pos.Row+rad),
			max(0, cause.Pos.Col-rad), min(g.Width()-1, cause.Pos.Col+rad))
	case board.BehaviourFieldDestroyer:
		return collect(g, 0, g.Height()-1, 0, g.Width()-1)
	default:
		return nil
	}
}

// collect gathers unstaged tiles inside the inclusive rectangle.
func collect(g *board.Grid, row0, row1, col0, col1 int) []*board.Tile {
	var out []*board.Tile
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			if t := g.TileAt(row, col); t != nil && !t.Staged() {
				out = append(out, t)
			}
		}
	}
	return out
}

// Chained returns the special tiles in affected, other than cause, that have
// not been triggered yet. Each returned tile is added to triggered.
func Chained(cause *board.Tile, affected []*board.Tile, triggered mapset.Set[board.TileID]) []*board.Tile {
	var out []*board.Tile
	for _, t := range affected {
		if t == cause || !t.Special() || triggered.Has(t.ID) {
			continue
		}
		triggered.Put(t.ID)
		out = append(out, t)
	}
	return out
}

// Chebyshev returns the chessboard distance between two cells.
func Chebyshev(a, b board.Pos) int {
	return a.Chebyshev(b)
}
