package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidSize is returned when a grid dimension is not positive.
	ErrInvalidSize = errors.New("board: width and height must be positive")

	// ErrNoTileTypes is returned when the type palette is empty.
	ErrNoTileTypes = errors.New("board: at least one tile type is required")
)

// Source provides uniform random integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Grid is the board model. Cells are stored in row-major order:
// index = row*width + col. An empty cell holds the zero TileID.
type Grid struct {
	width  int
	height int
	cells  []TileID
	arena  *Arena
	types  []string
	rng    Source

	groupSizes map[GroupID]int
	lastGroup  GroupID

	// displaced holds staged tiles overwritten by SetTileAt, reported by
	// the commit they were staged under.
	displaced map[CommitID][]Tile
}

// New creates a grid filled with random tiles from types and assigns groups.
func New(width, height int, types []string, rng Source) (*Grid, error) {
	g, err := NewEmpty(width, height, types, rng)
	if err != nil {
		return nil, err
	}
	for i := range g.cells {
		g.spawn(g.posOf(i), g.randomType(), 0)
	}
	g.AssignGroups()
	return g, nil
}

// NewEmpty creates a grid with every cell empty.
func NewEmpty(width, height int, types []string, rng Source) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if len(types) == 0 {
		return nil, ErrNoTileTypes
	}
	palette := make([]string, len(types))
	copy(palette, types)

	return &Grid{
		width:      width,
		height:     height,
		cells:      make([]TileID, width*height),
		arena:      NewArena(width*height + width),
		types:      palette,
		rng:        rng,
		groupSizes: make(map[GroupID]int),
		displaced:  make(map[CommitID][]Tile),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Types returns a copy of the plain tile palette.
func (g *Grid) Types() []string {
	out := make([]string, len(g.types))
	copy(out, g.types)
	return out
}

// Arena exposes tile storage, mostly for diagnostics.
func (g *Grid) Arena() *Arena {
	return g.arena
}

// InBounds returns true if the cell lies within the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

func (g *Grid) index(row, col int) int {
	return row*g.width + col
}

func (g *Grid) posOf(i int) Pos {
	return Pos{Col: i % g.width, Row: i / g.width}
}

// TileAt returns the tile at (row, col), or nil for empty or out-of-bounds cells.
func (g *Grid) TileAt(row, col int) *Tile {
	if !g.InBounds(row, col) {
		return nil
	}
	return g.arena.Get(g.cells[g.index(row, col)])
}

// At is TileAt keyed by position.
func (g *Grid) At(p Pos) *Tile {
	return g.TileAt(p.Row, p.Col)
}

// TileByID returns the live tile with the given id, or nil.
func (g *Grid) TileByID(id TileID) *Tile {
	t := g.arena.Get(id)
	if t == nil || !g.InBounds(t.Pos.Row, t.Pos.Col) {
		return nil
	}
	if g.cells[g.index(t.Pos.Row, t.Pos.Col)] != id {
		return nil
	}
	return t
}

// SetTileAt places a copy of tile at p and returns the live tile.
// A previous occupant is released. Out-of-bounds positions return nil.
func (g *Grid) SetTileAt(p Pos, tile Tile) *Tile {
	if !g.InBounds(p.Row, p.Col) {
		return nil
	}
	idx := g.index(p.Row, p.Col)
	if prev := g.arena.Get(g.cells[idx]); prev != nil {
		if prev.Staged() {
			g.displaced[prev.CommitID] = append(g.displaced[prev.CommitID], *prev)
		}
		g.arena.Release(prev.ID)
		g.cells[idx] = TileID{}
	}

	tile.Pos = p
	tile.Group = 0
	live := g.arena.Alloc(tile)
	g.cells[idx] = live.ID

	// Placed tiles form their own group until the next regroup.
	if !live.Staged() {
		g.lastGroup++
		live.Group = g.lastGroup
		g.groupSizes[live.Group] = 1
	}
	return live
}

// SpawnSpecial places a special tile with the given behaviour at p.
func (g *Grid) SpawnSpecial(p Pos, b Behaviour) *Tile {
	return g.SetTileAt(p, Tile{Type: SpecialType, Behaviour: b})
}

// spawn allocates a plain tile without touching groups.
func (g *Grid) spawn(p Pos, typ string, commitID CommitID) *Tile {
	t := g.arena.Alloc(Tile{Type: typ, Pos: p, CommitID: commitID})
	g.cells[g.index(p.Row, p.Col)] = t.ID
	return t
}

func (g *Grid) randomType() string {
	if len(g.types) == 1 || g.rng == nil {
		return g.types[0]
	}
	return g.types[g.rng.IntN(len(g.types))]
}

// Stage marks every unstaged tile in tiles with commitID.
// Nil, stale and already-staged tiles are skipped.
// Returns the number of tiles newly staged.
func (g *Grid) Stage(tiles []*Tile, commitID CommitID) int {
	if commitID == 0 {
		return 0
	}
	staged := 0
	for _, t := range tiles {
		if t == nil || t.Staged() {
			continue
		}
		if g.TileByID(t.ID) != t {
			continue
		}
		t.CommitID = commitID
		staged++
	}
	return staged
}

// Tiles returns all occupied tiles in row-major order.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, 0, len(g.cells))
	for _, id := range g.cells {
		if t := g.arena.Get(id); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// StagedTiles returns tiles staged under commitID in row-major order.
func (g *Grid) StagedTiles(commitID CommitID) []*Tile {
	var out []*Tile
	for _, t := range g.Tiles() {
		if t.CommitID == commitID {
			out = append(out, t)
		}
	}
	return out
}

// Specials returns every unstaged special tile in row-major order.
func (g *Grid) Specials() []*Tile {
	var out []*Tile
	for _, t := range g.Tiles() {
		if t.Special() && !t.Staged() {
			out = append(out, t)
		}
	}
	return out
}

// Shuffle randomly permutes the positions of unstaged tiles and regroups.
func (g *Grid) Shuffle(rng Source) {
	var slots []int
	for i, id := range g.cells {
		if t := g.arena.Get(id); t != nil && !t.Staged() {
			slots = append(slots, i)
		}
	}

	ids := make([]TileID, len(slots))
	for i, idx := range slots {
		ids[i] = g.cells[idx]
	}
	// Fisher-Yates
	for i := len(ids) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}

	for i, idx := range slots {
		g.cells[idx] = ids[i]
		g.arena.Get(ids[i]).Pos = g.posOf(idx)
	}
	g.AssignGroups()
}

// String renders the grid one rune per cell, one line per row.
// Empty cells are '.', staged plain tiles are upper-cased and special
// tiles use their behaviour glyph.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for row := range g.height {
		for col := range g.width {
			t := g.TileAt(row, col)
			if t == nil {
				sb.WriteRune('.')
				continue
			}
			sb.WriteRune(t.Rune())
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Parse builds a grid from a dump in the String format. Letters map to the
// palette type starting with that letter (case-insensitive; upper case is
// not treated as staged). Behaviour glyphs place special tiles; '.' leaves
// the cell empty. Groups are assigned before returning.
func Parse(rows []string, types []string, rng Source) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidSize)
	}
	width := len([]rune(rows[0]))
	g, err := NewEmpty(width, len(rows), types, rng)
	if err != nil {
		return nil, err
	}

	byRune := make(map[rune]string, len(types))
	for _, typ := range types {
		for _, r := range strings.ToLower(typ) {
			if _, taken := byRune[r]; !taken {
				byRune[r] = typ
			}
			break
		}
	}

	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("board: row %d has %d cells, expected %d", row, len(runes), width)
		}
		for col, r := range runes {
			p := P(col, row)
			if r == '.' {
				continue
			}
			if b, ok := behaviourForGlyph(r); ok {
				t := g.arena.Alloc(Tile{Type: SpecialType, Behaviour: b, Pos: p})
				g.cells[g.index(row, col)] = t.ID
				continue
			}
			typ, ok := byRune[unicode.ToLower(r)]
			if !ok {
				return nil, fmt.Errorf("board: unknown cell %q at %v", r, p)
			}
			g.spawn(p, typ, 0)
		}
	}
	g.AssignGroups()
	return g, nil
}
