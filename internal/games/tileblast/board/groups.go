package board

import "github.com/zyedidia/generic/stack"

// neighborOffsets lists the 4-directional neighbors as (dcol, drow).
var neighborOffsets = [4][2]int{
	{0, -1}, // up
	{1, 0},  // right
	{0, 1},  // down
	{-1, 0}, // left
}

// AssignGroups recomputes every group from scratch.
//
// Cells are visited in row-major order; each unstaged tile without a group
// seeds a flood fill through 4-neighbors of identical type. Special tiles
// always form singleton groups and staged tiles get no group at all.
// The fill uses an explicit stack so board size is not bounded by call depth.
func (g *Grid) AssignGroups() {
	for _, t := range g.Tiles() {
		t.Group = 0
	}
	g.groupSizes = make(map[GroupID]int)
	g.lastGroup = 0

	for row := range g.height {
		for col := range g.width {
			t := g.TileAt(row, col)
			if t == nil || t.Staged() || t.Group != 0 {
				continue
			}
			g.lastGroup++
			g.groupSizes[g.lastGroup] = g.fillGroup(t, g.lastGroup)
		}
	}
}

// fillGroup assigns id to seed and every tile connected to it.
// Returns the number of tiles in the group.
func (g *Grid) fillGroup(seed *Tile, id GroupID) int {
	seed.Group = id
	if seed.Special() {
		return 1
	}

	size := 1
	pending := stack.New[*Tile]()
	pending.Push(seed)

	for pending.Size() > 0 {
		cur := pending.Pop()
		for _, off := range neighborOffsets {
			n := g.TileAt(cur.Pos.Row+off[1], cur.Pos.Col+off[0])
			if n == nil || n.Group != 0 || n.Staged() || n.Special() {
				continue
			}
			if n.Type != seed.Type {
				continue
			}
			n.Group = id
			size++
			pending.Push(n)
		}
	}
	return size
}

// GroupSize returns the number of tiles in a group, or 0 if it does not exist.
func (g *Grid) GroupSize(id GroupID) int {
	return g.groupSizes[id]
}

// GroupTiles returns the unstaged tiles belonging to a group in row-major order.
func (g *Grid) GroupTiles(id GroupID) []*Tile {
	if id == 0 {
		return nil
	}
	var out []*Tile
	for _, t := range g.Tiles() {
		if t.Group == id && !t.Staged() {
			out = append(out, t)
		}
	}
	return out
}

// GroupCount returns the number of groups from the last regroup.
func (g *Grid) GroupCount() int {
	return len(g.groupSizes)
}

// HasMoves reports whether any click would be accepted: a plain group of
// two or more tiles, or any special tile.
func (g *Grid) HasMoves() bool {
	for _, t := range g.Tiles() {
		if t.Staged() {
			continue
		}
		if t.Special() || g.groupSizes[t.Group] >= 2 {
			return true
		}
	}
	return false
}
