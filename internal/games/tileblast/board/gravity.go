package board

// Move records a tile pulled down by gravity during a commit.
type Move struct {
	ID   TileID
	From Pos
	To   Pos
}

// CommitResult describes what a commit did to the grid.
type CommitResult struct {
	CommitID CommitID
	Removed  []Tile // snapshots of removed tiles, released before return
	Moved    []Move // tiles shifted down, in column then bottom-up order
	Spawned  []Tile // snapshots of refill tiles; CommitID marks their origin
}

// Empty reports whether the commit changed nothing.
func (r CommitResult) Empty() bool {
	return len(r.Removed) == 0 && len(r.Moved) == 0 && len(r.Spawned) == 0
}

// Commit applies every removal staged under commitID.
//
// The sequence is remove, shift, refill, regroup. It completes before
// Commit returns, so no caller ever observes a partially applied commit.
// Tiles staged under other commit ids stay where they are and are skipped
// when sourcing tiles for gravity. Committing an unknown id only refills
// and regroups.
func (g *Grid) Commit(commitID CommitID) CommitResult {
	result := CommitResult{CommitID: commitID}
	if commitID == 0 {
		return result
	}

	result.Removed = append(result.Removed, g.displaced[commitID]...)
	delete(g.displaced, commitID)

	for i, id := range g.cells {
		t := g.arena.Get(id)
		if t == nil || t.CommitID != commitID {
			continue
		}
		result.Removed = append(result.Removed, *t)
		g.arena.Release(id)
		g.cells[i] = TileID{}
	}

	result.Moved = g.applyGravity()
	result.Spawned = g.refill(commitID)
	g.AssignGroups()
	return result
}

// applyGravity compacts every column downward. Scanning bottom-to-top, each
// empty cell pulls the nearest non-empty, unstaged tile above it.
func (g *Grid) applyGravity() []Move {
	var moves []Move
	for col := range g.width {
		for row := g.height - 1; row >= 0; row-- {
			if g.cells[g.index(row, col)].Valid() {
				continue
			}
			src := g.firstMovableAbove(row, col)
			if src < 0 {
				break
			}
			srcIdx := g.index(src, col)
			id := g.cells[srcIdx]
			t := g.arena.Get(id)

			g.cells[g.index(row, col)] = id
			g.cells[srcIdx] = TileID{}
			moves = append(moves, Move{ID: id, From: t.Pos, To: P(col, row)})
			t.Pos = P(col, row)
		}
	}
	return moves
}

// firstMovableAbove returns the row of the nearest unstaged tile above
// (row, col), or -1 when there is none.
func (g *Grid) firstMovableAbove(row, col int) int {
	for r := row - 1; r >= 0; r-- {
		t := g.TileAt(r, col)
		if t != nil && !t.Staged() {
			return r
		}
	}
	return -1
}

// refill fills every empty cell with a random plain tile. The returned
// snapshots carry commitID so callers can tell which commit produced them;
// the live tiles are left unstaged.
func (g *Grid) refill(commitID CommitID) []Tile {
	var spawned []Tile
	for i, id := range g.cells {
		if id.Valid() {
			continue
		}
		t := g.spawn(g.posOf(i), g.randomType(), commitID)
		spawned = append(spawned, *t)
		t.CommitID = 0
	}
	return spawned
}
