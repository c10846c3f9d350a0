package board_test

import (
	"math/rand/v2"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tileblast/internal/games/tileblast/board"
)

func TestCommitGolden(t *testing.T) {
	g := mustParse(t,
		"rrg",
		"rgb",
		"bbg",
	)
	blues := g.GroupTiles(g.TileAt(2, 0).Group)
	require.Len(t, blues, 2)
	g.Stage(blues, 1)

	out := "staged:\n" + g.String()
	g.Commit(1)
	out += "after:\n" + g.String()

	gold := goldie.New(t)
	gold.Assert(t, "board_commit", []byte(out))
}

func TestCommitReport(t *testing.T) {
	g := mustParse(t,
		"rg",
		"bb",
	)
	red := g.TileAt(0, 0)
	g.Stage(g.GroupTiles(g.TileAt(1, 0).Group), 5)

	res := g.Commit(5)
	assert.Equal(t, board.CommitID(5), res.CommitID)
	assert.Len(t, res.Removed, 2)
	for _, tile := range res.Removed {
		assert.Equal(t, "blue", tile.Type)
		assert.Equal(t, board.CommitID(5), tile.CommitID)
	}

	require.Len(t, res.Moved, 2)
	assert.Equal(t, board.Move{ID: red.ID, From: board.P(0, 0), To: board.P(0, 1)}, res.Moved[0])

	require.Len(t, res.Spawned, 2)
	for _, tile := range res.Spawned {
		assert.Equal(t, 0, tile.Pos.Row)
		assert.Equal(t, board.CommitID(5), tile.CommitID, "snapshot carries its origin")
		live := g.TileByID(tile.ID)
		require.NotNil(t, live)
		assert.False(t, live.Staged(), "refilled tiles are clickable")
	}
}

func TestCommitIsIdempotent(t *testing.T) {
	g := mustParse(t, "rrg", "gbb")
	g.Stage(g.GroupTiles(g.TileAt(0, 0).Group), 1)
	require.False(t, g.Commit(1).Empty())

	before := g.String()
	res := g.Commit(1)
	assert.True(t, res.Empty())
	assert.Equal(t, before, g.String())

	assert.True(t, g.Commit(0).Empty())
}

func TestGravityKeepsColumnOrder(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, 99))
		g, err := board.New(6, 8, palette, rng)
		require.NoError(t, err)

		// Stage a random subset and remember the survivors top-down per column.
		var staged []*board.Tile
		for _, tile := range g.Tiles() {
			if rng.IntN(3) == 0 {
				staged = append(staged, tile)
			}
		}
		g.Stage(staged, 1)

		survivors := make([][]board.TileID, g.Width())
		for row := range g.Height() {
			for col := range g.Width() {
				if tile := g.TileAt(row, col); !tile.Staged() {
					survivors[col] = append(survivors[col], tile.ID)
				}
			}
		}

		res := g.Commit(1)
		assert.Len(t, res.Removed, len(staged))
		assert.Len(t, res.Spawned, len(staged))

		for col := range g.Width() {
			kept := len(survivors[col])
			spawned := g.Height() - kept
			for row := range g.Height() {
				tile := g.TileAt(row, col)
				require.NotNil(t, tile, "seed %d: hole at (%d,%d)", seed, col, row)
				if row < spawned {
					continue
				}
				assert.Equal(t, survivors[col][row-spawned], tile.ID,
					"seed %d: column %d order changed", seed, col)
			}
		}
	}
}

func TestGravitySkipsOtherCommits(t *testing.T) {
	g := mustParse(t,
		"r",
		"g",
		"b",
	)
	red := g.TileAt(0, 0)
	green := g.TileAt(1, 0)
	g.Stage([]*board.Tile{green}, 2)
	g.Stage([]*board.Tile{g.TileAt(2, 0)}, 1)

	res := g.Commit(1)
	require.Len(t, res.Moved, 1)
	assert.Same(t, red, g.TileAt(2, 0), "red falls past the staged green")
	assert.Same(t, green, g.TileAt(1, 0), "staged tile stays fixed")
	require.NotNil(t, g.TileAt(0, 0))
	assert.False(t, g.TileAt(0, 0).Staged())

	res = g.Commit(2)
	assert.Len(t, res.Removed, 1)
	assert.Len(t, g.Tiles(), 3)
}

func TestSetTileAtOutOfBounds(t *testing.T) {
	g := mustParse(t, "rg")
	assert.Nil(t, g.SetTileAt(board.P(5, 5), board.Tile{Type: "red"}))
	assert.Nil(t, g.SpawnSpecial(board.P(-1, 0), board.BehaviourFieldDestroyer))
	assert.Equal(t, 2, g.Arena().Live())
}
