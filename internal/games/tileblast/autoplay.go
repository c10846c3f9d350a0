package tileblast

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tileblast/internal/config"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/board"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/session"
)

const defaultMaxClicks = 1000

// AutoplayOptions configures a headless run.
type AutoplayOptions struct {
	Seed      uint64 // 0 picks a random seed
	MaxClicks int    // 0 means defaultMaxClicks
	Smart     bool   // only click tiles that can be blasted
}

// AutoplayReport summarises a headless run.
type AutoplayReport struct {
	session.Result
	Seed           uint64
	Clicks         int
	Rejected       int
	PlainRemoved   int
	SpecialsFired  int
	LongestCascade int
}

// autoplayStats counts listener notifications.
type autoplayStats struct {
	session.NopListener
	rejected int
	plain    int
	specials int
}

func (s *autoplayStats) TilesRemoved(tiles []board.Tile) {
	for _, t := range tiles {
		if t.Special() {
			s.specials++
		} else {
			s.plain++
		}
	}
}

func (s *autoplayStats) MoveRejected(board.TileID, session.Reason) {
	s.rejected++
}

// Autoplay plays one session by clicking random tiles, settling every
// interaction before the next click. It stops when the session ends, the
// click budget runs out or ctx is cancelled.
func Autoplay(ctx context.Context, cfg config.TileBlastConfig, opts AutoplayOptions, logger *log.Logger) (AutoplayReport, error) {
	if err := cfg.Validate(); err != nil {
		return AutoplayReport{}, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	maxClicks := opts.MaxClicks
	if maxClicks <= 0 {
		maxClicks = defaultMaxClicks
	}

	stats := &autoplayStats{}
	sc := cfg.Session()
	sc.Seed = seed
	ctrl, err := session.New(sc, session.WithListener(stats), session.WithLogger(logger))
	if err != nil {
		return AutoplayReport{}, err
	}

	picker := rand.New(rand.NewPCG(seed, ^seed))
	report := AutoplayReport{Seed: seed}
	finish := func() AutoplayReport {
		report.Result = ctrl.Result()
		report.Rejected = stats.rejected
		report.PlainRemoved = stats.plain
		report.SpecialsFired = stats.specials
		return report
	}

	for report.Clicks < maxClicks && ctrl.State() != session.StateOver {
		if err := ctx.Err(); err != nil {
			return finish(), err
		}
		tiles := candidates(ctrl.Grid(), opts.Smart)
		if len(tiles) == 0 {
			break
		}
		t := tiles[picker.IntN(len(tiles))]
		report.Clicks++
		if out := ctrl.OnTileClicked(t.ID); !out.Accepted {
			continue
		}
		if err := ctrl.Settle(ctx); err != nil {
			return finish(), err
		}
		report.LongestCascade = max(report.LongestCascade, ctrl.CascadeDepth()+1)
	}

	return finish(), nil
}

// candidates returns the tiles a random player may click.
func candidates(g *board.Grid, smart bool) []*board.Tile {
	tiles := g.Tiles()
	if !smart {
		return tiles
	}
	out := tiles[:0]
	for _, t := range tiles {
		if t.Special() || g.GroupSize(t.Group) > 1 {
			out = append(out, t)
		}
	}
	return out
}
