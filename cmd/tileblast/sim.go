package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tileblast/internal/config"
	"github.com/vovakirdan/tileblast/internal/games/tileblast"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/session"
	"github.com/vovakirdan/tileblast/internal/storage"
)

var (
	flagSimRuns      int
	flagSimMaxClicks int
	flagSimRandom    bool
	flagSimEndless   bool
	flagSimSave      bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless random-click sessions",
	Long: `Play sessions without a terminal UI by clicking random tiles, and
print a summary of each run. Useful for balancing configs and presets.

By default only tiles that can be blasted are clicked; --random clicks
any tile and counts the rejections.

Examples:
  tileblast sim
  tileblast sim --seed 42 --runs 10
  tileblast sim --difficulty hard --config ./my-tileblast.yaml
  tileblast sim --endless --max-clicks 200 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of sessions to play")
	simCmd.Flags().IntVar(&flagSimMaxClicks, "max-clicks", 1000, "Click budget per session")
	simCmd.Flags().BoolVar(&flagSimRandom, "random", false, "Click any tile, not only blastable ones")
	simCmd.Flags().BoolVar(&flagSimEndless, "endless", false, "No move limit and no target")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store results in the scores database")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadGameConfig(logger)
	if err != nil {
		fail("%v", err)
	}
	mode := "tileblast"
	if flagSimEndless {
		config.ApplyEndless(&cfg)
		mode = "tileblast_endless"
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			fail("%v", err)
		}
		config.ApplyTileBlastPreset(&cfg, preset)
	}

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fail("opening scores database: %v", err)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := message.NewPrinter(language.English)
	totalScore, wins := 0, 0
	start := time.Now()

	for i := range flagSimRuns {
		opts := tileblast.AutoplayOptions{
			MaxClicks: flagSimMaxClicks,
			Smart:     !flagSimRandom,
		}
		if flagSeed != 0 {
			opts.Seed = uint64(flagSeed) + uint64(i)
		}

		report, err := tileblast.Autoplay(ctx, cfg, opts, logger)
		if err != nil {
			fail("run %d: %v", i+1, err)
		}

		p.Printf("Run %d (seed %d): %s\n", i+1, report.Seed, report.Status)
		p.Printf("  score %d in %d moves, %d clicks (%d rejected)\n",
			report.Score, report.MovesUsed, report.Clicks, report.Rejected)
		p.Printf("  %d tiles blasted, %d specials fired, longest cascade %d, effect time %v\n",
			report.PlainRemoved, report.SpecialsFired, report.LongestCascade, report.Duration)

		totalScore += report.Score
		if report.Status == session.StatusGoalReached {
			wins++
		}

		if store != nil && report.MovesUsed > 0 {
			_, err := store.SaveScore(storage.ScoreEntry{
				RunID:     report.RunID,
				Mode:      mode,
				Score:     report.Score,
				MovesUsed: report.MovesUsed,
				Status:    report.Status.String(),
			})
			if err != nil {
				logger.Warn("could not save score", "run", report.RunID, "error", err)
			}
		}
	}

	if flagSimRuns > 1 {
		p.Printf("\n%d runs in %v: average score %.1f, %d wins\n",
			flagSimRuns, time.Since(start).Round(time.Millisecond),
			float64(totalScore)/float64(flagSimRuns), wins)
	}
}
