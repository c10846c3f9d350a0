package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/platform/tui"
	"github.com/vovakirdan/tileblast/internal/registry"
	"github.com/vovakirdan/tileblast/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start TileBlast in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, then pick a
difficulty. After a game you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  tileblast menu
  tileblast menu --fps 30
  tileblast menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	if _, err := loadGameConfig(logger); err != nil {
		fail("%v", err)
	}

	store := openStore(logger)
	defer closeStore(store, logger)

	cfg := runtimeConfig()
	for {
		next, err := menuRound(store, &cfg, logger)
		if err != nil {
			logger.Error("menu", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if !next {
			return
		}
	}
}

// menuRound shows the menu once and runs whatever was picked. It reports
// whether the menu should be shown again.
func menuRound(store *storage.Store, cfg *core.RuntimeConfig, logger *log.Logger) (bool, error) {
	res, err := tui.RunMenu(store, *cfg)
	if err != nil {
		return false, err
	}
	*cfg = res.Config

	switch {
	case res.Quit || (res.GameID == "" && !res.WantsScoreboard):
		return false, nil
	case res.WantsScoreboard:
		return tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	}

	game, err := registry.Create(res.GameID)
	if err != nil {
		return true, err
	}
	ok, err := applyDifficulty(game, *cfg, logger)
	if !ok || err != nil {
		return true, err
	}

	// a fixed --seed replays the same board every round
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return true, tui.Run(game, store, *cfg, logger)
}
