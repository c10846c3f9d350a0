package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tileblast/internal/config"
	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/games/tileblast"
	"github.com/vovakirdan/tileblast/internal/platform/tui"
	"github.com/vovakirdan/tileblast/internal/registry"
	"github.com/vovakirdan/tileblast/internal/storage"
)

// newLogger builds the logger selected by --log-level and --log-file.
// Interactive commands own the terminal, so without a log file they
// discard logs instead of writing to stderr.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		//nolint:errcheck // Closing on exit
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tileblast",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadGameConfig loads tileblast.yaml and hands it to the game package.
func loadGameConfig(logger *log.Logger) (config.TileBlastConfig, error) {
	cfg, err := config.LoadTileBlast(flagConfig)
	if err != nil {
		return cfg, err
	}
	tileblast.Configure(cfg, logger)
	logger.Debug("config loaded",
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"types", len(cfg.Tiles.Types),
		"moves", cfg.Progress.MovesLimit,
		"target", cfg.Progress.ScoreTarget)
	return cfg, nil
}

// runtimeConfig sizes the screen from the terminal, 80x24 when stdout is
// not one, and applies --fps and --seed.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens --db. Games still run without it, so a failure is only
// logged and the store is nil.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("closing scores database", "error", err)
	}
}

// applyDifficulty sets --difficulty on a tunable game, asking with the
// picker when the flag is empty. ok is false when the player backed out.
func applyDifficulty(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) (ok bool, err error) {
	t, tunable := game.(registry.Tunable)
	if !tunable {
		return true, nil
	}
	preset := flagDifficulty
	if preset == "" {
		if preset, err = tui.RunDifficultySelector(game.Title(), cfg); err != nil || preset == "" {
			return false, err
		}
	}
	if err := t.SetDifficulty(preset); err != nil {
		return false, err
	}
	logger.Info("game started", "mode", game.ID(), "difficulty", preset)
	return true, nil
}

// fail prints an error the way every command reports it and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
