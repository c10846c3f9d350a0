package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileblast/internal/platform/tui"
	"github.com/vovakirdan/tileblast/internal/registry"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing TileBlast.

Controls:
  Arrows/WASD/hjkl  - Move cursor
  Space/Enter/Click - Blast the tile under the cursor
  P                 - Pause
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit

Modes:
  moves   - Reach the score target within the move limit
  endless - No move limit, no target

Difficulty options:
  easy   - 3 colours and 10 extra moves
  normal - 4 colours
  hard   - All colours, fewer moves and a higher target

Without --difficulty a picker is shown before the game starts.

Examples:
  tileblast play
  tileblast play --mode endless
  tileblast play --difficulty hard
  tileblast play --config ./my-tileblast.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "moves", "Game mode: moves, endless")
}

// gameIDForMode maps a --mode value to a registered game id.
func gameIDForMode(mode string) (string, bool) {
	switch mode {
	case "", "moves":
		return "tileblast", true
	case "endless":
		return "tileblast_endless", true
	default:
		return "", false
	}
}

func runPlay(_ *cobra.Command, _ []string) {
	gameID, ok := gameIDForMode(flagMode)
	if !ok {
		fail("unknown mode %q (expected moves or endless)", flagMode)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	if _, err := loadGameConfig(logger); err != nil {
		fail("%v", err)
	}

	cfg := runtimeConfig()
	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}
	ok, err = applyDifficulty(game, cfg, logger)
	if err != nil {
		fail("%v", err)
	}
	if !ok {
		return
	}

	store := openStore(logger)
	runErr := tui.Run(game, store, cfg, logger)
	closeStore(store, logger)
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
