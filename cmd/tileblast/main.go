// tileblast is a terminal tile-blast puzzle: click groups of matching
// tiles, chain special tiles into cascades and reach the score target
// before the moves run out.
//
// Usage:
//
//	tileblast list              - List available modes
//	tileblast play              - Play a game
//	tileblast menu              - Start menu to pick a mode interactively
//	tileblast serve             - Start SSH server for remote play
//	tileblast scores [mode]     - Show high scores
//	tileblast sim               - Run a headless random-click session
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.tileblast/scores.db)
//	--config <path>      - Custom tileblast.yaml
//	--difficulty <name>  - easy, normal or hard
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileblast/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/tileblast/internal/games/tileblast"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tileblast",
	Short: "TileBlast - a tile-blast puzzle in your terminal",
	Long: `TileBlast is a terminal puzzle game. Click a group of two or more
matching tiles to blast it; big groups leave special tiles behind that
clear rows, columns, regions or the whole board, and chain into cascades.

Available commands:
  list     - Show all available modes
  play     - Play a game directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run a headless random-click session

Examples:
  tileblast play
  tileblast play --mode endless --difficulty hard
  tileblast menu
  tileblast serve --ssh :2222
  tileblast scores tileblast
  tileblast sim --seed 42`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultDBPath(), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tileblast.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
