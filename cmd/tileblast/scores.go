package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tileblast/internal/games/tileblast/session"
	"github.com/vovakirdan/tileblast/internal/registry"
	"github.com/vovakirdan/tileblast/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top high scores for a mode (default: tileblast).

Examples:
  tileblast scores
  tileblast scores tileblast_endless --limit 20
  tileblast scores tileblast --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "tileblast"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fail("unknown mode %q\nRun 'tileblast list' to see available modes.", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	p := message.NewPrinter(language.English)

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			store.Close()
			fail("%v", err)
		}
		p.Printf("Cleared scores for %s\n", title)
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	p.Printf("High Scores - %s\n\n", title)

	if len(scores) == 0 {
		p.Println("No scores recorded yet.")
		p.Println()
		p.Printf("Run 'tileblast play' to set the first high score!\n")
		return
	}

	p.Printf("  %-4s  %8s  %5s  %-22s  %s\n", "Rank", "Score", "Moves", "Result", "Date")
	p.Printf("  %-4s  %8s  %5s  %-22s  %s\n", "----", "-----", "-----", "------", "----")
	for i, entry := range scores {
		p.Printf("  %-4d  %8d  %5d  %-22s  %s\n",
			i+1, entry.Score, entry.MovesUsed, entry.Status, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID, session.StatusGoalReached.String())
	if err == nil {
		p.Println()
		p.Printf("Runs: %d  Best: %d  Average: %.1f  Wins: %d\n",
			stats.Runs, stats.Best, stats.Average, stats.Wins)
	}
}
