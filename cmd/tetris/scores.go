package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresClear  bool
	flagScoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [solo|duel]",
	Short: "Show high scores",
	Long: `Display the top scores for solo games (the default) or duels.
For duels, --player also prints that player's win/loss record.

Examples:
  tetris scores
  tetris scores duel --player alice
  tetris scores solo --clear`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{storage.ModeSolo, storage.ModeDuel},
	Run:       runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show this player's duel record")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) {
	mode := storage.ModeSolo
	if len(args) == 1 {
		mode = args[0]
	}
	if mode != storage.ModeSolo && mode != storage.ModeDuel {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (want solo or duel)\n", mode)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared %s scores.\n", mode)
		return
	}

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "Rank", "Score", "Lines", "Level", "Date")
		fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "----", "-----", "-----", "-----", "----")
		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %-6d  %-6d  %s\n", i+1, entry.Score, entry.Lines, entry.Level, dateStr)
		}

		if stats, err := store.ModeStats(mode); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d  Games: %d  Average: %.0f  Lines: %d\n",
				stats.HighScore, stats.Games, stats.AvgScore, stats.TotalLines)
		}
	}

	if mode != storage.ModeDuel {
		return
	}

	if flagScoresPlayer != "" {
		if rec, err := store.Record(flagScoresPlayer); err == nil {
			fmt.Println()
			fmt.Printf("%s: %d won, %d lost\n", rec.Player, rec.Wins, rec.Losses)
		}
	}

	duels, err := store.RecentDuels(5)
	if err != nil || len(duels) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent duels:")
	for _, d := range duels {
		result := "lost"
		if d.Won {
			result = "won"
		}
		fmt.Printf("  %s  %s vs %s  %d:%d  %s\n",
			d.CreatedAt.Format("2006-01-02 15:04"), d.Player, d.Opponent, d.Score, d.OpponentScore, result)
	}
}
