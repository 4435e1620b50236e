package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a solo game",
	Long: `Start a solo game. The variant defaults to the --difficulty preset.

Controls:
  Left/Right, A/D  - Move
  Down, S          - Soft drop
  Up, X / Z        - Rotate clockwise / counter-clockwise
  Space            - Hard drop
  C                - Hold
  P                - Pause
  R                - Restart (paused or after game over)
  Esc              - Leave (paused or after game over)
  Ctrl+S           - Save screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Three extra slow levels before the normal table
  normal - Configured gravity table
  hard   - Starts five levels in
  fixed  - No progression, stays at level zero speed

Examples:
  tetris play
  tetris play tetris-hard
  tetris play --difficulty easy
  tetris play --seed 42 --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := tetris.VariantID(parsePreset())
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
		os.Exit(1)
	}

	cfg := loadConfig()
	game, err := registry.Create(gameID, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	store := openStore()
	_, runErr := tui.Run(game, store, runtimeConfig(cfg), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
