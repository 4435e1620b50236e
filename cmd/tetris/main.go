// tetris is a terminal tetris with local, relayed and SSH duels.
//
// Usage:
//
//	tetris list              - List difficulty variants
//	tetris play [variant]    - Play a solo game
//	tetris menu              - Start menu to pick a mode interactively
//	tetris duel              - Duel another player through a relay
//	tetris relay             - Run the WebSocket duel relay
//	tetris serve             - Start SSH server for remote play
//	tetris scores [mode]     - Show high scores
//
// Global flags:
//
//	--fps <rate>          - Override the frame rate from the config
//	--seed <value>        - Set piece sequence seed (0: random solo, configured seed in duels)
//	--db <path>           - Set database path (default: ~/.tetris/scores.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log <path>          - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       uint32
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal, solo or head to head",
	Long: `A deterministic tetris engine with terminal front-ends.

Available commands:
  list     - Show difficulty variants
  play     - Play a solo game
  menu     - Interactive mode picker
  duel     - Play against someone through a relay
  relay    - Run the WebSocket relay duels connect to
  serve    - Start SSH server for remote play and duels
  scores   - View high scores

Examples:
  tetris play
  tetris play --difficulty hard
  tetris relay --addr :8000
  tetris duel --url ws://localhost:8000/ws/tetris
  tetris serve --ssh :2222
  tetris scores duel`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Piece sequence seed (0 = random for solo games, the configured rules.seed for duels)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(duelCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads the game config and applies --fps. It exits on error.
func loadConfig() config.TetrisConfig {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagFPS > 0 {
		cfg.Timing.Frame = time.Second / time.Duration(flagFPS)
	}
	return cfg
}

// parsePreset parses --difficulty. It exits on error.
func parsePreset() config.DifficultyPreset {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return preset
}

// openStore opens the scores database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig(cfg config.TetrisConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.FPS()
	rc.Seed = flagSeed
	return rc
}

// newLogger logs to --log, or nowhere: the terminal belongs to the game.
func newLogger() (*log.Logger, func()) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}
