package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagMenuURL  string
	flagMenuName string
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game ends, Esc returns you to the menu to play again.
With --url the menu also offers a duel through that relay.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --url ws://localhost:8000/ws/tetris`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuURL, "url", "", "Relay WebSocket URL for the duel entry")
	menuCmd.Flags().StringVar(&flagMenuName, "name", os.Getenv("USER"), "Name recorded in the duel history")
}

func runMenu(_ *cobra.Command, _ []string) {
	tetrisCfg := loadConfig()
	cfg := runtimeConfig(tetrisCfg)

	logger, closeLog := newLogger()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg, flagMenuURL != "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		switch menuResult.Item.Kind {
		case tui.ItemScores:
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, playerName(flagMenuName))
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return
			}

		case tui.ItemDuel:
			client, dialErr := dialRelay(flagMenuURL, logger)
			if dialErr != nil {
				logger.Error("cannot reach relay", "url", flagMenuURL, "error", dialErr)
				continue
			}
			duel := tetris.NewDuel(tetris.New(tetrisCfg), client, logger)
			info := tui.DuelInfo{Room: relayRoom(flagMenuURL), Player: playerName(flagMenuName)}
			backToMenu, runErr := tui.RunDuel(duel, info, store, cfg, logger)
			if runErr != nil {
				fmt.Fprintf(os.Stderr, "Error running duel: %v\n", runErr)
				return
			}
			if !backToMenu {
				return
			}

		case tui.ItemSolo:
			game, createErr := registry.Create(menuResult.Item.GameID, tetrisCfg)
			if createErr != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", createErr)
				return
			}
			backToMenu, runErr := tui.Run(game, store, cfg, logger)
			if runErr != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
				return
			}
			if !backToMenu {
				return
			}
		}
	}
}
