package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/transport/ws"
)

var (
	flagRelayURL   string
	flagPlayerName string
)

var duelCmd = &cobra.Command{
	Use:   "duel",
	Short: "Duel another player through a relay",
	Long: `Connect to a relay and play against whoever joins the same room.

The relay seats you in the first room that is waiting for a player. The game
starts for both of you once the second player arrives. Every line you clear
pushes garbage rows onto your opponent's board, and the first to top out
loses.

Examples:
  tetris duel
  tetris duel --url ws://example.com:8000/ws/tetris --name alice`,
	Run: runDuel,
}

func init() {
	duelCmd.Flags().StringVar(&flagRelayURL, "url", "ws://localhost:8000/ws/tetris", "Relay WebSocket URL")
	duelCmd.Flags().StringVar(&flagPlayerName, "name", os.Getenv("USER"), "Name recorded in the duel history")
}

func runDuel(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	preset := parsePreset()

	logger, closeLog := newLogger()
	defer closeLog()

	client, err := dialRelay(flagRelayURL, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("connected to relay", "url", flagRelayURL)

	duel := tetris.NewDuel(tetris.NewWithPreset(cfg, preset), client, logger)
	info := tui.DuelInfo{Room: relayRoom(flagRelayURL), Player: playerName(flagPlayerName)}

	store := openStore()
	_, runErr := tui.RunDuel(duel, info, store, runtimeConfig(cfg), logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running duel: %v\n", runErr)
		os.Exit(1)
	}
}

// dialRelay connects to the relay with a bounded handshake.
func dialRelay(rawURL string, logger *log.Logger) (*ws.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return ws.Dial(ctx, rawURL, logger)
}

// relayRoom names the duel after the relay host; rooms are not visible to clients.
func relayRoom(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

func playerName(name string) string {
	if name == "" {
		return "player"
	}
	return name
}
