package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/transport/ws"
)

var (
	flagRelayAddr    string
	flagRelayOrigins []string
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the WebSocket duel relay",
	Long: `Run the relay duel clients connect to.

Players are paired in two-seat rooms. Every payload one player sends is
forwarded to the other once both seats are taken; when a player leaves the
other is told so.

Settings are read from the environment and overridden by flags:

` + config.RelayUsage() + `
Examples:
  tetris relay
  tetris relay --addr :9000
  TETRIS_RELAY_ORIGINS='*' tetris relay`,
	Run: runRelay,
}

func init() {
	relayCmd.Flags().StringVar(&flagRelayAddr, "addr", "", "Listen address (overrides TETRIS_RELAY_ADDR)")
	relayCmd.Flags().StringSliceVar(&flagRelayOrigins, "origin", nil, "Allowed origin, repeatable (overrides TETRIS_RELAY_ORIGINS)")
}

func runRelay(_ *cobra.Command, _ []string) {
	relayCfg, err := config.LoadRelay()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagRelayAddr != "" {
		relayCfg.Addr = flagRelayAddr
	}
	if len(flagRelayOrigins) > 0 {
		relayCfg.Origins = flagRelayOrigins
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris-relay",
	})
	level, err := log.ParseLevel(relayCfg.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", relayCfg.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := ws.NewServer(relayServerConfig(relayCfg), logger)
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("relay stopped", "error", err)
		os.Exit(1)
	}
}

// relayServerConfig maps the environment settings onto the server config.
func relayServerConfig(c config.RelayConfig) ws.ServerConfig {
	sc := ws.DefaultServerConfig()
	sc.Address = c.Addr
	if c.Path != "" {
		sc.Path = c.Path
	}
	sc.Origins = append([]string(nil), c.Origins...)
	return sc
}
