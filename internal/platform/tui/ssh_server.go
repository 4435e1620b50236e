package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/multiplayer"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tetris/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Tetris is the game configuration every session plays with.
	Tetris config.TetrisConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.tetris/scores.db",
		IdleTimeout: 30 * time.Minute,
		Tetris:      config.DefaultTetrisConfig(),
	}
}

// SSHServer wraps a Wish SSH server. Sessions share one room pool so two
// players connected at the same time can duel.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	sentinel *multiplayer.Sentinel
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		sentinel: multiplayer.NewSentinel(),
		logger:   logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tetris", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.Tetris.FPS(),
	}

	// Create session model that handles menu + game flow
	model := NewSessionModel(s.store, s.sentinel, s.config.Tetris, cfg, sshSession.User(), s.logger)

	// A dropped connection never reaches the model; leave any room from here.
	go func() {
		<-sshSession.Context().Done()
		model.links.closeAll()
	}()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		rooms, started := s.sentinel.Stats()
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"rooms", rooms,
			"started", started,
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "fps", s.config.Tetris.FPS())

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// linkTracker remembers the duel links a session opened so they can be
// closed when the connection drops.
type linkTracker struct {
	mu    sync.Mutex
	links []multiplayer.Link
}

func (t *linkTracker) add(l multiplayer.Link) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.links = append(t.links, l)
}

func (t *linkTracker) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, l := range t.links {
		//nolint:errcheck // Connection is gone either way
		l.Close()
	}
	t.links = nil
}

// sessionView is the screen a session is on.
type sessionView int

const (
	viewMenu sessionView = iota
	viewSolo
	viewDuel
	viewScores
)

// SessionModel manages the full session flow: menu -> game, duel or scores -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store     *storage.Store
	sentinel  *multiplayer.Sentinel
	tetris    config.TetrisConfig
	config    core.RuntimeConfig
	username  string
	logger    *log.Logger
	links     *linkTracker
	view      sessionView
	menu      MenuModel
	gameModel GameModel
	duelModel DuelModel
	scores    ScoreboardModel
	quitting  bool
}

// NewSessionModel creates a new session model. A nil sentinel hides the duel entry.
func NewSessionModel(store *storage.Store, sentinel *multiplayer.Sentinel, tetrisCfg config.TetrisConfig,
	cfg core.RuntimeConfig, username string, logger *log.Logger,
) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:    store,
		sentinel: sentinel,
		tetris:   tetrisCfg,
		config:   cfg,
		username: username,
		logger:   logger,
		links:    &linkTracker{},
		menu:     NewMenuModel(store, cfg, sentinel != nil),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewSolo:
		return m.updateSolo(msg)
	case viewDuel:
		return m.updateDuel(msg)
	case viewScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	switch selected.Kind {
	case ItemSolo:
		game, err := registry.Create(selected.GameID, m.tetris)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			m.logger.Error("cannot create game", "game", selected.GameID, "error", err)
			return m.toMenu()
		}
		m.gameModel = NewGameModel(game, m.store, m.config, m.logger)
		m.view = viewSolo
		return m, m.gameModel.Init()

	case ItemDuel:
		id := multiplayer.SessionID(fmt.Sprintf("%s-%d", m.username, time.Now().UnixNano()))
		link, err := multiplayer.JoinLocal(m.sentinel, id)
		if err != nil {
			m.logger.Error("cannot join duel", "user", m.username, "error", err)
			return m.toMenu()
		}
		m.links.add(link)
		m.logger.Info("joined duel", "user", m.username, "room", link.Room())

		duel := tetris.NewDuel(tetris.New(m.tetris), link, m.logger)
		info := DuelInfo{Room: string(link.Room()), Player: m.username}
		m.duelModel = NewDuelModel(duel, info, m.store, m.config, m.logger)
		m.view = viewDuel
		return m, m.duelModel.Init()

	case ItemScores:
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH, m.username)
		m.view = viewScores
		return m, m.scores.Init()
	}

	return m, cmd
}

// updateSolo handles updates when in a solo game.
func (m SessionModel) updateSolo(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

// updateDuel handles updates when in a duel.
func (m SessionModel) updateDuel(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.duelModel.Update(msg)
	if duelModel, ok := newModel.(DuelModel); ok {
		m.duelModel = duelModel
	}

	if m.duelModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.duelModel.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

// updateScores handles updates when on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scores, ok := newModel.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds the menu so it shows a fresh best score.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config, m.sentinel != nil)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewSolo:
		return m.gameModel.View()
	case viewDuel:
		return m.duelModel.View()
	case viewScores:
		return m.scores.View()
	}
	return m.menu.View()
}
