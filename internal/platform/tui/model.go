package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// highScorer is implemented by games that accept a stored high score.
type highScorer interface {
	SetHighScore(score int)
}

// resizer is implemented by games that relayout without resetting.
type resizer interface {
	Resize(width, height int)
}

// GameModel runs a solo game with back-to-menu capability.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	quitOnBack bool // Standalone program: leaving the game ends it
}

// NewGameModel creates a solo game model. store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = uint32(time.Now().UnixNano())
	}

	m := GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:     store,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	m.game.Reset(cfg)
	m.loadHighScore()
	m.gameState = m.game.State()
	return m
}

// playHeight leaves the bottom row for the help line.
func playHeight(h int) int {
	return max(h-1, 1)
}

func (m *GameModel) loadHighScore() {
	hs, ok := m.game.(highScorer)
	if !ok || m.store == nil {
		return
	}
	high, err := m.store.HighScore(storage.ModeSolo)
	if err != nil {
		m.logError("cannot load high score", err)
		return
	}
	hs.SetHighScore(high)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back only leaves a game that is not running
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.quitOnBack {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	// Restart only ends a game that is not running
	if action == core.ActionRestart && !m.gameState.GameOver && !m.gameState.Paused {
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize relayouts the screen. The game keeps running.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, playHeight(msg.Height))
	}
	return m, nil
}

// handleTick runs one frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case m.gameState.GameOver && !wasOver:
		m.saveScore()
	case !m.gameState.GameOver && wasOver:
		m.scoreSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished game once.
func (m *GameModel) saveScore() {
	if m.scoreSaved || m.store == nil || m.gameState.Score <= 0 {
		return
	}
	m.scoreSaved = true
	_, err := m.store.SaveScore(storage.ScoreEntry{
		Mode:  storage.ModeSolo,
		Score: m.gameState.Score,
		Lines: m.gameState.Lines,
		Level: m.gameState.Level,
	})
	if err != nil {
		m.logError("cannot save score", err)
	}
}

func (m *GameModel) logError(msg string, err error) {
	if m.logger != nil {
		m.logger.Error(msg, "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to ~/.tetris/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)
	path, err := writeScreenshot(m.game.ID(), m.screen)
	if err != nil {
		m.logError("cannot save screenshot", err)
		return
	}
	if m.logger != nil {
		m.logger.Info("screenshot saved", "path", path)
	}
}

func writeScreenshot(name string, screen *core.Screen) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, timestamp))
	return path, os.WriteFile(path, []byte(screen.String()), 0o600)
}

// View renders the game and the help line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// State returns the latest game summary.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one solo game in the current terminal. It returns true when the
// player asked to go back to the menu rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg, logger)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
