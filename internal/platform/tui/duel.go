package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// DuelInfo identifies the two sides of a duel for the history table.
type DuelInfo struct {
	Room     string
	Player   string
	Opponent string
}

// DuelModel runs a local game against a linked opponent.
type DuelModel struct {
	duel       *tetris.Duel
	info       DuelInfo
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	outcome    tetris.Outcome
	keyMapper  *KeyMapper
	help       help.Model
	recorded   bool // Result of the current round has been saved
	quitting   bool
	backToMenu bool
	quitOnBack bool
}

// NewDuelModel creates a duel model. The model owns duel and closes it when
// the player leaves. store and logger may be nil.
func NewDuelModel(duel *tetris.Duel, info DuelInfo, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) DuelModel {
	if info.Opponent == "" {
		info.Opponent = "opponent"
	}

	m := DuelModel{
		duel:      duel,
		info:      info,
		screen:    core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:     store,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}

	game := duel.Game()
	game.Reset(cfg)
	if store != nil {
		if high, err := store.HighScore(storage.ModeDuel); err == nil {
			game.SetHighScore(high)
		} else {
			m.logError("cannot load high score", err)
		}
	}
	m.gameState = game.State()
	return m
}

// Init starts the tick loop.
func (m DuelModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m DuelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		m.duel.Game().Resize(msg.Width, playHeight(msg.Height))
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m DuelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.duel.Render(m.screen)
		if _, err := writeScreenshot("duel", m.screen); err != nil {
			m.logError("cannot save screenshot", err)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if m.canLeave() {
			m.leave()
			m.backToMenu = true
			if m.quitOnBack {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if action == core.ActionRestart && !m.gameState.GameOver {
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// canLeave reports whether the player may go back without quitting: the
// round is over, paused or has no opponent.
func (m DuelModel) canLeave() bool {
	return m.gameState.GameOver || m.gameState.Paused || !m.gameState.Connected ||
		m.outcome != tetris.OutcomePending || m.duel.Closed()
}

func (m DuelModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.duel.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.outcome = m.duel.Outcome()
	if m.outcome == tetris.OutcomePending {
		m.recorded = false
	} else if !m.recorded {
		m.record()
	}

	return m, tickCmd(m.config.TickRate)
}

// record saves the local score and the duel result once per round.
func (m *DuelModel) record() {
	m.recorded = true
	if m.store == nil {
		return
	}

	if m.gameState.Score > 0 {
		_, err := m.store.SaveScore(storage.ScoreEntry{
			Mode:  storage.ModeDuel,
			Score: m.gameState.Score,
			Lines: m.gameState.Lines,
			Level: m.gameState.Level,
		})
		if err != nil {
			m.logError("cannot save score", err)
		}
	}

	result := storage.DuelResult{
		RoomID:   m.info.Room,
		Player:   m.info.Player,
		Opponent: m.info.Opponent,
		Score:    m.gameState.Score,
		Won:      m.outcome == tetris.OutcomeWon,
	}
	if opp := m.duel.Opponent(); opp != nil {
		result.OpponentScore = opp.Score
	}
	if _, err := m.store.SaveDuel(result); err != nil {
		m.logError("cannot save duel", err)
	}
}

func (m *DuelModel) leave() {
	if err := m.duel.Close(); err != nil {
		m.logError("cannot close link", err)
	}
}

func (m *DuelModel) logError(msg string, err error) {
	if m.logger != nil {
		m.logger.Error(msg, "room", m.info.Room, "player", m.info.Player, "error", err)
	}
}

// View renders both boards and the help line.
func (m DuelModel) View() string {
	if m.quitting {
		return ""
	}

	m.duel.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// Outcome returns the latest result of the round.
func (m DuelModel) Outcome() tetris.Outcome {
	return m.outcome
}

// IsQuitting returns true if user requested to quit entirely.
func (m DuelModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m DuelModel) BackToMenu() bool {
	return m.backToMenu
}

// RunDuel plays a duel in the current terminal until the player leaves. It
// returns true when the player asked to go back to the menu rather than quit.
func RunDuel(duel *tetris.Duel, info DuelInfo, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewDuelModel(duel, info, store, cfg, logger)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	m, ok := finalModel.(DuelModel)
	if !ok {
		//nolint:errcheck // Program failed; the link goes down with it
		duel.Close()
		return false, err
	}
	m.leave()
	return m.BackToMenu(), err
}
