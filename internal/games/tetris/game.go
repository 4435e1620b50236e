// Package tetris adapts the deterministic engine to the terminal platform:
// per-frame input actions become engine events, each frame runs one batch,
// and the resulting state is drawn into a screen buffer.
package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// variant is a registered difficulty flavour.
type variant struct {
	id     string
	title  string
	preset config.DifficultyPreset
}

var variants = []variant{
	{"tetris", "Tetris", config.DifficultyNormal},
	{"tetris-easy", "Tetris (Easy)", config.DifficultyEasy},
	{"tetris-hard", "Tetris (Hard)", config.DifficultyHard},
	{"tetris-fixed", "Tetris (Fixed Speed)", config.DifficultyFixed},
}

func init() {
	for _, v := range variants {
		registry.Register(v.id, func(cfg config.TetrisConfig) registry.Game {
			return newVariant(v, cfg)
		})
	}
}

// VariantID returns the registry ID for a difficulty preset.
func VariantID(preset config.DifficultyPreset) string {
	for _, v := range variants {
		if v.preset == preset {
			return v.id
		}
	}
	return variants[0].id
}

// Game runs one player's engine state for a terminal front-end.
type Game struct {
	id    string
	title string
	cfg   config.TetrisConfig
	rules core.Rules
	state core.State

	pending  []core.Event // External events for the next frame
	softDrop bool         // Down(true) was sent and not yet released
	softIdle time.Duration

	screenW int
	screenH int
}

// New creates a game with the configured rules and the normal preset.
func New(cfg config.TetrisConfig) *Game {
	return newVariant(variants[0], cfg)
}

// NewWithPreset creates a game with the given difficulty preset applied.
func NewWithPreset(cfg config.TetrisConfig, preset config.DifficultyPreset) *Game {
	for _, v := range variants {
		if v.preset == preset {
			return newVariant(v, cfg)
		}
	}
	return New(cfg)
}

func newVariant(v variant, cfg config.TetrisConfig) *Game {
	cfg.Rules.Gravity = append([]int(nil), cfg.Rules.Gravity...)
	config.ApplyTetrisPreset(&cfg, v.preset)

	g := &Game{
		id:    v.id,
		title: v.title,
		cfg:   cfg,
		rules: cfg.EngineRules(),
	}
	g.state = core.NewState(g.rules)
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Rules returns the engine rules the game runs with.
func (g *Game) Rules() core.Rules {
	return g.rules
}

// FPS returns the frame rate the front-end should step the game at.
func (g *Game) FPS() int {
	return g.cfg.FPS()
}

// Reset starts a fresh game. A zero seed keeps the configured one. The high
// score carries over.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	seed := g.rules.Seed
	if cfg.Seed != 0 {
		seed = cfg.Seed
	}
	high := g.state.HighScore
	g.state = core.NewStateWithSeed(g.rules, seed)
	g.state.HighScore = high
	g.pending = nil
	g.softDrop = false
	g.softIdle = 0
}

// Resize updates the screen size used for layout without touching the game.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
}

// SetHighScore seeds the high score, typically from storage.
func (g *Game) SetHighScore(score int) {
	g.state.HighScore = max(g.state.HighScore, score)
}

// Push queues external events (Connect, GarbageOut) for the next frame.
func (g *Game) Push(events ...core.Event) {
	g.pending = append(g.pending, events...)
}

// Snapshot returns the engine state.
func (g *Game) Snapshot() core.State {
	return g.state
}

// Step advances the game by one frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	events := g.pending
	g.pending = nil
	events = append(events, g.translate(in)...)
	events = append(events, g.release(in)...)

	g.state = core.Batch(g.rules, g.state, events)
	return platformcore.StepResult{State: g.State()}
}

// translate maps the frame's actions to engine events in arrival order.
func (g *Game) translate(in platformcore.InputFrame) []core.Event {
	if in.Empty() {
		return nil
	}
	var events []core.Event
	paused := g.state.Paused
	for _, a := range in.Actions {
		switch a {
		case platformcore.ActionLeft:
			events = append(events, core.Move{DX: -1})
		case platformcore.ActionRight:
			events = append(events, core.Move{DX: 1})
		case platformcore.ActionSoftDrop:
			if !g.softDrop {
				events = append(events, core.Down{On: true})
				g.softDrop = true
			}
			events = append(events, core.Move{DY: 1})
			g.softIdle = 0
		case platformcore.ActionRotateCW:
			events = append(events, core.Rotate{Dir: core.Clockwise})
		case platformcore.ActionRotateCCW:
			events = append(events, core.Rotate{Dir: core.CounterClockwise})
		case platformcore.ActionHardDrop:
			events = append(events, core.Drop{})
		case platformcore.ActionHold:
			events = append(events, core.Hold{})
		case platformcore.ActionPause:
			paused = !paused
			events = append(events, core.Pause{On: paused})
		case platformcore.ActionRestart:
			events = append(events, core.Restart{})
		}
	}
	return events
}

// release ends a soft drop once no SoftDrop action arrived for the repeat
// delay. Terminals report key repeats but never key releases.
func (g *Game) release(in platformcore.InputFrame) []core.Event {
	if !g.softDrop || in.Has(platformcore.ActionSoftDrop) {
		return nil
	}
	g.softIdle += g.cfg.Timing.Frame
	if g.softIdle < g.cfg.Timing.RepeatDelay || g.state.Halted() {
		return nil
	}
	g.softDrop = false
	g.softIdle = 0
	return []core.Event{core.Down{On: false}}
}

// State returns the current game summary.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:     g.state.Score,
		HighScore: g.state.HighScore,
		Lines:     g.state.Lines,
		Level:     g.state.Level,
		GameOver:  g.state.GameOver,
		Paused:    g.state.Paused,
		Connected: g.state.Connected,
	}
}
