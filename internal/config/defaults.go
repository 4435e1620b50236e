package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration.
func DefaultTetrisConfig() TetrisConfig {
	r := core.DefaultRules()
	return TetrisConfig{
		Board: BoardConfig{
			Width:  r.Width,
			Height: r.Height,
		},
		Timing: TimingConfig{
			Frame:       r.Frame,
			LockDelay:   r.LockDelay,
			RepeatDelay: 170 * time.Millisecond,
		},
		Rules: RulesConfig{
			LevelCutoff: r.LevelCutoff,
			Seed:        r.Seed,
			Gravity:     append([]int(nil), r.Gravity...),
		},
	}
}
