// Package config provides YAML-based game configuration loading and
// difficulty presets for the tetris engine, plus environment-driven relay
// settings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// TetrisConfig contains all configuration for a tetris game.
type TetrisConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Timing TimingConfig `yaml:"timing"`
	Rules  RulesConfig  `yaml:"rules"`
}

// BoardConfig defines the playfield size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines frame and input timing.
type TimingConfig struct {
	Frame       time.Duration `yaml:"frame"`        // One batch per frame
	LockDelay   time.Duration `yaml:"lock_delay"`   // Grounded time before a piece locks
	RepeatDelay time.Duration `yaml:"repeat_delay"` // Soft drop is released after this much silence
}

// RulesConfig defines scoring and randomness.
type RulesConfig struct {
	LevelCutoff int    `yaml:"level_cutoff"` // Lines per level
	Seed        uint32 `yaml:"seed"`
	Gravity     []int  `yaml:"gravity"` // Frames per row, indexed by level
}

// EngineRules converts the configuration into engine rules.
func (c TetrisConfig) EngineRules() core.Rules {
	return core.Rules{
		Width:       c.Board.Width,
		Height:      c.Board.Height,
		Frame:       c.Timing.Frame,
		LockDelay:   c.Timing.LockDelay,
		LevelCutoff: c.Rules.LevelCutoff,
		Seed:        c.Rules.Seed,
		Gravity:     append([]int(nil), c.Rules.Gravity...),
	}
}

// FPS returns the frame rate implied by the frame duration.
func (c TetrisConfig) FPS() int {
	if c.Timing.Frame <= 0 {
		return 60
	}
	return max(1, int(time.Second/c.Timing.Frame))
}

// Validate checks the configuration for values the engine cannot run with.
func (c TetrisConfig) Validate() error {
	if err := c.EngineRules().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Timing.RepeatDelay <= 0 {
		return errors.New("config: repeat delay must be positive")
	}
	return nil
}
