package core

import (
	"errors"
	"time"
)

// Rules holds the constants that parameterize the engine. They are fixed for
// the lifetime of a game.
type Rules struct {
	Width       int
	Height      int
	Frame       time.Duration // Length of one batch slice
	LockDelay   time.Duration // Grace period before a grounded piece locks
	LevelCutoff int           // Lines per level
	Seed        uint32
	Gravity     []int // Frames per automatic descent, indexed by level
}

// DefaultGravity is the frames-per-row table; levels past the end use the last entry.
var DefaultGravity = []int{
	48, 43, 38, 33, 28, 23, 18, 13, 8, 6,
	5, 5, 5, 4, 4, 4, 3, 3, 3, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 1,
}

// DefaultRules returns the standard 10x20 rule set.
func DefaultRules() Rules {
	return Rules{
		Width:       10,
		Height:      20,
		Frame:       16670 * time.Microsecond,
		LockDelay:   500 * time.Millisecond,
		LevelCutoff: 2,
		Seed:        1729,
		Gravity:     DefaultGravity,
	}
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	switch {
	case r.Width < 4:
		return errors.New("core: board width must be at least 4")
	case r.Height < 4:
		return errors.New("core: board height must be at least 4")
	case r.Frame <= 0:
		return errors.New("core: frame duration must be positive")
	case r.LockDelay < 0:
		return errors.New("core: lock delay must not be negative")
	case r.LevelCutoff <= 0:
		return errors.New("core: level cutoff must be positive")
	case len(r.Gravity) == 0:
		return errors.New("core: gravity table is empty")
	}
	for _, g := range r.Gravity {
		if g <= 0 {
			return errors.New("core: gravity entries must be positive")
		}
	}
	return nil
}

// GravityInterval returns the frames per descent for level with the given
// soft-drop acceleration, clamped to the table's last entry.
func (r Rules) GravityInterval(level, accel int) int {
	i := max(0, level+accel)
	if i >= len(r.Gravity) {
		i = len(r.Gravity) - 1
	}
	return r.Gravity[i]
}

// LevelFor returns the level reached after lines cleared lines.
func (r Rules) LevelFor(lines int) int {
	return 1 + lines/r.LevelCutoff
}

// GarbageRows maps an opponent's clear count to the number of garbage rows
// it sends: 1 -> 0, 2 -> 1, 3 -> 2, and 4 or more -> the count itself.
func GarbageRows(cleared int) int {
	switch {
	case cleared <= 1:
		return 0
	case cleared == 2:
		return 1
	case cleared == 3:
		return 2
	default:
		return cleared
	}
}
