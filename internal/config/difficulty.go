package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// IsFixedPreset returns true if the preset disables speed progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyTetrisPreset reshapes the gravity table for a preset.
//
//   - easy repeats the opening speed for the first few levels
//   - hard starts several levels into the table
//   - fixed keeps the opening speed forever
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	g := cfg.Rules.Gravity
	if len(g) == 0 {
		return
	}

	switch preset {
	case DifficultyEasy:
		slow := []int{g[0], g[0], g[0]}
		cfg.Rules.Gravity = append(slow, g...)
	case DifficultyHard:
		skip := min(5, len(g)-1)
		cfg.Rules.Gravity = append([]int(nil), g[skip:]...)
	case DifficultyFixed:
		cfg.Rules.Gravity = []int{g[0]}
	}
}
