package core_test

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

func TestGarbageRows(t *testing.T) {
	tests := []struct {
		cleared, want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 4},
		{6, 6},
	}
	for _, tt := range tests {
		if got := core.GarbageRows(tt.cleared); got != tt.want {
			t.Errorf("GarbageRows(%d) = %d, expected %d", tt.cleared, got, tt.want)
		}
	}
}

func TestGravityInterval(t *testing.T) {
	r := core.DefaultRules()
	tests := []struct {
		level, accel, want int
	}{
		{0, 0, 48},
		{1, 0, 43},
		{1, 2, 33},
		{29, 0, 1},
		{100, 0, 1},
		{1, 50, 1},
	}
	for _, tt := range tests {
		if got := r.GravityInterval(tt.level, tt.accel); got != tt.want {
			t.Errorf("GravityInterval(%d, %d) = %d, expected %d", tt.level, tt.accel, got, tt.want)
		}
	}
}

func TestLevelFor(t *testing.T) {
	r := core.DefaultRules()
	for lines, want := range []int{1, 1, 2, 2, 3} {
		if got := r.LevelFor(lines); got != want {
			t.Errorf("LevelFor(%d) = %d, expected %d", lines, got, want)
		}
	}
}

func TestRulesValidate(t *testing.T) {
	if err := core.DefaultRules().Validate(); err != nil {
		t.Fatalf("DefaultRules().Validate() = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*core.Rules)
	}{
		{"narrow", func(r *core.Rules) { r.Width = 2 }},
		{"short", func(r *core.Rules) { r.Height = 3 }},
		{"no frame", func(r *core.Rules) { r.Frame = 0 }},
		{"negative lock", func(r *core.Rules) { r.LockDelay = -time.Millisecond }},
		{"no cutoff", func(r *core.Rules) { r.LevelCutoff = 0 }},
		{"no gravity", func(r *core.Rules) { r.Gravity = nil }},
		{"zero gravity", func(r *core.Rules) { r.Gravity = []int{5, 0} }},
	}
	for _, tt := range tests {
		r := core.DefaultRules()
		tt.mutate(&r)
		if r.Validate() == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
