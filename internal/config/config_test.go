package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := parseTetris(defaultTetrisYAML)
	if err != nil {
		t.Fatalf("parseTetris(embedded) failed: %v", err)
	}
	def := DefaultTetrisConfig()

	if cfg.Board != def.Board {
		t.Errorf("Board = %+v, expected %+v", cfg.Board, def.Board)
	}
	if cfg.Timing != def.Timing {
		t.Errorf("Timing = %+v, expected %+v", cfg.Timing, def.Timing)
	}
	if cfg.Rules.Seed != def.Rules.Seed || cfg.Rules.LevelCutoff != def.Rules.LevelCutoff {
		t.Errorf("Rules = %+v, expected %+v", cfg.Rules, def.Rules)
	}
	if !slices.Equal(cfg.Rules.Gravity, core.DefaultGravity) {
		t.Errorf("Gravity = %v, expected %v", cfg.Rules.Gravity, core.DefaultGravity)
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("board:\n  width: 12\ntiming:\n  lock_delay: 250ms\nrules:\n  seed: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() failed: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Board.Height != 20 {
		t.Errorf("Board = %dx%d, expected 12x20", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Timing.LockDelay != 250*time.Millisecond {
		t.Errorf("LockDelay = %v, expected 250ms", cfg.Timing.LockDelay)
	}
	if cfg.Rules.Seed != 7 {
		t.Errorf("Seed = %d, expected 7", cfg.Rules.Seed)
	}

	r := cfg.EngineRules()
	if r.Width != 12 || r.LockDelay != 250*time.Millisecond || r.Seed != 7 {
		t.Errorf("EngineRules() = %+v", r)
	}
}

func TestLoadTetrisErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTetris(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadTetris() with missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("board:\n  width: 2\n"), 0o600)
	if _, err := LoadTetris(bad); err == nil {
		t.Error("LoadTetris() with a 2-wide board should fail validation")
	}

	garbled := filepath.Join(dir, "garbled.yaml")
	os.WriteFile(garbled, []byte("board: [width"), 0o600)
	if _, err := LoadTetris(garbled); err == nil {
		t.Error("LoadTetris() with invalid YAML should fail")
	}
}

func TestFPS(t *testing.T) {
	cfg := DefaultTetrisConfig()
	if fps := cfg.FPS(); fps != 59 {
		t.Errorf("FPS() = %d, expected 59", fps)
	}

	cfg.Timing.Frame = 0
	if fps := cfg.FPS(); fps != 60 {
		t.Errorf("FPS() with zero frame = %d, expected 60", fps)
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		first    int
		length   int
		lastSame bool
	}{
		{DifficultyNormal, 48, 30, true},
		{DifficultyEasy, 48, 33, true},
		{DifficultyHard, 23, 25, true},
		{DifficultyFixed, 48, 1, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, tc.preset)

			g := cfg.Rules.Gravity
			if len(g) != tc.length {
				t.Fatalf("len(Gravity) = %d, expected %d", len(g), tc.length)
			}
			if g[0] != tc.first {
				t.Errorf("Gravity[0] = %d, expected %d", g[0], tc.first)
			}
			if tc.lastSame && g[len(g)-1] != 1 {
				t.Errorf("last gravity entry = %d, expected 1", g[len(g)-1])
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() after preset failed: %v", err)
			}
		})
	}

	// The default table must survive presets applied to copies.
	if core.DefaultGravity[0] != 48 || len(core.DefaultGravity) != 30 {
		t.Error("ApplyTetrisPreset modified the shared default gravity table")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(insane) should fail")
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyEasy) {
		t.Error("IsFixedPreset() mismatch")
	}
}

func TestLoadRelay(t *testing.T) {
	t.Setenv("TETRIS_RELAY_ADDR", ":9000")
	t.Setenv("TETRIS_RELAY_ORIGINS", "http://a.example,http://b.example")

	cfg, err := LoadRelay()
	if err != nil {
		t.Fatalf("LoadRelay() failed: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q, expected :9000", cfg.Addr)
	}
	if cfg.Path != "/ws/tetris" {
		t.Errorf("Path = %q, expected default /ws/tetris", cfg.Path)
	}
	if !slices.Equal(cfg.Origins, []string{"http://a.example", "http://b.example"}) {
		t.Errorf("Origins = %v", cfg.Origins)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, expected info", cfg.LogLevel)
	}
}
