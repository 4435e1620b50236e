package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"

// Observe compares two consecutive opponent snapshots and reports the garbage
// the local game should receive. A clear is detected when the opponent's most
// recent clear count or total lines changed and the latest lock cleared rows.
func Observe(prev, cur core.State) (core.GarbageOut, bool) {
	if cur.LastClear <= 0 {
		return core.GarbageOut{}, false
	}
	if cur.LastClear == prev.LastClear && cur.Lines == prev.Lines {
		return core.GarbageOut{}, false
	}
	return core.GarbageOut{Cleared: cur.LastClear}, true
}

// Mirror keeps the opponent's latest snapshot. The opponent state is only
// ever rendered and compared, never merged into the local game.
type Mirror struct {
	last *core.State
}

// Update records a snapshot and returns the garbage it triggers. The first
// snapshot after a Reset only sets the baseline.
func (m *Mirror) Update(cur core.State) (core.GarbageOut, bool) {
	prev := m.last
	m.last = &cur
	if prev == nil {
		return core.GarbageOut{}, false
	}
	return Observe(*prev, cur)
}

// Opponent returns the latest snapshot, or nil before the first one.
func (m *Mirror) Opponent() *core.State {
	return m.last
}

// Reset forgets the opponent, e.g. when a new one connects.
func (m *Mirror) Reset() {
	m.last = nil
}
