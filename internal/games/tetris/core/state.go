package core

import "time"

// State is the complete, immutable game snapshot for one player. Every event
// produces a new State; no transition writes to the State it was given.
type State struct {
	Board     Board    `json:"board"`
	Active    Piece    `json:"active"`
	Next      Piece    `json:"next"`
	Held      *Piece   `json:"held,omitempty"`
	Highlight Piece    `json:"highlight"` // Hard-drop projection of Active
	Seq       Sequence `json:"seq"`

	Score     int `json:"score"`
	HighScore int `json:"high_score"`
	Level     int `json:"level"`
	Lines     int `json:"lines"`
	LastClear int `json:"last_clear"` // Rows cleared by the most recent lock

	LockElapsed  time.Duration `json:"lock_elapsed"`
	GravityAccel int           `json:"gravity_accel"`
	Frames       int           `json:"frames"` // Frames since the last gravity descent
	SwapUsed     bool          `json:"swap_used"`
	Paused       bool          `json:"paused"`
	GameOver     bool          `json:"game_over"`
	Connected    bool          `json:"connected"` // Opponent link is up
}

// NewState returns a fresh game whose sequence starts at r.Seed.
func NewState(r Rules) State {
	return NewStateWithSeed(r, r.Seed)
}

// NewStateWithSeed returns a fresh game whose sequence starts at seed.
func NewStateWithSeed(r Rules, seed uint32) State {
	s := State{
		Board: EmptyBoard(r.Width, r.Height),
		Seq:   NewSequence(seed),
		Level: 1,
	}
	return s.spawnFromSequence(r)
}

// spawnFromSequence derives Active and Next from the current cursor and
// recomputes the highlight.
func (s State) spawnFromSequence(r Rules) State {
	s.Active = PieceFromValue(s.Seq.Value, r.Width)
	s.Next = PieceFromValue(s.Seq.Next().Value, r.Width)
	return s.withHighlight()
}

// rollover advances the sequence one step and respawns Active and Next.
func (s State) rollover(r Rules) State {
	s.Seq = s.Seq.Next()
	return s.spawnFromSequence(r)
}

func (s State) withHighlight() State {
	s.Highlight = s.Active.HardDrop(s.Board)
	return s
}

func (s State) resetTimers() State {
	s.GravityAccel = 0
	s.LockElapsed = 0
	s.Frames = 0
	return s
}

// Halted reports whether the state only accepts Restart, Pause and Connect.
func (s State) Halted() bool {
	return s.Paused || s.GameOver
}
