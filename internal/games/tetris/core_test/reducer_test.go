package core_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

func newState(t *testing.T) (core.Rules, core.State) {
	t.Helper()
	r := core.DefaultRules()
	return r, core.NewState(r)
}

func familyName(t *testing.T, p core.Piece) string {
	t.Helper()
	f, err := core.FamilyOf(p.Shape)
	if err != nil {
		t.Fatalf("FamilyOf() error = %v", err)
	}
	return f.Name
}

func TestNewState(t *testing.T) {
	r, s := newState(t)

	if s.Board.Width() != r.Width || s.Board.Height() != r.Height {
		t.Errorf("board = %dx%d", s.Board.Width(), s.Board.Height())
	}
	if s.Level != 1 || s.Score != 0 || s.Lines != 0 {
		t.Errorf("fresh state has level %d score %d lines %d", s.Level, s.Score, s.Lines)
	}
	// 1729 % 7 == 0 and the next value % 7 == 6.
	if familyName(t, s.Active) != "I" || familyName(t, s.Next) != "Z" {
		t.Errorf("active %s next %s, expected I and Z", familyName(t, s.Active), familyName(t, s.Next))
	}
	if s.Highlight.Pos != s.Active.HardDrop(s.Board).Pos {
		t.Errorf("highlight = %v, expected hard-drop projection", s.Highlight.Pos)
	}
}

func TestDropOPieceAtColumnZero(t *testing.T) {
	r, s := newState(t)
	s.Active = core.Families[3].Spawn(r.Width).Moved(core.P(-4, 0))

	got := core.Apply(r, s, core.Drop{})

	for _, c := range []core.Position{core.P(0, 18), core.P(1, 18), core.P(0, 19), core.P(1, 19)} {
		if got.Board.At(c.X, c.Y) != core.ColorYellow {
			t.Errorf("cell %v = %v, expected yellow", c, got.Board.At(c.X, c.Y))
		}
	}
	if got.Board.Filled(2, 19) {
		t.Error("column 2 should stay empty")
	}
	if got.Score != 0 || got.LastClear != 0 {
		t.Errorf("score %d last clear %d, expected 0 and 0", got.Score, got.LastClear)
	}
	if got.Seq != s.Seq.Next() {
		t.Errorf("sequence = %v, expected one step past %v", got.Seq, s.Seq)
	}
	if familyName(t, got.Active) != "Z" || familyName(t, got.Next) != "J" {
		t.Errorf("after lock active %s next %s, expected Z and J", familyName(t, got.Active), familyName(t, got.Next))
	}
	if got.GameOver {
		t.Error("unexpected game over")
	}
	if s.Board.Filled(0, 19) {
		t.Error("Apply modified the input state")
	}
}

func TestDropClearsSingleRow(t *testing.T) {
	r, s := newState(t)
	fillRow(s.Board, 19, core.ColorRed, 0, 1, 2, 3)
	s.Active = core.Families[0].Spawn(r.Width).Moved(core.P(-3, 0))

	got := core.Apply(r, s, core.Drop{})

	if got.LastClear != 1 || got.Lines != 1 {
		t.Errorf("last clear %d lines %d, expected 1 and 1", got.LastClear, got.Lines)
	}
	if got.Score != 100 || got.HighScore != 100 {
		t.Errorf("score %d high %d, expected 100", got.Score, got.HighScore)
	}
	if got.Level != 1 {
		t.Errorf("level = %d, expected 1", got.Level)
	}
	if countEmpty(got.Board.Cells[19]) != 10 {
		t.Errorf("bottom row = %v, expected empty after clear", got.Board.Cells[19])
	}
}

func TestDropClearsDoubleAndLevelsUp(t *testing.T) {
	r, s := newState(t)
	fillRow(s.Board, 18, core.ColorRed, 8, 9)
	fillRow(s.Board, 19, core.ColorRed, 8, 9)
	s.Active = core.Families[3].Spawn(r.Width).Moved(core.P(4, 0))

	got := core.Apply(r, s, core.Drop{})

	if got.LastClear != 2 || got.Score != 400 || got.Level != 2 {
		t.Errorf("clear %d score %d level %d, expected 2, 400, 2", got.LastClear, got.Score, got.Level)
	}
}

func TestMoveBlocked(t *testing.T) {
	r, s := newState(t)

	moved := core.Apply(r, s, core.Move{DX: -1})
	if moved.Active.Pos != s.Active.Pos.Add(core.P(-1, 0)) {
		t.Errorf("Move(-1,0) = %v", moved.Active.Pos)
	}

	for range 10 {
		moved = core.Apply(r, moved, core.Move{DX: -1})
	}
	if moved.Active.Pos.X+core.FirstFilledCol(moved.Active.Shape) != 0 {
		t.Errorf("piece pushed past the wall: %v", moved.Active.Pos)
	}
	if moved.Highlight.Pos.X != moved.Active.Pos.X {
		t.Error("highlight not recomputed after move")
	}
}

func TestTickGravity(t *testing.T) {
	r, s := newState(t)
	interval := r.GravityInterval(s.Level, 0)

	for range interval - 1 {
		s = core.Apply(r, s, core.Tick{})
	}
	if s.Active.Pos.Y != -4 || s.Frames != interval-1 {
		t.Fatalf("piece fell early: pos %v frames %d", s.Active.Pos, s.Frames)
	}

	s = core.Apply(r, s, core.Tick{})
	if s.Active.Pos.Y != -3 || s.Frames != 0 {
		t.Errorf("after %d ticks pos %v frames %d, expected row -3 and 0", interval, s.Active.Pos, s.Frames)
	}
}

func TestSoftDropAcceleration(t *testing.T) {
	r, s := newState(t)

	s = core.Apply(r, s, core.Down{On: true})
	s = core.Apply(r, s, core.Down{On: true})
	if s.GravityAccel != 2 {
		t.Errorf("accel = %d, expected 2", s.GravityAccel)
	}
	s = core.Apply(r, s, core.Down{On: false})
	if s.GravityAccel != 0 {
		t.Errorf("accel = %d, expected 0 after release", s.GravityAccel)
	}
}

func TestLockDelay(t *testing.T) {
	r, s := newState(t)
	s.Active = s.Active.HardDrop(s.Board)

	s = core.Apply(r, s, core.LockDelay{Elapsed: 400 * time.Millisecond})
	if s.LockElapsed != 400*time.Millisecond || s.Board.Filled(3, 19) {
		t.Fatalf("locked too early: elapsed %v", s.LockElapsed)
	}

	s = core.Apply(r, s, core.LockDelay{Elapsed: 100 * time.Millisecond})
	if !s.Board.Filled(3, 19) {
		t.Error("piece should be locked once the delay is reached")
	}
	if s.LockElapsed != 0 {
		t.Errorf("lock counter = %v, expected reset", s.LockElapsed)
	}
}

func TestLockDelayAirborne(t *testing.T) {
	r, s := newState(t)
	s.LockElapsed = 300 * time.Millisecond

	got := core.Apply(r, s, core.LockDelay{Elapsed: time.Second})
	if got.LockElapsed != 0 {
		t.Errorf("airborne lock counter = %v, expected 0", got.LockElapsed)
	}
	if !reflect.DeepEqual(got.Board, s.Board) {
		t.Error("airborne piece locked")
	}
}

func TestHoldTwice(t *testing.T) {
	r, s := newState(t)

	once := core.Apply(r, s, core.Hold{})
	if once.Held == nil || familyName(t, *once.Held) != "I" {
		t.Fatal("expected the I piece to be held")
	}
	if !once.SwapUsed {
		t.Error("swap should be marked used")
	}
	if once.Seq != s.Seq.Next() {
		t.Error("first hold should roll the sequence")
	}

	twice := core.Apply(r, once, core.Hold{})
	if !reflect.DeepEqual(once, twice) {
		t.Error("second hold in the same drop changed the state")
	}
}

func TestHoldSwap(t *testing.T) {
	r, s := newState(t)

	s = core.Apply(r, s, core.Hold{})
	s = core.Apply(r, s, core.Drop{})
	if s.SwapUsed {
		t.Fatal("lock should clear swap-used")
	}
	before := familyName(t, s.Active)
	seq := s.Seq

	s = core.Apply(r, s, core.Hold{})
	if familyName(t, s.Active) != "I" || familyName(t, *s.Held) != before {
		t.Errorf("swap gave active %s held %s", familyName(t, s.Active), familyName(t, *s.Held))
	}
	if s.Active.Pos != core.P(2, -4) {
		t.Errorf("swapped-in piece at %v, expected spawn (2,-4)", s.Active.Pos)
	}
	if s.Seq != seq {
		t.Error("swap with a held piece should not roll the sequence")
	}
}

func TestGameOverFreezesNext(t *testing.T) {
	r, s := newState(t)
	for y := 1; y < r.Height; y++ {
		s.Board.Cells[y][4] = core.ColorGarbage
	}
	s.Active = core.Families[3].Spawn(r.Width)

	got := core.Apply(r, s, core.Drop{})
	if !got.GameOver {
		t.Fatal("expected game over when the top row fills")
	}
	if !reflect.DeepEqual(got.Next, s.Next) {
		t.Errorf("next piece changed after game over: %+v", got.Next)
	}
}

func TestGameOverWhenLockAlsoClears(t *testing.T) {
	r, s := newState(t)
	for y := 2; y < r.Height; y++ {
		fillRow(s.Board, y, core.ColorGarbage, 9)
	}
	fillRow(s.Board, 1, core.ColorGarbage, 0, 1)
	s.Active = core.Families[3].Spawn(r.Width).Moved(core.P(-4, 0))

	got := core.Apply(r, s, core.Drop{})
	if got.LastClear != 1 {
		t.Fatalf("last clear = %d, expected the O piece to complete row 1", got.LastClear)
	}
	if !got.GameOver {
		t.Error("expected game over: the O piece reached row 0 before the clear")
	}
	if !reflect.DeepEqual(got.Next, s.Next) {
		t.Errorf("next piece changed after game over: %+v", got.Next)
	}
}

func TestGarbageOut(t *testing.T) {
	r, s := newState(t)

	if got := core.Apply(r, s, core.GarbageOut{Cleared: 1}); !reflect.DeepEqual(got, s) {
		t.Error("GarbageOut(1) should not change the state")
	}

	two := core.Apply(r, s, core.GarbageOut{Cleared: 2})
	if countEmpty(two.Board.Cells[19]) != 1 || countEmpty(two.Board.Cells[18]) != 10 {
		t.Error("GarbageOut(2) should add exactly one row")
	}

	four := core.Apply(r, s, core.GarbageOut{Cleared: 4})
	hole := int(s.Seq.Value % uint32(r.Width))
	for y := 16; y < 20; y++ {
		if countEmpty(four.Board.Cells[y]) != 1 || four.Board.Filled(hole, y) {
			t.Errorf("garbage row %d = %v, expected hole at %d", y, four.Board.Cells[y], hole)
		}
	}
	if countEmpty(four.Board.Cells[15]) != 10 {
		t.Error("GarbageOut(4) added more than four rows")
	}
	if four.Seq != s.Seq || four.GameOver {
		t.Error("garbage should not roll the sequence or end the game")
	}
}

func TestGarbageOutPushesBlocksOff(t *testing.T) {
	r, s := newState(t)
	s.Board.Cells[1][0] = core.ColorRed

	got := core.Apply(r, s, core.GarbageOut{Cleared: 3})
	if !got.GameOver {
		t.Error("expected game over when garbage pushes blocks off the top")
	}
}

func TestRestart(t *testing.T) {
	r, s := newState(t)
	fillRow(s.Board, 19, core.ColorRed, 0, 1, 2, 3)
	s.Active = core.Families[0].Spawn(r.Width).Moved(core.P(-3, 0))
	s = core.Apply(r, s, core.Drop{})
	s = core.Apply(r, s, core.Hold{})
	s = core.Apply(r, s, core.Connect{On: true})
	s.GameOver = true
	s.Paused = true

	got := core.Apply(r, s, core.Restart{})
	if got.GameOver || got.Paused {
		t.Error("restart should clear game over and pause")
	}
	if got.Score != 0 || got.Lines != 0 || got.Level != 1 || got.LastClear != 0 || got.Frames != 0 {
		t.Errorf("counters not reset: %+v", got)
	}
	if got.HighScore != 100 || !got.Connected {
		t.Error("restart should keep the high score and the link flag")
	}
	if got.Held != nil || got.SwapUsed {
		t.Error("restart should clear the held piece")
	}
	if got.Seq != s.Seq.Next() {
		t.Error("restart should continue the live sequence")
	}
	if !reflect.DeepEqual(got.Board, core.EmptyBoard(r.Width, r.Height)) {
		t.Error("restart should clear the board")
	}
}
