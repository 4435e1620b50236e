package core

import (
	"fmt"
	"time"
)

// Kind identifies an event variant.
type Kind int

const (
	KindTick Kind = iota
	KindMove
	KindRotate
	KindDown
	KindDrop
	KindLockDelay
	KindHold
	KindPause
	KindConnect
	KindGarbageOut
	KindRestart
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case KindTick:
		return "Tick"
	case KindMove:
		return "Move"
	case KindRotate:
		return "Rotate"
	case KindDown:
		return "Down"
	case KindDrop:
		return "Drop"
	case KindLockDelay:
		return "LockDelay"
	case KindHold:
		return "Hold"
	case KindPause:
		return "Pause"
	case KindConnect:
		return "Connect"
	case KindGarbageOut:
		return "GarbageOut"
	case KindRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// Event is the closed set of state transitions. Only types in this package
// implement it.
type Event interface {
	Kind() Kind
	fmt.Stringer
	event()
}

// Tick advances gravity by one frame.
type Tick struct{}

// Move translates the active piece.
type Move struct {
	DX, DY int
}

// Rotate turns the active piece.
type Rotate struct {
	Dir Direction
}

// Down starts (On) or stops soft-drop acceleration.
type Down struct {
	On bool
}

// Drop hard-drops and locks the active piece.
type Drop struct{}

// LockDelay accumulates grounded time for the active piece.
type LockDelay struct {
	Elapsed time.Duration
}

// Hold stashes or swaps the active piece.
type Hold struct{}

// Pause sets the paused flag.
type Pause struct {
	On bool
}

// Connect sets the opponent-connected flag.
type Connect struct {
	On bool
}

// GarbageOut injects garbage for an opponent clear of Cleared rows.
type GarbageOut struct {
	Cleared int
}

// Restart starts a fresh game on the live sequence.
type Restart struct{}

func (Tick) Kind() Kind       { return KindTick }
func (Move) Kind() Kind       { return KindMove }
func (Rotate) Kind() Kind     { return KindRotate }
func (Down) Kind() Kind       { return KindDown }
func (Drop) Kind() Kind       { return KindDrop }
func (LockDelay) Kind() Kind  { return KindLockDelay }
func (Hold) Kind() Kind       { return KindHold }
func (Pause) Kind() Kind      { return KindPause }
func (Connect) Kind() Kind    { return KindConnect }
func (GarbageOut) Kind() Kind { return KindGarbageOut }
func (Restart) Kind() Kind    { return KindRestart }

func (Tick) event()       {}
func (Move) event()       {}
func (Rotate) event()     {}
func (Down) event()       {}
func (Drop) event()       {}
func (LockDelay) event()  {}
func (Hold) event()       {}
func (Pause) event()      {}
func (Connect) event()    {}
func (GarbageOut) event() {}
func (Restart) event()    {}

func (Tick) String() string         { return "Tick" }
func (e Move) String() string       { return fmt.Sprintf("Move(%d,%d)", e.DX, e.DY) }
func (e Rotate) String() string     { return fmt.Sprintf("Rotate(%s)", e.Dir) }
func (e Down) String() string       { return fmt.Sprintf("Down(%t)", e.On) }
func (Drop) String() string         { return "Drop" }
func (e LockDelay) String() string  { return fmt.Sprintf("LockDelay(%s)", e.Elapsed) }
func (Hold) String() string         { return "Hold" }
func (e Pause) String() string      { return fmt.Sprintf("Pause(%t)", e.On) }
func (e Connect) String() string    { return fmt.Sprintf("Connect(%t)", e.On) }
func (e GarbageOut) String() string { return fmt.Sprintf("GarbageOut(%d)", e.Cleared) }
func (Restart) String() string      { return "Restart" }
