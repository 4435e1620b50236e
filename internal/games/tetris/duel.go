package tetris

import (
	"bytes"
	"errors"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/wire"
	"github.com/vovakirdan/tui-tetris/internal/multiplayer"
)

// Outcome is the result of a duel from the local player's side.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeWon
	OutcomeLost
)

// Duel couples a local game to a peer link. Each frame it drains the link,
// feeds status changes and opponent clears into the game, steps it, and sends
// the local snapshot whenever its encoding changed.
type Duel struct {
	game     *Game
	link     multiplayer.Link
	mirror   Mirror
	logger   *log.Logger
	lastSent []byte
	closed   bool
	outcome  Outcome
	oppLive  bool // Opponent seen playing since the round began
}

// NewDuel wraps game and link. A nil logger discards diagnostics.
func NewDuel(game *Game, link multiplayer.Link, logger *log.Logger) *Duel {
	return &Duel{
		game:   game,
		link:   link,
		logger: logger,
	}
}

// Game returns the local game.
func (d *Duel) Game() *Game {
	return d.game
}

// Opponent returns the opponent's latest snapshot, or nil.
func (d *Duel) Opponent() *core.State {
	return d.mirror.Opponent()
}

// Closed reports whether the link has gone away.
func (d *Duel) Closed() bool {
	return d.closed
}

// Step runs one frame of the duel.
func (d *Duel) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionRestart) {
		d.newRound()
	}
	d.receive()
	result := d.game.Step(in)
	d.settle()
	if err := d.publish(); err != nil && !d.closed {
		d.warn("send failed", "error", err)
		if errors.Is(err, multiplayer.ErrLinkClosed) {
			d.closed = true
		}
	}
	return result
}

// receive drains every payload that is ready without blocking.
func (d *Duel) receive() {
	if d.closed {
		return
	}
	for {
		select {
		case data, ok := <-d.link.Incoming():
			if !ok {
				d.closed = true
				d.mirror.Reset()
				d.game.Push(core.Connect{On: false})
				return
			}
			d.handle(data)
		default:
			return
		}
	}
}

func (d *Duel) handle(data []byte) {
	msg, err := wire.Decode(data)
	if err != nil {
		d.warn("dropping payload", "error", err)
		return
	}
	if ev, ok := msg.Event(); ok {
		// A new opponent needs our state even if it has not changed.
		d.mirror.Reset()
		d.lastSent = nil
		d.newRound()
		d.game.Push(ev)
		return
	}
	if garbage, ok := d.mirror.Update(*msg.State); ok {
		d.game.Push(garbage)
	}
}

func (d *Duel) publish() error {
	if d.closed {
		return nil
	}
	data, err := wire.EncodeState(d.game.Snapshot())
	if err != nil {
		return err
	}
	if bytes.Equal(data, d.lastSent) {
		return nil
	}
	if err := d.link.Send(data); err != nil {
		return err
	}
	d.lastSent = data
	return nil
}

// Outcome reports who topped out first while both players were connected.
// Once decided it holds until the local player restarts or a new opponent
// arrives.
func (d *Duel) Outcome() Outcome {
	return d.outcome
}

func (d *Duel) newRound() {
	d.outcome = OutcomePending
	d.oppLive = false
}

// settle latches the first decided result of the round.
func (d *Duel) settle() {
	if d.outcome != OutcomePending {
		return
	}
	local := d.game.Snapshot()
	opp := d.mirror.Opponent()
	if opp != nil && !opp.GameOver {
		d.oppLive = true
	}
	switch {
	case local.GameOver:
		d.outcome = OutcomeLost
	case opp != nil && opp.GameOver && d.oppLive && local.Connected:
		d.outcome = OutcomeWon
	}
}

// Render draws both boards.
func (d *Duel) Render(dst *platformcore.Screen) {
	RenderDuel(dst, d.game.Snapshot(), d.mirror.Opponent(), d.game.Title())
}

// Close closes the link.
func (d *Duel) Close() error {
	d.closed = true
	return d.link.Close()
}

func (d *Duel) warn(msg string, keyvals ...any) {
	if d.logger != nil {
		d.logger.Warn(msg, keyvals...)
	}
}
