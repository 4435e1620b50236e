package tetris

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/wire"
	"github.com/vovakirdan/tui-tetris/internal/multiplayer"
)

type fakeLink struct {
	in     chan []byte
	sent   [][]byte
	closed bool
}

func newFakeLink() *fakeLink {
	return &fakeLink{in: make(chan []byte, 16)}
}

func (l *fakeLink) Send(data []byte) error {
	if l.closed {
		return multiplayer.ErrLinkClosed
	}
	l.sent = append(l.sent, data)
	return nil
}

func (l *fakeLink) Incoming() <-chan []byte { return l.in }

func (l *fakeLink) Close() error {
	l.closed = true
	return nil
}

func opponentState(lastClear, lines int) core.State {
	s := core.NewState(core.DefaultRules())
	s.LastClear = lastClear
	s.Lines = lines
	return s
}

func encode(t *testing.T, s core.State) []byte {
	t.Helper()
	data, err := wire.EncodeState(s)
	if err != nil {
		t.Fatalf("EncodeState() failed: %v", err)
	}
	return data
}

func TestObserve(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur core.State
		want      int
		ok        bool
	}{
		{"no clear", opponentState(0, 0), opponentState(0, 0), 0, false},
		{"new clear", opponentState(0, 0), opponentState(2, 2), 2, true},
		{"same clear repeated", opponentState(2, 2), opponentState(2, 2), 0, false},
		{"same count, more lines", opponentState(2, 2), opponentState(2, 4), 2, true},
		{"lock without clear", opponentState(3, 3), opponentState(0, 3), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Observe(tc.prev, tc.cur)
			if ok != tc.ok || got.Cleared != tc.want {
				t.Errorf("Observe() = %v, %v; expected %d, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestMirrorBaseline(t *testing.T) {
	var m Mirror
	if m.Opponent() != nil {
		t.Fatal("fresh mirror should have no opponent")
	}
	if _, ok := m.Update(opponentState(4, 4)); ok {
		t.Error("first snapshot must only set the baseline")
	}
	if got, ok := m.Update(opponentState(3, 7)); !ok || got.Cleared != 3 {
		t.Errorf("Update() = %v, %v; expected GarbageOut(3)", got, ok)
	}
	m.Reset()
	if m.Opponent() != nil {
		t.Error("Reset() should forget the opponent")
	}
}

func TestDuelStatusAndGarbage(t *testing.T) {
	link := newFakeLink()
	d := NewDuel(New(config.DefaultTetrisConfig()), link, nil)

	link.in <- wire.EncodeStatus(true)
	res := d.Step(platformcore.NewInputFrame())
	if !res.State.Connected {
		t.Fatal("expected connected after status true")
	}
	if len(link.sent) != 1 {
		t.Fatalf("sent %d payloads, expected 1", len(link.sent))
	}
	msg, err := wire.Decode(link.sent[0])
	if err != nil || msg.State == nil || !msg.State.Connected {
		t.Fatalf("sent payload is not our connected snapshot: %v", err)
	}

	link.in <- encode(t, opponentState(0, 0))
	link.in <- []byte("not json")
	link.in <- encode(t, opponentState(4, 4))
	d.Step(platformcore.NewInputFrame())

	s := d.Game().Snapshot()
	if !s.Board.Filled(0, 19) || !s.Board.Filled(0, 16) {
		t.Error("expected four garbage rows after the opponent cleared four")
	}
	if d.Opponent() == nil || d.Opponent().Lines != 4 {
		t.Error("opponent snapshot not mirrored")
	}
}

func TestDuelSkipsUnchangedState(t *testing.T) {
	link := newFakeLink()
	d := NewDuel(New(config.DefaultTetrisConfig()), link, nil)

	pause := platformcore.NewInputFrame()
	pause.Set(platformcore.ActionPause)
	d.Step(pause)
	sent := len(link.sent)

	d.Step(platformcore.NewInputFrame())
	d.Step(platformcore.NewInputFrame())
	if len(link.sent) != sent {
		t.Errorf("paused game resent its state: %d payloads, expected %d", len(link.sent), sent)
	}

	// A new opponent needs our state again.
	link.in <- wire.EncodeStatus(true)
	d.Step(platformcore.NewInputFrame())
	if len(link.sent) != sent+1 {
		t.Errorf("sent %d payloads after reconnect, expected %d", len(link.sent), sent+1)
	}
}

func TestDuelOutcome(t *testing.T) {
	link := newFakeLink()
	d := NewDuel(New(config.DefaultTetrisConfig()), link, nil)

	link.in <- wire.EncodeStatus(true)
	link.in <- encode(t, opponentState(0, 0))
	d.Step(platformcore.NewInputFrame())
	if d.Outcome() != OutcomePending {
		t.Fatalf("Outcome() = %v, expected pending", d.Outcome())
	}

	over := opponentState(0, 0)
	over.GameOver = true
	link.in <- encode(t, over)
	d.Step(platformcore.NewInputFrame())
	if d.Outcome() != OutcomeWon {
		t.Errorf("Outcome() = %v, expected won", d.Outcome())
	}
}

func TestDuelOutcomeHolds(t *testing.T) {
	link := newFakeLink()
	d := NewDuel(New(config.DefaultTetrisConfig()), link, nil)

	over := opponentState(0, 0)
	over.GameOver = true
	link.in <- wire.EncodeStatus(true)
	link.in <- encode(t, opponentState(0, 0))
	d.Step(platformcore.NewInputFrame())
	link.in <- encode(t, over)
	d.Step(platformcore.NewInputFrame())
	if d.Outcome() != OutcomeWon {
		t.Fatalf("Outcome() = %v, expected won", d.Outcome())
	}

	drop := platformcore.NewInputFrame()
	drop.Set(platformcore.ActionHardDrop)
	for i := 0; i < 200 && !d.Game().Snapshot().GameOver; i++ {
		d.Step(drop)
	}
	if !d.Game().Snapshot().GameOver {
		t.Fatal("local game never topped out")
	}
	if d.Outcome() != OutcomeWon {
		t.Errorf("Outcome() = %v after topping out second, expected won", d.Outcome())
	}

	restart := platformcore.NewInputFrame()
	restart.Set(platformcore.ActionRestart)
	d.Step(restart)
	if d.Outcome() != OutcomePending {
		t.Errorf("Outcome() = %v after restart, expected pending", d.Outcome())
	}

	// The opponent's finished game does not count against the new round.
	link.in <- encode(t, over)
	d.Step(platformcore.NewInputFrame())
	if d.Outcome() != OutcomePending {
		t.Errorf("Outcome() = %v, expected pending until the opponent plays again", d.Outcome())
	}
}

func TestDuelLocalTopOutLoses(t *testing.T) {
	link := newFakeLink()
	d := NewDuel(New(config.DefaultTetrisConfig()), link, nil)

	link.in <- wire.EncodeStatus(true)
	link.in <- encode(t, opponentState(0, 0))
	d.Step(platformcore.NewInputFrame())

	drop := platformcore.NewInputFrame()
	drop.Set(platformcore.ActionHardDrop)
	for i := 0; i < 200 && !d.Game().Snapshot().GameOver; i++ {
		d.Step(drop)
	}
	if d.Outcome() != OutcomeLost {
		t.Fatalf("Outcome() = %v, expected lost", d.Outcome())
	}

	over := opponentState(0, 0)
	over.GameOver = true
	link.in <- encode(t, over)
	d.Step(platformcore.NewInputFrame())
	if d.Outcome() != OutcomeLost {
		t.Errorf("Outcome() = %v after the opponent topped out second, expected lost", d.Outcome())
	}
}

func TestDuelLinkClosed(t *testing.T) {
	link := newFakeLink()
	d := NewDuel(New(config.DefaultTetrisConfig()), link, nil)

	link.in <- wire.EncodeStatus(true)
	d.Step(platformcore.NewInputFrame())
	close(link.in)
	res := d.Step(platformcore.NewInputFrame())

	if !d.Closed() {
		t.Error("expected duel closed after the link closed")
	}
	if res.State.Connected {
		t.Error("expected disconnected after the link closed")
	}

	sent := len(link.sent)
	d.Step(platformcore.NewInputFrame())
	if len(link.sent) != sent {
		t.Error("closed duel should stop sending")
	}
}

func TestRenderDuel(t *testing.T) {
	screen := platformcore.NewScreen(80, 24)
	local := core.NewState(core.DefaultRules())

	RenderDuel(screen, local, nil, "Tetris")
	if out := screen.String(); !strings.Contains(out, "waiting") {
		t.Error("expected waiting placeholder without an opponent")
	}

	opp := opponentState(0, 0)
	opp.Score = 1600
	local.Connected = true
	RenderDuel(screen, local, &opp, "Tetris")
	if out := screen.String(); !strings.Contains(out, "OPPONENT 1600") {
		t.Error("expected opponent score label")
	}
}
