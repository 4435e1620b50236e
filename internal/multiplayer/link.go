package multiplayer

import (
	"errors"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/wire"
)

// ErrLinkClosed is returned when sending on a closed link.
var ErrLinkClosed = errors.New("multiplayer: link closed")

// Link is one peer's view of a duel connection. Incoming yields raw payloads
// exactly as the remote end produced them: status booleans and snapshots.
type Link interface {
	Send(data []byte) error
	Incoming() <-chan []byte
	Close() error
}

// LocalLink is a Link seated directly in an in-process Sentinel. The SSH
// front-end uses it so two terminal sessions can duel without a relay.
type LocalLink struct {
	sentinel *Sentinel
	session  *ChannelSession
	room     RoomID
	incoming chan []byte
	once     sync.Once
}

// JoinLocal seats a new session in sentinel and returns its link.
func JoinLocal(sentinel *Sentinel, id SessionID) (*LocalLink, error) {
	session := NewChannelSession(id, 64)
	room, err := sentinel.Join(session)
	if err != nil {
		return nil, err
	}

	l := &LocalLink{
		sentinel: sentinel,
		session:  session,
		room:     room,
		incoming: make(chan []byte, 64),
	}
	go l.pump()
	return l, nil
}

// pump converts session events into wire payloads until the session ends.
func (l *LocalLink) pump() {
	defer close(l.incoming)
	for {
		select {
		case <-l.session.Done():
			return
		case evt := <-l.session.Events():
			var data []byte
			switch e := evt.(type) {
			case StatusEvent:
				data = wire.EncodeStatus(e.Connected)
			case PayloadEvent:
				data = e.Data
			default:
				continue
			}
			select {
			case l.incoming <- data:
			case <-l.session.Done():
				return
			}
		}
	}
}

// Room returns the room the link was seated in.
func (l *LocalLink) Room() RoomID {
	return l.room
}

// Send relays data to the opponent. Data sent before the room starts is dropped.
func (l *LocalLink) Send(data []byte) error {
	select {
	case <-l.session.Done():
		return ErrLinkClosed
	default:
	}
	l.sentinel.Relay(l.session.ID(), data)
	return nil
}

// Incoming returns the payload channel. It closes after Close.
func (l *LocalLink) Incoming() <-chan []byte {
	return l.incoming
}

// Close leaves the room. Safe to call multiple times.
func (l *LocalLink) Close() error {
	l.once.Do(func() {
		l.sentinel.Leave(l.session.ID())
		l.session.Close()
	})
	return nil
}
