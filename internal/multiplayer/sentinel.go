package multiplayer

import (
	"errors"
	"slices"
	"sync"
)

var (
	// ErrRoomFull is returned when joining a room that already started.
	ErrRoomFull = errors.New("multiplayer: room is full")

	// ErrAlreadyJoined is returned when a session joins twice.
	ErrAlreadyJoined = errors.New("multiplayer: session already in a room")
)

// Room holds up to two sessions. Its methods are not synchronized; the
// Sentinel that owns it guards every access.
type Room struct {
	id       RoomID
	sessions []SessionHandle
}

// ID returns the room identifier.
func (r *Room) ID() RoomID {
	return r.id
}

// HasStarted reports whether both seats are taken.
func (r *Room) HasStarted() bool {
	return len(r.sessions) == RoomSize
}

// IsEmpty reports whether no session is left.
func (r *Room) IsEmpty() bool {
	return len(r.sessions) == 0
}

func (r *Room) join(s SessionHandle) error {
	if r.HasStarted() {
		return ErrRoomFull
	}
	r.sessions = append(r.sessions, s)
	if r.HasStarted() {
		r.broadcast(true)
	}
	return nil
}

func (r *Room) remove(id SessionID) {
	r.sessions = slices.DeleteFunc(r.sessions, func(s SessionHandle) bool {
		return s.ID() == id
	})
}

func (r *Room) broadcast(connected bool) {
	for _, s := range r.sessions {
		s.Send(StatusEvent{Room: r.id, Connected: connected})
	}
}

func (r *Room) opponent(id SessionID) SessionHandle {
	for _, s := range r.sessions {
		if s.ID() != id {
			return s
		}
	}
	return nil
}

// Sentinel is the room pool. A joining session is seated in the first room
// still waiting for a player; a new room is opened only when every room has
// started. Safe for concurrent use.
type Sentinel struct {
	mu        sync.Mutex
	rooms     []*Room
	bySession map[SessionID]*Room
	nextRoom  uint64
}

// NewSentinel creates an empty pool.
func NewSentinel() *Sentinel {
	return &Sentinel{
		bySession: make(map[SessionID]*Room),
	}
}

// Join seats s and returns its room. When s takes the second seat both
// sessions receive StatusEvent{Connected: true}.
func (p *Sentinel) Join(s SessionHandle) (RoomID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.bySession[s.ID()]; ok {
		return "", ErrAlreadyJoined
	}

	room := p.room()
	if err := room.join(s); err != nil {
		return "", err
	}
	p.bySession[s.ID()] = room
	return room.id, nil
}

// room returns the first room that has not started, opening one if needed.
// Caller holds p.mu.
func (p *Sentinel) room() *Room {
	for _, r := range p.rooms {
		if !r.HasStarted() {
			return r
		}
	}
	p.nextRoom++
	r := &Room{id: roomID(p.nextRoom)}
	p.rooms = append(p.rooms, r)
	return r
}

// Relay forwards data from a session to its opponent. Payloads sent before
// the room has started are dropped; Relay reports whether data was forwarded.
func (p *Sentinel) Relay(from SessionID, data []byte) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	room, ok := p.bySession[from]
	if !ok || !room.HasStarted() {
		return false
	}
	opp := room.opponent(from)
	if opp == nil {
		return false
	}
	opp.Send(PayloadEvent{Data: data})
	return true
}

// Leave removes a session from its room, tells the remaining session that
// its opponent is gone, and discards the room once it is empty.
func (p *Sentinel) Leave(id SessionID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	room, ok := p.bySession[id]
	if !ok {
		return
	}
	delete(p.bySession, id)

	room.remove(id)
	room.broadcast(false)
	if room.IsEmpty() {
		p.rooms = slices.DeleteFunc(p.rooms, func(r *Room) bool { return r == room })
	}
}

// RoomOf returns the room a session is seated in.
func (p *Sentinel) RoomOf(id SessionID) (RoomID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	room, ok := p.bySession[id]
	if !ok {
		return "", false
	}
	return room.id, true
}

// Stats returns the number of open rooms and of rooms that have started.
func (p *Sentinel) Stats() (rooms, started int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.rooms {
		if r.HasStarted() {
			started++
		}
	}
	return len(p.rooms), started
}
