package multiplayer

// SessionEvent is something the Sentinel delivers to a session.
type SessionEvent interface {
	sessionEvent()
}

// StatusEvent tells a session whether its opponent is present. It is sent
// with Connected=true to both sessions when a room starts and with
// Connected=false to the remaining session when one leaves.
type StatusEvent struct {
	Room      RoomID
	Connected bool
}

func (StatusEvent) sessionEvent() {}

// PayloadEvent carries an opaque payload relayed from the opponent.
type PayloadEvent struct {
	Data []byte
}

func (PayloadEvent) sessionEvent() {}
