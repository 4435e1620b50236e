// Package multiplayer pairs sessions into two-player rooms and relays their
// payloads. It is transport-neutral: the WebSocket server and the SSH front-end
// both drive the same Sentinel.
package multiplayer

import "fmt"

// RoomSize is the number of sessions in a started room.
const RoomSize = 2

// SessionID uniquely identifies a connected peer.
type SessionID string

// RoomID identifies a room for logging and duel history.
type RoomID string

func roomID(n uint64) RoomID {
	return RoomID(fmt.Sprintf("room-%d", n))
}
