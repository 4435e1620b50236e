// Package wire encodes the messages exchanged between two peers: a full game
// snapshot, or the bare JSON booleans true/false announcing that the opponent
// connected or left.
package wire

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// ErrMalformed is returned for payloads that are neither a status nor a snapshot.
var ErrMalformed = errors.New("wire: malformed payload")

var (
	statusTrue  = []byte("true")
	statusFalse = []byte("false")
)

// Message is a decoded inbound payload. Exactly one field is set.
type Message struct {
	Status *bool
	State  *core.State
}

// Event returns the Connect event carried by a status message.
func (m Message) Event() (core.Event, bool) {
	if m.Status == nil {
		return nil, false
	}
	return core.Connect{On: *m.Status}, true
}

// EncodeStatus returns the status payload.
func EncodeStatus(connected bool) []byte {
	if connected {
		return bytes.Clone(statusTrue)
	}
	return bytes.Clone(statusFalse)
}

// EncodeState serializes a snapshot.
func EncodeState(s core.State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("wire: encode state: %w", err)
	}
	return data, nil
}

// Decode parses an inbound payload.
func Decode(data []byte) (Message, error) {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, statusTrue):
		on := true
		return Message{Status: &on}, nil
	case bytes.Equal(data, statusFalse):
		off := false
		return Message{Status: &off}, nil
	case len(data) == 0 || data[0] != '{':
		return Message{}, ErrMalformed
	}

	var s core.State
	if err := json.Unmarshal(data, &s); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validate(s); err != nil {
		return Message{}, err
	}
	return Message{State: &s}, nil
}

// validate rejects snapshots a renderer could not draw.
func validate(s core.State) error {
	w := s.Board.Width()
	if w == 0 || s.Board.Height() == 0 {
		return fmt.Errorf("%w: empty board", ErrMalformed)
	}
	for y, row := range s.Board.Cells {
		if len(row) != w {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrMalformed, y, len(row), w)
		}
	}
	if len(s.Active.Shape) == 0 {
		return fmt.Errorf("%w: missing active piece", ErrMalformed)
	}
	return nil
}
