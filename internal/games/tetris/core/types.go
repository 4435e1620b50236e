package core

import "fmt"

// Color tags a locked cell or a piece. ColorNone marks an empty cell.
// Colors marshal as their names.
type Color uint8

const (
	ColorNone Color = iota
	ColorCyan
	ColorBlue
	ColorOrange
	ColorYellow
	ColorGreen
	ColorPurple
	ColorRed
	ColorGarbage
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorCyan:
		return "cyan"
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	case ColorRed:
		return "red"
	case ColorGarbage:
		return "garbage"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	if c > ColorGarbage {
		return nil, fmt.Errorf("core: invalid color %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	for v := ColorNone; v <= ColorGarbage; v++ {
		if v.String() == string(text) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("core: unknown color %q", text)
}

// Position is a board cell coordinate. X grows rightwards, Y grows downwards.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// P is shorthand for Position{X: x, Y: y}.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns p translated by -d.
func (p Position) Sub(d Position) Position {
	return Position{X: p.X - d.X, Y: p.Y - d.Y}
}

// Direction is a rotation direction.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	default:
		return "unknown"
	}
}
