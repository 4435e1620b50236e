package core

// SpawnBuffer is how many rows above the visible board a piece may occupy.
const SpawnBuffer = 2

// Piece is an immutable tetromino placed on the board. Pos is the board cell
// of the shape grid's top-left corner; Rotation counts clockwise quarter
// turns from the spawn orientation, modulo 4.
type Piece struct {
	Shape    Shape    `json:"shape"`
	Color    Color    `json:"color"`
	Pos      Position `json:"pos"`
	Rotation int      `json:"rotation"`
}

// Moved returns p translated by d.
func (p Piece) Moved(d Position) Piece {
	p.Pos = p.Pos.Add(d)
	return p
}

// Cells returns the absolute board coordinates of every filled cell.
func (p Piece) Cells() []Position {
	var cells []Position
	for y, row := range p.Shape {
		for x, v := range row {
			if v != 0 {
				cells = append(cells, p.Pos.Add(P(x, y)))
			}
		}
	}
	return cells
}

// Overlaps reports whether any filled cell of p lands on an occupied board
// cell. Cells outside the board never overlap.
func (p Piece) Overlaps(b Board) bool {
	for _, c := range p.Cells() {
		if b.Filled(c.X, c.Y) {
			return true
		}
	}
	return false
}

// InBounds reports whether the filled bounding box of p lies within the board
// columns and within rows [-SpawnBuffer, height).
func (p Piece) InBounds(b Board) bool {
	top, bottom := Bounds(p.Shape, AxisRows)
	left, right := Bounds(p.Shape, AxisCols)
	if top < 0 {
		return true
	}
	return p.Pos.X+left >= 0 &&
		p.Pos.X+right < b.Width() &&
		p.Pos.Y+top >= -SpawnBuffer &&
		p.Pos.Y+bottom < b.Height()
}

// Valid reports whether p is in bounds and free of overlap.
func (p Piece) Valid(b Board) bool {
	return p.InBounds(b) && !p.Overlaps(b)
}

// CanDescend reports whether p can move one row down.
func (p Piece) CanDescend(b Board) bool {
	return p.Moved(P(0, 1)).Valid(b)
}

// HardDrop returns p moved down as far as it stays valid.
func (p Piece) HardDrop(b Board) Piece {
	for p.CanDescend(b) {
		p = p.Moved(P(0, 1))
	}
	return p
}

// Rotate turns p a quarter in dir at the same position, then tries each kick
// displacement in order and returns the first valid placement. When none is
// valid the rotation is rejected and p is returned unchanged.
func (p Piece) Rotate(dir Direction, b Board) Piece {
	rotated := p
	if dir == CounterClockwise {
		rotated.Shape = RotateCCW(p.Shape)
	} else {
		rotated.Shape = RotateCW(p.Shape)
	}
	rotated.Rotation = mod4(p.Rotation + int(dir))

	for _, k := range Kicks(p, rotated) {
		candidate := rotated.Moved(k)
		if candidate.Valid(b) {
			return candidate
		}
	}
	return p
}
