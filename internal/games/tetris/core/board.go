package core

// Board is the locked-cell grid. Row 0 is the top of the visible field.
// Boards are values: every operation returns a new board and leaves the
// receiver untouched.
type Board struct {
	Cells [][]Color `json:"cells"`
}

// EmptyBoard returns a height x width board of empty cells.
func EmptyBoard(width, height int) Board {
	return FilledBoard(width, height, ColorNone)
}

// FilledBoard returns a height x width board with every cell set to fill.
func FilledBoard(width, height int, fill Color) Board {
	return Board{Cells: filledRows(width, height, fill)}
}

func filledRows(width, height int, fill Color) [][]Color {
	rows := make([][]Color, height)
	for y := range rows {
		row := make([]Color, width)
		if fill != ColorNone {
			for x := range row {
				row[x] = fill
			}
		}
		rows[y] = row
	}
	return rows
}

// Width returns the number of columns.
func (b Board) Width() int {
	if len(b.Cells) == 0 {
		return 0
	}
	return len(b.Cells[0])
}

// Height returns the number of rows.
func (b Board) Height() int {
	return len(b.Cells)
}

// InBounds reports whether (x, y) is a board cell.
func (b Board) InBounds(x, y int) bool {
	return InBounds(b.Cells, x, y)
}

// At returns the color at (x, y), or ColorNone outside the board.
func (b Board) At(x, y int) Color {
	if !b.InBounds(x, y) {
		return ColorNone
	}
	return b.Cells[y][x]
}

// Filled reports whether (x, y) is inside the board and occupied.
func (b Board) Filled(x, y int) bool {
	return b.At(x, y) != ColorNone
}

// Merge returns a new board with every filled cell of p painted in p's color.
// Cells of p that fall outside the board are discarded.
func (b Board) Merge(p Piece) Board {
	out := make([][]Color, len(b.Cells))
	for y, row := range b.Cells {
		nr := make([]Color, len(row))
		for x := range row {
			local := P(x, y).Sub(p.Pos)
			if p.Shape.Filled(local.X, local.Y) {
				nr[x] = p.Color
			} else {
				nr[x] = row[x]
			}
		}
		out[y] = nr
	}
	return Board{Cells: out}
}

func rowFull(row []Color) bool {
	for _, c := range row {
		if c == ColorNone {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row and prepends the same number of empty
// rows above the survivors, whose relative order is preserved. It returns the
// number of rows removed together with the compacted board.
func (b Board) ClearFullRows() (int, Board) {
	remaining := make([][]Color, 0, len(b.Cells))
	for _, row := range b.Cells {
		if !rowFull(row) {
			remaining = append(remaining, row)
		}
	}
	cleared := len(b.Cells) - len(remaining)
	if cleared == 0 {
		return 0, b
	}
	rows := append(filledRows(b.Width(), cleared, ColorNone), remaining...)
	return cleared, Board{Cells: rows}
}

// IsTopRowFilled reports whether any cell of row 0 is occupied.
func (b Board) IsTopRowFilled() bool {
	return len(b.Cells) > 0 && rowFilled(b.Cells[0])
}

// RaiseGarbage drops n rows from the top of the board and appends n garbage
// rows at the bottom, each with a single hole at column hole. lost reports
// whether any of the dropped rows held a block.
func (b Board) RaiseGarbage(n, hole int) (lost bool, out Board) {
	if n <= 0 {
		return false, b
	}
	n = min(n, b.Height())
	for _, row := range b.Cells[:n] {
		if rowFilled(row) {
			lost = true
		}
	}
	width := b.Width()
	rows := make([][]Color, 0, b.Height())
	rows = append(rows, b.Cells[n:]...)
	for _, g := range filledRows(width, n, ColorGarbage) {
		if width > 0 {
			g[hole%width] = ColorNone
		}
		rows = append(rows, g)
	}
	return lost, Board{Cells: rows}
}
