package core

// Shape is a square grid of 0/1 cells. Canonical shapes carry an empty border
// so they rotate about their center without reallocation. Shapes are never
// mutated after construction.
type Shape [][]int

// Size returns the side length of the shape grid.
func (s Shape) Size() int {
	return len(s)
}

// Filled reports whether the cell at (x, y) is set.
func (s Shape) Filled(x, y int) bool {
	return InBounds(s, x, y) && s[y][x] != 0
}

// String renders the shape as rows of '#' and '.'.
func (s Shape) String() string {
	b := make([]byte, 0, len(s)*(len(s)+1))
	for y, row := range s {
		if y > 0 {
			b = append(b, '\n')
		}
		for _, v := range row {
			if v != 0 {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
	}
	return string(b)
}

// Canonical shapes in spawn orientation. I lives in a 5x5 box and the rest
// in 3x3 boxes, so a raw rotation plus the kick offsets reproduces the
// standard rotation system.
var (
	ShapeI = Shape{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 1},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}
	ShapeJ = Shape{
		{1, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	}
	ShapeL = Shape{
		{0, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	}
	ShapeO = Shape{
		{0, 1, 1},
		{0, 1, 1},
		{0, 0, 0},
	}
	ShapeS = Shape{
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	}
	ShapeT = Shape{
		{0, 1, 0},
		{1, 1, 1},
		{0, 0, 0},
	}
	ShapeZ = Shape{
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	}
)
