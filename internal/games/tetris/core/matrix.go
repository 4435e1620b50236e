// Package core provides the falling-block engine for Tetris.
// This package is UI-agnostic and deterministic: every operation is a pure
// function of its inputs and never mutates a value it was given.
package core

import "slices"

// Axis selects rows or columns for bounding-box scans.
type Axis int

const (
	AxisRows Axis = iota
	AxisCols
)

// Reverse returns a copy of m with its row order reversed.
func Reverse[M ~[][]T, T any](m M) M {
	out := make(M, len(m))
	for i, row := range m {
		out[len(m)-1-i] = row
	}
	return out
}

// Transpose returns the transpose of m. Rows are assumed to be of equal length.
func Transpose[M ~[][]T, T any](m M) M {
	if len(m) == 0 {
		return M{}
	}
	out := make(M, len(m[0]))
	for c := range out {
		out[c] = make([]T, len(m))
		for r := range m {
			out[c][r] = m[r][c]
		}
	}
	return out
}

// RotateCW rotates m 90 degrees clockwise: the row order is reversed and
// column i of the reversed grid, read top to bottom, becomes row i.
func RotateCW[M ~[][]T, T any](m M) M {
	return Transpose(Reverse(m))
}

// RotateCCW rotates m 90 degrees counterclockwise as three clockwise turns,
// so the two directions can never disagree.
func RotateCCW[M ~[][]T, T any](m M) M {
	return RotateCW(RotateCW(RotateCW(m)))
}

// InBounds reports whether (x, y) addresses a cell of m.
func InBounds[M ~[][]T, T any](m M, x, y int) bool {
	return y >= 0 && y < len(m) && x >= 0 && x < len(m[y])
}

func rowFilled[T comparable](row []T) bool {
	var zero T
	for _, v := range row {
		if v != zero {
			return true
		}
	}
	return false
}

// FirstFilledRow returns the index of the first row holding a non-zero cell, or -1.
func FirstFilledRow[M ~[][]T, T comparable](m M) int {
	for i, row := range m {
		if rowFilled(row) {
			return i
		}
	}
	return -1
}

// LastFilledRow returns the index of the last row holding a non-zero cell, or -1.
func LastFilledRow[M ~[][]T, T comparable](m M) int {
	for i := len(m) - 1; i >= 0; i-- {
		if rowFilled(m[i]) {
			return i
		}
	}
	return -1
}

// FirstFilledCol returns the index of the first column holding a non-zero cell, or -1.
func FirstFilledCol[M ~[][]T, T comparable](m M) int {
	return FirstFilledRow(Transpose(m))
}

// LastFilledCol returns the index of the last column holding a non-zero cell, or -1.
func LastFilledCol[M ~[][]T, T comparable](m M) int {
	return LastFilledRow(Transpose(m))
}

// Bounds returns the first and last filled index along axis.
func Bounds[M ~[][]T, T comparable](m M, axis Axis) (first, last int) {
	if axis == AxisCols {
		return FirstFilledCol(m), LastFilledCol(m)
	}
	return FirstFilledRow(m), LastFilledRow(m)
}

// Equal reports whether a and b hold identical cells.
func Equal[M ~[][]T, T comparable](a, b M) bool {
	return slices.EqualFunc(a, b, func(x, y []T) bool { return slices.Equal(x, y) })
}

// Similar reports whether b equals any of the four rotations of a.
func Similar[M ~[][]T, T comparable](a, b M) bool {
	r := a
	for range 4 {
		if Equal(r, b) {
			return true
		}
		r = RotateCW(r)
	}
	return false
}

// CenteredOffset returns the translation along axis that centers the filled
// bounding box of m within span cells: (span - (last - first + 1)) / 2 - first.
func CenteredOffset[M ~[][]T, T comparable](span int, axis Axis, m M) int {
	first, last := Bounds(m, axis)
	if first < 0 {
		return 0
	}
	return (span-(last-first+1))/2 - first
}
