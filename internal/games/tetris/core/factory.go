package core

import (
	"errors"
	"fmt"
)

// ErrUnknownShape is returned when a shape matches none of the seven families
// under any rotation.
var ErrUnknownShape = errors.New("core: shape matches no piece family")

// Family is one of the seven canonical tetrominoes.
type Family struct {
	Name  string
	Shape Shape
	Color Color
}

// Families lists the canonical pieces in factory order.
var Families = []Family{
	{Name: "I", Shape: ShapeI, Color: ColorCyan},
	{Name: "J", Shape: ShapeJ, Color: ColorBlue},
	{Name: "L", Shape: ShapeL, Color: ColorOrange},
	{Name: "O", Shape: ShapeO, Color: ColorYellow},
	{Name: "S", Shape: ShapeS, Color: ColorGreen},
	{Name: "T", Shape: ShapeT, Color: ColorPurple},
	{Name: "Z", Shape: ShapeZ, Color: ColorRed},
}

// Piece returns the family's canonical piece at the origin, rotation 0.
func (f Family) Piece() Piece {
	return Piece{Shape: f.Shape, Color: f.Color}
}

// Spawn returns the family's piece centered horizontally over a board of the
// given width, with its topmost filled cell SpawnBuffer rows above row 0.
func (f Family) Spawn(width int) Piece {
	p := f.Piece()
	p.Pos = P(
		CenteredOffset(width, AxisCols, f.Shape),
		-SpawnBuffer-FirstFilledRow(f.Shape),
	)
	return p
}

// FamilyFromValue picks a family by value mod 7.
func FamilyFromValue(v uint32) Family {
	return Families[v%uint32(len(Families))]
}

// PieceFromValue spawns the family selected by v on a board of the given width.
func PieceFromValue(v uint32, width int) Piece {
	return FamilyFromValue(v).Spawn(width)
}

// FamilyOf finds the family whose canonical shape is a rotation of s.
func FamilyOf(s Shape) (Family, error) {
	for _, f := range Families {
		if Similar(f.Shape, s) {
			return f, nil
		}
	}
	return Family{}, fmt.Errorf("%w:\n%s", ErrUnknownShape, s)
}

// OriginalPiece returns the canonical piece (origin, rotation 0) of the family
// that s belongs to.
func OriginalPiece(s Shape) (Piece, error) {
	f, err := FamilyOf(s)
	if err != nil {
		return Piece{}, err
	}
	return f.Piece(), nil
}

// MustOriginalPiece is OriginalPiece for shapes known to come from a family.
// It panics otherwise, since that means a piece was built outside the factory.
func MustOriginalPiece(s Shape) Piece {
	p, err := OriginalPiece(s)
	if err != nil {
		panic(err)
	}
	return p
}

// respawn returns the canonical spawn placement of p's family.
func respawn(p Piece, width int) Piece {
	f, err := FamilyOf(p.Shape)
	if err != nil {
		panic(err)
	}
	return f.Spawn(width)
}
