package core

// kickTable holds, per rotation state, five offsets. The kick candidates for a
// rotation are the pairwise differences offset[from][i] - offset[to][i].
type kickTable [4][5]Position

var (
	kicksI = kickTable{
		{P(0, 0), P(-1, 0), P(2, 0), P(-1, 0), P(2, 0)},
		{P(-1, 0), P(0, 0), P(0, 0), P(0, -1), P(0, 2)},
		{P(-1, -1), P(1, -1), P(-2, -1), P(1, 0), P(-2, 0)},
		{P(0, -1), P(0, -1), P(0, -1), P(0, 1), P(0, -2)},
	}

	kicksO = kickTable{
		{P(0, 0), P(0, 0), P(0, 0), P(0, 0), P(0, 0)},
		{P(0, 1), P(0, 1), P(0, 1), P(0, 1), P(0, 1)},
		{P(-1, 1), P(-1, 1), P(-1, 1), P(-1, 1), P(-1, 1)},
		{P(-1, 0), P(-1, 0), P(-1, 0), P(-1, 0), P(-1, 0)},
	}

	kicksJLSTZ = kickTable{
		{P(0, 0), P(0, 0), P(0, 0), P(0, 0), P(0, 0)},
		{P(0, 0), P(1, 0), P(1, 1), P(0, -2), P(1, -2)},
		{P(0, 0), P(0, 0), P(0, 0), P(0, 0), P(0, 0)},
		{P(0, 0), P(-1, 0), P(-1, 1), P(0, -2), P(-1, -2)},
	}
)

func kickTableFor(s Shape) kickTable {
	switch {
	case Similar(ShapeI, s):
		return kicksI
	case Similar(ShapeO, s):
		return kicksO
	default:
		return kicksJLSTZ
	}
}

// Kicks returns the ordered displacements to try after rotating from into
// to. The table is chosen by the shape family of from.
func Kicks(from, to Piece) []Position {
	table := kickTableFor(from.Shape)
	a, b := table[mod4(from.Rotation)], table[mod4(to.Rotation)]
	out := make([]Position, len(a))
	for i := range a {
		out[i] = a[i].Sub(b[i])
	}
	return out
}

func mod4(n int) int {
	return ((n % 4) + 4) % 4
}
