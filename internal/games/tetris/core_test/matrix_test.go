package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

func TestRotateCW(t *testing.T) {
	in := [][]int{
		{1, 2, 3},
		{4, 5, 6},
	}
	want := [][]int{
		{4, 1},
		{5, 2},
		{6, 3},
	}

	got := core.RotateCW(in)
	if !core.Equal(got, want) {
		t.Errorf("RotateCW() = %v, expected %v", got, want)
	}
	if in[0][0] != 1 || len(in) != 2 {
		t.Error("RotateCW modified its input")
	}
}

func TestRotateCCWUndoesCW(t *testing.T) {
	for _, f := range core.Families {
		got := core.RotateCCW(core.RotateCW(f.Shape))
		if !core.Equal(got, f.Shape) {
			t.Errorf("%s: RotateCCW(RotateCW(s)) = \n%s\nexpected\n%s", f.Name, got, f.Shape)
		}
	}
}

func TestTransposeAndReverse(t *testing.T) {
	in := [][]int{{1, 2}, {3, 4}, {5, 6}}

	tr := core.Transpose(in)
	if !core.Equal(tr, [][]int{{1, 3, 5}, {2, 4, 6}}) {
		t.Errorf("Transpose() = %v", tr)
	}

	rv := core.Reverse(in)
	if !core.Equal(rv, [][]int{{5, 6}, {3, 4}, {1, 2}}) {
		t.Errorf("Reverse() = %v", rv)
	}

	if len(core.Transpose([][]int{})) != 0 {
		t.Error("Transpose of empty grid should be empty")
	}
}

func TestInBounds(t *testing.T) {
	m := [][]int{{0, 0, 0}, {0, 0, 0}}
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{2, 1, true},
		{3, 0, false},
		{0, 2, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tt := range tests {
		if got := core.InBounds(m, tt.x, tt.y); got != tt.want {
			t.Errorf("InBounds(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFilledScans(t *testing.T) {
	tests := []struct {
		name        string
		shape       core.Shape
		top, bottom int
		left, right int
	}{
		{"I", core.ShapeI, 2, 2, 1, 4},
		{"J", core.ShapeJ, 0, 1, 0, 2},
		{"O", core.ShapeO, 0, 1, 1, 2},
		{"empty", core.Shape{{0, 0}, {0, 0}}, -1, -1, -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, bottom := core.Bounds(tt.shape, core.AxisRows)
			left, right := core.Bounds(tt.shape, core.AxisCols)
			if top != tt.top || bottom != tt.bottom {
				t.Errorf("rows = (%d, %d), expected (%d, %d)", top, bottom, tt.top, tt.bottom)
			}
			if left != tt.left || right != tt.right {
				t.Errorf("cols = (%d, %d), expected (%d, %d)", left, right, tt.left, tt.right)
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	s := core.RotateCW(core.RotateCW(core.ShapeT))
	if !core.Similar(core.ShapeT, s) {
		t.Error("T rotated twice should be similar to T")
	}
	if core.Similar(core.ShapeS, core.ShapeZ) {
		t.Error("S and Z are mirror images, not rotations")
	}
}

func TestFamiliesAreDistinct(t *testing.T) {
	for i, a := range core.Families {
		for j, b := range core.Families {
			if i != j && core.Similar(a.Shape, b.Shape) {
				t.Errorf("%s and %s are rotations of each other", a.Name, b.Name)
			}
		}
	}
}

func TestCenteredOffset(t *testing.T) {
	tests := []struct {
		name  string
		shape core.Shape
		width int
		want  int
	}{
		{"I", core.ShapeI, 10, 2},
		{"O", core.ShapeO, 10, 3},
		{"T", core.ShapeT, 10, 3},
		{"T narrow", core.ShapeT, 5, 1},
		{"empty", core.Shape{{0}}, 10, 0},
	}
	for _, tt := range tests {
		if got := core.CenteredOffset(tt.width, core.AxisCols, tt.shape); got != tt.want {
			t.Errorf("%s: CenteredOffset(%d) = %d, expected %d", tt.name, tt.width, got, tt.want)
		}
	}
}
