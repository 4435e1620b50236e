package core_test

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

func TestSequenceNext(t *testing.T) {
	s := core.NewSequence(1729)
	want := []uint32{1012391526, 1611724199, 2017176148, 1883590141}

	if got := s.Take(len(want)); !slices.Equal(got, want) {
		t.Errorf("Take() = %v, expected %v", got, want)
	}
	if s.Value != 1729 {
		t.Errorf("Take() moved the receiver to %d", s.Value)
	}
}

func TestSequenceDeterministic(t *testing.T) {
	a := core.NewSequence(42).Take(100)
	b := core.NewSequence(42).Take(100)
	if !slices.Equal(a, b) {
		t.Error("identical seeds produced different chains")
	}
	for i, v := range a {
		if v >= 1<<31 {
			t.Fatalf("value %d = %d exceeds 2^31", i, v)
		}
	}
}

func TestNewSequenceReducesSeed(t *testing.T) {
	if got := core.NewSequence(1<<31 + 5).Value; got != 5 {
		t.Errorf("NewSequence(2^31+5).Value = %d, expected 5", got)
	}
}
