package core

// LCG constants (the classic ANSI C rand parameters).
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// Sequence is a cursor into an infinite deterministic pseudo-random chain.
// Calling Next never changes the receiver; identical seeds always produce
// identical chains.
type Sequence struct {
	Value uint32 `json:"value"`
}

// NewSequence returns the cursor positioned at seed.
func NewSequence(seed uint32) Sequence {
	return Sequence{Value: seed % lcgModulus}
}

// Next returns the cursor one step further along the chain.
func (s Sequence) Next() Sequence {
	v := (uint64(lcgMultiplier)*uint64(s.Value) + lcgIncrement) % lcgModulus
	return Sequence{Value: uint32(v)}
}

// Take returns the next n values after s, leaving s untouched.
func (s Sequence) Take(n int) []uint32 {
	out := make([]uint32, 0, n)
	for range n {
		s = s.Next()
		out = append(out, s.Value)
	}
	return out
}
