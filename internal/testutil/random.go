package testutil

import "sync"

// FixedSource always returns the same value, clamped into the requested range.
// FixedSource(100) makes variance 100% and every chance roll fail unless threshold is 100.
type FixedSource int

func (f FixedSource) Between(lo, hi int) int {
	v := int(f)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SequenceSource replays values in order, clamped into each requested range.
// After the last value it keeps returning the last one.
type SequenceSource struct {
	mu     sync.Mutex
	values []int
	next   int
	Calls  []Call
}

// Call records one draw for assertions on draw order.
type Call struct {
	Lo, Hi int
	Value  int
}

// NewSequence returns a SequenceSource replaying values.
func NewSequence(values ...int) *SequenceSource {
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Between(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := lo
	if len(s.values) > 0 {
		idx := min(s.next, len(s.values)-1)
		v = FixedSource(s.values[idx]).Between(lo, hi)
		s.next++
	}
	s.Calls = append(s.Calls, Call{Lo: lo, Hi: hi, Value: v})
	return v
}

// Draws returns how many values were drawn.
func (s *SequenceSource) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
