// Package rng provides the random sources threaded into skill resolution.
//
// Resolvers never touch a global generator. Every call receives a Source,
// so tests can inject deterministic values and concurrent battles can each
// own an independently seeded generator.
package rng

import (
	"math/rand/v2"
	"sync"
)

// Source yields uniform integers over an inclusive range.
type Source interface {
	Between(lo, hi int) int
}

// PCG is a seeded Source backed by math/rand/v2 PCG.
// Not safe for concurrent use; wrap with NewLocked to share.
type PCG struct {
	r *rand.Rand
}

// pcgStream is the second PCG word; any odd constant works.
const pcgStream = 0x9E3779B97F4A7C15

// New returns a PCG source seeded with seed.
// Two sources with the same seed produce the same sequence.
func New(seed uint64) *PCG {
	return &PCG{r: rand.New(rand.NewPCG(seed, pcgStream))}
}

// Between returns a uniform integer in [lo, hi]. Swapped bounds are reordered.
func (p *PCG) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + p.r.IntN(hi-lo+1)
}

// Locked serializes access to an underlying Source.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src so it can be shared between goroutines.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

func (l *Locked) Between(lo, hi int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Between(lo, hi)
}
