package rng

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCG_SameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for range 1000 {
		require.Equal(t, a.Between(1, 100), b.Between(1, 100))
	}
}

func TestPCG_DifferentSeeds(t *testing.T) {
	a, b := New(1), New(2)
	same := 0
	for range 100 {
		if a.Between(1, 1_000_000) == b.Between(1, 1_000_000) {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestPCG_BetweenInclusive(t *testing.T) {
	src := New(7)
	seen := map[int]bool{}
	for range 2000 {
		v := src.Between(85, 100)
		require.GreaterOrEqual(t, v, 85)
		require.LessOrEqual(t, v, 100)
		seen[v] = true
	}
	assert.True(t, seen[85], "lower bound reachable")
	assert.True(t, seen[100], "upper bound reachable")

	assert.Equal(t, 5, src.Between(5, 5))
	v := src.Between(10, 1)
	assert.True(t, v >= 1 && v <= 10, "swapped bounds reordered, got %d", v)
}

func TestLocked_ConcurrentUse(t *testing.T) {
	src := NewLocked(New(99))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				v := src.Between(1, 100)
				if v < 1 || v > 100 {
					t.Errorf("out of range: %d", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestSeedFor(t *testing.T) {
	assert.Equal(t, SeedFor("battle-1", 3), SeedFor("battle-1", 3))
	assert.NotEqual(t, SeedFor("battle-1", 3), SeedFor("battle-1", 4))
	assert.NotEqual(t, SeedFor("battle-1", 3), SeedFor("battle-2", 3))
	// separator keeps ("a", 12) and ("a1", 2) apart
	assert.NotEqual(t, SeedFor("a", 12), SeedFor("a1", 2))
}

func TestDerive(t *testing.T) {
	seen := map[uint64]bool{}
	for n := range 64 {
		s := Derive(1234, n)
		require.False(t, seen[s], "stream %d collides", n)
		seen[s] = true
	}
	assert.Equal(t, Derive(5, 2), Derive(5, 2))
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
