package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// SeedFor derives a replayable seed for one turn of one battle.
// The engine can store only the battle ID and reproduce every roll later.
func SeedFor(battleID string, turn int) uint64 {
	h, _ := blake2b.New256(nil) // nil key never fails
	h.Write([]byte(battleID))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(turn)))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// Derive returns an independent seed for stream n of a parent seed (splitmix64).
// Used to give each simulation worker its own generator.
func Derive(seed uint64, n int) uint64 {
	z := seed + uint64(n+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
