// Package random provides the byte sources that feed the CHIP-8 RND instruction.
//
// Random returns pseudo random bytes from a seeded generator. Using the same
// non-zero seed twice returns the same sequence of bytes, a zero seed selects
// a time based seed.
//
// Sequence returns a fixed list of bytes in a loop, which is useful for tests
// that need to know the exact values produced.
package random

import (
	"math/rand/v2"
	"time"
)

// Random is a seeded pseudo random byte source.
type Random struct {
	seed uint64
	rng  *rand.Rand
}

// New returns a new random byte source. A zero seed is replaced by a seed
// derived from the current time.
func New(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// Seed returns the seed that the source was initialized with.
func (r *Random) Seed() uint64 {
	return r.seed
}

// RandomByte returns the next pseudo random byte.
func (r *Random) RandomByte() byte {
	return byte(r.rng.UintN(256))
}

// Sequence returns the given bytes in order, starting over after the last one.
type Sequence struct {
	values []byte
	next   int
}

// NewSequence returns a source that cycles through the given values. An empty
// sequence always returns 0.
func NewSequence(values ...byte) *Sequence {
	return &Sequence{values: values}
}

// RandomByte returns the next byte of the sequence.
func (s *Sequence) RandomByte() byte {
	if len(s.values) == 0 {
		return 0
	}
	b := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return b
}
