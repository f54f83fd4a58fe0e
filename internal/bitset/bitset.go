// Package bitset implements a fixed-width bit vector keyed by slot index.
//
// The sequence engine tracks two of these per generated tree: which slots are
// currently included in the emitted sequence, and which slots still have
// shrinking headroom. Width is fixed at construction; there is no resizing.
package bitset

import (
	"fmt"
	"math/bits"
	"strings"
)

const wordBits = 64

// Set is a fixed-width bit vector over indices [0, Len).
type Set struct {
	words []uint64
	n     int
}

// New returns an all-zero Set of width n.
func New(n int) *Set {
	if n < 0 {
		panic("bitset: negative width")
	}
	return &Set{
		words: make([]uint64, (n+wordBits-1)/wordBits),
		n:     n,
	}
}

// Saturated returns a Set of width n with every bit set.
func Saturated(n int) *Set {
	s := New(n)
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	// Mask off the bits beyond n in the last word.
	if rem := n % wordBits; rem != 0 {
		s.words[len(s.words)-1] = (uint64(1) << rem) - 1
	}
	return s
}

// Len returns the fixed width of the set.
func (s *Set) Len() int { return s.n }

// Set turns bit i on.
func (s *Set) Set(i int) {
	s.check(i)
	s.words[i/wordBits] |= uint64(1) << (i % wordBits)
}

// Clear turns bit i off.
func (s *Set) Clear(i int) {
	s.check(i)
	s.words[i/wordBits] &^= uint64(1) << (i % wordBits)
}

// Test reports whether bit i is on.
func (s *Set) Test(i int) bool {
	s.check(i)
	return s.words[i/wordBits]&(uint64(1)<<(i%wordBits)) != 0
}

// Count returns the number of bits that are on.
func (s *Set) Count() int {
	total := 0
	for _, w := range s.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// String renders the set as a bit string, index 0 first. Debug aid.
func (s *Set) String() string {
	var b strings.Builder
	for i := 0; i < s.n; i++ {
		if s.Test(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func (s *Set) check(i int) {
	if i < 0 || i >= s.n {
		panic(fmt.Sprintf("bitset: index %d out of range [0, %d)", i, s.n))
	}
}
