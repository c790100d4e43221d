package gdprconsent

import (
	"iter"
	mathbits "math/bits"
)

// BitSet is a dense set of positive integer IDs (purposes, vendor IDs).
// IDs are 1-based: ID 1 occupies bit index 0. The zero value is unusable;
// construct with NewBitSet.
type BitSet struct {
	words []uint64
}

// NewBitSet returns a set containing the given IDs. IDs must be >= 1.
func NewBitSet(ids ...int) *BitSet {
	s := &BitSet{}
	for _, id := range ids {
		s.Set(id)
	}
	return s
}

func checkID(id int) {
	if id < 1 {
		panic("gdprconsent: bitset IDs are 1-based")
	}
}

// Set adds id to the set, growing the backing store as needed.
func (s *BitSet) Set(id int) {
	checkID(id)
	w := (id - 1) >> 6
	for len(s.words) <= w {
		s.words = append(s.words, 0)
	}
	s.words[w] |= 1 << (uint(id-1) & 63)
}

// Clear removes id from the set.
func (s *BitSet) Clear(id int) {
	checkID(id)
	w := (id - 1) >> 6
	if w < len(s.words) {
		s.words[w] &^= 1 << (uint(id-1) & 63)
	}
}

// Has reports whether id is in the set.
func (s *BitSet) Has(id int) bool {
	checkID(id)
	w := (id - 1) >> 6
	return w < len(s.words) && s.words[w]>>(uint(id-1)&63)&1 == 1
}

// Len returns the number of IDs in the set.
func (s *BitSet) Len() int {
	n := 0
	for _, w := range s.words {
		n += mathbits.OnesCount64(w)
	}
	return n
}

// All iterates the IDs in ascending order.
func (s *BitSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for wi, w := range s.words {
			for w != 0 {
				tz := mathbits.TrailingZeros64(w)
				if !yield(wi*64 + tz + 1) {
					return
				}
				w &^= 1 << uint(tz)
			}
		}
	}
}

// Max returns the largest ID in the set, or 0 if empty.
func (s *BitSet) Max() int {
	for wi := len(s.words) - 1; wi >= 0; wi-- {
		if w := s.words[wi]; w != 0 {
			return wi*64 + 63 - mathbits.LeadingZeros64(w) + 1
		}
	}
	return 0
}

// Equal reports whether both sets contain exactly the same IDs.
// Trailing zero words are ignored, so sets built in different orders compare
// equal.
func (s *BitSet) Equal(o *BitSet) bool {
	a, b := s.words, o.words
	if len(a) > len(b) {
		a, b = b, a
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	for _, w := range b[len(a):] {
		if w != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s *BitSet) Clone() *BitSet {
	return &BitSet{words: append([]uint64(nil), s.words...)}
}
