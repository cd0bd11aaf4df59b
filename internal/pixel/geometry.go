package pixel

import (
	"fmt"
	"sort"
)

// Set is a list of buffer indices forming one visual feature.
type Set []int

// NewSet validates and sorts idx. Geometry is fixed at build time, so a bad
// index is a programming error and panics.
func NewSet(idx ...int) Set {
	s := make(Set, len(idx))
	copy(s, idx)
	sort.Ints(s)
	for i, v := range s {
		if !InBounds(v) {
			panic(fmt.Sprintf("pixel: index %d out of range", v))
		}
		if i > 0 && s[i-1] == v {
			panic(fmt.Sprintf("pixel: duplicate index %d", v))
		}
	}
	return s
}

func (s Set) Contains(i int) bool {
	n := sort.SearchInts(s, i)
	return n < len(s) && s[n] == i
}

// Shift returns a copy with every index moved by d. It reports false if any
// index would leave the matrix.
func (s Set) Shift(d int) (Set, bool) {
	out := make(Set, len(s))
	for i, v := range s {
		v += d
		if !InBounds(v) {
			return s, false
		}
		out[i] = v
	}
	return out, true
}

// Overlaps reports whether s and o share an index.
func (s Set) Overlaps(o Set) bool {
	for _, v := range o {
		if s.Contains(v) {
			return true
		}
	}
	return false
}

// Palette is a fixed color list selected round-robin.
type Palette []Color

// At wraps i modulo the palette length.
func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return Black
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

func (p Palette) Len() int { return len(p) }
