// bitops project bitops.go
package bitops

import "math/bits"

// Set is a set of alphabet positions (0 - 31) packed into a word.
type Set uint32

// Full returns the set holding every position below n.
func Full(n int) Set {
	return Set(1)<<uint(n) - 1
}

func (s Set) SetBit(bit int) Set {
	return s | 1<<uint(bit)
}

func (s Set) ClrBit(bit int) Set {
	return s &^ (1 << uint(bit))
}

func (s Set) GetBit(bit int) bool {
	return s&(1<<uint(bit)) != 0
}

// Len returns the number of positions in the set.
func (s Set) Len() int {
	return bits.OnesCount32(uint32(s))
}

// First returns the lowest position not in the set, or n when every
// position below n is present.
func (s Set) First(n int) int {
	free := ^s & Full(n)
	if free == 0 {
		return n
	}
	return bits.TrailingZeros32(uint32(free))
}
