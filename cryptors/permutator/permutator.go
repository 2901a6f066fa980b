// permutator project main.go
package permutator

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/bitops"
)

var (
	ErrIncomplete     = errors.New("permutator: mapping is incomplete")
	ErrNotPermutation = errors.New("permutator: mapping is not a permutation")
)

// Permutator is a mapping of the alphabet onto itself.  It may be partial
// while it is being filled in from observations; Cycles and Inverse require
// it to be a complete permutation.
type Permutator struct {
	perm  [cryptors.AlphabetSize]byte // perm[i] is the index i maps to.
	known bitops.Set                  // Indices whose target is known.
}

// New creates an empty permutator with no known targets.
func New() *Permutator {
	return new(Permutator)
}

// FromString creates a complete permutator from a wiring string where the
// letter at position i is the substitution for Alphabet[i].
func FromString(wiring string) (*Permutator, error) {
	if len(wiring) != cryptors.AlphabetSize {
		return nil, fmt.Errorf("%w: wiring %q has %d letters", ErrNotPermutation, wiring, len(wiring))
	}
	p := New()
	var seen bitops.Set
	for i := 0; i < len(wiring); i++ {
		idx, err := cryptors.Index(wiring[i])
		if err != nil {
			return nil, err
		}
		if seen.GetBit(idx) {
			return nil, fmt.Errorf("%w: %c appears twice in %q", ErrNotPermutation, wiring[i], wiring)
		}
		seen = seen.SetBit(idx)
		p.Observe(i, idx)
	}
	return p, nil
}

// Observe records that from maps to to.  The first observation for a source
// index wins; later ones are ignored.  Observe reports whether from was newly
// resolved; an index outside the alphabet is never recorded.
func (p *Permutator) Observe(from, to int) bool {
	if from < 0 || from >= cryptors.AlphabetSize || to < 0 || to >= cryptors.AlphabetSize {
		return false
	}
	if p.known.GetBit(from) {
		return false
	}
	p.perm[from] = byte(to)
	p.known = p.known.SetBit(from)
	return true
}

// Lookup returns the target of from and whether it is known.
func (p *Permutator) Lookup(from int) (int, bool) {
	if !p.known.GetBit(from) {
		return 0, false
	}
	return int(p.perm[from]), true
}

// Resolved returns the number of source indices with a known target.
func (p *Permutator) Resolved() int {
	return p.known.Len()
}

func (p *Permutator) Complete() bool {
	return p.known.Len() == cryptors.AlphabetSize
}

// Apply_F maps idx through the permutator.  Unknown targets map to themselves.
func (p *Permutator) Apply_F(idx int) int {
	if to, ok := p.Lookup(idx); ok {
		return to
	}
	return idx
}

// Apply_G maps idx back through the permutator.  It is the inverse of
// Apply_F on a complete permutation.
func (p *Permutator) Apply_G(idx int) int {
	for from := 0; from < cryptors.AlphabetSize; from++ {
		if p.known.GetBit(from) && int(p.perm[from]) == idx {
			return from
		}
	}
	return idx
}

// Inverse returns the inverse permutation.
func (p *Permutator) Inverse() (*Permutator, error) {
	if !p.Complete() {
		return nil, ErrIncomplete
	}
	inv := New()
	for from, to := range p.perm {
		if !inv.Observe(int(to), from) {
			return nil, fmt.Errorf("%w: %c has two sources", ErrNotPermutation, cryptors.Letter(int(to)))
		}
	}
	return inv, nil
}

// IsInvolution reports whether the permutator is complete and its own inverse.
func (p *Permutator) IsInvolution() bool {
	if !p.Complete() {
		return false
	}
	for from, to := range p.perm {
		if int(p.perm[to]) != from {
			return false
		}
	}
	return true
}

// Cycles decomposes the permutation into disjoint cycles.  Each cycle is
// returned as the letters visited starting from its lowest letter, and the
// cycles are ordered by that starting letter.  The lengths always sum to the
// alphabet size; a fixed point is a cycle of length one.
func (p *Permutator) Cycles() ([]string, error) {
	var visited bitops.Set
	var cycles []string
	for start := visited.First(cryptors.AlphabetSize); start < cryptors.AlphabetSize; start = visited.First(cryptors.AlphabetSize) {
		var cycle bytes.Buffer
		cur := start
		for {
			if visited.GetBit(cur) {
				return nil, fmt.Errorf("%w: %c is reached twice", ErrNotPermutation, cryptors.Letter(cur))
			}
			visited = visited.SetBit(cur)
			cycle.WriteByte(cryptors.Letter(cur))
			next, ok := p.Lookup(cur)
			if !ok {
				return nil, fmt.Errorf("%w: no target for %c", ErrIncomplete, cryptors.Letter(cur))
			}
			if next == start {
				break
			}
			cur = next
		}
		cycles = append(cycles, cycle.String())
	}
	return cycles, nil
}

// CycleLengths returns the lengths of the cycles in ascending order.
func (p *Permutator) CycleLengths() ([]int, error) {
	cycles, err := p.Cycles()
	if err != nil {
		return nil, err
	}
	lengths := make([]int, len(cycles))
	for i, c := range cycles {
		lengths[i] = len(c)
	}
	sort.Ints(lengths)
	return lengths, nil
}

// String returns the wiring string of the permutator with '.' for each
// source letter whose target is still unknown.
func (p *Permutator) String() string {
	var output bytes.Buffer
	for from := 0; from < cryptors.AlphabetSize; from++ {
		if to, ok := p.Lookup(from); ok {
			output.WriteByte(cryptors.Letter(to))
		} else {
			output.WriteByte('.')
		}
	}
	return output.String()
}
