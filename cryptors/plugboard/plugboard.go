// plugboard
package plugboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bgallie/enigma/cryptors"
)

var (
	ErrTooManySwaps = fmt.Errorf("%w: at most %d plugboard swaps are allowed", cryptors.ErrConfig, cryptors.MaximumSwaps)
	ErrSwap         = fmt.Errorf("%w: a plugboard swap must be two different letters", cryptors.ErrConfig)
	ErrPlugInUse    = fmt.Errorf("%w: letter is already plugged", cryptors.ErrConfig)
)

// Plugboard swaps pairs of letters before and after the rotors.  A letter
// without a cable is absent from the map and passes through unchanged.  The
// map is always symmetric.
type Plugboard struct {
	swaps map[byte]byte
}

// New creates a plugboard with the given swaps.  Each swap is a two letter
// string such as "AB".
func New(swaps []string) (*Plugboard, error) {
	p := &Plugboard{swaps: make(map[byte]byte)}
	if err := p.UpdateSwaps(swaps, false); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseSwap validates a swap and returns its two letters in upper case.
func ParseSwap(swap string) (byte, byte, error) {
	swap = strings.ToUpper(swap)
	if len(swap) != 2 || !cryptors.IsLetter(swap[0]) || !cryptors.IsLetter(swap[1]) || swap[0] == swap[1] {
		return 0, 0, fmt.Errorf("%w: got %q", ErrSwap, swap)
	}
	return swap[0], swap[1], nil
}

// UpdateSwaps adds newSwaps to the plugboard, first removing every existing
// swap when replace is true.  Plugging a pair that is already plugged is a
// no-op.  The update is rejected as a whole, leaving the plugboard as it was,
// if any swap is malformed, reuses a letter plugged elsewhere or would take
// the plugboard past six pairs.
func (p *Plugboard) UpdateSwaps(newSwaps []string, replace bool) error {
	swaps := make(map[byte]byte)
	if !replace {
		for k, v := range p.swaps {
			swaps[k] = v
		}
	}

	for _, swap := range newSwaps {
		a, b, err := ParseSwap(swap)
		if err != nil {
			return err
		}
		if swaps[a] == b {
			continue
		}
		if other, ok := swaps[a]; ok {
			return fmt.Errorf("%w: %c is plugged to %c", ErrPlugInUse, a, other)
		}
		if other, ok := swaps[b]; ok {
			return fmt.Errorf("%w: %c is plugged to %c", ErrPlugInUse, b, other)
		}
		swaps[a] = b
		swaps[b] = a
	}

	if len(swaps)/2 > cryptors.MaximumSwaps {
		return fmt.Errorf("%w: got %d", ErrTooManySwaps, len(swaps)/2)
	}

	p.swaps = swaps
	return nil
}

// Swap returns the letter plugged to letter, or letter itself.
func (p *Plugboard) Swap(letter byte) byte {
	if other, ok := p.swaps[letter]; ok {
		return other
	}
	return letter
}

// Len returns the number of plugged pairs.
func (p *Plugboard) Len() int {
	return len(p.swaps) / 2
}

// Pairs returns the plugged pairs, each with its lower letter first, in
// alphabetical order.
func (p *Plugboard) Pairs() []string {
	pairs := make([]string, 0, p.Len())
	for a, b := range p.swaps {
		if a < b {
			pairs = append(pairs, string([]byte{a, b}))
		}
	}
	sort.Strings(pairs)
	return pairs
}

func (p *Plugboard) Apply_F(idx int) int {
	return int(p.Swap(cryptors.Letter(idx)) - 'A')
}

func (p *Plugboard) Apply_G(idx int) int {
	return p.Apply_F(idx)
}

func (p *Plugboard) String() string {
	return strings.Join(p.Pairs(), " ")
}
