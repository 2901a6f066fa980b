// reflector
package reflector

import (
	"fmt"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
)

// WiringB is the wide reflector B (Umkehrwalze B) of the Wehrmacht Enigma.
const WiringB = "YRUHQSLDPXNGOKMIEBFZCWVJAT"

// Reflector turns the signal around after the last rotor.  Its wiring is
// fixed and involutive, so Apply_F and Apply_G are the same substitution.
type Reflector struct {
	wiring *permutator.Permutator
}

var reflectorB = mustNew(WiringB)

func mustNew(wiring string) *Reflector {
	p, err := permutator.FromString(wiring)
	if err != nil {
		panic(fmt.Sprintf("reflector: %v", err))
	}
	if !p.IsInvolution() {
		panic(fmt.Sprintf("reflector: wiring %s is not an involution", wiring))
	}
	return &Reflector{wiring: p}
}

// New returns reflector B.  The reflector holds no state and is shared.
func New() *Reflector {
	return reflectorB
}

// Reflect returns the letter wired to the upper case letter letter.
func (r *Reflector) Reflect(letter byte) (byte, error) {
	idx, err := cryptors.Index(letter)
	if err != nil {
		return 0, err
	}
	return cryptors.Letter(r.wiring.Apply_F(idx)), nil
}

func (r *Reflector) Apply_F(idx int) int {
	return r.wiring.Apply_F(idx)
}

func (r *Reflector) Apply_G(idx int) int {
	return r.wiring.Apply_F(idx)
}

func (r *Reflector) String() string {
	return r.wiring.String()
}
