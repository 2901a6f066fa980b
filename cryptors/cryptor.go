// cyptor
package cryptors

import (
	"errors"
	"fmt"
)

const (
	Alphabet       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	AlphabetSize   = len(Alphabet)
	NumberOfRotors = 3
	KeyLength      = NumberOfRotors
	MaximumSwaps   = 6
)

var (
	// ErrConfig is wrapped by every error caused by an invalid machine
	// configuration: rotor types, key lengths and plugboard swaps.
	ErrConfig = errors.New("enigma: configuration error")
	// ErrInput is wrapped by every error caused by text handed to the machine.
	ErrInput = errors.New("enigma: input error")
)

// Crypter is a single substitution stage of the machine.  Apply_F is used on
// the way into the reflector and Apply_G on the way back out.  Both work on
// alphabet indices (0 - 25).
type Crypter interface {
	Apply_F(int) int
	Apply_G(int) int
}

func Encrypt(ecm Crypter, idx int) int {
	return ecm.Apply_F(idx)
}

func Decrypt(ecm Crypter, idx int) int {
	return ecm.Apply_G(idx)
}

// Mod returns i modulo the alphabet size, always in the range 0 - 25.
func Mod(i int) int {
	i %= AlphabetSize
	if i < 0 {
		i += AlphabetSize
	}
	return i
}

// Index returns the alphabet position of the upper case letter l.
func Index(l byte) (int, error) {
	if l < 'A' || l > 'Z' {
		return 0, fmt.Errorf("%w: %q is not a letter A-Z", ErrInput, l)
	}
	return int(l - 'A'), nil
}

// Letter returns the letter at alphabet position idx.
func Letter(idx int) byte {
	return Alphabet[Mod(idx)]
}

// IsLetter reports whether l is an upper case letter A-Z.
func IsLetter(l byte) bool {
	return l >= 'A' && l <= 'Z'
}
