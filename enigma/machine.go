// Package enigma simulates the three rotor Wehrmacht Enigma I with
// reflector B and a plugboard of up to six cables.
//
// Rotor orders and keys are written left to right as the operator reads the
// windows.  The right rotor sits next to the entry plate: it receives the
// signal first and steps on every keypress.  A key press travels
//
//	keyboard -> plugboard -> right -> middle -> left -> reflector
//	         -> left -> middle -> right -> plugboard -> lamp
//
// and because the reflector is an involution and each rotor's backward wiring
// is the inverse of its forward wiring, enciphering and deciphering are the
// same operation.
package enigma

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/plugboard"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
)

var (
	// ErrConfig is wrapped by every configuration error.
	ErrConfig = cryptors.ErrConfig
	// ErrInput is wrapped by every error caused by message text.
	ErrInput = cryptors.ErrInput

	ErrKeyLength  = fmt.Errorf("%w: the key must be exactly %d letters", ErrConfig, cryptors.KeyLength)
	ErrRotorCount = fmt.Errorf("%w: exactly %d rotors must be given", ErrConfig, cryptors.NumberOfRotors)
	ErrMessage    = fmt.Errorf("%w: a message may only contain the letters a-z, A-Z and spaces", ErrInput)
)

// DefaultRotorOrder is the rotor order of a machine fresh from the box.
var DefaultRotorOrder = []string{"I", "II", "III"}

// DefaultKey is the key of a machine fresh from the box.
const DefaultKey = "AAA"

const (
	Left = iota
	Middle
	Right
)

// Machine is a configured Enigma.  Its rotor positions advance with every
// letter it enciphers; use SetRotorPosition (or Reset) to return to a key.
type Machine struct {
	key       string
	order     []string
	rotors    [cryptors.NumberOfRotors]*rotor.Rotor // Left, Middle, Right.
	reflector *reflector.Reflector
	plugboard *plugboard.Plugboard
}

// New creates a machine with the rotors in order (left to right) turned to
// key and the plugboard wired with swaps.
func New(key string, order []string, swaps []string) (*Machine, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	rotors, err := buildRotors(order, key)
	if err != nil {
		return nil, err
	}
	pb, err := plugboard.New(swaps)
	if err != nil {
		return nil, err
	}
	return &Machine{
		key:       key,
		order:     append([]string(nil), order...),
		rotors:    rotors,
		reflector: reflector.New(),
		plugboard: pb,
	}, nil
}

func normalizeKey(key string) (string, error) {
	if len(key) != cryptors.KeyLength {
		return "", fmt.Errorf("%w: got %q", ErrKeyLength, key)
	}
	key = strings.ToUpper(key)
	for i := 0; i < len(key); i++ {
		if !cryptors.IsLetter(key[i]) {
			return "", fmt.Errorf("%w: got %q", rotor.ErrWindow, key)
		}
	}
	return key, nil
}

// buildRotors creates the rotors for order turned to key and links them so
// that the right rotor carries the middle one and the middle the left.
func buildRotors(order []string, key string) ([cryptors.NumberOfRotors]*rotor.Rotor, error) {
	var rotors [cryptors.NumberOfRotors]*rotor.Rotor
	if len(order) != cryptors.NumberOfRotors {
		return rotors, fmt.Errorf("%w: got %d", ErrRotorCount, len(order))
	}
	for i, name := range order {
		r, err := rotor.New(name, key[i])
		if err != nil {
			return rotors, err
		}
		rotors[i] = r
	}
	rotors[Right].Link(rotors[Middle])
	rotors[Middle].Link(rotors[Left])
	return rotors, nil
}

// Key returns the key the machine was last set to.
func (m *Machine) Key() string {
	return m.key
}

// RotorOrder returns the rotor types from left to right.
func (m *Machine) RotorOrder() []string {
	return append([]string(nil), m.order...)
}

// Rotor returns the rotor at position pos (Left, Middle or Right).
func (m *Machine) Rotor(pos int) *rotor.Rotor {
	return m.rotors[pos]
}

func (m *Machine) Plugboard() *plugboard.Plugboard {
	return m.plugboard
}

// Windows returns the letters currently showing, left to right.
func (m *Machine) Windows() string {
	var w [cryptors.NumberOfRotors]byte
	for i, r := range m.rotors {
		w[i] = r.Window()
	}
	return string(w[:])
}

// SetRotorPosition turns the rotors by hand to key.  The rotor order and
// plugboard are left alone.
func (m *Machine) SetRotorPosition(key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	for i, r := range m.rotors {
		if err := r.ChangeSetting(key[i]); err != nil {
			return err
		}
	}
	m.key = key
	return nil
}

// Reset turns the rotors back to the machine's key.
func (m *Machine) Reset() {
	for i, r := range m.rotors {
		_ = r.ChangeSetting(m.key[i])
	}
}

// SetRotorOrder replaces the rotors with fresh ones of the given types turned
// to the machine's key.  Any stepping since the key was set is discarded.
func (m *Machine) SetRotorOrder(order []string) error {
	rotors, err := buildRotors(order, m.key)
	if err != nil {
		return err
	}
	m.rotors = rotors
	m.order = append([]string(nil), order...)
	return nil
}

// SetPlugs updates the plugboard; see plugboard.UpdateSwaps.
func (m *Machine) SetPlugs(swaps []string, replace bool) error {
	return m.plugboard.UpdateSwaps(swaps, replace)
}

// EncodeLetter presses the key for the upper case letter l and returns the
// letter that lights up.  Any other byte is rejected before the rotors move.
func (m *Machine) EncodeLetter(l byte) (byte, error) {
	idx, err := cryptors.Index(l)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMessage, l)
	}
	return cryptors.Letter(m.press(idx)), nil
}

func (m *Machine) press(idx int) int {
	idx = cryptors.Encrypt(m.plugboard, idx)
	m.rotors[Right].Step()
	idx = m.rotors[Right].EncodeLetter(idx, true)
	idx = cryptors.Encrypt(m.reflector, idx)
	idx = m.rotors[Left].EncodeLetter(idx, false)
	return cryptors.Decrypt(m.plugboard, idx)
}

// Encipher enciphers message, which may hold only ASCII letters and spaces.
// Case is ignored and spaces are dropped; the result is upper case.  An
// invalid message is rejected before any rotor moves.
func (m *Machine) Encipher(message string) (string, error) {
	var letters bytes.Buffer
	for i := 0; i < len(message); i++ {
		c := message[i]
		switch {
		case c == ' ':
		case c >= 'a' && c <= 'z':
			letters.WriteByte(c - ('a' - 'A'))
		case cryptors.IsLetter(c):
			letters.WriteByte(c)
		default:
			return "", fmt.Errorf("%w: %q at offset %d", ErrMessage, c, i)
		}
	}

	cipher := letters.Bytes()
	for i, l := range cipher {
		cipher[i] = cryptors.Letter(m.press(int(l - 'A')))
	}
	return string(cipher), nil
}

// Decipher is Encipher: the machine is its own inverse.
func (m *Machine) Decipher(message string) (string, error) {
	return m.Encipher(message)
}

func (m *Machine) String() string {
	return fmt.Sprintf("Keyboard <-> Plugboard [%s] <-> Rotor %s <-> Rotor %s <-> Rotor %s <-> Reflector B, key %s, windows %s",
		m.plugboard, m.order[Right], m.order[Middle], m.order[Left], m.key, m.Windows())
}
