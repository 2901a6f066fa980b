// rotor
package rotor

import (
	"bytes"
	"fmt"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
)

// ErrRotorType is returned for a rotor type other than I, II, III or V.
var ErrRotorType = fmt.Errorf("%w: rotor type must be one of I, II, III or V", cryptors.ErrConfig)

// ErrWindow is returned for a window setting that is not a letter.
var ErrWindow = fmt.Errorf("%w: rotor window must be a letter A-Z", cryptors.ErrConfig)

// Spec is the fixed wiring of one rotor type.  The letter at position i of
// the forward wiring is the substitution for Alphabet[i]; the backward wiring
// is its inverse.
type Spec struct {
	Name     string
	Forward  string
	Backward string
	Notch    byte
	forward  *permutator.Permutator
	backward *permutator.Permutator
}

// Wehrmacht Enigma I rotors.  The next rotor to the left is carried when the
// rotor turns from its notch letter to the one after it.
var specs = map[string]*Spec{
	"I":   {Name: "I", Forward: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", Backward: "UWYGADFPVZBECKMTHXSLRINQOJ", Notch: 'Q'},
	"II":  {Name: "II", Forward: "AJDKSIRUXBLHWTMCQGZNPYFVOE", Backward: "AJPCZWRLFBDKOTYUQGENHXMIVS", Notch: 'E'},
	"III": {Name: "III", Forward: "BDFHJLCPRTXVZNYEIWGAKMUSQO", Backward: "TAGBPCSDQEUFVNZHYIXJWLRKOM", Notch: 'V'},
	"V":   {Name: "V", Forward: "VZBRGITYUPSDNHLXAWMJQOFECK", Backward: "QCYLXWENFTZOSMVJUDKGIARPHB", Notch: 'Z'},
}

func init() {
	for name, s := range specs {
		var err error
		if s.forward, err = permutator.FromString(s.Forward); err != nil {
			panic(fmt.Sprintf("rotor %s: %v", name, err))
		}
		if s.backward, err = permutator.FromString(s.Backward); err != nil {
			panic(fmt.Sprintf("rotor %s: %v", name, err))
		}
		inv, err := s.forward.Inverse()
		if err != nil || inv.String() != s.Backward {
			panic(fmt.Sprintf("rotor %s: backward wiring is not the inverse of the forward wiring", name))
		}
	}
}

// Types returns the names of the available rotor types in catalogue order.
func Types() []string {
	return []string{"I", "II", "III", "V"}
}

// Lookup returns the wiring of the named rotor type.
func Lookup(name string) (*Spec, error) {
	s, ok := specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: got %q", ErrRotorType, name)
	}
	return s, nil
}

// Rotor is one wheel of the machine.  Its offset is the alphabet position of
// the letter showing in the window.  next is the slower rotor carried by this
// one's notch and prev the faster rotor feeding this one; together they form
// the chain the signal and the stepping travel along.
type Rotor struct {
	spec   *Spec
	offset int
	next   *Rotor
	prev   *Rotor
}

// New creates a rotor of the named type showing window in its window.
func New(name string, window byte) (*Rotor, error) {
	spec, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	r := &Rotor{spec: spec}
	if err := r.ChangeSetting(window); err != nil {
		return nil, err
	}
	return r, nil
}

// Link makes next the rotor carried by r.
func (r *Rotor) Link(next *Rotor) {
	r.next = next
	if next != nil {
		next.prev = r
	}
}

func (r *Rotor) Name() string {
	return r.spec.Name
}

func (r *Rotor) Notch() byte {
	return r.spec.Notch
}

func (r *Rotor) Offset() int {
	return r.offset
}

// Window returns the letter visible to the operator.
func (r *Rotor) Window() byte {
	return cryptors.Letter(r.offset)
}

func (r *Rotor) Next() *Rotor {
	return r.next
}

func (r *Rotor) Prev() *Rotor {
	return r.prev
}

// AtNotch reports whether the notch letter is in the window, i.e. the next
// rotor is carried on the following keypress.
func (r *Rotor) AtNotch() bool {
	return r.Window() == r.spec.Notch
}

// ChangeSetting turns the rotor by hand so that letter shows in the window.
func (r *Rotor) ChangeSetting(letter byte) error {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	idx, err := cryptors.Index(letter)
	if err != nil {
		return fmt.Errorf("%w: got %q", ErrWindow, letter)
	}
	r.offset = idx
	return nil
}

func (r *Rotor) advance() {
	r.offset = cryptors.Mod(r.offset + 1)
}

// Step presses the key once for the chain of rotors starting at r.  All pawls
// drop together: the first always pushes r, and the pawl between a rotor and
// its next rotor pushes both of them when the rotor shows its notch.  A rotor
// moves at most once per keypress.  A middle rotor that has just been carried
// onto its own notch is therefore pushed again on the next keypress, along
// with the rotor after it.
func (r *Rotor) Step() {
	pushed := true
	for cur := r; cur != nil; cur = cur.next {
		engaged := cur.next != nil && cur.AtNotch()
		if pushed || engaged {
			cur.advance()
		}
		pushed = engaged
	}
}

// Apply_F passes idx through this rotor alone towards the reflector.  idx is
// relative to the rotor's unshifted frame.
func (r *Rotor) Apply_F(idx int) int {
	out := r.spec.forward.Apply_F(cryptors.Mod(idx + r.offset))
	return cryptors.Mod(out - r.offset)
}

// Apply_G passes idx through this rotor alone on the way back from the
// reflector.
func (r *Rotor) Apply_G(idx int) int {
	out := r.spec.backward.Apply_F(cryptors.Mod(idx + r.offset))
	return cryptors.Mod(out - r.offset)
}

// EncodeLetter passes idx through r and then along the chain: forward goes
// to each next rotor in turn, backward to each previous one.  It returns the
// index leaving the last rotor of the chain.
func (r *Rotor) EncodeLetter(idx int, forward bool) int {
	for cur := r; cur != nil; {
		if forward {
			idx = cur.Apply_F(idx)
			cur = cur.next
		} else {
			idx = cur.Apply_G(idx)
			cur = cur.prev
		}
	}
	return idx
}

func (r *Rotor) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("rotor.New(%q, '%c') // notch %c\n", r.spec.Name, r.Window(), r.spec.Notch))
	output.WriteString(fmt.Sprintf("\tforward:  %s\n", r.spec.Forward))
	output.WriteString(fmt.Sprintf("\tbackward: %s\n", r.spec.Backward))
	return output.String()
}
