package rotor

import (
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds left, middle and right rotors linked the way a machine links
// them: right carries middle, middle carries left.
func chain(t *testing.T, names [3]string, key string) (left, middle, right *Rotor) {
	t.Helper()
	var err error
	left, err = New(names[0], key[0])
	require.NoError(t, err)
	middle, err = New(names[1], key[1])
	require.NoError(t, err)
	right, err = New(names[2], key[2])
	require.NoError(t, err)
	right.Link(middle)
	middle.Link(left)
	return
}

func windows(rs ...*Rotor) string {
	b := make([]byte, len(rs))
	for i, r := range rs {
		b[i] = r.Window()
	}
	return string(b)
}

func TestNewRejectsUnknownRotorType(t *testing.T) {
	for _, name := range []string{"IV", "VI", "", "i"} {
		_, err := New(name, 'A')
		assert.ErrorIs(t, err, ErrRotorType, name)
		assert.ErrorIs(t, err, cryptors.ErrConfig, name)
	}
}

func TestNewRejectsBadWindow(t *testing.T) {
	_, err := New("I", '1')
	assert.ErrorIs(t, err, ErrWindow)
	assert.ErrorIs(t, err, cryptors.ErrConfig)
}

func TestTypesAreTheFourHistoricalRotors(t *testing.T) {
	assert.Equal(t, []string{"I", "II", "III", "V"}, Types())
	for _, name := range Types() {
		s, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name)
	}
}

func TestChangeSettingKeepsWindowAndOffsetTogether(t *testing.T) {
	r, err := New("II", 'a')
	require.NoError(t, err)
	assert.Equal(t, byte('A'), r.Window())

	require.NoError(t, r.ChangeSetting('k'))
	assert.Equal(t, byte('K'), r.Window())
	assert.Equal(t, 10, r.Offset())

	assert.Error(t, r.ChangeSetting('#'))
	assert.Equal(t, byte('K'), r.Window())
}

func TestSingleRotorStepsAndWraps(t *testing.T) {
	r, err := New("III", 'Y')
	require.NoError(t, err)
	r.Step()
	assert.Equal(t, byte('Z'), r.Window())
	r.Step()
	assert.Equal(t, byte('A'), r.Window())
}

func TestNotchCarriesNextRotor(t *testing.T) {
	left, middle, right := chain(t, [3]string{"I", "II", "III"}, "AAU")
	right.Step()
	assert.Equal(t, "AAV", windows(left, middle, right))
	right.Step()
	assert.Equal(t, "ABW", windows(left, middle, right))
	right.Step()
	assert.Equal(t, "ABX", windows(left, middle, right))
}

func TestMiddleRotorDoubleSteps(t *testing.T) {
	left, middle, right := chain(t, [3]string{"III", "II", "I"}, "KDO")
	want := []string{"KDP", "KDQ", "KER", "LFS", "LFT", "LFU"}
	for _, w := range want {
		right.Step()
		assert.Equal(t, w, windows(left, middle, right))
	}
}

func TestMiddleRotorStepsOnceWhenBothPawlsPush(t *testing.T) {
	// Middle at its notch and right at its notch on the same keypress.
	left, middle, right := chain(t, [3]string{"I", "II", "III"}, "AEV")
	right.Step()
	assert.Equal(t, "BFW", windows(left, middle, right))
}

func TestApplyForwardUsesWiring(t *testing.T) {
	r, err := New("I", 'A')
	require.NoError(t, err)
	assert.Equal(t, 4, r.Apply_F(0)) // A -> E
	assert.Equal(t, 0, r.Apply_G(4))

	// With B in the window the input A enters the wiring at B (K) and
	// leaves shifted back by one: J.
	require.NoError(t, r.ChangeSetting('B'))
	assert.Equal(t, 9, r.Apply_F(0))
}

func TestEncodeLetterBackwardUndoesForward(t *testing.T) {
	left, _, right := chain(t, [3]string{"V", "I", "II"}, "QEZ")
	for i := 0; i < cryptors.AlphabetSize; i++ {
		out := right.EncodeLetter(i, true)
		assert.Equal(t, i, left.EncodeLetter(out, false))
	}
}

func TestEncodeLetterRelaysThroughChain(t *testing.T) {
	left, middle, right := chain(t, [3]string{"I", "II", "III"}, "ABC")
	for i := 0; i < cryptors.AlphabetSize; i++ {
		manual := left.Apply_F(middle.Apply_F(right.Apply_F(i)))
		assert.Equal(t, manual, right.EncodeLetter(i, true))
		back := right.Apply_G(middle.Apply_G(left.Apply_G(i)))
		assert.Equal(t, back, left.EncodeLetter(i, false))
	}
	assert.Same(t, middle, right.Next())
	assert.Same(t, right, middle.Prev())
	assert.Nil(t, left.Next())
	assert.Nil(t, right.Prev())
}
