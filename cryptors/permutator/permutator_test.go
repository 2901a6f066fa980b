package permutator

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomWiring(rnd *rand.Rand) string {
	b := []byte(cryptors.Alphabet)
	rnd.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
	return string(b)
}

func TestFromStringRejectsBadWirings(t *testing.T) {
	_, err := FromString("ABC")
	assert.ErrorIs(t, err, ErrNotPermutation)

	_, err = FromString("AACDEFGHIJKLMNOPQRSTUVWXYZ")
	assert.ErrorIs(t, err, ErrNotPermutation)

	_, err = FromString("abcdefghijklmnopqrstuvwxyz")
	assert.ErrorIs(t, err, cryptors.ErrInput)
}

func TestObserveKeepsFirstTarget(t *testing.T) {
	p := New()
	assert.True(t, p.Observe(0, 5))
	assert.False(t, p.Observe(0, 7))

	to, ok := p.Lookup(0)
	assert.True(t, ok)
	assert.Equal(t, 5, to)
	_, ok = p.Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, 1, p.Resolved())
	assert.False(t, p.Complete())
	assert.Equal(t, "F"+strings.Repeat(".", 25), p.String())
}

func TestIdentityIsTwentySixFixedPoints(t *testing.T) {
	p, err := FromString(cryptors.Alphabet)
	require.NoError(t, err)

	lengths, err := p.CycleLengths()
	require.NoError(t, err)
	assert.Len(t, lengths, 26)
	for _, l := range lengths {
		assert.Equal(t, 1, l)
	}
	assert.True(t, p.IsInvolution())
}

func TestShiftIsOneCycle(t *testing.T) {
	p, err := FromString("BCDEFGHIJKLMNOPQRSTUVWXYZA")
	require.NoError(t, err)

	cycles, err := p.Cycles()
	require.NoError(t, err)
	assert.Equal(t, []string{cryptors.Alphabet}, cycles)
	assert.False(t, p.IsInvolution())
}

func TestCycleLengthsSumToAlphabetSize(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for n := 0; n < 200; n++ {
		p, err := FromString(randomWiring(rnd))
		require.NoError(t, err)

		cycles, err := p.Cycles()
		require.NoError(t, err)
		sum := 0
		for _, c := range cycles {
			sum += len(c)
			// Retracing from any member of the cycle gives the same length.
			for k := 0; k < len(c); k++ {
				start, _ := cryptors.Index(c[k])
				steps, cur := 0, start
				for {
					cur = p.Apply_F(cur)
					steps++
					if cur == start {
						break
					}
				}
				assert.Equal(t, len(c), steps)
			}
		}
		assert.Equal(t, cryptors.AlphabetSize, sum)
	}
}

func TestInverseUndoesPermutation(t *testing.T) {
	p, err := FromString("EKMFLGDQVZNTOWYHXUSPAIBRCJ")
	require.NoError(t, err)

	inv, err := p.Inverse()
	require.NoError(t, err)
	assert.Equal(t, "UWYGADFPVZBECKMTHXSLRINQOJ", inv.String())
	for i := 0; i < cryptors.AlphabetSize; i++ {
		assert.Equal(t, i, inv.Apply_F(p.Apply_F(i)))
		assert.Equal(t, i, p.Apply_G(p.Apply_F(i)))
	}
}

func TestObserveIgnoresIndicesOutsideAlphabet(t *testing.T) {
	p := New()
	assert.False(t, p.Observe(26, 0))
	assert.False(t, p.Observe(-1, 0))
	assert.False(t, p.Observe(0, 26))
	assert.False(t, p.Observe(0, -1))
	assert.Zero(t, p.Resolved())
	_, ok := p.Lookup(26)
	assert.False(t, ok)

	assert.True(t, p.Observe(0, 25))
	to, ok := p.Lookup(0)
	assert.True(t, ok)
	assert.Equal(t, 25, to)
}

func TestCyclesReportIncompleteMapping(t *testing.T) {
	p := New()
	p.Observe(0, 1)
	p.Observe(1, 0)
	_, err := p.Cycles()
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = p.Inverse()
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestCyclesReportNonPermutation(t *testing.T) {
	p := New()
	for i := 0; i < cryptors.AlphabetSize; i++ {
		p.Observe(i, 0)
	}
	_, err := p.Cycles()
	assert.ErrorIs(t, err, ErrNotPermutation)

	_, err = p.Inverse()
	assert.ErrorIs(t, err, ErrNotPermutation)
}
