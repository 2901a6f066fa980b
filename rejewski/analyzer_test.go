package rejewski

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomWiring(rnd *rand.Rand) string {
	b := []byte(cryptors.Alphabet)
	rnd.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
	return string(b)
}

// relabel returns sigma * p * sigma^-1 written as a wiring.
func relabel(wiring, sigma string) string {
	out := make([]byte, cryptors.AlphabetSize)
	for i := 0; i < cryptors.AlphabetSize; i++ {
		out[sigma[i]-'A'] = sigma[wiring[i]-'A']
	}
	return string(out)
}

func triple(t *testing.T, wirings ...string) Permutations {
	t.Helper()
	var p Permutations
	for i, w := range wirings {
		perm, err := permutator.FromString(w)
		require.NoError(t, err)
		p[i] = perm
	}
	return p
}

func TestChainIndexOfIdentity(t *testing.T) {
	perms := triple(t, cryptors.Alphabet, cryptors.Alphabet, cryptors.Alphabet)
	index, err := IndexOf(perms)
	require.NoError(t, err)
	ones := strings.Repeat("1", 26)
	assert.Equal(t, "AD:"+ones+" BE:"+ones+" CF:"+ones, index)
}

func TestChainIndexFormat(t *testing.T) {
	chains := [3][]string{
		{"ABCDEFGHIJKLM", "NOPQRSTUVWXYZ"},
		{"A", "BC", "DEFGHIJKLMNOPQRSTUVWXYZ"},
		{"ABCDEFGHIJ", "K", "LMNOPQRSTUVWXYZ"},
	}
	assert.Equal(t, "AD:1313 BE:1223 CF:11015", ChainIndex(chains))
}

func TestChainIndexInvariantUnderRelabeling(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		ad, be, cf := randomWiring(rnd), randomWiring(rnd), randomWiring(rnd)
		sigma := randomWiring(rnd)

		want, err := IndexOf(triple(t, ad, be, cf))
		require.NoError(t, err)
		got, err := IndexOf(triple(t, relabel(ad, sigma), relabel(be, sigma), relabel(cf, sigma)))
		require.NoError(t, err)
		assert.Equal(t, want, got)

		// Each group may be relabeled on its own.
		got, err = IndexOf(triple(t, relabel(ad, randomWiring(rnd)), be, relabel(cf, randomWiring(rnd))))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestChainIndexDistinguishesCycleTypes(t *testing.T) {
	shift := cryptors.Alphabet[1:] + cryptors.Alphabet[:1]
	swapAB := "BA" + cryptors.Alphabet[2:]

	identity, err := IndexOf(triple(t, cryptors.Alphabet, cryptors.Alphabet, cryptors.Alphabet))
	require.NoError(t, err)
	oneCycle, err := IndexOf(triple(t, shift, cryptors.Alphabet, cryptors.Alphabet))
	require.NoError(t, err)
	transposed, err := IndexOf(triple(t, cryptors.Alphabet, cryptors.Alphabet, swapAB))
	require.NoError(t, err)

	assert.NotEqual(t, identity, oneCycle)
	assert.NotEqual(t, identity, transposed)
	assert.NotEqual(t, oneCycle, transposed)
	assert.Contains(t, oneCycle, "AD:26 ")
	assert.True(t, strings.HasSuffix(transposed, "CF:"+strings.Repeat("1", 24)+"2"))
}

func TestObserveValidatesIndicators(t *testing.T) {
	perms := NewPermutations()
	for _, bad := range []string{"", "ABCDE", "ABCDEFG", "abcdef", "ABC DE", "ABC1EF"} {
		assert.ErrorIs(t, perms.Observe(bad), ErrIndicator, bad)
		assert.ErrorIs(t, perms.Observe(bad), cryptors.ErrInput, bad)
	}
	assert.Equal(t, [3]int{0, 0, 0}, perms.Resolved())
}

func TestObserveKeepsFirstPairing(t *testing.T) {
	perms := NewPermutations()
	require.NoError(t, perms.Observe("ABCDEF"))
	require.NoError(t, perms.Observe("AXYZZZ"))

	to, ok := perms[0].Lookup(0)
	require.True(t, ok)
	assert.Equal(t, byte('D'), cryptors.Letter(to))
	to, ok = perms[1].Lookup(int('X' - 'A'))
	require.True(t, ok)
	assert.Equal(t, byte('Z'), cryptors.Letter(to))
	assert.Equal(t, [3]int{1, 2, 2}, perms.Resolved())
}

func TestGeneratePermutationDicts(t *testing.T) {
	_, err := GeneratePermutationDicts([]string{"ABCDEF", "BAD"})
	assert.ErrorIs(t, err, ErrIndicator)

	// Indicators after completion are ignored, even malformed ones.
	var indicators []string
	for i := 0; i < cryptors.AlphabetSize; i++ {
		l := string(cryptors.Letter(i))
		indicators = append(indicators, strings.Repeat(l, 6))
	}
	perms, err := GeneratePermutationDicts(append(indicators, "junk"))
	require.NoError(t, err)
	assert.True(t, perms.Complete())
	chains, err := MakeChains(perms)
	require.NoError(t, err)
	for _, group := range chains {
		assert.Len(t, group, 26)
	}
}

func TestMakeChainsRejectsIncompleteData(t *testing.T) {
	perms, err := GeneratePermutationDicts([]string{"ABCDEF"})
	require.NoError(t, err)
	_, err = MakeChains(perms)
	assert.ErrorIs(t, err, permutator.ErrIncomplete)
	assert.Contains(t, err.Error(), "AD")
}
