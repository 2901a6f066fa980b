// Package rejewski recovers Enigma day keys with Marian Rejewski's
// characteristic (chain) method.
//
// Operators enciphered each three letter message key twice under the day key.
// Letters one and four of every intercepted six letter indicator are
// encipherments of the same plain letter, so across enough indicators they
// define a permutation AD of the alphabet; letters two and five give BE and
// letters three and six give CF.  The lengths of the cycles of these three
// permutations depend only on the rotor order and day key, not on the
// plugboard, and serve as an index into a table built by running every
// setting through the machine.
package rejewski

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
)

// IndicatorLength is the length of a doubly enciphered message key.
const IndicatorLength = 2 * cryptors.KeyLength

// ErrIndicator is returned for an intercepted indicator that is not six
// letters A-Z.
var ErrIndicator = fmt.Errorf("%w: an indicator must be %d letters A-Z", cryptors.ErrInput, IndicatorLength)

// Labels name the three letter-pair permutations in index order.
var Labels = [cryptors.KeyLength]string{"AD", "BE", "CF"}

// Permutations holds the AD, BE and CF permutations.
type Permutations [cryptors.KeyLength]*permutator.Permutator

// NewPermutations returns three empty permutations.
func NewPermutations() Permutations {
	var p Permutations
	for i := range p {
		p[i] = permutator.New()
	}
	return p
}

// Observe adds one indicator.  A source letter that is already resolved keeps
// its first target.
func (p Permutations) Observe(indicator string) error {
	if len(indicator) != IndicatorLength {
		return fmt.Errorf("%w: got %q", ErrIndicator, indicator)
	}
	for i := 0; i < IndicatorLength; i++ {
		if !cryptors.IsLetter(indicator[i]) {
			return fmt.Errorf("%w: got %q", ErrIndicator, indicator)
		}
	}
	for i, perm := range p {
		perm.Observe(int(indicator[i]-'A'), int(indicator[i+cryptors.KeyLength]-'A'))
	}
	return nil
}

// Complete reports whether all three permutations are fully resolved.
func (p Permutations) Complete() bool {
	for _, perm := range p {
		if !perm.Complete() {
			return false
		}
	}
	return true
}

// Resolved returns the number of resolved source letters of each permutation.
func (p Permutations) Resolved() [cryptors.KeyLength]int {
	var n [cryptors.KeyLength]int
	for i, perm := range p {
		n[i] = perm.Resolved()
	}
	return n
}

// GeneratePermutationDicts builds AD, BE and CF from intercepted indicators.
// Once all three are complete the remaining indicators are not examined.
func GeneratePermutationDicts(indicators []string) (Permutations, error) {
	perms := NewPermutations()
	for _, ind := range indicators {
		if perms.Complete() {
			break
		}
		if err := perms.Observe(ind); err != nil {
			return perms, err
		}
	}
	return perms, nil
}

// MakeChains decomposes each permutation into its disjoint cycles.
func MakeChains(perms Permutations) ([cryptors.KeyLength][]string, error) {
	var chains [cryptors.KeyLength][]string
	for i, perm := range perms {
		cycles, err := perm.Cycles()
		if err != nil {
			return chains, fmt.Errorf("%s: %w", Labels[i], err)
		}
		chains[i] = cycles
	}
	return chains, nil
}

// ChainIndex returns the canonical index of three cycle lists: each group's
// cycle lengths in ascending order, written as decimal numbers without
// separators, e.g. "AD:1111111199 BE:1313 CF:331010".  Every group sums to
// 26, which keeps the unseparated form unambiguous.
func ChainIndex(chains [cryptors.KeyLength][]string) string {
	var output bytes.Buffer
	for i, group := range chains {
		if i > 0 {
			output.WriteByte(' ')
		}
		output.WriteString(Labels[i])
		output.WriteByte(':')
		lengths := make([]int, len(group))
		for j, c := range group {
			lengths[j] = len(c)
		}
		sort.Ints(lengths)
		for _, l := range lengths {
			output.WriteString(strconv.Itoa(l))
		}
	}
	return output.String()
}

// IndexOf returns the chain index of three complete permutations.
func IndexOf(perms Permutations) (string, error) {
	chains, err := MakeChains(perms)
	if err != nil {
		return "", err
	}
	return ChainIndex(chains), nil
}
