package rejewski

import (
	"fmt"

	"github.com/bgallie/enigma/cryptors"
)

// ErrTooFewIndicators is returned by Recover when the intercepted indicators
// do not determine AD, BE and CF completely.
var ErrTooFewIndicators = fmt.Errorf("%w: too few indicators to complete the permutations", cryptors.ErrInput)

// Recover computes the chain index of the intercepted indicators and returns
// it with the table's candidates for it.  The candidate list may be empty or
// hold many settings; the plugboard is not recovered.
func Recover(t *Table, indicators []string) (string, []Setting, error) {
	perms, err := GeneratePermutationDicts(indicators)
	if err != nil {
		return "", nil, err
	}
	if !perms.Complete() {
		r := perms.Resolved()
		return "", nil, fmt.Errorf("%w: resolved %s=%d %s=%d %s=%d from %d indicators",
			ErrTooFewIndicators, Labels[0], r[0], Labels[1], r[1], Labels[2], r[2], len(indicators))
	}
	index, err := IndexOf(perms)
	if err != nil {
		return "", nil, err
	}
	return index, t.Lookup(index), nil
}
