package rejewski

import (
	"errors"
	"fmt"

	"github.com/bgallie/enigma/enigma"
)

// ErrBudget is returned when the message budget runs out before AD, BE and
// CF are complete.
var ErrBudget = errors.New("rejewski: message budget exhausted before the permutations were complete")

// MakeMessages produces n intercepted indicators: each message key from src
// enciphered twice under the machine's day key.  The rotors are turned back
// to the day key before every message.
func MakeMessages(m *enigma.Machine, n int, src KeySource) ([]string, error) {
	indicators := make([]string, 0, n)
	for i := 0; i < n; i++ {
		mk := src.MessageKey()
		m.Reset()
		ind, err := m.Encipher(mk + mk)
		if err != nil {
			return indicators, err
		}
		indicators = append(indicators, ind)
	}
	return indicators, nil
}

// collect enciphers message keys from src under the machine's day key until
// the permutations are complete or budget keys have been used.
func collect(m *enigma.Machine, src KeySource, budget int) (Permutations, error) {
	perms := NewPermutations()
	for i := 0; i < budget && !perms.Complete(); i++ {
		mk := src.MessageKey()
		m.Reset()
		ind, err := m.Encipher(mk + mk)
		if err != nil {
			return perms, err
		}
		if err = perms.Observe(ind); err != nil {
			return perms, err
		}
	}
	if !perms.Complete() {
		r := perms.Resolved()
		return perms, fmt.Errorf("%w: resolved %s=%d %s=%d %s=%d after %d keys",
			ErrBudget, Labels[0], r[0], Labels[1], r[1], Labels[2], r[2], budget)
	}
	return perms, nil
}

// IndexFor returns the chain index produced by the day key, rotor order and
// plug swaps, using at most budget message keys from src.
func IndexFor(dayKey string, order []string, swaps []string, src KeySource, budget int) (string, error) {
	m, err := enigma.New(dayKey, order, swaps)
	if err != nil {
		return "", err
	}
	perms, err := collect(m, src, budget)
	if err != nil {
		return "", err
	}
	return IndexOf(perms)
}
