package rejewski

import (
	"math/rand"

	"github.com/bgallie/enigma/cryptors"
)

// KeySource supplies three letter message keys.
type KeySource interface {
	MessageKey() string
}

// RandomSource draws uniformly random message keys.  It is not safe for
// concurrent use.
type RandomSource struct {
	rnd *rand.Rand
}

// NewRandomSource returns a RandomSource seeded with seed.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *RandomSource) MessageKey() string {
	var key [cryptors.KeyLength]byte
	for i := range key {
		key[i] = cryptors.Letter(s.rnd.Intn(cryptors.AlphabetSize))
	}
	return string(key[:])
}

// DiagonalSource returns AAA, BBB, ..., ZZZ and then starts over.  Every
// letter appears in every position within 26 keys, so the permutations of a
// single day key are complete after one round.
type DiagonalSource struct {
	next int
}

func (s *DiagonalSource) MessageKey() string {
	l := cryptors.Letter(s.next)
	s.next = cryptors.Mod(s.next + 1)
	return string([]byte{l, l, l})
}
