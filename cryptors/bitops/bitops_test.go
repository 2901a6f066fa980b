package bitops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndClearBits(t *testing.T) {
	var s Set
	s = s.SetBit(0).SetBit(25).SetBit(25)
	assert.True(t, s.GetBit(0))
	assert.True(t, s.GetBit(25))
	assert.False(t, s.GetBit(1))
	assert.Equal(t, 2, s.Len())

	s = s.ClrBit(0)
	assert.False(t, s.GetBit(0))
	assert.Equal(t, 1, s.Len())
}

func TestFirstFreePosition(t *testing.T) {
	var s Set
	assert.Equal(t, 0, s.First(26))
	s = s.SetBit(0).SetBit(1).SetBit(3)
	assert.Equal(t, 2, s.First(26))
	assert.Equal(t, 26, Full(26).First(26))
	assert.Equal(t, 26, Full(26).Len())
}
