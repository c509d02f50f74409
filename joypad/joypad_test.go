package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadReflectsSelectedHalf(t *testing.T) {
	j := New()
	j.Press(A)

	j.Write(0x10) // select buttons (bit 5 low)
	assert.Equal(t, uint8(0xDE), j.Read(), "A pressed clears bit 0 of the buttons nibble")

	j.Write(0x20) // select d-pad (bit 4 low)
	assert.Equal(t, uint8(0xEF), j.Read(), "no d-pad buttons pressed, all bits high")
}

func TestPressRaisesEdgeTriggeredIRQOnlyOnce(t *testing.T) {
	j := New()
	j.Press(Start)
	assert.True(t, j.TakeIRQ())
	assert.False(t, j.TakeIRQ())

	j.Press(Start) // already pressed, no new edge
	assert.False(t, j.TakeIRQ())
}

func TestReleaseClearsButton(t *testing.T) {
	j := New()
	j.Press(Right)
	j.Write(0x20)
	assert.Equal(t, uint8(0xEE), j.Read())

	j.Release(Right)
	assert.Equal(t, uint8(0xEF), j.Read())
}

func TestNeitherLineSelectedReadsAllOnes(t *testing.T) {
	j := New()
	j.Press(A)
	j.Write(0x30)
	assert.Equal(t, uint8(0xFF), j.Read())
}
