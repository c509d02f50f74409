package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDIVIncrementsFromUpperByteOfCounter(t *testing.T) {
	tm := New()
	tm.Tick(256)
	assert.Equal(t, uint8(1), tm.DIV())
}

func TestResetDIVZeroesCounter(t *testing.T) {
	tm := New()
	tm.Tick(1000)
	tm.ResetDIV()
	assert.Equal(t, uint8(0), tm.DIV())
}

func TestTIMAOverflowReloadsFromTMAAndRaisesIRQ(t *testing.T) {
	tm := New()
	tm.SetTAC(0x05) // enabled, rate select 01 -> tap bit 3 (every 16 cycles)
	tm.SetTMA(0x10)
	tm.SetTIMA(0xFF)

	tm.Tick(16)

	assert.Equal(t, uint8(0x10), tm.TIMA())
	assert.True(t, tm.TakeIRQ())
	assert.False(t, tm.TakeIRQ(), "TakeIRQ must clear the latch")
}

func TestTimerDisabledNeverIncrementsTIMA(t *testing.T) {
	tm := New()
	tm.SetTAC(0x00) // disabled
	tm.SetTIMA(0x00)
	tm.Tick(10000)
	assert.Equal(t, uint8(0x00), tm.TIMA())
}

func TestTACUnusedBitsReadAsOnes(t *testing.T) {
	tm := New()
	tm.SetTAC(0x05)
	assert.Equal(t, uint8(0xFD), tm.TAC())
}
