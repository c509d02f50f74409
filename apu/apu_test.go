package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPowerOffClearsChannelsAndMasksReads(t *testing.T) {
	a := New()
	a.WriteRegister(regNR52, 0x80)
	a.WriteRegister(regNR10, 0x12)
	a.WriteRegister(regNR11, 0x34)

	a.WriteRegister(regNR52, 0x00)

	assert.Equal(t, uint8(0x80), a.ReadRegister(regNR10), "sweep register masked high with storage cleared")
	assert.Equal(t, uint8(0x3F), a.ReadRegister(regNR11))
	assert.Equal(t, uint8(0x70), a.ReadRegister(regNR52))
}

func TestWritesIgnoredWhilePoweredOff(t *testing.T) {
	a := New()
	a.WriteRegister(regNR11, 0x3F)
	assert.Equal(t, uint8(0xBF), a.ReadRegister(regNR11), "length bits read back as all-1s and the ignored write leaves duty at its power-on value 2")
}

func TestFrameSequencerAdvancesEvery8192Cycles(t *testing.T) {
	a := New()
	a.WriteRegister(regNR52, 0x80)

	a.Tick(8191)
	assert.Equal(t, uint8(0), a.frameSeqStep)

	a.Tick(1)
	assert.Equal(t, uint8(1), a.frameSeqStep)
}

func TestSquare1TriggerEnablesChannel(t *testing.T) {
	a := New()
	a.WriteRegister(regNR52, 0x80)
	a.WriteRegister(regNR12, 0xF0) // max volume, envelope down
	a.WriteRegister(regNR11, 0x80)
	a.WriteRegister(regNR13, 0x00)
	a.WriteRegister(regNR14, 0x87) // trigger, period hi bits 7

	assert.True(t, a.ch1.enabled)
	assert.True(t, a.ch1.dacEnabled)
}

func TestSamplesDrainInRequestedBatchSize(t *testing.T) {
	a := New()
	a.WriteRegister(regNR52, 0x80)
	a.WriteRegister(regNR51, 0xFF)
	a.WriteRegister(regNR50, 0x77)
	a.WriteRegister(regNR12, 0xF0)
	a.WriteRegister(regNR11, 0x80)
	a.WriteRegister(regNR14, 0x87)

	a.Tick(cpuFrequency / 100)
	samples := a.Samples(10)
	assert.LessOrEqual(t, len(samples), 10)
}
