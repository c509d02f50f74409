package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func enableLCD(p *PPU) {
	p.SetLCDC(0x80 | 1<<lcdcBGEnable)
}

func TestModeProgressesOAMToTransferToHBlank(t *testing.T) {
	p := New()
	enableLCD(p)
	assert.Equal(t, ModeOAM, p.Mode())

	p.Tick(oamDots)
	assert.Equal(t, ModeTransfer, p.Mode())

	p.Tick(transferDots)
	assert.Equal(t, ModeHBlank, p.Mode())
}

func TestSTATReadAlwaysHasBit7Set(t *testing.T) {
	p := New()
	assert.NotZero(t, p.STAT()&0x80)
}

func TestSTATLowBitsMirrorMode(t *testing.T) {
	p := New()
	enableLCD(p)
	assert.Equal(t, uint8(ModeOAM), p.STAT()&0x03)
}

func TestVBlankIRQFiresAtLine144(t *testing.T) {
	p := New()
	enableLCD(p)

	total := 0
	for i := 0; i < 144 && p.Mode() != ModeVBlank; i++ {
		p.Tick(oamDots)
		p.Tick(transferDots)
		p.Tick(hblankDots)
		total += oamDots + transferDots + hblankDots
	}

	assert.Equal(t, ModeVBlank, p.Mode())
	assert.True(t, p.TakeVBlankIRQ())
}

func TestLYResetsOnLCDDisable(t *testing.T) {
	p := New()
	enableLCD(p)
	p.Tick(oamDots + transferDots + hblankDots)
	assert.NotZero(t, p.LY())

	p.SetLCDC(0x00)
	p.Tick(4)
	assert.Equal(t, uint8(0), p.LY())
}

func TestVRAMReadReturns0xFFDuringTransfer(t *testing.T) {
	p := New()
	enableLCD(p)
	p.WriteVRAM(0x8000, 0x42)
	p.Tick(oamDots)
	assert.Equal(t, ModeTransfer, p.Mode())
	assert.Equal(t, uint8(0xFF), p.ReadVRAM(0x8000))
}
