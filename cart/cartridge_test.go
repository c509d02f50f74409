package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeROM(cartType uint8, romSizeCode uint8, ramSizeCode uint8, banks int) []byte {
	rom := make([]byte, banks*0x4000)
	rom[0x147] = cartType
	rom[0x148] = romSizeCode
	rom[0x149] = ramSizeCode
	for b := 0; b < banks; b++ {
		for i := 0; i < 0x4000; i++ {
			rom[b*0x4000+i] = uint8(b)
		}
	}
	return rom
}

func TestRAMSizeTable(t *testing.T) {
	want := []uint32{0, 0x800, 0x2000, 0x8000, 0x20000, 0x10000}
	for code, size := range want {
		assert.Equal(t, size, ramSizeBytes[code], "code %d", code)
	}
}

func TestMBC1BankSwitching(t *testing.T) {
	rom := makeROM(0x01, 0x05, 0x00, 64) // MBC1, 1MB ROM
	c, err := New(rom)
	require.NoError(t, err)

	c.Mbc.Write(0x2000, 0x05) // select bank 5
	assert.Equal(t, uint8(5), c.Mbc.Read(0x4000))

	c.Mbc.Write(0x2000, 0x00) // bank 0 requested normalizes to bank 1
	assert.Equal(t, uint8(1), c.Mbc.Read(0x4000))
}

func TestMBC1RAMEnableGate(t *testing.T) {
	rom := makeROM(0x03, 0x00, 0x02, 2)
	c, err := New(rom)
	require.NoError(t, err)

	c.Mbc.Write(0xA000, 0x42) // RAM disabled, write dropped
	assert.Equal(t, uint8(0xFF), c.Mbc.Read(0xA000))

	c.Mbc.Write(0x0000, 0x0A) // enable RAM
	c.Mbc.Write(0xA000, 0x42)
	assert.Equal(t, uint8(0x42), c.Mbc.Read(0xA000))
}

func TestMBC3RTCLatchAndTick(t *testing.T) {
	rom := makeROM(0x10, 0x00, 0x02, 4)
	c, err := New(rom)
	require.NoError(t, err)

	m3, ok := c.Mbc.(*mbc3)
	require.True(t, ok)

	m3.TickRTC()
	m3.TickRTC()

	c.Mbc.Write(0x0000, 0x0A) // enable RAM/RTC access
	c.Mbc.Write(0x6000, 0x00)
	c.Mbc.Write(0x6000, 0x01) // latch rising edge

	c.Mbc.Write(0x4000, 0x08) // select seconds register
	assert.Equal(t, uint8(2), c.Mbc.Read(0xA000))
}

func TestMBC2Has512HalfByteRAM(t *testing.T) {
	rom := makeROM(0x06, 0x00, 0x00, 4)
	c, err := New(rom)
	require.NoError(t, err)

	c.Mbc.Write(0x0000, 0x0A) // enable RAM (bit 8 of address clear)
	c.Mbc.Write(0xA000, 0xF3)
	assert.Equal(t, uint8(0xF3), c.Mbc.Read(0xA000), "upper nibble forced high on read")
}
