package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeBus is a flat 64KB RAM backing for instruction-level tests; no
// region dispatch is needed since the CPU itself is under test.
type fakeBus struct {
	mem [0x10000]uint8
}

func (b *fakeBus) Read(addr uint16) uint8     { return b.mem[addr] }
func (b *fakeBus) Write(addr uint16, v uint8) { b.mem[addr] = v }

type fakeInterrupts struct {
	pendingIRQ uint8
	hasIRQ     bool
	cleared    []uint8
}

func (f *fakeInterrupts) Pending() (uint8, bool) { return f.pendingIRQ, f.hasIRQ }
func (f *fakeInterrupts) Vector(irq uint8) uint16 {
	switch irq {
	case 1:
		return 0x40
	case 2:
		return 0x48
	case 4:
		return 0x50
	}
	return 0x00
}
func (f *fakeInterrupts) Clear(irq uint8) { f.cleared = append(f.cleared, irq); f.hasIRQ = false }

func newTestCPU() (*CPU, *fakeBus) {
	bus := &fakeBus{}
	c := New(bus, &fakeInterrupts{})
	c.pc = 0xC000
	c.sp = 0xDFFE
	return c, bus
}

func TestBootDeterminism(t *testing.T) {
	bus := &fakeBus{}
	c := New(bus, &fakeInterrupts{})

	assert.Equal(t, uint16(0x0100), c.pc)
	assert.Equal(t, uint16(0), c.sp)
	assert.Equal(t, uint8(0), c.a)
	assert.Equal(t, uint8(0), c.f)
	assert.Equal(t, uint8(0), c.b)
	assert.Equal(t, uint8(0), c.c)
	assert.Equal(t, uint8(0), c.d)
	assert.Equal(t, uint8(0), c.e)
	assert.Equal(t, uint8(0), c.h)
	assert.Equal(t, uint8(0), c.l)
	assert.False(t, c.ime)
	assert.False(t, c.halted)
}

func TestFlagLowNibbleAlwaysZero(t *testing.T) {
	c, _ := newTestCPU()
	c.setF(0xFF)
	assert.Equal(t, uint8(0xF0), c.f, "low nibble of F must always read zero")
}

func TestIncDecZeroFlag(t *testing.T) {
	c, _ := newTestCPU()
	c.a = 0xFF
	c.incR(&c.a)
	assert.Equal(t, uint8(0x00), c.a)
	assert.True(t, c.isSet(flagZ))
	assert.True(t, c.isSet(flagH))
	assert.False(t, c.isSet(flagN))

	c.decR(&c.a)
	assert.Equal(t, uint8(0xFF), c.a)
	assert.True(t, c.isSet(flagN))
}

func TestPushPopRoundTrip(t *testing.T) {
	c, _ := newTestCPU()
	c.push16(0xBEEF)
	assert.Equal(t, uint16(0xBEEF), c.pop16())
}

func TestLoadBlockDecode(t *testing.T) {
	c, bus := newTestCPU()
	c.b = 0x42
	bus.mem[c.pc] = 0x41 // LD B, C decoded arithmetically
	c.c = 0x99
	cycles := c.execute(c.fetch8())
	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint8(0x99), c.b)
}

func TestALUBlockDecodeAddAtoA(t *testing.T) {
	c, _ := newTestCPU()
	c.a = 0x0F
	c.executeALUBlock(0x87) // ADD A, A
	assert.Equal(t, uint8(0x1E), c.a)
	assert.True(t, c.isSet(flagH))
}

func TestDAAAfterBCDAdd(t *testing.T) {
	c, _ := newTestCPU()
	c.a = 0x09
	c.addToA(0x08) // 0x11 raw, should correct to 0x17 in BCD
	c.daa()
	assert.Equal(t, uint8(0x17), c.a)
}

func TestJumpRelativeNegativeDisplacement(t *testing.T) {
	c, bus := newTestCPU()
	start := c.pc
	bus.mem[c.pc] = 0xFE // -2
	target := c.jumpRelative()
	assert.Equal(t, start+1-2, target, "a negative displacement must move pc backward")
}

func TestInterruptDispatchTakes24Cycles(t *testing.T) {
	c, bus := newTestCPU()
	c.ime = true
	irqSource := &fakeInterrupts{pendingIRQ: 1, hasIRQ: true}
	c.irq = irqSource

	pcBefore := c.pc
	cycles := c.Step()

	assert.Equal(t, 24, cycles)
	assert.Equal(t, uint16(0x40), c.pc)
	assert.False(t, c.ime, "servicing an interrupt must clear IME")
	assert.Equal(t, []uint8{1}, irqSource.cleared)

	assert.Equal(t, pcBefore, c.pop16(), "return address pushed must be the interrupted pc")
	_ = bus
}

func TestEIEnablesImmediately(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[c.pc] = 0xFB // EI
	c.execute(c.fetch8())
	assert.True(t, c.ime, "EI must take effect immediately, no one-instruction delay")
}
