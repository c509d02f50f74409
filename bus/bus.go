// Package bus implements the DMG's memory-mapped address space: ROM and
// external RAM through the cartridge's MBC, VRAM/OAM through the PPU,
// audio registers through the APU, the timer and joypad register files,
// work RAM with its echo mirror, HRAM, and the IF/IE interrupt registers.
// Grounded on the teacher's jeebie memory.Memory dispatcher, generalized
// to call out to the new per-component packages instead of owning their
// state directly.
package bus

import (
	"github.com/danhale/dmgcore/addr"
	"github.com/danhale/dmgcore/apu"
	"github.com/danhale/dmgcore/cart"
	"github.com/danhale/dmgcore/joypad"
	"github.com/danhale/dmgcore/ppu"
	"github.com/danhale/dmgcore/timer"
)

// Bus owns WRAM/HRAM directly and dispatches every other address range
// to the component that owns it.
type Bus struct {
	Cart   *cart.Cartridge
	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Timer
	Joypad *joypad.Joypad

	wram [0x2000]byte
	hram [0x7F]byte

	ifReg uint8
	ieReg uint8

	dmaActive  bool
	dmaSource  uint16
	dmaOffset  int
}

// New wires a Bus around the already-constructed components. Any of PPU,
// APU, Timer or Joypad may be nil in tests that only exercise memory.
func New(c *cart.Cartridge, p *ppu.PPU, a *apu.APU, t *timer.Timer, j *joypad.Joypad) *Bus {
	return &Bus{Cart: c, PPU: p, APU: a, Timer: t, Joypad: j}
}

// Read implements cpu.Bus.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address <= 0x7FFF:
		return b.Cart.Mbc.Read(address)
	case address >= 0x8000 && address <= 0x9FFF:
		return b.PPU.ReadVRAM(address)
	case address >= 0xA000 && address <= 0xBFFF:
		return b.Cart.Mbc.Read(address)
	case address >= 0xC000 && address <= 0xDFFF:
		return b.wram[address-0xC000]
	case address >= 0xE000 && address <= 0xFDFF:
		return b.wram[address-0xE000]
	case address >= 0xFE00 && address <= 0xFE9F:
		return b.PPU.ReadOAM(address)
	case address >= 0xFEA0 && address <= 0xFEFF:
		return 0xFF
	case address == addr.P1:
		return b.Joypad.Read()
	case address == addr.DIV:
		return b.Timer.DIV()
	case address == addr.TIMA:
		return b.Timer.TIMA()
	case address == addr.TMA:
		return b.Timer.TMA()
	case address == addr.TAC:
		return b.Timer.TAC()
	case address == addr.IF:
		return b.ifReg | 0xE0
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return b.APU.ReadRegister(uint8(address - addr.AudioStart))
	case address == addr.LCDC:
		return b.PPU.LCDC()
	case address == addr.STAT:
		return b.PPU.STAT()
	case address == addr.SCY:
		return b.PPU.SCY()
	case address == addr.SCX:
		return b.PPU.SCX()
	case address == addr.LY:
		return b.PPU.LY()
	case address == addr.LYC:
		return b.PPU.LYC()
	case address == addr.DMA:
		return uint8(b.dmaSource >> 8)
	case address == addr.BGP:
		return b.PPU.BGP()
	case address == addr.OBP0:
		return b.PPU.OBP0()
	case address == addr.OBP1:
		return b.PPU.OBP1()
	case address == addr.WY:
		return b.PPU.WY()
	case address == addr.WX:
		return b.PPU.WX()
	case address >= 0xFF80 && address <= 0xFFFE:
		return b.hram[address-0xFF80]
	case address == addr.IE:
		return b.ieReg
	default:
		return 0xFF
	}
}

// Write implements cpu.Bus.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address <= 0x7FFF:
		b.Cart.Mbc.Write(address, value)
	case address >= 0x8000 && address <= 0x9FFF:
		b.PPU.WriteVRAM(address, value)
	case address >= 0xA000 && address <= 0xBFFF:
		b.Cart.Mbc.Write(address, value)
	case address >= 0xC000 && address <= 0xDFFF:
		b.wram[address-0xC000] = value
	case address >= 0xE000 && address <= 0xFDFF:
		b.wram[address-0xE000] = value
	case address >= 0xFE00 && address <= 0xFE9F:
		b.PPU.WriteOAM(address, value)
	case address >= 0xFEA0 && address <= 0xFEFF:
		// unusable region, writes are dropped.
	case address == addr.P1:
		b.Joypad.Write(value)
	case address == addr.DIV:
		b.Timer.ResetDIV()
	case address == addr.TIMA:
		b.Timer.SetTIMA(value)
	case address == addr.TMA:
		b.Timer.SetTMA(value)
	case address == addr.TAC:
		b.Timer.SetTAC(value)
	case address == addr.IF:
		b.ifReg = value & 0x1F
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		b.APU.WriteRegister(uint8(address-addr.AudioStart), value)
	case address == addr.LCDC:
		b.PPU.SetLCDC(value)
	case address == addr.STAT:
		b.PPU.SetSTAT(value)
	case address == addr.SCY:
		b.PPU.SetSCY(value)
	case address == addr.SCX:
		b.PPU.SetSCX(value)
	case address == addr.LY:
		// read-only.
	case address == addr.LYC:
		b.PPU.SetLYC(value)
	case address == addr.DMA:
		b.startDMA(value)
	case address == addr.BGP:
		b.PPU.SetBGP(value)
	case address == addr.OBP0:
		b.PPU.SetOBP0(value)
	case address == addr.OBP1:
		b.PPU.SetOBP1(value)
	case address == addr.WY:
		b.PPU.SetWY(value)
	case address == addr.WX:
		b.PPU.SetWX(value)
	case address >= 0xFF80 && address <= 0xFFFE:
		b.hram[address-0xFF80] = value
	case address == addr.IE:
		b.ieReg = value & 0x1F
	}
}

// startDMA begins an OAM DMA transfer from source*0x100; spec.md §4.2
// models it as completing instantaneously from the CPU's perspective
// (the 160-cycle bus-lockout window is not enforced), matching the
// teacher's simplification.
func (b *Bus) startDMA(source uint8) {
	b.dmaSource = uint16(source) << 8
	for i := 0; i < 0xA0; i++ {
		b.PPU.DMAWrite(i, b.Read(b.dmaSource+uint16(i)))
	}
}

// RequestInterrupt sets the given interrupt's IF bit; called by the
// frame driver once per step for each component's edge-triggered output.
func (b *Bus) RequestInterrupt(i addr.Interrupt) {
	b.ifReg |= uint8(i)
}

// Pending implements cpu.InterruptSource: the lowest-numbered set bit
// common to IF and IE wins, per the standard DMG priority order.
func (b *Bus) Pending() (irq uint8, ok bool) {
	active := b.ifReg & b.ieReg & 0x1F
	if active == 0 {
		return 0, false
	}
	for bitPos := uint8(0); bitPos < 5; bitPos++ {
		if active&(1<<bitPos) != 0 {
			return 1 << bitPos, true
		}
	}
	return 0, false
}

func (b *Bus) Vector(irq uint8) uint16 {
	return addr.Interrupt(irq).Vector()
}

func (b *Bus) Clear(irq uint8) {
	b.ifReg &^= irq
}
