package cpu

import "github.com/danhale/dmgcore/bit"

// Flag bit positions within F. The low nibble of F is always zero; only
// bits 4-7 are meaningful, per spec.md §3.
const (
	flagZ uint8 = 1 << 7
	flagN uint8 = 1 << 6
	flagH uint8 = 1 << 5
	flagC uint8 = 1 << 4
)

func (c *CPU) setFlag(mask uint8)   { c.f |= mask }
func (c *CPU) clearFlag(mask uint8) { c.f &^= mask }

func (c *CPU) setFlagIf(mask uint8, cond bool) {
	if cond {
		c.setFlag(mask)
	} else {
		c.clearFlag(mask)
	}
}

func (c *CPU) isSet(mask uint8) bool { return c.f&mask != 0 }

// setF assigns F directly, masking the low nibble to zero as hardware does.
func (c *CPU) setF(v uint8) { c.f = v & 0xF0 }

func (c *CPU) af() uint16 { return bit.Combine(c.a, c.f) }
func (c *CPU) bc() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) de() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) hl() uint16 { return bit.Combine(c.h, c.l) }

func (c *CPU) setAF(v uint16) {
	c.a = bit.High(v)
	c.setF(bit.Low(v))
}
func (c *CPU) setBC(v uint16) { c.b, c.c = bit.High(v), bit.Low(v) }
func (c *CPU) setDE(v uint16) { c.d, c.e = bit.High(v), bit.Low(v) }
func (c *CPU) setHL(v uint16) { c.h, c.l = bit.High(v), bit.Low(v) }

// reg8 returns a pointer to the 8-bit register selected by a standard
// z80-style 3-bit field (000=B .. 111=A, 110 is never used directly since
// it addresses (HL) and is handled by the caller).
func (c *CPU) reg8(index uint8) *uint8 {
	switch index {
	case 0:
		return &c.b
	case 1:
		return &c.c
	case 2:
		return &c.d
	case 3:
		return &c.e
	case 4:
		return &c.h
	case 5:
		return &c.l
	case 7:
		return &c.a
	}
	return nil
}
