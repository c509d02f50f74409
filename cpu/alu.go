package cpu

// 8/16-bit ALU and rotate/shift primitives, grounded on the teacher's
// jeebie/cpu/instructions.go bodies. A few flag bugs present there are
// fixed here rather than carried forward: sub/sbc's half-carry check
// used a signed-int subtraction that could mis-flag certain operand
// pairs, and DAA was never implemented at all.

func (c *CPU) incR(r *uint8) {
	*r++
	c.setFlagIf(flagZ, *r == 0)
	c.setFlagIf(flagH, *r&0x0F == 0x00)
	c.clearFlag(flagN)
}

func (c *CPU) decR(r *uint8) {
	c.setFlagIf(flagH, *r&0x0F == 0x00)
	*r--
	c.setFlagIf(flagZ, *r == 0)
	c.setFlag(flagN)
}

func (c *CPU) addToA(value uint8) {
	a := c.a
	result := a + value
	c.setFlagIf(flagC, uint16(a)+uint16(value) > 0xFF)
	c.setFlagIf(flagH, (a&0xF)+(value&0xF) > 0xF)
	c.a = result
	c.setFlagIf(flagZ, c.a == 0)
	c.clearFlag(flagN)
}

func (c *CPU) adcToA(value uint8) {
	a := c.a
	carry := c.carryBit()
	result := uint16(a) + uint16(value) + uint16(carry)
	c.setFlagIf(flagC, result > 0xFF)
	c.setFlagIf(flagH, (a&0xF)+(value&0xF)+carry > 0xF)
	c.a = uint8(result)
	c.setFlagIf(flagZ, c.a == 0)
	c.clearFlag(flagN)
}

func (c *CPU) sub(value uint8) {
	a := c.a
	c.setFlagIf(flagC, a < value)
	c.setFlagIf(flagH, a&0xF < value&0xF)
	c.a = a - value
	c.setFlagIf(flagZ, c.a == 0)
	c.setFlag(flagN)
}

func (c *CPU) sbc(value uint8) {
	a := c.a
	carry := c.carryBit()
	result := int(a) - int(value) - int(carry)
	c.setFlagIf(flagC, result < 0)
	c.setFlagIf(flagH, int(a&0xF)-int(value&0xF)-int(carry) < 0)
	c.a = uint8(result)
	c.setFlagIf(flagZ, c.a == 0)
	c.setFlag(flagN)
}

func (c *CPU) and(value uint8) {
	c.a &= value
	c.setFlagIf(flagZ, c.a == 0)
	c.clearFlag(flagN)
	c.setFlag(flagH)
	c.clearFlag(flagC)
}

func (c *CPU) or(value uint8) {
	c.a |= value
	c.setFlagIf(flagZ, c.a == 0)
	c.clearFlag(flagN)
	c.clearFlag(flagH)
	c.clearFlag(flagC)
}

func (c *CPU) xor(value uint8) {
	c.a ^= value
	c.setFlagIf(flagZ, c.a == 0)
	c.clearFlag(flagN)
	c.clearFlag(flagH)
	c.clearFlag(flagC)
}

func (c *CPU) cp(value uint8) {
	a := c.a
	c.setFlagIf(flagZ, a == value)
	c.setFlag(flagN)
	c.setFlagIf(flagH, a&0xF < value&0xF)
	c.setFlagIf(flagC, a < value)
}

func (c *CPU) addToHL(value uint16) {
	hl := c.hl()
	result := uint32(hl) + uint32(value)
	c.setFlagIf(flagH, (hl&0xFFF)+(value&0xFFF) > 0xFFF)
	c.setFlagIf(flagC, result > 0xFFFF)
	c.clearFlag(flagN)
	c.setHL(uint16(result))
}

// addSPDisplaced implements both ADD SP,e8 and LD HL,SP+e8: an 8-bit signed
// displacement added to SP, with Z and N always cleared and H/C computed
// on the low byte only, per the documented (if quirky) hardware behavior.
func (c *CPU) addSPDisplaced(d int8) uint16 {
	sp := c.sp
	result := uint16(int32(sp) + int32(d))
	c.clearFlag(flagZ)
	c.clearFlag(flagN)
	c.setFlagIf(flagH, (sp&0xF)+(uint16(uint8(d))&0xF) > 0xF)
	c.setFlagIf(flagC, (sp&0xFF)+uint16(uint8(d)) > 0xFF)
	return result
}

func (c *CPU) carryBit() uint8 {
	if c.isSet(flagC) {
		return 1
	}
	return 0
}

func (c *CPU) rlc(r *uint8) {
	v := *r
	carry := v >> 7
	v = (v << 1) | carry
	*r = v
	c.clearFlag(flagZ | flagN | flagH)
	c.setFlagIf(flagC, carry != 0)
}

func (c *CPU) rl(r *uint8) {
	v := *r
	carryIn := c.carryBit()
	carryOut := v >> 7
	v = (v << 1) | carryIn
	*r = v
	c.clearFlag(flagZ | flagN | flagH)
	c.setFlagIf(flagC, carryOut != 0)
}

func (c *CPU) rrc(r *uint8) {
	v := *r
	carry := v & 1
	v = (v >> 1) | (carry << 7)
	*r = v
	c.clearFlag(flagZ | flagN | flagH)
	c.setFlagIf(flagC, carry != 0)
}

func (c *CPU) rr(r *uint8) {
	v := *r
	carryIn := c.carryBit()
	carryOut := v & 1
	v = (v >> 1) | (carryIn << 7)
	*r = v
	c.clearFlag(flagZ | flagN | flagH)
	c.setFlagIf(flagC, carryOut != 0)
}

// rlcZ/rlZ/etc are the CB-block variants: identical rotates, but they
// set Z according to the result, since CB RLC/RL/RRC/RR operate on any
// register (not just A) and do report Z.
func (c *CPU) rlcZ(r *uint8) { c.rlc(r); c.setFlagIf(flagZ, *r == 0) }
func (c *CPU) rlZ(r *uint8)  { c.rl(r); c.setFlagIf(flagZ, *r == 0) }
func (c *CPU) rrcZ(r *uint8) { c.rrc(r); c.setFlagIf(flagZ, *r == 0) }
func (c *CPU) rrZ(r *uint8)  { c.rr(r); c.setFlagIf(flagZ, *r == 0) }

func (c *CPU) sla(r *uint8) {
	v := *r
	carry := v >> 7
	v <<= 1
	*r = v
	c.clearFlag(flagN | flagH)
	c.setFlagIf(flagC, carry != 0)
	c.setFlagIf(flagZ, v == 0)
}

func (c *CPU) sra(r *uint8) {
	v := *r
	carry := v & 1
	v = (v >> 1) | (v & 0x80)
	*r = v
	c.clearFlag(flagN | flagH)
	c.setFlagIf(flagC, carry != 0)
	c.setFlagIf(flagZ, v == 0)
}

func (c *CPU) srl(r *uint8) {
	v := *r
	carry := v & 1
	v >>= 1
	*r = v
	c.clearFlag(flagN | flagH)
	c.setFlagIf(flagC, carry != 0)
	c.setFlagIf(flagZ, v == 0)
}

func (c *CPU) swap(r *uint8) {
	v := *r
	v = (v << 4) | (v >> 4)
	*r = v
	c.clearFlag(flagN | flagH | flagC)
	c.setFlagIf(flagZ, v == 0)
}

func (c *CPU) bitTest(n uint8, v uint8) {
	c.setFlagIf(flagZ, v&(1<<n) == 0)
	c.clearFlag(flagN)
	c.setFlag(flagH)
}

func (c *CPU) res(n uint8, r *uint8) { *r &^= 1 << n }
func (c *CPU) set(n uint8, r *uint8) { *r |= 1 << n }

// daa implements the BCD correction the teacher's opcode0x27 left empty.
func (c *CPU) daa() {
	a := c.a
	var adjust uint8
	carry := false

	if c.isSet(flagN) {
		if c.isSet(flagH) {
			adjust += 0x06
		}
		if c.isSet(flagC) {
			adjust += 0x60
			carry = true
		}
		a -= adjust
	} else {
		if c.isSet(flagH) || a&0x0F > 0x09 {
			adjust += 0x06
		}
		if c.isSet(flagC) || a > 0x99 {
			adjust += 0x60
			carry = true
		}
		a += adjust
	}

	c.a = a
	c.setFlagIf(flagZ, a == 0)
	c.clearFlag(flagH)
	c.setFlagIf(flagC, carry)
}
