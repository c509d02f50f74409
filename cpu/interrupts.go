package cpu

// serviceInterrupt dispatches the highest-priority pending, enabled
// interrupt: pushes PC, jumps to the vector, clears IME and the source's
// IF bit, and takes 24 cycles. This is immediate relative to EI (no one-
// instruction delay) and there is no HALT-bug reproduction; both are
// deliberate departures from the teacher's model, per spec.md §4.1/§9.
func (c *CPU) serviceInterrupt() (cycles int, serviced bool) {
	irq, ok := c.irq.Pending()
	if !ok {
		return 0, false
	}

	if c.halted {
		c.halted = false
	}

	if !c.ime {
		return 0, false
	}

	c.ime = false
	c.irq.Clear(irq)
	c.push16(c.pc)
	c.pc = c.irq.Vector(irq)
	return 24, true
}
