// Package joypad implements the button matrix register P1/0xFF00,
// including its select-line read masking and edge-triggered interrupt.
package joypad

// Button identifies one of the eight physical inputs.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Joypad holds the select-line register and the pressed/released state of
// all eight buttons. Grounded on the teacher's memory.MMU joypad logic
// (updateJoypadRegister/HandleKeyPress), not the dead memory.Joypad type
// that was never wired into the bus — see DESIGN.md.
type Joypad struct {
	selectLines uint8 // raw P1 bits 4-5 as last written
	dpad        uint8 // bit set = pressed: bit0 Right,1 Left,2 Up,3 Down
	buttons     uint8 // bit set = pressed: bit0 A,1 B,2 Select,3 Start
	irq         bool
}

// New constructs a joypad with no buttons held and both select lines high
// (i.e. neither half-matrix selected), matching P1's power-on value.
func New() *Joypad {
	return &Joypad{selectLines: 0x30}
}

// Press marks a button as held down. A press edge (previously released)
// raises the Joypad interrupt, per spec.md §4.6.
func (j *Joypad) Press(b Button) {
	before := j.isPressed(b)
	j.setBit(b, true)
	if !before {
		j.irq = true
	}
}

// Release marks a button as no longer held.
func (j *Joypad) Release(b Button) {
	j.setBit(b, false)
}

func (j *Joypad) isPressed(b Button) bool {
	if b <= Down {
		return j.dpad&(1<<uint8(b)) != 0
	}
	return j.buttons&(1<<(uint8(b)-4)) != 0
}

func (j *Joypad) setBit(b Button, pressed bool) {
	if b <= Down {
		if pressed {
			j.dpad |= 1 << uint8(b)
		} else {
			j.dpad &^= 1 << uint8(b)
		}
		return
	}
	idx := uint8(b) - 4
	if pressed {
		j.buttons |= 1 << idx
	} else {
		j.buttons &^= 1 << idx
	}
}

// Read returns the P1 register value: bits 6-7 always read 1, bits 4-5
// echo the last select-line write, and bits 0-3 report the selected
// half-matrix inverted (0 = pressed). If both select lines are active
// (both bits clear) the two halves are ANDed together, matching hardware;
// if neither is active (both bits set) all four low bits read 1.
func (j *Joypad) Read() uint8 {
	result := uint8(0x0F)

	if j.selectLines&0x10 == 0 { // bit4 clear -> directions selected
		result &= ^j.dpad & 0x0F
	}
	if j.selectLines&0x20 == 0 { // bit5 clear -> buttons selected
		result &= ^j.buttons & 0x0F
	}

	return 0xC0 | (j.selectLines & 0x30) | result
}

// Write updates only bits 4-5 of the select-line register; the rest of P1
// is read-only from the bus's perspective.
func (j *Joypad) Write(value uint8) {
	j.selectLines = value & 0x30
}

// TakeIRQ reports and clears the pending Joypad interrupt edge.
func (j *Joypad) TakeIRQ() bool {
	pending := j.irq
	j.irq = false
	return pending
}
