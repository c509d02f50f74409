// Package host defines the narrow contracts a presentation layer must
// satisfy to drive the emulator core: a display sink for completed
// frames, an audio sink for rendered PCM, and the key events the core
// maps onto the joypad matrix. Grounded in the collaborator-contract
// style of the teacher's jeebie.Emulator (HandleKeyPress) and render
// package (TerminalRenderer), generalized so a host isn't tied to tcell.
package host

import "github.com/danhale/dmgcore/joypad"

// Display receives one completed 160x144 grayscale frame per VBlank.
// Pixel values are one of the four DMG shades defined by the ppu package.
type Display interface {
	Present(frame [144][160]byte) error
}

// AudioSink receives mono 16-bit signed PCM samples at 44100 Hz as
// they're rendered.
type AudioSink interface {
	Submit(samples []int16) error
}

// Key identifies one physical input the host can report.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyA
	KeyB
	KeySelect
	KeyStart
)

// Button maps a host Key onto the joypad package's Button enum.
func (k Key) Button() joypad.Button {
	switch k {
	case KeyUp:
		return joypad.Up
	case KeyDown:
		return joypad.Down
	case KeyLeft:
		return joypad.Left
	case KeyRight:
		return joypad.Right
	case KeyA:
		return joypad.A
	case KeyB:
		return joypad.B
	case KeySelect:
		return joypad.Select
	case KeyStart:
		return joypad.Start
	}
	return joypad.A
}

// InputSource is polled by the core's host loop for key transitions.
type InputSource interface {
	// Poll returns the next pending key event and whether it was a press
	// (true) or release (false). ok is false when no event is pending.
	Poll() (key Key, pressed bool, ok bool)
	// Quit reports whether the host has requested shutdown.
	Quit() bool
}
