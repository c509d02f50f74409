// Package render implements a tcell-based terminal host: one character
// per pixel, shaded by luminance, plus a non-blocking keyboard poll.
// Grounded on the teacher's render.TerminalRenderer, stripped of its
// debugger/disassembly panes (out of scope here) and adapted to the
// host.Display/host.InputSource contracts instead of a direct
// *jeebie.Emulator reference.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/danhale/dmgcore/host"
	"github.com/danhale/dmgcore/ppu"
)

var shadeChars = []rune{'█', '▓', '▒', '░'}

// Terminal presents frames to a tcell screen and polls keyboard input.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   bool
}

// NewTerminal initializes the terminal screen and starts its event pump.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: initializing terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: initializing terminal: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	t := &Terminal{screen: screen, events: make(chan tcell.Event, 16)}
	go t.pump()
	return t, nil
}

func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.events <- ev
	}
}

// Present implements host.Display: one character per pixel, shaded by
// the DMG's four-level grayscale palette.
func (t *Terminal) Present(frame [144][160]byte) error {
	for y := 0; y < ppu.Height; y++ {
		for x := 0; x < ppu.Width; x++ {
			shade := shadeIndex(frame[y][x])
			t.screen.SetContent(x, y, shadeChars[shade], nil, tcell.StyleDefault)
		}
	}
	t.screen.Show()
	return nil
}

func shadeIndex(v byte) int {
	switch v {
	case ppu.ShadeBlack:
		return 0
	case ppu.ShadeDarkGrey:
		return 1
	case ppu.ShadeLightGrey:
		return 2
	default:
		return 3
	}
}

// Poll implements host.InputSource, draining tcell key events without
// blocking; EventResize triggers a screen sync and is otherwise ignored.
func (t *Terminal) Poll() (key host.Key, pressed bool, ok bool) {
	select {
	case ev := <-t.events:
		switch e := ev.(type) {
		case *tcell.EventKey:
			return t.translateKey(e)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	default:
	}
	return 0, false, false
}

func (t *Terminal) translateKey(e *tcell.EventKey) (host.Key, bool, bool) {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.quit = true
		return 0, false, false
	case tcell.KeyEnter:
		return host.KeyStart, true, true
	case tcell.KeyRight:
		return host.KeyRight, true, true
	case tcell.KeyLeft:
		return host.KeyLeft, true, true
	case tcell.KeyUp:
		return host.KeyUp, true, true
	case tcell.KeyDown:
		return host.KeyDown, true, true
	case tcell.KeyRune:
		switch e.Rune() {
		case 'a':
			return host.KeyA, true, true
		case 's':
			return host.KeyB, true, true
		case 'q':
			return host.KeySelect, true, true
		}
	}
	return 0, false, false
}

// Quit implements host.InputSource.
func (t *Terminal) Quit() bool { return t.quit }

// Close tears down the terminal screen.
func (t *Terminal) Close() {
	t.screen.Fini()
}
