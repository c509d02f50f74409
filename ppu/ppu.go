// Package ppu implements the pixel-pipeline state machine: the mode
// scheduler (OAM scan / pixel transfer / HBlank / VBlank), the scanline
// renderer for background, window and sprites, and the STAT/LYC/VBlank
// interrupt edges.
//
// Grounded on the teacher's video.GPU mode state machine and
// video.SpritePriorityBuffer, adapted to the exact per-mode dot budget and
// grayscale-index framebuffer spec.md §4.5/§6 specify, rather than the
// teacher's looser 80/172/204 constants and RGBA framebuffer.
package ppu

import "github.com/danhale/dmgcore/bit"

// Mode is the PPU's current pipeline stage; its numeric value is exactly
// what STAT bits 1-0 read back.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeTransfer Mode = 3
)

// Dot budgets per mode, canonical per spec.md §4.5's table.
const (
	oamDots      = 77
	transferDots = 169
	hblankDots   = 201
	vblankDots   = 456
)

// LCDC bit positions.
const (
	lcdcBGEnable       = 0
	lcdcObjEnable      = 1
	lcdcObjSize        = 2
	lcdcBGTileMap      = 3
	lcdcTileData       = 4
	lcdcWindowEnable   = 5
	lcdcWindowTileMap  = 6
	lcdcDisplayEnable  = 7
)

// STAT bit positions for the interrupt-source enables.
const (
	statHBlankIRQ = 3
	statVBlankIRQ = 4
	statOAMIRQ    = 5
	statLYCIRQ    = 6
)

// PPU owns VRAM, OAM, the register file, and the grayscale framebuffer.
type PPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	lcdc, stat, scy, scx, ly, lyc, bgp, obp0, obp1, wy, wx uint8

	mode Mode
	dot  int

	windowLine int
	frame      FrameBuffer
	bgColor0   [Width]bool // true where the BG/window color index was 0

	priority priorityBuffer

	vblankIRQ bool
	statIRQ   bool
}

// New constructs a PPU with LCDC=0 (LCD disabled), LY=0 and mode 2; the
// pipeline starts running once LCDC bit 7 is set.
func New() *PPU {
	p := &PPU{mode: ModeOAM}
	return p
}

// Frame returns the current framebuffer. Stable between ticks; callers
// should copy it once per completed frame (on VBlank entry).
func (p *PPU) Frame() *FrameBuffer { return &p.frame }

func (p *PPU) lcdEnabled() bool { return bit.IsSet(lcdcDisplayEnable, p.lcdc) }

// Tick advances the PPU by cycles T-cycles, driving the mode scheduler and
// rendering scanlines as they complete. When the LCD is disabled the PPU
// is idle: LY and the dot counter both read zero, per spec.md §3.
func (p *PPU) Tick(cycles int) {
	if !p.lcdEnabled() {
		p.ly = 0
		p.dot = 0
		p.mode = ModeOAM
		p.windowLine = 0
		return
	}

	p.dot += cycles

	for {
		switch p.mode {
		case ModeOAM:
			if p.dot < oamDots {
				return
			}
			p.dot -= oamDots
			p.mode = ModeTransfer

		case ModeTransfer:
			if p.dot < transferDots {
				return
			}
			p.dot -= transferDots
			p.renderLine(int(p.ly))
			p.mode = ModeHBlank
			if bit.IsSet(statHBlankIRQ, p.stat) {
				p.statIRQ = true
			}

		case ModeHBlank:
			if p.dot < hblankDots {
				return
			}
			p.dot -= hblankDots
			p.setLY(int(p.ly) + 1)

			if int(p.ly) == 144 {
				p.mode = ModeVBlank
				p.vblankIRQ = true
				if bit.IsSet(statVBlankIRQ, p.stat) {
					p.statIRQ = true
				}
			} else {
				p.mode = ModeOAM
				if bit.IsSet(statOAMIRQ, p.stat) {
					p.statIRQ = true
				}
			}

		case ModeVBlank:
			if p.dot < vblankDots {
				return
			}
			p.dot -= vblankDots

			if int(p.ly) == 153 {
				p.setLY(0)
				p.windowLine = 0
				p.mode = ModeOAM
				if bit.IsSet(statOAMIRQ, p.stat) {
					p.statIRQ = true
				}
			} else {
				p.setLY(int(p.ly) + 1)
			}
		}
	}
}

// setLY updates LY and re-evaluates the LYC coincidence flag/IRQ, per
// spec.md §4.5.
func (p *PPU) setLY(line int) {
	p.ly = uint8(line)
	if p.ly == p.lyc {
		p.stat = bit.Set(2, p.stat)
		if bit.IsSet(statLYCIRQ, p.stat) {
			p.statIRQ = true
		}
	} else {
		p.stat = bit.Clear(2, p.stat)
	}
}

// TakeVBlankIRQ and TakeSTATIRQ report and clear pending interrupt edges,
// sampled by the bus once per CPU step (spec.md §4.1 step (d)).
func (p *PPU) TakeVBlankIRQ() bool {
	v := p.vblankIRQ
	p.vblankIRQ = false
	return v
}

func (p *PPU) TakeSTATIRQ() bool {
	v := p.statIRQ
	p.statIRQ = false
	return v
}

// Mode returns the current pipeline stage, exactly what STAT bits 1-0 read.
func (p *PPU) Mode() Mode { return p.mode }
