package ppu

// Register addresses relative to the bus are handled by the bus package;
// this file exposes typed accessors the bus dispatches LCDC..WX onto.

func (p *PPU) LCDC() uint8     { return p.lcdc }
func (p *PPU) SetLCDC(v uint8) { p.lcdc = v }

// STAT reads back with bit 7 always 1 and bits 1-0 mirroring the live mode.
func (p *PPU) STAT() uint8 {
	return 0x80 | (p.stat &^ 0x03) | uint8(p.mode)
}

// SetSTAT writes only the interrupt-enable bits 6-3; bits 2-0 are
// read-only hardware state.
func (p *PPU) SetSTAT(v uint8) {
	p.stat = (p.stat & 0x07) | (v & 0x78)
}

func (p *PPU) SCY() uint8     { return p.scy }
func (p *PPU) SetSCY(v uint8) { p.scy = v }

func (p *PPU) SCX() uint8     { return p.scx }
func (p *PPU) SetSCX(v uint8) { p.scx = v }

// LY is read-only from the bus's perspective; writes are ignored.
func (p *PPU) LY() uint8 { return p.ly }

func (p *PPU) LYC() uint8 {
	return p.lyc
}

// SetLYC updates LYC and re-checks the coincidence flag immediately,
// matching hardware (a LYC write can itself raise the STAT edge).
func (p *PPU) SetLYC(v uint8) {
	p.lyc = v
	if p.lcdEnabled() {
		p.setLY(int(p.ly))
	}
}

func (p *PPU) BGP() uint8      { return p.bgp }
func (p *PPU) SetBGP(v uint8)  { p.bgp = v }
func (p *PPU) OBP0() uint8     { return p.obp0 }
func (p *PPU) SetOBP0(v uint8) { p.obp0 = v }
func (p *PPU) OBP1() uint8     { return p.obp1 }
func (p *PPU) SetOBP1(v uint8) { p.obp1 = v }
func (p *PPU) WY() uint8       { return p.wy }
func (p *PPU) SetWY(v uint8)   { p.wy = v }
func (p *PPU) WX() uint8       { return p.wx }
func (p *PPU) SetWX(v uint8)   { p.wx = v }

// ReadVRAM and WriteVRAM address the 0x8000-0x9FFF window. Per spec.md
// §4.5, the PPU refuses VRAM access during mode 3 (reads return 0xFF,
// writes are dropped).
func (p *PPU) ReadVRAM(address uint16) uint8 {
	if p.mode == ModeTransfer {
		return 0xFF
	}
	return p.vram[address-0x8000]
}

func (p *PPU) WriteVRAM(address uint16, value uint8) {
	if p.mode == ModeTransfer {
		return
	}
	p.vram[address-0x8000] = value
}

// ReadOAM and WriteOAM address 0xFE00-0xFE9F, gated during modes 2 and 3.
// OAM DMA bypasses this gate (the bus writes through DMAWrite).
func (p *PPU) ReadOAM(address uint16) uint8 {
	if p.mode == ModeOAM || p.mode == ModeTransfer {
		return 0xFF
	}
	return p.oam[address-0xFE00]
}

func (p *PPU) WriteOAM(address uint16, value uint8) {
	if p.mode == ModeOAM || p.mode == ModeTransfer {
		return
	}
	p.oam[address-0xFE00] = value
}

// DMAWrite writes directly into OAM, bypassing the mode gate, for use by
// the bus's OAM DMA implementation (spec.md §4.2).
func (p *PPU) DMAWrite(index int, value uint8) {
	p.oam[index] = value
}

// vramRaw and oamRaw give the renderer ungated access to its own memory;
// the PPU is always allowed to read its own VRAM/OAM while building a
// scanline, only the CPU-facing bus ports are gated.
func (p *PPU) vramRaw(address uint16) uint8 { return p.vram[address-0x8000] }
func (p *PPU) oamRaw(index int) uint8       { return p.oam[index] }
