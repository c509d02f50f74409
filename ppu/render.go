package ppu

import "github.com/danhale/dmgcore/bit"

// renderLine rasterizes scanline y in background -> window -> sprite
// order, per spec.md §4.5.
func (p *PPU) renderLine(y int) {
	p.drawBackground(y)
	p.drawWindow(y)
	p.drawSprites(y)
}

func (p *PPU) drawBackground(y int) {
	if !bit.IsSet(lcdcBGEnable, p.lcdc) {
		for x := 0; x < Width; x++ {
			p.frame.setPixel(x, y, paletteShades[p.bgp&0x03])
			p.bgColor0[x] = true
		}
		return
	}

	signedTiles := !bit.IsSet(lcdcTileData, p.lcdc)
	mapBase := uint16(0x1800)
	if bit.IsSet(lcdcBGTileMap, p.lcdc) {
		mapBase = 0x1C00
	}

	scrolledY := (y + int(p.scy)) & 0xFF
	tileRow := (scrolledY / 8) * 32
	fineY := scrolledY % 8

	for x := 0; x < Width; x++ {
		scrolledX := (x + int(p.scx)) & 0xFF
		tileCol := scrolledX / 8
		fineX := scrolledX % 8

		tileIndex := p.vramRaw(0x8000 + mapBase + uint16(tileRow+tileCol))
		low, high := p.tileRowBytes(tileIndex, fineY, signedTiles)

		bitIdx := uint8(7 - fineX)
		color := colorIndex(low, high, bitIdx)

		p.frame.setPixel(x, y, shadeFor(p.bgp, color))
		p.bgColor0[x] = color == 0
	}
}

func (p *PPU) drawWindow(y int) {
	if !bit.IsSet(lcdcWindowEnable, p.lcdc) {
		return
	}
	if int(p.wy) > y {
		return
	}
	wx := int(p.wx) - 7
	if wx >= Width {
		return
	}

	signedTiles := !bit.IsSet(lcdcTileData, p.lcdc)
	mapBase := uint16(0x1800)
	if bit.IsSet(lcdcWindowTileMap, p.lcdc) {
		mapBase = 0x1C00
	}

	lineInWindow := p.windowLine
	tileRow := (lineInWindow / 8) * 32
	fineY := lineInWindow % 8

	for screenX := wx; screenX < Width; screenX++ {
		if screenX < 0 {
			continue
		}
		col := screenX - wx
		tileCol := col / 8
		fineX := col % 8

		tileIndex := p.vramRaw(0x8000 + mapBase + uint16(tileRow+tileCol))
		low, high := p.tileRowBytes(tileIndex, fineY, signedTiles)

		bitIdx := uint8(7 - fineX)
		color := colorIndex(low, high, bitIdx)

		p.frame.setPixel(screenX, y, shadeFor(p.bgp, color))
		p.bgColor0[screenX] = color == 0
	}

	p.windowLine++
}

func (p *PPU) drawSprites(y int) {
	if !bit.IsSet(lcdcObjEnable, p.lcdc) {
		return
	}

	height := 8
	if bit.IsSet(lcdcObjSize, p.lcdc) {
		height = 16
	}

	var sprites []oamSprite
	for i := 0; i < 40 && len(sprites) < 10; i++ {
		base := i * 4
		spriteY := int(p.oamRaw(base)) - 16
		if spriteY > y || spriteY+height <= y {
			continue
		}
		sprites = append(sprites, oamSprite{
			y:        spriteY,
			x:        int(p.oamRaw(base+1)) - 8,
			tile:     p.oamRaw(base + 2),
			flags:    p.oamRaw(base + 3),
			oamIndex: i,
		})
	}

	p.priority.clear()
	for _, s := range sprites {
		for px := 0; px < 8; px++ {
			p.priority.tryClaim(s.x+px, s.oamIndex, s.x)
		}
	}

	for _, s := range sprites {
		owns := false
		for px := 0; px < 8; px++ {
			if p.priority.owner(s.x+px) == s.oamIndex {
				owns = true
				break
			}
		}
		if !owns {
			continue
		}

		rowInSprite := y - s.y
		if s.flipY() {
			rowInSprite = height - 1 - rowInSprite
		}

		tile := s.tile
		if height == 16 {
			tile &^= 0x01
			if rowInSprite >= 8 {
				tile |= 0x01
				rowInSprite -= 8
			}
		}

		low := p.vramRaw(0x8000 + uint16(tile)*16 + uint16(rowInSprite)*2)
		high := p.vramRaw(0x8000 + uint16(tile)*16 + uint16(rowInSprite)*2 + 1)

		palette := p.obp0
		if s.paletteOBP1() {
			palette = p.obp1
		}

		for px := 0; px < 8; px++ {
			screenX := s.x + px
			if screenX < 0 || screenX >= Width {
				continue
			}
			if p.priority.owner(screenX) != s.oamIndex {
				continue
			}

			bitIdx := uint8(px)
			if !s.flipX() {
				bitIdx = uint8(7 - px)
			}
			color := colorIndex(low, high, bitIdx)
			if color == 0 {
				continue
			}
			if s.behindBG() && !p.bgColor0[screenX] {
				continue
			}

			p.frame.setPixel(screenX, y, shadeFor(palette, color))
		}
	}
}

// tileRowBytes returns the two bit-plane bytes for one row of a tile,
// resolving the signed/unsigned addressing mode LCDC bit 4 selects.
func (p *PPU) tileRowBytes(tileIndex uint8, fineY int, signed bool) (low, high uint8) {
	var base uint16
	if signed {
		base = uint16(0x1000 + int(int8(tileIndex))*16)
	} else {
		base = uint16(0x0000 + int(tileIndex)*16)
	}
	addr := 0x8000 + base + uint16(fineY)*2
	return p.vramRaw(addr), p.vramRaw(addr + 1)
}

func colorIndex(low, high uint8, bitIdx uint8) uint8 {
	color := uint8(0)
	if bit.IsSet(bitIdx, low) {
		color |= 1
	}
	if bit.IsSet(bitIdx, high) {
		color |= 2
	}
	return color
}

func shadeFor(palette uint8, colorIndex uint8) byte {
	shade := (palette >> (colorIndex * 2)) & 0x03
	return paletteShades[shade]
}
