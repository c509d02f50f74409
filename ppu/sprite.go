package ppu

// priorityBuffer resolves sprite-to-pixel ownership for one scanline under
// DMG priority rules: lower X wins, ties broken by lower OAM index.
// Grounded on the teacher's video.SpritePriorityBuffer, which avoids a sort
// by precomputing ownership during a selection pass.
type priorityBuffer struct {
	ownerIndex [Width]int
	ownerX     [Width]int
}

func (p *priorityBuffer) clear() {
	for i := range p.ownerIndex {
		p.ownerIndex[i] = -1
		p.ownerX[i] = 0xFF
	}
}

func (p *priorityBuffer) tryClaim(pixelX, spriteIndex, spriteX int) bool {
	if pixelX < 0 || pixelX >= Width {
		return false
	}

	current := p.ownerIndex[pixelX]
	if current == -1 || spriteX < p.ownerX[pixelX] || (spriteX == p.ownerX[pixelX] && spriteIndex < current) {
		p.ownerIndex[pixelX] = spriteIndex
		p.ownerX[pixelX] = spriteX
		return true
	}
	return false
}

func (p *priorityBuffer) owner(pixelX int) int {
	if pixelX < 0 || pixelX >= Width {
		return -1
	}
	return p.ownerIndex[pixelX]
}

// oamSprite is one parsed 4-byte OAM entry.
type oamSprite struct {
	y, x      int
	tile      uint8
	flags     uint8
	oamIndex  int
}

func (s oamSprite) paletteOBP1() bool { return s.flags&0x10 != 0 }
func (s oamSprite) flipX() bool       { return s.flags&0x20 != 0 }
func (s oamSprite) flipY() bool       { return s.flags&0x40 != 0 }
func (s oamSprite) behindBG() bool    { return s.flags&0x80 != 0 }
