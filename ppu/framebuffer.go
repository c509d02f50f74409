package ppu

// Width and Height are the DMG's fixed screen dimensions.
const (
	Width  = 160
	Height = 144
)

// Grayscale shades, indexed by the 2-bit color index after palette
// application, per spec.md §6's framebuffer contract.
const (
	ShadeWhite     byte = 0xFF
	ShadeLightGrey byte = 0xAA
	ShadeDarkGrey  byte = 0x55
	ShadeBlack     byte = 0x00
)

var paletteShades = [4]byte{ShadeWhite, ShadeLightGrey, ShadeDarkGrey, ShadeBlack}

// FrameBuffer is a 160x144 grid of grayscale shade bytes, row-major with a
// top-left origin, matching spec.md §6 exactly (distinct from the
// teacher's RGBA uint32 buffer).
type FrameBuffer struct {
	pixels [Height][Width]byte
}

// Row returns a read-only view of one scanline.
func (f *FrameBuffer) Row(y int) [Width]byte {
	return f.pixels[y]
}

// Pixels returns a read-only view of the full framebuffer. Callers must
// not assume in-frame consistency while the PPU is mid-frame, per spec.md
// §4.5.
func (f *FrameBuffer) Pixels() [Height][Width]byte {
	return f.pixels
}

func (f *FrameBuffer) setPixel(x, y int, shade byte) {
	f.pixels[y][x] = shade
}
