// Package cart implements cartridge ROM loading, header parsing, and the
// MBC1/2/3/5 bank controllers including MBC3's real-time clock and battery
// RAM / RTC persistence.
package cart

import (
	"fmt"
)

const (
	titleAddress         = 0x134
	titleLength          = 16
	cartridgeTypeAddress = 0x147
	romSizeAddress       = 0x148
	ramSizeAddress       = 0x149
)

// ramSizeBytes maps the header's RAM-size code (byte 0x0149) to a RAM
// buffer size in bytes. Code 0 means "no external RAM" except on MBC2,
// which always owns its built-in 512 nibbles regardless of this byte.
var ramSizeBytes = [6]uint32{
	0:      0,
	1:      0x800,   // 2 KiB
	2:      0x2000,  // 8 KiB
	3:      0x8000,  // 32 KiB
	4:      0x20000, // 128 KiB
	5:      0x10000, // 64 KiB
}

// MBC is the bank controller contract shared by every variant: a read/write
// pair addressing the full 0x0000-0x7FFF (ROM) and 0xA000-0xBFFF (external
// RAM) windows as seen from the bus.
type MBC interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	// RAM returns the controller's battery-backed RAM buffer, or nil if it
	// has none. Used for .sav persistence.
	RAM() []byte
	// HasBattery reports whether RAM (if any) should be persisted to disk.
	HasBattery() bool
}

// Cartridge owns the ROM image, its parsed header fields, and the bank
// controller selected by the header's cartridge-type byte.
type Cartridge struct {
	Title    string
	Type     uint8
	ROMSize  uint8
	RAMSize  uint8
	Mbc      MBC
}

// New parses a raw ROM image and constructs the matching bank controller.
// romData must be a non-empty multiple of 16 KiB, per spec's external ROM
// file contract; callers validate length before calling New if they want a
// precise diagnostic, since New itself only needs enough bytes to reach the
// header at 0x0150.
func New(romData []byte) (*Cartridge, error) {
	if len(romData) < 0x150 {
		return nil, fmt.Errorf("cart: ROM too small to contain a header (%d bytes)", len(romData))
	}

	cartType := romData[cartridgeTypeAddress]
	ramCode := romData[ramSizeAddress]
	if int(ramCode) >= len(ramSizeBytes) {
		return nil, fmt.Errorf("cart: unsupported RAM size code 0x%02X", ramCode)
	}

	c := &Cartridge{
		Title:   parseTitle(romData),
		Type:    cartType,
		ROMSize: romData[romSizeAddress],
		RAMSize: ramCode,
	}

	mbc, err := newMBC(cartType, romData, ramSizeBytes[ramCode])
	if err != nil {
		return nil, err
	}
	c.Mbc = mbc

	return c, nil
}

func parseTitle(romData []byte) string {
	end := titleAddress + titleLength
	if end > len(romData) {
		end = len(romData)
	}
	raw := romData[titleAddress:end]
	n := 0
	for n < len(raw) && raw[n] != 0 {
		n++
	}
	return string(raw[:n])
}

// newMBC dispatches on the cartridge-type byte (spec.md §4.3) to build the
// matching controller. Ranges follow the Pan Docs / original reference
// cartridge-type table.
func newMBC(cartType uint8, rom []byte, ramSize uint32) (MBC, error) {
	switch {
	case cartType == 0x00:
		return newNoMBC(rom), nil
	case cartType >= 0x01 && cartType <= 0x03:
		hasBattery := cartType == 0x03
		return newMBC1(rom, ramSize, hasBattery), nil
	case cartType == 0x05 || cartType == 0x06:
		hasBattery := cartType == 0x06
		return newMBC2(rom, hasBattery), nil
	case cartType >= 0x0F && cartType <= 0x13:
		hasRTC := cartType == 0x0F || cartType == 0x10
		hasBattery := cartType == 0x0F || cartType == 0x10 || cartType == 0x13
		return newMBC3(rom, ramSize, hasRTC, hasBattery), nil
	case cartType >= 0x19 && cartType <= 0x1E:
		hasBattery := cartType == 0x1B || cartType == 0x1E
		return newMBC5(rom, ramSize, hasBattery), nil
	default:
		return nil, fmt.Errorf("cart: unsupported cartridge type 0x%02X", cartType)
	}
}

// noMBC backs cartridges with no bank controller: ROM is mapped straight
// through and there is no external RAM.
type noMBC struct {
	rom []byte
}

func newNoMBC(rom []byte) *noMBC { return &noMBC{rom: rom} }

func (m *noMBC) Read(address uint16) uint8 {
	if int(address) < len(m.rom) {
		return m.rom[address]
	}
	return 0xFF
}

func (m *noMBC) Write(address uint16, value uint8) {}
func (m *noMBC) RAM() []byte                       { return nil }
func (m *noMBC) HasBattery() bool                  { return false }
