package cart

// mbc2 implements the MBC2 controller: a 4-bit ROM bank register selected
// by address bit 8 of the write, and 512 nibbles of built-in RAM mirrored
// across the whole 0xA000-0xBFFF window. Upper nibble of every RAM byte is
// unused and reads back as 1s, matching real hardware.
type mbc2 struct {
	rom []byte
	ram [512]byte

	romBank    uint8
	ramEnabled bool
	hasBattery bool
}

func newMBC2(rom []byte, hasBattery bool) *mbc2 {
	return &mbc2{rom: rom, romBank: 1, hasBattery: hasBattery}
}

func (m *mbc2) Read(address uint16) uint8 {
	switch {
	case address <= 0x3FFF:
		return m.romAt(uint32(address))
	case address >= 0x4000 && address <= 0x7FFF:
		offset := uint32(m.romBank) * 0x4000
		return m.romAt(offset + uint32(address-0x4000))
	case address >= 0xA000 && address <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ram[(address-0xA000)%512] | 0xF0
	default:
		return 0xFF
	}
}

func (m *mbc2) romAt(offset uint32) uint8 {
	if int(offset) >= len(m.rom) {
		if len(m.rom) == 0 {
			return 0xFF
		}
		offset %= uint32(len(m.rom))
	}
	return m.rom[offset]
}

func (m *mbc2) Write(address uint16, value uint8) {
	switch {
	case address <= 0x3FFF:
		if address&0x0100 == 0 {
			m.ramEnabled = (value & 0x0F) == 0x0A
		} else {
			bank := value & 0x0F
			if bank == 0 {
				bank = 1
			}
			m.romBank = bank
		}
	case address >= 0xA000 && address <= 0xBFFF:
		if !m.ramEnabled {
			return
		}
		m.ram[(address-0xA000)%512] = value & 0x0F
	}
}

func (m *mbc2) RAM() []byte      { return m.ram[:] }
func (m *mbc2) HasBattery() bool { return m.hasBattery }
