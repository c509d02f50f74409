package cart

// mbc5 implements the MBC5 controller: a 9-bit ROM bank number split across
// two write ports, and a 4-bit RAM bank with no banking-mode quirks.
type mbc5 struct {
	rom []byte
	ram []byte

	romBank    uint16
	ramBank    uint8
	ramEnabled bool
	hasBattery bool
}

func newMBC5(rom []byte, ramSize uint32, hasBattery bool) *mbc5 {
	return &mbc5{rom: rom, ram: make([]byte, ramSize), romBank: 1, hasBattery: hasBattery}
}

func (m *mbc5) Read(address uint16) uint8 {
	switch {
	case address <= 0x3FFF:
		return m.romAt(uint32(address))
	case address >= 0x4000 && address <= 0x7FFF:
		offset := uint32(m.romBank) * 0x4000
		return m.romAt(offset + uint32(address-0x4000))
	case address >= 0xA000 && address <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := (uint32(m.ramBank) * 0x2000) % uint32(len(m.ram))
		return m.ram[offset+uint32(address-0xA000)]
	default:
		return 0xFF
	}
}

func (m *mbc5) romAt(offset uint32) uint8 {
	if int(offset) >= len(m.rom) {
		if len(m.rom) == 0 {
			return 0xFF
		}
		offset %= uint32(len(m.rom))
	}
	return m.rom[offset]
}

func (m *mbc5) Write(address uint16, value uint8) {
	switch {
	case address <= 0x1FFF:
		m.ramEnabled = (value & 0x0F) == 0x0A
	case address >= 0x2000 && address <= 0x2FFF:
		m.romBank = (m.romBank & 0x100) | uint16(value)
	case address >= 0x3000 && address <= 0x3FFF:
		m.romBank = (m.romBank & 0x0FF) | (uint16(value&0x01) << 8)
	case address >= 0x4000 && address <= 0x5FFF:
		m.ramBank = value & 0x0F
	case address >= 0xA000 && address <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		offset := (uint32(m.ramBank) * 0x2000) % uint32(len(m.ram))
		m.ram[offset+uint32(address-0xA000)] = value
	}
}

func (m *mbc5) RAM() []byte      { return m.ram }
func (m *mbc5) HasBattery() bool { return m.hasBattery }
