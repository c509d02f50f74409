package cart

// mbc1 implements the MBC1 bank controller: a 5-bit ROM bank register and a
// 2-bit secondary register shared between the RAM bank number (RAM banking
// mode) and the upper ROM bank bits (ROM banking mode), switched by the
// banking-mode-select write. Grounded on the teacher's memory.MBC1, extended
// with the 0x00/0x20/0x40/0x60 bank normalization spec.md §4.3 requires.
type mbc1 struct {
	rom []byte
	ram []byte

	romBank     uint8
	secondary   uint8
	bankingMode uint8
	ramEnabled  bool
	hasBattery  bool
}

func newMBC1(rom []byte, ramSize uint32, hasBattery bool) *mbc1 {
	return &mbc1{
		rom:        rom,
		ram:        make([]byte, ramSize),
		romBank:    1,
		hasBattery: hasBattery,
	}
}

func (m *mbc1) effectiveROMBank() uint8 {
	bank := m.romBank & 0x1F
	if bank == 0 {
		bank = 1
	}
	if m.bankingMode == 0 {
		bank |= m.secondary << 5
	}
	return bank
}

func (m *mbc1) Read(address uint16) uint8 {
	switch {
	case address <= 0x3FFF:
		bank := uint8(0)
		if m.bankingMode == 1 {
			bank = m.secondary << 5
		}
		offset := uint32(bank) * 0x4000
		return m.romAt(offset + uint32(address))
	case address >= 0x4000 && address <= 0x7FFF:
		offset := uint32(m.effectiveROMBank()) * 0x4000
		return m.romAt(offset + uint32(address-0x4000))
	case address >= 0xA000 && address <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		bank := uint8(0)
		if m.bankingMode == 1 {
			bank = m.secondary
		}
		offset := (uint32(bank) * 0x2000) % uint32(len(m.ram))
		return m.ram[offset+uint32(address-0xA000)]
	default:
		return 0xFF
	}
}

func (m *mbc1) romAt(offset uint32) uint8 {
	if int(offset) >= len(m.rom) {
		if len(m.rom) == 0 {
			return 0xFF
		}
		offset %= uint32(len(m.rom))
	}
	return m.rom[offset]
}

func (m *mbc1) Write(address uint16, value uint8) {
	switch {
	case address <= 0x1FFF:
		m.ramEnabled = (value & 0x0F) == 0x0A
	case address >= 0x2000 && address <= 0x3FFF:
		m.romBank = value & 0x1F
	case address >= 0x4000 && address <= 0x5FFF:
		m.secondary = value & 0x03
	case address >= 0x6000 && address <= 0x7FFF:
		m.bankingMode = value & 0x01
	case address >= 0xA000 && address <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		bank := uint8(0)
		if m.bankingMode == 1 {
			bank = m.secondary
		}
		offset := (uint32(bank) * 0x2000) % uint32(len(m.ram))
		m.ram[offset+uint32(address-0xA000)] = value
	}
}

func (m *mbc1) RAM() []byte      { return m.ram }
func (m *mbc1) HasBattery() bool { return m.hasBattery }
