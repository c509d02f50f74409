package cart

// mbc3 implements the MBC3 bank controller: a 7-bit ROM bank, up to four
// 8 KiB RAM banks, and an RTC reachable through the same 0xA000-0xBFFF
// window when the secondary register selects 0x08-0x0C. Grounded on
// original_source's mbc3.rs write/read dispatch.
type mbc3 struct {
	rom []byte
	ram []byte
	rtc rtc

	romBank       uint8
	secondary     uint8 // RAM bank 0-3, or RTC register select 0x08-0x0C
	ramRTCEnabled bool
	hasRTC        bool
	hasBattery    bool
}

func newMBC3(rom []byte, ramSize uint32, hasRTC, hasBattery bool) *mbc3 {
	return &mbc3{
		rom:        rom,
		ram:        make([]byte, ramSize),
		romBank:    1,
		hasRTC:     hasRTC,
		hasBattery: hasBattery,
	}
}

func (m *mbc3) Read(address uint16) uint8 {
	switch {
	case address <= 0x3FFF:
		return m.romAt(uint32(address))
	case address >= 0x4000 && address <= 0x7FFF:
		bank := m.romBank
		if bank == 0 {
			bank = 1
		}
		offset := uint32(bank) * 0x4000
		return m.romAt(offset + uint32(address-0x4000))
	case address >= 0xA000 && address <= 0xBFFF:
		if !m.ramRTCEnabled {
			return 0xFF
		}
		if m.secondary >= 0x08 && m.secondary <= 0x0C {
			if !m.hasRTC {
				return 0xFF
			}
			return m.rtc.read(m.secondary)
		}
		if m.secondary <= 0x03 && len(m.ram) > 0 {
			offset := (uint32(m.secondary) * 0x2000) % uint32(len(m.ram))
			return m.ram[offset+uint32(address-0xA000)]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

func (m *mbc3) romAt(offset uint32) uint8 {
	if int(offset) >= len(m.rom) {
		if len(m.rom) == 0 {
			return 0xFF
		}
		offset %= uint32(len(m.rom))
	}
	return m.rom[offset]
}

func (m *mbc3) Write(address uint16, value uint8) {
	switch {
	case address <= 0x1FFF:
		m.ramRTCEnabled = (value & 0x0F) == 0x0A
	case address >= 0x2000 && address <= 0x3FFF:
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case address >= 0x4000 && address <= 0x5FFF:
		m.secondary = value
	case address >= 0x6000 && address <= 0x7FFF:
		if m.hasRTC {
			m.rtc.latchWrite(value)
		}
	case address >= 0xA000 && address <= 0xBFFF:
		if !m.ramRTCEnabled {
			return
		}
		if m.secondary >= 0x08 && m.secondary <= 0x0C {
			if m.hasRTC {
				m.rtc.write(m.secondary, value)
			}
			return
		}
		if m.secondary <= 0x03 && len(m.ram) > 0 {
			offset := (uint32(m.secondary) * 0x2000) % uint32(len(m.ram))
			m.ram[offset+uint32(address-0xA000)] = value
		}
	}
}

func (m *mbc3) RAM() []byte      { return m.ram }
func (m *mbc3) HasBattery() bool { return m.hasBattery }

// TickRTC advances the real-time clock by one second. LoadRTC calls it
// once per wall-clock second elapsed since the save; nothing calls it
// while the emulator is running, so the live RTC does not advance during
// a session.
func (m *mbc3) TickRTC() {
	if m.hasRTC {
		m.rtc.tick()
	}
}

// RTCRegisters returns the five persisted RTC registers in save-file order:
// seconds, minutes, hours, day-counter-low, day-counter-high.
func (m *mbc3) RTCRegisters() [5]uint8 {
	return [5]uint8{m.rtc.sec, m.rtc.min, m.rtc.hour, m.rtc.dayLow, m.rtc.dayHigh}
}

// SetRTCRegisters restores the five persisted RTC registers from a loaded
// save file.
func (m *mbc3) SetRTCRegisters(regs [5]uint8) {
	m.rtc.sec, m.rtc.min, m.rtc.hour, m.rtc.dayLow, m.rtc.dayHigh = regs[0], regs[1], regs[2], regs[3], regs[4]
}
