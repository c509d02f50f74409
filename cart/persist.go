package cart

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danhale/dmgcore/debug"
)

// SavePath and RTCPath derive the companion persistence file paths from a
// ROM path, per spec.md §6.
func SavePath(romPath string) string { return romPath + ".sav" }
func RTCPath(romPath string) string  { return romPath + ".rtc" }

// LoadRAM restores battery-backed RAM from path into the cartridge's RAM
// buffer, if the controller has one. A missing file, a controller with no
// RAM, or no battery is not an error: the cartridge simply keeps its
// zeroed RAM. A present-but-malformed file is a runtime data-corruption
// condition (spec.md §7 kind 3), not a fatal initialization error: the
// diagnostic is logged and fresh RAM is kept rather than returned as an
// error. Only a genuine I/O failure (permissions, disk error) is
// returned to the caller.
func (c *Cartridge) LoadRAM(path string, log *debug.Logger) error {
	ram := c.Mbc.RAM()
	if ram == nil || !c.Mbc.HasBattery() {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cart: reading battery RAM %s: %w", path, err)
	}
	if len(data) != len(ram) {
		log.ROM("battery RAM corrupt, starting with fresh RAM", "path", path, "got_bytes", len(data), "want_bytes", len(ram))
		return nil
	}
	copy(ram, data)
	return nil
}

// SaveRAM writes the cartridge's battery RAM to path, if it has any.
func (c *Cartridge) SaveRAM(path string) error {
	ram := c.Mbc.RAM()
	if ram == nil || !c.Mbc.HasBattery() {
		return nil
	}
	return os.WriteFile(path, ram, 0o644)
}

// LoadRTC restores MBC3's real-time clock from a six-line decimal text
// file (S, M, H, DL, DH, Unix-epoch-seconds at save time) and replays the
// elapsed wall-clock delta through the carry chain, per spec.md §4.3 and
// §9 and grounded on original_source's load_rtc. A malformed file is
// runtime data corruption (spec.md §7 kind 3), not fatal: it is logged
// and the RTC is left at its fresh zeroed state. Only a genuine I/O
// failure is returned to the caller.
func (c *Cartridge) LoadRTC(path string, now time.Time, log *debug.Logger) error {
	m3, ok := c.Mbc.(*mbc3)
	if !ok || !m3.hasRTC {
		return nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cart: reading RTC %s: %w", path, err)
	}
	defer f.Close()

	lines := make([]uint64, 0, 6)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(lines) < 6 {
		v, perr := strconv.ParseUint(strings.TrimSpace(scanner.Text()), 10, 64)
		if perr != nil {
			log.ROM("RTC file malformed, starting with fresh RTC state", "path", path, "error", perr)
			return nil
		}
		lines = append(lines, v)
	}
	if len(lines) != 6 {
		log.ROM("RTC file has wrong line count, starting with fresh RTC state", "path", path, "got_lines", len(lines), "want_lines", 6)
		return nil
	}

	m3.SetRTCRegisters([5]uint8{
		uint8(lines[0]), uint8(lines[1]), uint8(lines[2]), uint8(lines[3]), uint8(lines[4]),
	})

	savedAt := int64(lines[5])
	delta := now.Unix() - savedAt
	for i := int64(0); i < delta; i++ {
		m3.TickRTC()
	}
	return nil
}

// SaveRTC writes MBC3's RTC state as six decimal lines: S, M, H, DL, DH,
// and the current Unix epoch second.
func (c *Cartridge) SaveRTC(path string, now time.Time) error {
	m3, ok := c.Mbc.(*mbc3)
	if !ok || !m3.hasRTC {
		return nil
	}

	regs := m3.RTCRegisters()
	var b strings.Builder
	for _, r := range regs {
		fmt.Fprintf(&b, "%d\n", r)
	}
	fmt.Fprintf(&b, "%d\n", now.Unix())

	return os.WriteFile(path, []byte(b.String()), 0o644)
}
