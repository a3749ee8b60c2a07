package cartridge

import (
	"encoding/binary"
	"fmt"
)

// MBC3 represents a cartridge with MBC3, supporting up to 2 MiB of ROM,
// 32 KiB of RAM and an optional battery-backed real-time clock.
//
// Control registers (write-only):
// - 0x0000-0x1FFF: RAM/clock enable (exactly 0x0A enables)
// - 0x2000-0x3FFF: ROM bank number, 7 bits (0 coerced to 1)
// - 0x4000-0x5FFF: RAM bank number (0-3) or clock register select (0x08-0x0C)
// - 0x6000-0x7FFF: clock latch (a 0-then-1 sequence captures a snapshot)
//
// The RAM window at 0xA000-0xBFFF reads either the selected RAM bank or,
// when the bank selector holds 0x08-0x0C, one of the five clock registers.
type MBC3 struct {
	header *Header
	rom    []byte
	ram    []byte

	ramEnabled bool
	romBank    int // 7 bits, never 0
	ramBank    int // 0-3 for RAM, 0x08-0x0C for the clock

	// latched records that a 0-to-1 latch transition has frozen the clock
	// registers; only the next 0 write re-arms the latch.
	latched bool
	clock   rtcClock

	savePath string // empty when not battery-backed
}

// newMBC3 creates a new MBC3 cartridge and restores RAM and clock state from
// any existing save file.
func newMBC3(rom []byte, header *Header, savePath string) (*MBC3, error) {
	cartType := CartridgeType(header.CartridgeType)

	cart := &MBC3{
		header:  header,
		rom:     rom,
		romBank: 1,
		clock:   newRTCClock(cartType.HasTimer()),
	}

	if cartType.HasRAM() {
		if ramSize := header.GetRAMSizeBytes(); ramSize > 0 {
			cart.ram = make([]byte, ramSize)
		}
	}
	if cartType.HasBattery() {
		cart.savePath = savePath
	}

	if err := cart.loadRAM(); err != nil {
		return nil, err
	}
	return cart, nil
}

// loadRAM restores the clock epoch and RAM contents from the save file, if
// one exists. The file starts with an 8-byte big-endian epoch timestamp; the
// epoch is only applied when this cartridge is clock-capable.
func (c *MBC3) loadRAM() error {
	if c.savePath == "" {
		return nil
	}
	data, err := readSaveFile(c.savePath)
	if err != nil || data == nil {
		return err
	}
	if len(data) < 8 {
		return fmt.Errorf("%w: %d bytes, missing clock epoch", ErrInvalidSaveFile, len(data))
	}
	if c.clock.valid {
		c.clock.zero = int64(binary.BigEndian.Uint64(data[:8]))
	}
	copy(c.ram, data[8:])
	return nil
}

// ReadROM reads a byte from program memory. Addresses below 0x4000 always
// see bank 0; the switchable window maps the selected bank.
func (c *MBC3) ReadROM(addr uint16) uint8 {
	if addr < 0x4000 {
		if int(addr) < len(c.rom) {
			return c.rom[addr]
		}
		return 0xFF
	}

	offset := c.romBank*0x4000 | int(addr&0x3FFF)
	if offset < len(c.rom) {
		return c.rom[offset]
	}
	return 0xFF
}

// ReadRAM reads a byte from the selected RAM bank, or from the selected
// clock register when the bank selector holds 0x08-0x0C. Returns 0 when RAM
// is disabled.
func (c *MBC3) ReadRAM(addr uint16) uint8 {
	if !c.ramEnabled {
		return 0
	}
	switch {
	case c.ramBank <= 3:
		offset := c.ramBank*0x2000 | int(addr&0x1FFF)
		if offset < len(c.ram) {
			return c.ram[offset]
		}
		return 0
	case c.ramBank >= 0x08 && c.ramBank <= 0x0C:
		return c.clock.regs[c.ramBank-0x08]
	default:
		return 0
	}
}

// WriteROM writes to the MBC3 control registers.
func (c *MBC3) WriteROM(addr uint16, value uint8) {
	switch {
	// RAM/clock enable (0x0000-0x1FFF)
	case addr < 0x2000:
		c.ramEnabled = value == 0x0A

	// ROM bank number, 7 bits (0x2000-0x3FFF)
	case addr < 0x4000:
		bank := int(value & 0x7F)
		if bank == 0 {
			bank = 1 // bank 0 is coerced to 1
		}
		c.romBank = bank

	// RAM bank / clock register select (0x4000-0x5FFF)
	case addr < 0x6000:
		c.ramBank = int(value)

	// Clock latch (0x6000-0x7FFF). Only the 0-to-1 transition recomputes
	// the registers; a repeated 1 leaves the frozen snapshot in place.
	case addr < 0x8000:
		switch value {
		case 0:
			c.latched = false
		case 1:
			if !c.latched {
				c.clock.update()
			}
			c.latched = true
		}

	default:
		panic(fmt.Sprintf("mbc3: control write to unmapped address %04X", addr))
	}
}

// WriteRAM writes a byte to the selected RAM bank or clock register. Writing
// a clock register rebases the reference epoch so subsequent elapsed-time
// derivation agrees with the written value. No-op when RAM is disabled.
func (c *MBC3) WriteRAM(addr uint16, value uint8) {
	if !c.ramEnabled {
		return
	}
	switch {
	case c.ramBank <= 3:
		offset := c.ramBank*0x2000 | int(addr&0x1FFF)
		if offset < len(c.ram) {
			c.ram[offset] = value
		}
	case c.ramBank >= 0x08 && c.ramBank <= 0x0C:
		c.clock.regs[c.ramBank-0x08] = value
		c.clock.rebase()
	}
}

// Header returns the cartridge header.
func (c *MBC3) Header() *Header {
	return c.header
}

// HasBattery returns true if the cartridge has battery-backed RAM or clock.
func (c *MBC3) HasBattery() bool {
	return CartridgeType(c.header.CartridgeType).HasBattery()
}

// Save flushes clock state and RAM to the save file: an 8-byte big-endian
// epoch timestamp (0 for clock-incapable types) followed by the raw RAM
// contents, written as one unit.
func (c *MBC3) Save() error {
	if c.savePath == "" {
		return nil
	}
	data := make([]byte, 8+len(c.ram))
	if c.clock.valid {
		binary.BigEndian.PutUint64(data[:8], uint64(c.clock.zero))
	}
	copy(data[8:], c.ram)
	return writeSaveFile(c.savePath, data)
}
