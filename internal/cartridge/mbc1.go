package cartridge

import "fmt"

// MBC1 represents a cartridge with MBC1 (Memory Bank Controller 1),
// supporting up to 2 MiB of ROM and 32 KiB of RAM.
//
// Control registers (write-only):
// - 0x0000-0x1FFF: RAM enable (exactly 0x0A enables, anything else disables)
// - 0x2000-0x3FFF: ROM bank number, lower 5 bits (0 coerced to 1)
// - 0x4000-0x5FFF: ROM bank bits 5-6, or RAM bank number in RAM mode
// - 0x6000-0x7FFF: banking mode select (bit 0: 0 = ROM, 1 = RAM)
type MBC1 struct {
	header *Header
	rom    []byte
	ram    []byte

	ramEnabled bool
	ramMode    bool // reassigns the 0x4000-0x5FFF register to the RAM bank
	romBank    int  // 7 bits, never 0
	ramBank    int  // 2 bits

	savePath string // empty when not battery-backed
}

// newMBC1 creates a new MBC1 cartridge and loads any existing save file into
// its RAM.
func newMBC1(rom []byte, header *Header, savePath string) (*MBC1, error) {
	cart := &MBC1{
		header:  header,
		rom:     rom,
		romBank: 1, // bank 0 is never selectable in the switchable window
	}

	cartType := CartridgeType(header.CartridgeType)
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

// loadRAM restores RAM contents from the save file, if one exists.
func (c *MBC1) loadRAM() error {
	if c.savePath == "" {
		return nil
	}
	data, err := readSaveFile(c.savePath)
	if err != nil || data == nil {
		return err
	}
	copy(c.ram, data)
	return nil
}

// ReadROM reads a byte from program memory. Addresses below 0x4000 always
// see bank 0; the switchable window maps the selected bank.
func (c *MBC1) ReadROM(addr uint16) uint8 {
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

// ReadRAM reads a byte from the external RAM window. Returns 0 when RAM is
// disabled or absent.
func (c *MBC1) ReadRAM(addr uint16) uint8 {
	if !c.ramEnabled || len(c.ram) == 0 {
		return 0
	}
	offset := c.ramOffset(addr)
	if offset < len(c.ram) {
		return c.ram[offset]
	}
	return 0
}

// WriteROM writes to the MBC1 control registers.
func (c *MBC1) WriteROM(addr uint16, value uint8) {
	switch {
	// RAM enable (0x0000-0x1FFF)
	case addr < 0x2000:
		c.ramEnabled = value == 0x0A

	// ROM bank number, lower 5 bits (0x2000-0x3FFF)
	case addr < 0x4000:
		lower := int(value & 0x1F)
		if lower == 0 {
			lower = 1 // bank 0 is coerced to 1
		}
		c.romBank = c.romBank&0x60 | lower

	// ROM bank bits 5-6 or RAM bank number (0x4000-0x5FFF)
	case addr < 0x6000:
		if c.ramMode {
			c.ramBank = int(value & 0x03)
		} else {
			c.romBank = c.romBank&0x1F | int(value&0x03)<<5
		}

	// Banking mode select (0x6000-0x7FFF)
	case addr < 0x8000:
		c.ramMode = value&0x01 == 0x01

	default:
		panic(fmt.Sprintf("mbc1: control write to unmapped address %04X", addr))
	}
}

// WriteRAM writes a byte to the external RAM window. No-op when RAM is
// disabled.
func (c *MBC1) WriteRAM(addr uint16, value uint8) {
	if !c.ramEnabled || len(c.ram) == 0 {
		return
	}
	offset := c.ramOffset(addr)
	if offset < len(c.ram) {
		c.ram[offset] = value
	}
}

// ramOffset maps a window address onto RAM. Outside RAM mode the cartridge
// always exposes bank 0.
func (c *MBC1) ramOffset(addr uint16) int {
	bank := 0
	if c.ramMode {
		bank = c.ramBank
	}
	return bank*0x2000 | int(addr&0x1FFF)
}

// Header returns the cartridge header.
func (c *MBC1) Header() *Header {
	return c.header
}

// HasBattery returns true if the cartridge has battery-backed RAM.
func (c *MBC1) HasBattery() bool {
	return CartridgeType(c.header.CartridgeType).HasBattery()
}

// Save flushes RAM to the save file. The save file is the raw RAM contents,
// no header.
func (c *MBC1) Save() error {
	if c.savePath == "" {
		return nil
	}
	return writeSaveFile(c.savePath, c.ram)
}
