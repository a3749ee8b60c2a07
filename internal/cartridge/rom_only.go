package cartridge

// ROMOnly represents a simple 32 KiB cartridge with no MBC: no bank
// switching, no external RAM, no control registers.
type ROMOnly struct {
	header *Header
	rom    []byte
}

// newROMOnly creates a new ROM-only cartridge.
func newROMOnly(rom []byte, header *Header) (*ROMOnly, error) {
	return &ROMOnly{
		header: header,
		rom:    rom,
	}, nil
}

// ReadROM reads a byte from program memory.
func (c *ROMOnly) ReadROM(addr uint16) uint8 {
	if int(addr) < len(c.rom) {
		return c.rom[addr]
	}
	return 0xFF
}

// ReadRAM always returns 0; there is no external RAM.
func (c *ROMOnly) ReadRAM(_ uint16) uint8 {
	return 0
}

// WriteROM is a no-op; there are no control registers.
func (c *ROMOnly) WriteROM(_ uint16, _ uint8) {}

// WriteRAM is a no-op; there is no external RAM.
func (c *ROMOnly) WriteRAM(_ uint16, _ uint8) {}

// Header returns the cartridge header.
func (c *ROMOnly) Header() *Header {
	return c.header
}

// HasBattery returns false; ROM-only cartridges have nothing to persist.
func (c *ROMOnly) HasBattery() bool {
	return false
}

// Save is a no-op; there is no battery-backed state.
func (c *ROMOnly) Save() error {
	return nil
}
