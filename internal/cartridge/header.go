// Package cartridge implements Game Boy cartridge loading and Memory Bank Controllers (MBCs).
package cartridge

import (
	"errors"
	"fmt"
)

// Header holds the fields of the cartridge header (0x0100-0x014F) that the
// bank controllers and the CLI care about. The loader only requires the image
// to reach the RAM-size byte; trailing header fields are zero when the image
// stops short of them.
type Header struct {
	// Title (0x0134-0x0143) - 16 bytes, null padded
	Title [16]byte

	// Cartridge type (0x0147) - selects the MBC variant
	CartridgeType byte

	// ROM size code (0x0148)
	ROMSize byte

	// RAM size code (0x0149)
	// 0x01 = 2 KiB, 0x02 = 8 KiB, 0x03 = 32 KiB, anything else = no RAM
	RAMSize byte

	// Header checksum (0x014D)
	HeaderChecksum byte
}

// CartridgeType represents the type of cartridge and MBC.
type CartridgeType byte

// Cartridge types as defined in the header at 0x0147.
const (
	TypeROMOnly             CartridgeType = 0x00
	TypeMBC1                CartridgeType = 0x01
	TypeMBC1RAM             CartridgeType = 0x02
	TypeMBC1RAMBattery      CartridgeType = 0x03
	TypeMBC3TimerBattery    CartridgeType = 0x0F
	TypeMBC3TimerRAMBattery CartridgeType = 0x10
	TypeMBC3                CartridgeType = 0x11
	TypeMBC3RAM             CartridgeType = 0x12
	TypeMBC3RAMBattery      CartridgeType = 0x13
)

// String returns a human-readable name for the cartridge type.
func (t CartridgeType) String() string {
	switch t {
	case TypeROMOnly:
		return "ROM ONLY"
	case TypeMBC1:
		return "MBC1"
	case TypeMBC1RAM:
		return "MBC1+RAM"
	case TypeMBC1RAMBattery:
		return "MBC1+RAM+BATTERY"
	case TypeMBC3TimerBattery:
		return "MBC3+TIMER+BATTERY"
	case TypeMBC3TimerRAMBattery:
		return "MBC3+TIMER+RAM+BATTERY"
	case TypeMBC3:
		return "MBC3"
	case TypeMBC3RAM:
		return "MBC3+RAM"
	case TypeMBC3RAMBattery:
		return "MBC3+RAM+BATTERY"
	default:
		return fmt.Sprintf("UNKNOWN (0x%02X)", byte(t))
	}
}

// HasRAM returns true if the cartridge type includes external RAM.
func (t CartridgeType) HasRAM() bool {
	switch t {
	case TypeMBC1RAM, TypeMBC1RAMBattery,
		TypeMBC3TimerRAMBattery, TypeMBC3RAM, TypeMBC3RAMBattery:
		return true
	default:
		return false
	}
}

// HasBattery returns true if the cartridge type persists its RAM (and clock)
// across power loss.
func (t CartridgeType) HasBattery() bool {
	switch t {
	case TypeMBC1RAMBattery,
		TypeMBC3TimerBattery, TypeMBC3TimerRAMBattery, TypeMBC3RAMBattery:
		return true
	default:
		return false
	}
}

// HasTimer returns true if the cartridge type carries a real-time clock.
func (t CartridgeType) HasTimer() bool {
	return t == TypeMBC3TimerBattery || t == TypeMBC3TimerRAMBattery
}

// GetRAMSizeBytes returns the external RAM size in bytes for the header's
// RAM size code.
func (h *Header) GetRAMSizeBytes() int {
	switch h.RAMSize {
	case 0x01:
		return 0x800 // 2 KiB
	case 0x02:
		return 0x2000 // 8 KiB (1 bank)
	case 0x03:
		return 0x8000 // 32 KiB (4 banks of 8 KiB)
	default:
		return 0
	}
}

// GetTitle returns the cartridge title as a string, trimmed of null bytes.
func (h *Header) GetTitle() string {
	end := len(h.Title)
	for i, b := range h.Title {
		if b == 0 {
			end = i
			break
		}
	}
	return string(h.Title[:end])
}

// headerEnd is the minimum image length the loader accepts: the header region
// through the RAM-size byte at 0x0149 must be present.
const headerEnd = 0x149

// ErrImageTooSmall indicates the image is too small to contain the header
// fields the loader dispatches on.
var ErrImageTooSmall = errors.New("image too small: header region missing")

// ParseHeader parses the cartridge header from raw image data.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrImageTooSmall, len(rom), headerEnd)
	}

	h := &Header{}

	// Title (0x0134-0x0143)
	copy(h.Title[:], rom[0x0134:0x0144])

	// Cartridge type (0x0147) and ROM size code (0x0148)
	h.CartridgeType = rom[0x0147]
	h.ROMSize = rom[0x0148]

	// The RAM size code (0x0149) and header checksum (0x014D) sit at or
	// beyond the minimum length, so read them only when present.
	if len(rom) > 0x0149 {
		h.RAMSize = rom[0x0149]
	}
	if len(rom) > 0x014D {
		h.HeaderChecksum = rom[0x014D]
	}

	return h, nil
}

// VerifyHeaderChecksum verifies the header checksum over bytes 0x0134-0x014C.
// Formula: checksum = 0; for each byte: checksum = checksum - byte - 1.
// The loader does not enforce this; many images in the wild fail it.
func (h *Header) VerifyHeaderChecksum(rom []byte) bool {
	if len(rom) <= 0x014D {
		return false
	}
	checksum := byte(0)
	for addr := 0x0134; addr <= 0x014C; addr++ {
		checksum = checksum - rom[addr] - 1
	}
	return checksum == h.HeaderChecksum
}
