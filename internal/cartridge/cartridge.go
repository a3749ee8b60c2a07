package cartridge

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cartbank/cartbank/internal/romfile"
)

// MBC is the capability interface every cartridge variant implements. The
// address-bus collaborator owns the instance exclusively and routes addresses
// before calling in: control writes arrive in 0x0000-0x7FFF, RAM accesses
// arrive as offsets into the 8 KiB external-RAM window.
type MBC interface {
	// ReadROM reads a byte from program memory (0x0000-0x7FFF).
	ReadROM(addr uint16) uint8

	// ReadRAM reads a byte from the external RAM window. Returns 0 when RAM
	// is disabled or absent.
	ReadRAM(addr uint16) uint8

	// WriteROM writes to the MBC control registers (0x0000-0x7FFF). A write
	// outside the control windows signals a routing bug in the caller and
	// panics.
	WriteROM(addr uint16, value uint8)

	// WriteRAM writes a byte to the external RAM window. No-op when RAM is
	// disabled.
	WriteRAM(addr uint16, value uint8)

	// Header returns the parsed cartridge header
	Header() *Header

	// HasBattery returns true if the cartridge has battery-backed RAM
	HasBattery() bool

	// Save flushes battery-backed RAM (and clock state) to the save file.
	// Go has no destructors, so the owning session must call Save on every
	// exit path before discarding the cartridge. No-op without a battery.
	Save() error
}

// ErrUnsupportedCartridgeType indicates a cartridge type byte this module
// does not model.
var ErrUnsupportedCartridgeType = errors.New("unsupported cartridge type")

// ErrROMTooLarge indicates the ROM size exceeds the maximum allowed size.
var ErrROMTooLarge = errors.New("ROM size exceeds maximum allowed size of 8 MiB")

// New creates a cartridge from raw image data. The cartridge type byte at
// 0x0147 selects the MBC variant (ROM-only, MBC1, or MBC3). savePath is the
// resolved location for battery-backed saves; it may be empty, in which case
// nothing is persisted even for battery-backed types. When a save file already
// exists at savePath its contents are loaded into RAM (and, for clock-capable
// MBC3 types, the clock's reference epoch).
func New(rom []byte, savePath string) (MBC, error) {
	const maxROMSize = 8 * 1024 * 1024 // 8 MiB
	if len(rom) > maxROMSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrROMTooLarge, len(rom))
	}

	header, err := ParseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	switch cartType := CartridgeType(header.CartridgeType); cartType {
	case TypeROMOnly:
		return newROMOnly(rom, header)

	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBattery:
		return newMBC1(rom, header, savePath)

	case TypeMBC3TimerBattery, TypeMBC3TimerRAMBattery, TypeMBC3, TypeMBC3RAM, TypeMBC3RAMBattery:
		return newMBC3(rom, header, savePath)

	default:
		return nil, fmt.Errorf("%w: type 0x%02X (%s)",
			ErrUnsupportedCartridgeType, byte(cartType), cartType.String())
	}
}

// Open loads a cartridge image from disk and constructs the matching MBC.
// The save-file location is derived from the image's own path by swapping
// its extension for ".sav".
func Open(path string) (MBC, error) {
	data, err := romfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	savePath := strings.TrimSuffix(path, filepath.Ext(path)) + ".sav"
	return New(data, savePath)
}
