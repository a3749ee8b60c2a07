package cartridge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewUnsupportedTypes verifies that loading an image with an unmodeled
// cartridge type fails with ErrUnsupportedCartridgeType.
func TestNewUnsupportedTypes(t *testing.T) {
	tests := []struct {
		name     string
		cartType byte
	}{
		{"MBC2", 0x05},
		{"MBC2+Battery", 0x06},
		{"ROM+RAM", 0x08},
		{"MMM01", 0x0B},
		{"MBC5", 0x19},
		{"MBC5+RAM+Battery", 0x1B},
		{"HuC1+RAM+Battery", 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := make([]byte, 0x8000)
			setupMinimalHeader(rom, tt.cartType, 0x00)

			cart, err := New(rom, "")
			if !errors.Is(err, ErrUnsupportedCartridgeType) {
				t.Errorf("New() error = %v, want ErrUnsupportedCartridgeType", err)
			}
			if cart != nil {
				t.Errorf("New() = %T, want nil for unsupported type", cart)
			}
		})
	}
}

// TestNewImageTooSmall verifies that an image shorter than the header region
// is rejected.
func TestNewImageTooSmall(t *testing.T) {
	rom := make([]byte, 0x0100)

	cart, err := New(rom, "")
	if !errors.Is(err, ErrImageTooSmall) {
		t.Errorf("New() error = %v, want ErrImageTooSmall", err)
	}
	if cart != nil {
		t.Errorf("New() = %T, want nil for too-small image", cart)
	}
}

// TestNewROMTooLarge verifies that an image larger than 8 MiB is rejected.
func TestNewROMTooLarge(t *testing.T) {
	const maxROMSize = 8 * 1024 * 1024
	rom := make([]byte, maxROMSize+1)

	cart, err := New(rom, "")
	if !errors.Is(err, ErrROMTooLarge) {
		t.Errorf("New() error = %v, want ErrROMTooLarge", err)
	}
	if cart != nil {
		t.Errorf("New() = %T, want nil for too-large image", cart)
	}
}

// TestNewDispatch verifies that the type byte selects the right variant.
func TestNewDispatch(t *testing.T) {
	tests := []struct {
		name     string
		cartType byte
		want     string
	}{
		{"ROM only", 0x00, "*cartridge.ROMOnly"},
		{"MBC1", 0x01, "*cartridge.MBC1"},
		{"MBC1+RAM", 0x02, "*cartridge.MBC1"},
		{"MBC1+RAM+Battery", 0x03, "*cartridge.MBC1"},
		{"MBC3+Timer+Battery", 0x0F, "*cartridge.MBC3"},
		{"MBC3+Timer+RAM+Battery", 0x10, "*cartridge.MBC3"},
		{"MBC3", 0x11, "*cartridge.MBC3"},
		{"MBC3+RAM", 0x12, "*cartridge.MBC3"},
		{"MBC3+RAM+Battery", 0x13, "*cartridge.MBC3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := make([]byte, 0x8000)
			setupMinimalHeader(rom, tt.cartType, 0x00)

			cart, err := New(rom, "")
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := typeName(cart); got != tt.want {
				t.Errorf("New() = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *ROMOnly:
		return "*cartridge.ROMOnly"
	case *MBC1:
		return "*cartridge.MBC1"
	case *MBC3:
		return "*cartridge.MBC3"
	default:
		return "unknown"
	}
}

// TestNewMBC1WithoutRAM loads a synthetic 32 KiB type-0x01 image and checks
// that the resulting cartridge has no save memory: reads return 0 regardless
// of the RAM-enable gate.
func TestNewMBC1WithoutRAM(t *testing.T) {
	rom := make([]byte, 0x8000)
	setupMinimalHeader(rom, 0x01, 0x00)

	cart, err := New(rom, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mbc, ok := cart.(*MBC1)
	if !ok {
		t.Fatalf("New() = %T, want *MBC1", cart)
	}
	if len(mbc.ram) != 0 {
		t.Errorf("RAM size = %d, want 0", len(mbc.ram))
	}

	if got := cart.ReadRAM(0x0000); got != 0 {
		t.Errorf("ReadRAM(0x0000) = 0x%02X, want 0x00", got)
	}
	cart.WriteROM(0x0000, 0x0A)
	cart.WriteRAM(0x0000, 0x42)
	if got := cart.ReadRAM(0x0000); got != 0 {
		t.Errorf("ReadRAM(0x0000) with RAM enabled = 0x%02X, want 0x00", got)
	}
}

// TestNewMBC3RAMBatteryTimer loads a synthetic type-0x13 image with RAM size
// code 0x02 and checks the resulting cartridge has 8 KiB of save memory and
// produces an epoch-prefixed save file on flush.
func TestNewMBC3RAMBatteryTimer(t *testing.T) {
	savePath := filepath.Join(t.TempDir(), "test.sav")

	rom := make([]byte, 0x8000)
	setupMinimalHeader(rom, 0x13, 0x02)

	cart, err := New(rom, savePath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mbc, ok := cart.(*MBC3)
	if !ok {
		t.Fatalf("New() = %T, want *MBC3", cart)
	}
	if len(mbc.ram) != 0x2000 {
		t.Errorf("RAM size = %d, want 0x2000", len(mbc.ram))
	}
	if !cart.HasBattery() {
		t.Error("type 0x13 should report a battery")
	}

	if err := cart.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(savePath)
	if err != nil {
		t.Fatalf("reading save file: %v", err)
	}
	if len(data) != 8+0x2000 {
		t.Errorf("save file size = %d, want %d (8-byte epoch prefix plus RAM)", len(data), 8+0x2000)
	}
}

// TestOpenDerivesSavePath verifies that Open swaps the image extension for
// ".sav" when resolving the save-file location.
func TestOpenDerivesSavePath(t *testing.T) {
	dir := t.TempDir()
	romPath := filepath.Join(dir, "game.gb")

	rom := make([]byte, 0x8000)
	setupMinimalHeader(rom, 0x03, 0x02) // MBC1+RAM+BATTERY
	if err := os.WriteFile(romPath, rom, 0o644); err != nil {
		t.Fatalf("writing image: %v", err)
	}

	cart, err := Open(romPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	cart.WriteROM(0x0000, 0x0A)
	cart.WriteRAM(0x0000, 0x42)
	if err := cart.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "game.sav")); err != nil {
		t.Errorf("expected save file next to the image: %v", err)
	}
}
