package cartridge

import (
	"errors"
	"testing"
)

func TestParseHeader(t *testing.T) {
	rom := make([]byte, 0x8000)
	setupMinimalHeader(rom, 0x13, 0x02)

	header, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}

	if got := header.GetTitle(); got != "TEST" {
		t.Errorf("GetTitle() = %q, want %q", got, "TEST")
	}
	if header.CartridgeType != 0x13 {
		t.Errorf("CartridgeType = 0x%02X, want 0x13", header.CartridgeType)
	}
	if header.RAMSize != 0x02 {
		t.Errorf("RAMSize = 0x%02X, want 0x02", header.RAMSize)
	}
	if !header.VerifyHeaderChecksum(rom) {
		t.Error("VerifyHeaderChecksum() = false, want true")
	}
}

func TestParseHeaderTooSmall(t *testing.T) {
	rom := make([]byte, 0x0148)

	_, err := ParseHeader(rom)
	if !errors.Is(err, ErrImageTooSmall) {
		t.Errorf("ParseHeader() error = %v, want ErrImageTooSmall", err)
	}
}

func TestParseHeaderMinimumLength(t *testing.T) {
	// Exactly 0x149 bytes: long enough to load, but the RAM-size byte is
	// absent and reads as 0.
	rom := make([]byte, 0x0149)
	rom[0x0147] = 0x01

	header, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if header.CartridgeType != 0x01 {
		t.Errorf("CartridgeType = 0x%02X, want 0x01", header.CartridgeType)
	}
	if header.RAMSize != 0 {
		t.Errorf("RAMSize = 0x%02X, want 0", header.RAMSize)
	}
}

func TestGetRAMSizeBytes(t *testing.T) {
	tests := []struct {
		code byte
		want int
	}{
		{0x00, 0},
		{0x01, 0x800},
		{0x02, 0x2000},
		{0x03, 0x8000},
		{0x04, 0},
		{0xFF, 0},
	}

	for _, tt := range tests {
		h := &Header{RAMSize: tt.code}
		if got := h.GetRAMSizeBytes(); got != tt.want {
			t.Errorf("GetRAMSizeBytes() for code 0x%02X = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestCartridgeTypePredicates(t *testing.T) {
	tests := []struct {
		cartType   CartridgeType
		hasRAM     bool
		hasBattery bool
		hasTimer   bool
	}{
		{TypeROMOnly, false, false, false},
		{TypeMBC1, false, false, false},
		{TypeMBC1RAM, true, false, false},
		{TypeMBC1RAMBattery, true, true, false},
		{TypeMBC3TimerBattery, false, true, true},
		{TypeMBC3TimerRAMBattery, true, true, true},
		{TypeMBC3, false, false, false},
		{TypeMBC3RAM, true, false, false},
		{TypeMBC3RAMBattery, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.cartType.String(), func(t *testing.T) {
			if got := tt.cartType.HasRAM(); got != tt.hasRAM {
				t.Errorf("HasRAM() = %v, want %v", got, tt.hasRAM)
			}
			if got := tt.cartType.HasBattery(); got != tt.hasBattery {
				t.Errorf("HasBattery() = %v, want %v", got, tt.hasBattery)
			}
			if got := tt.cartType.HasTimer(); got != tt.hasTimer {
				t.Errorf("HasTimer() = %v, want %v", got, tt.hasTimer)
			}
		})
	}
}

func TestCartridgeTypeString(t *testing.T) {
	if got := TypeMBC3TimerRAMBattery.String(); got != "MBC3+TIMER+RAM+BATTERY" {
		t.Errorf("String() = %q, want %q", got, "MBC3+TIMER+RAM+BATTERY")
	}
	if got := CartridgeType(0x42).String(); got != "UNKNOWN (0x42)" {
		t.Errorf("String() = %q, want %q", got, "UNKNOWN (0x42)")
	}
}
