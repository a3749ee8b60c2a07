// Package main provides the cartbank CLI application.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cartbank/cartbank/internal/cartridge"
	"github.com/cartbank/cartbank/internal/romfile"
)

// ErrNoClock indicates the cartridge has no real-time clock to display.
var ErrNoClock = errors.New("cartridge has no real-time clock")

// CLI represents the command-line interface structure.
type CLI struct {
	Info  InfoCmd  `cmd:"" help:"Display cartridge information."`
	Clock ClockCmd `cmd:"" help:"Display the real-time clock of a clock-capable cartridge."`
}

// InfoCmd displays cartridge header information.
type InfoCmd struct {
	ROM string `arg:"" type:"existingfile" help:"Path to cartridge image."`
}

// Run executes the info command.
func (c *InfoCmd) Run() error {
	data, err := romfile.Load(c.ROM)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	// Parse without a save path: info only inspects, it never persists.
	cart, err := cartridge.New(data, "")
	if err != nil {
		return fmt.Errorf("failed to load cartridge: %w", err)
	}

	header := cart.Header()
	cartType := cartridge.CartridgeType(header.CartridgeType)
	fmt.Printf("Cartridge Information:\n")
	fmt.Printf("  Title:          %s\n", header.GetTitle())
	fmt.Printf("  Cartridge Type: %s (0x%02X)\n", cartType, header.CartridgeType)
	fmt.Printf("  RAM Size:       %d bytes\n", header.GetRAMSizeBytes())
	fmt.Printf("  Has Battery:    %v\n", cart.HasBattery())
	fmt.Printf("  Has Clock:      %v\n", cartType.HasTimer())
	fmt.Printf("  Checksum OK:    %v\n", header.VerifyHeaderChecksum(data))
	fmt.Printf("  Digest:         %016x\n", romfile.Digest(data))

	return nil
}

// ClockCmd latches and displays the real-time clock of a clock-capable
// cartridge, reading the reference epoch from its save file.
type ClockCmd struct {
	ROM string `arg:"" type:"existingfile" help:"Path to cartridge image."`
}

// Run executes the clock command.
func (c *ClockCmd) Run() error {
	cart, err := cartridge.Open(c.ROM)
	if err != nil {
		return fmt.Errorf("failed to load cartridge: %w", err)
	}

	if !cartridge.CartridgeType(cart.Header().CartridgeType).HasTimer() {
		return fmt.Errorf("%w: type %s", ErrNoClock, cartridge.CartridgeType(cart.Header().CartridgeType))
	}

	// Drive the cartridge the way game software would: enable the RAM
	// window, latch the clock, then read the five registers.
	cart.WriteROM(0x0000, 0x0A)
	cart.WriteROM(0x6000, 0x00)
	cart.WriteROM(0x6000, 0x01)

	var regs [5]uint8
	for i := range regs {
		cart.WriteROM(0x4000, uint8(0x08+i))
		regs[i] = cart.ReadRAM(0)
	}

	days := int(regs[4]&0x01)<<8 | int(regs[3])
	fmt.Printf("Clock: %d days, %02d:%02d:%02d\n", days, regs[2], regs[1], regs[0])
	fmt.Printf("  Halted:       %v\n", regs[4]&0x40 != 0)
	fmt.Printf("  Day overflow: %v\n", regs[4]&0x80 != 0)

	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("cartbank"),
		kong.Description("Game Boy cartridge memory-bank-controller toolkit."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
