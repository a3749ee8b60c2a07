package cartridge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrInvalidSaveFile indicates a save file too short to hold the state it
// should carry.
var ErrInvalidSaveFile = errors.New("invalid save file")

// readSaveFile reads the save file at path. A missing file is not an error:
// it simply means no save exists yet, and (nil, nil) is returned.
func readSaveFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}
	return data, nil
}

// writeSaveFile writes the save file in a single call so the saved state is
// replaced as one unit.
func writeSaveFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}
