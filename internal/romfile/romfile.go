// Package romfile loads cartridge images from disk, transparently
// decompressing common archive formats.
package romfile

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
	"github.com/cespare/xxhash"
)

// ErrEmptyArchive indicates an archive that contains no files to read.
var ErrEmptyArchive = errors.New("archive contains no files")

// Load reads the image at the given path. Images inside .zip, .gz or .7z
// archives are decompressed; for multi-file archives the first file is taken.
// Any other extension is returned as raw bytes.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".zip":
		return firstZipEntry(data)
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".7z":
		return first7zEntry(data)
	default:
		return data, nil
	}
}

func firstZipEntry(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("%w: zip", ErrEmptyArchive)
	}
	f, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func first7zEntry(data []byte) ([]byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("%w: 7z", ErrEmptyArchive)
	}
	f, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Digest returns a 64-bit fingerprint of the image, used to identify
// cartridges independently of file name.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}
