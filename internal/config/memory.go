package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// DefaultMemorySize matches the 1 KiB EEPROM of the reference board.
const DefaultMemorySize = 1024

// erased is the value of a never-written EEPROM cell.
const erased = 0xFF

// FileMemory is non-volatile memory backed by a fixed-size image file.
type FileMemory struct {
	afero.File
}

// OpenFileMemory opens the image at path, creating it filled with erased
// cells when missing.
func OpenFileMemory(fs afero.Fs, path string, size int) (*FileMemory, error) {
	if size < RecordAddr+RecordSize {
		return nil, fmt.Errorf("memory size %d too small for configuration record", size)
	}
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("stat memory image: %w", err)
	}
	if !exists {
		if err := afero.WriteFile(fs, path, bytes.Repeat([]byte{erased}, size), 0o644); err != nil {
			return nil, fmt.Errorf("create memory image: %w", err)
		}
	}
	f, err := fs.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open memory image: %w", err)
	}
	return &FileMemory{File: f}, nil
}

// WriteAt writes p at off and flushes it to the medium.
func (m *FileMemory) WriteAt(p []byte, off int64) (int, error) {
	n, err := m.File.WriteAt(p, off)
	if err != nil {
		return n, err
	}
	return n, m.File.Sync()
}
