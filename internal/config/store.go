package config

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Reserved addresses in non-volatile memory.
const (
	FlagAddr   = 1
	RecordAddr = 2
)

// flagSet marks that the program has run before. Any other value, including
// erased 0xFF, counts as unset.
const flagSet = 0x01

// RecordSize is the encoded size of Configuration.
var RecordSize = binary.Size(Configuration{})

// ErrCorrupt is returned when the persisted record cannot be read back.
var ErrCorrupt = errors.New("configuration record corrupt")

// Memory is byte-addressable non-volatile storage.
type Memory interface {
	io.ReaderAt
	io.WriterAt
}

// Store reads and writes the configuration record. Every write covers the
// whole record.
type Store struct {
	mem Memory
}

// NewStore creates a store over mem.
func NewStore(mem Memory) *Store {
	return &Store{mem: mem}
}

// Bootstrap returns the configuration to run with. On the first run ever it
// persists the defaults and then sets the has-run flag; afterwards it loads
// the persisted record verbatim. first reports which path was taken.
func (s *Store) Bootstrap() (cfg Configuration, first bool, err error) {
	ran, err := s.hasRun()
	if err != nil {
		return Configuration{}, false, err
	}
	if ran {
		cfg, err = s.Load()
		return cfg, false, err
	}

	cfg = Default()
	if err := s.Save(cfg); err != nil {
		return Configuration{}, true, err
	}
	if _, err := s.mem.WriteAt([]byte{flagSet}, FlagAddr); err != nil {
		return Configuration{}, true, fmt.Errorf("write run flag: %w", err)
	}
	return cfg, true, nil
}

func (s *Store) hasRun() (bool, error) {
	b := make([]byte, 1)
	_, err := s.mem.ReadAt(b, FlagAddr)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read run flag: %w", err)
	}
	return b[0] == flagSet, nil
}

// Load reads the persisted record.
func (s *Store) Load() (Configuration, error) {
	buf := make([]byte, RecordSize)
	n, err := s.mem.ReadAt(buf, RecordAddr)
	if n < RecordSize {
		if err == nil || errors.Is(err, io.EOF) {
			return Configuration{}, fmt.Errorf("%w: short read %d of %d bytes", ErrCorrupt, n, RecordSize)
		}
		return Configuration{}, fmt.Errorf("read configuration: %w", err)
	}
	var cfg Configuration
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return cfg, nil
}

// Save persists the whole record in one write.
func (s *Store) Save(cfg Configuration) error {
	var buf bytes.Buffer
	buf.Grow(RecordSize)
	if err := binary.Write(&buf, binary.LittleEndian, cfg); err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	if _, err := s.mem.WriteAt(buf.Bytes(), RecordAddr); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}
