package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerUpdatePersists(t *testing.T) {
	mem, _ := newMemory(t)
	s := NewStore(mem)
	cfg, _, err := s.Bootstrap()
	require.NoError(t, err)
	o := NewOwner(cfg, s)

	require.NoError(t, o.Update(func(c *Configuration) { c.LogInterval = 10 }))
	assert.Equal(t, uint8(10), o.Snapshot().LogInterval)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, o.Snapshot(), loaded)
}

func TestOwnerSnapshotIsCopy(t *testing.T) {
	mem, _ := newMemory(t)
	o := NewOwner(Default(), NewStore(mem))
	snap := o.Snapshot()
	snap.FileMaxSize = 1
	assert.Equal(t, uint16(4096), o.Snapshot().FileMaxSize)
}

type failingMemory struct{}

func (failingMemory) ReadAt(p []byte, off int64) (int, error)  { return 0, errors.New("io") }
func (failingMemory) WriteAt(p []byte, off int64) (int, error) { return 0, errors.New("io") }

func TestOwnerUpdateFailureKeepsOldValue(t *testing.T) {
	o := NewOwner(Default(), NewStore(failingMemory{}))
	err := o.Update(func(c *Configuration) { c.PressureMax = 900 })
	assert.Error(t, err)
	assert.Equal(t, uint16(1080), o.Snapshot().PressureMax)
}

func TestOwnerReset(t *testing.T) {
	mem, _ := newMemory(t)
	s := NewStore(mem)
	custom := Default()
	custom.HygrometerEnabled = false
	o := NewOwner(custom, s)

	require.NoError(t, o.Reset())
	assert.Equal(t, Default(), o.Snapshot())
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}
