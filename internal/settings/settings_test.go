package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/envlogger/internal/gpio"
	"github.com/sweeney/envlogger/internal/sampler"
)

// isolate keeps the search path from picking up a settings file.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestDefaults(t *testing.T) {
	isolate(t)
	s, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "gpiochip0", s.Chip)
	assert.Equal(t, gpio.DefaultPinGreen, s.PinGreen)
	assert.Equal(t, gpio.DefaultPinRed, s.PinRed)
	assert.Equal(t, 5*time.Second, s.Hold)
	assert.Equal(t, 30*time.Minute, s.ConfigTimeout)
	assert.Equal(t, 100*time.Millisecond, s.Poll)
	assert.Equal(t, sampler.GPSEvery, s.MaintenanceGPS)
	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.PrintState)
}

func TestFlagsOverride(t *testing.T) {
	isolate(t)
	s, err := Load([]string{"--pin-green=22", "--hold=2s", "--maintenance-gps=alternate", "--print-state"})
	require.NoError(t, err)
	assert.Equal(t, 22, s.PinGreen)
	assert.Equal(t, 2*time.Second, s.Hold)
	assert.Equal(t, sampler.GPSAlternate, s.MaintenanceGPS)
	assert.True(t, s.PrintState)
}

func TestEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("ENVLOGGER_STORAGE_DIR", "/mnt/card")
	t.Setenv("ENVLOGGER_LOG_LEVEL", "DEBUG")
	s, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/card", s.StorageDir)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestFlagBeatsEnv(t *testing.T) {
	isolate(t)
	t.Setenv("ENVLOGGER_GPS_DEVICE", "/dev/ttyUSB0")
	s, err := Load([]string{"--gps-device=/dev/ttyAMA0"})
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyAMA0", s.GPSDevice)
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "envlogger.yaml")
	yaml := `
gpio:
  red: 23
loop:
  poll: 50ms
gps:
  maintenance: "off"
storage:
  dir: /data/log
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	s, err := Load([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, 23, s.PinRed)
	assert.Equal(t, 50*time.Millisecond, s.Poll)
	assert.Equal(t, sampler.GPSOff, s.MaintenanceGPS)
	assert.Equal(t, "/data/log", s.StorageDir)
}

func TestConfigFileFoundInWorkingDir(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("envlogger.yaml", []byte("nvm:\n  path: /tmp/nvm.bin\n"), 0o644))
	s, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/nvm.bin", s.NVMPath)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	isolate(t)
	_, err := Load([]string{"--config", "/nonexistent/envlogger.yaml"})
	assert.Error(t, err)
}

func TestInvalid(t *testing.T) {
	tests := [][]string{
		{"--maintenance-gps=sometimes"},
		{"--log-level=trace"},
		{"--poll=0s"},
		{"--hold=-1s"},
		{"--pin-green=27", "--pin-red=27"},
		{"--storage-dir="},
		{"--no-such-flag"},
	}
	for _, args := range tests {
		t.Run(args[0], func(t *testing.T) {
			isolate(t)
			_, err := Load(args)
			assert.Error(t, err)
		})
	}
}
