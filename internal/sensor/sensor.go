// Package sensor reads the light level and climate sensors through the
// kernel IIO sysfs interface.
package sensor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// IIORoot is where the kernel exposes IIO devices.
const IIORoot = "/sys/bus/iio/devices"

// Light returns a raw light level, 0 to 1023.
type Light interface {
	Read() (int, error)
}

// Reading is one climate sample in display units.
type Reading struct {
	Temperature float64 // °C
	Humidity    float64 // %RH
	Pressure    float64 // hPa
}

// Climate returns temperature, humidity and pressure.
type Climate interface {
	Read() (Reading, error)
}

// Level is a light bucket.
type Level string

const (
	LevelLow  Level = "LOW"
	LevelAvg  Level = "AVG"
	LevelHigh Level = "HIGH"
)

// Classify buckets a raw light value against the configured thresholds.
func Classify(value, low, high int) Level {
	switch {
	case value < low:
		return LevelLow
	case value < high:
		return LevelAvg
	default:
		return LevelHigh
	}
}

func readValue(fs afero.Fs, path string) (float64, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, fmt.Errorf("failed reading %s: %w", path, err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed parsing %s: %w", path, err)
	}
	return v, nil
}
