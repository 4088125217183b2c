// Package config holds the measurement configuration record kept in
// non-volatile memory, and the owner through which it is read and changed.
package config

import "time"

// Configuration is the fixed-shape tunable record. Its field order and sizes
// are the on-memory layout; do not reorder.
type Configuration struct {
	LuminosityEnabled  bool
	LuminosityLow      uint16
	LuminosityHigh     uint16
	ThermometerEnabled bool
	TemperatureMin     int16
	TemperatureMax     int16
	HygrometerEnabled  bool
	HygrometryMinTemp  int16
	HygrometryMaxTemp  int16
	PressureEnabled    bool
	PressureMin        uint16
	PressureMax        uint16
	LogInterval        uint8  // seconds
	GPSTimeout         uint16 // seconds
	FileMaxSize        uint16 // bytes
}

// Default returns the compiled-in configuration.
func Default() Configuration {
	return Configuration{
		LuminosityEnabled:  true,
		LuminosityLow:      255,
		LuminosityHigh:     768,
		ThermometerEnabled: true,
		TemperatureMin:     -10,
		TemperatureMax:     60,
		HygrometerEnabled:  true,
		HygrometryMinTemp:  0,
		HygrometryMaxTemp:  50,
		PressureEnabled:    true,
		PressureMin:        850,
		PressureMax:        1080,
		LogInterval:        2,
		GPSTimeout:         30,
		FileMaxSize:        4096,
	}
}

// Interval is the base sampling cadence.
func (c Configuration) Interval() time.Duration {
	return time.Duration(c.LogInterval) * time.Second
}

// ReadTimeout is how long one GPS read waits for a fix record.
func (c Configuration) ReadTimeout() time.Duration {
	return time.Duration(c.GPSTimeout) * time.Second
}

// TemperatureValid reports whether v is inside the thermometer range.
func (c Configuration) TemperatureValid(v float64) bool {
	return inRange(v, float64(c.TemperatureMin), float64(c.TemperatureMax))
}

// HygrometryAllowed reports whether humidity is read at temperature v.
func (c Configuration) HygrometryAllowed(v float64) bool {
	return inRange(v, float64(c.HygrometryMinTemp), float64(c.HygrometryMaxTemp))
}

// PressureValid reports whether v is inside the pressure range.
func (c Configuration) PressureValid(v float64) bool {
	return inRange(v, float64(c.PressureMin), float64(c.PressureMax))
}

func inRange(v, min, max float64) bool {
	return v >= min && v <= max
}
