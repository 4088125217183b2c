// Package logic holds the operating-mode state machine and the button state
// shared between the GPIO edge callbacks and the main loop.
package logic

import (
	"time"

	"github.com/sweeney/envlogger/internal/led"
)

// Mode is an operating mode of the logger.
type Mode string

const (
	// ModeNone marks "no pending mode". It is never a resting mode.
	ModeNone        Mode = ""
	ModeStandard    Mode = "STANDARD"
	ModeEconomic    Mode = "ECONOMIC"
	ModeMaintenance Mode = "MAINTENANCE"
	ModeConfig      Mode = "CONFIG"
)

// Valid reports whether m is a resting mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeStandard, ModeEconomic, ModeMaintenance, ModeConfig:
		return true
	}
	return false
}

// Samples reports whether the acquisition scheduler runs in m.
func (m Mode) Samples() bool {
	return m == ModeStandard || m == ModeEconomic || m == ModeMaintenance
}

// Persists reports whether samples taken in m are written to storage.
func (m Mode) Persists() bool {
	return m == ModeStandard || m == ModeEconomic
}

// Color is the indicator color shown while resting in m.
func (m Mode) Color() led.Color {
	switch m {
	case ModeStandard:
		return led.Green
	case ModeEconomic:
		return led.Blue
	case ModeMaintenance:
		return led.Orange
	case ModeConfig:
		return led.Yellow
	}
	return led.Off
}

// Button identifies one of the two front-panel buttons.
type Button string

const (
	ButtonGreen Button = "GREEN"
	ButtonRed   Button = "RED"
)

// other returns the opposite button.
func (b Button) other() Button {
	if b == ButtonGreen {
		return ButtonRed
	}
	return ButtonGreen
}

// ButtonState is the debounced state of one button.
type ButtonState struct {
	Pressed      bool
	HoldDeadline time.Time
}

// TransitionRequest records a button hold that may become a mode change once
// its deadline passes.
type TransitionRequest struct {
	Button   Button
	Deadline time.Time
}

// Timers are the per-mode deadlines. A zero Timers is what every transition
// starts from.
type Timers struct {
	// NextSample is when the scheduler samples next. Zero means "now".
	NextSample time.Time
	// ConfigDeadline is when ConfigEntry reverts to Standard.
	ConfigDeadline time.Time
	// SkipGPS is the Economic alternation toggle; false means read on the
	// next pass.
	SkipGPS bool
}

// Timing constants from the reference device.
const (
	DefaultHoldThreshold = 5 * time.Second
	DefaultConfigTimeout = 30 * time.Minute
)
