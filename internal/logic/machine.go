package logic

import (
	"time"

	"github.com/sweeney/envlogger/internal/led"
	"github.com/sweeney/envlogger/internal/logger"
)

// Machine owns the resting mode, the per-mode timers and the indicator. It is
// driven from the main loop only.
type Machine struct {
	mode          Mode
	last          Mode
	timers        Timers
	inputs        *Inputs
	indicator     led.Indicator
	configTimeout time.Duration
	log           *logger.Logger
	listeners     []func(from, to Mode)
}

// NewMachine creates a machine with no resting mode yet; call Boot before
// driving it.
func NewMachine(inputs *Inputs, indicator led.Indicator, configTimeout time.Duration, log *logger.Logger) *Machine {
	if configTimeout <= 0 {
		configTimeout = DefaultConfigTimeout
	}
	return &Machine{
		inputs:        inputs,
		indicator:     indicator,
		configTimeout: configTimeout,
		log:           log,
		last:          ModeStandard,
	}
}

// OnSwitch registers fn to run after every applied transition.
func (m *Machine) OnSwitch(fn func(from, to Mode)) {
	m.listeners = append(m.listeners, fn)
}

// Boot enters the first resting mode: ConfigEntry when the red button was
// held through the threshold at power-on, Standard otherwise.
func (m *Machine) Boot(configEntry bool, now time.Time) {
	to := ModeStandard
	if configEntry {
		to = ModeConfig
	}
	m.enter(to, now)
}

// Mode returns the resting mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// LastNonMaintenance returns the mode Maintenance returns to.
func (m *Machine) LastNonMaintenance() Mode {
	return m.last
}

// Timers returns the live per-mode timers. The scheduler advances them.
func (m *Machine) Timers() *Timers {
	return &m.timers
}

// HandleInputs applies a completed button hold. It returns true while a
// hold that would change the mode is pending or was just applied, in which
// case the caller skips the rest of the iteration. Holds the current mode
// ignores never suspend the iteration.
func (m *Machine) HandleInputs(now time.Time) bool {
	pending, ok := m.inputs.PendingButton()
	if !ok {
		return false
	}
	if Request(m.mode, m.last, pending) == ModeNone {
		if b, taken := m.inputs.Take(now); taken {
			m.log.Debugw("hold ignored", "button", b, "mode", m.mode)
		}
		return false
	}
	b, ok := m.inputs.Take(now)
	if !ok {
		return true
	}
	m.Switch(Request(m.mode, m.last, b), now)
	return true
}

// Switch applies a transition to requested. It returns false, with no side
// effects, when the table does not allow it.
func (m *Machine) Switch(requested Mode, now time.Time) bool {
	if requested == ModeConfig {
		// only reachable through Boot
		return false
	}
	next := Apply(m.mode, requested)
	if next == m.mode {
		return false
	}
	m.enter(next, now)
	return true
}

func (m *Machine) enter(to Mode, now time.Time) {
	from := m.mode
	m.mode = to
	m.timers = Timers{}

	switch to {
	case ModeStandard, ModeEconomic:
		m.last = to
	case ModeConfig:
		m.timers.ConfigDeadline = now.Add(m.configTimeout)
		m.inputs.SetEnabled(false)
	}
	if from == ModeConfig {
		m.inputs.SetEnabled(true)
	}

	if err := m.indicator.SetColor(to.Color()); err != nil {
		m.log.Warnw("indicator update failed", "mode", to, "err", err)
	}
	m.log.Infow("mode switched", "from", from, "to", to)

	for _, fn := range m.listeners {
		fn(from, to)
	}
}

// TouchConfig pushes the ConfigEntry inactivity deadline out from now.
func (m *Machine) TouchConfig(now time.Time) {
	if m.mode == ModeConfig {
		m.timers.ConfigDeadline = now.Add(m.configTimeout)
	}
}

// ConfigExpired reports whether ConfigEntry has been idle past its deadline.
func (m *Machine) ConfigExpired(now time.Time) bool {
	return m.mode == ModeConfig && !now.Before(m.timers.ConfigDeadline)
}
