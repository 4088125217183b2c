// Package core runs the logger: the boot sequence and one main-loop
// iteration combining button handling, mode changes, sampling and the
// configuration console.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/sweeney/envlogger/internal/command"
	"github.com/sweeney/envlogger/internal/config"
	"github.com/sweeney/envlogger/internal/gpio"
	"github.com/sweeney/envlogger/internal/logfile"
	"github.com/sweeney/envlogger/internal/logger"
	"github.com/sweeney/envlogger/internal/logic"
	"github.com/sweeney/envlogger/internal/sampler"
	"github.com/sweeney/envlogger/internal/status"
)

// bootPoll is how often the red button is re-read during the boot hold check.
const bootPoll = 10 * time.Millisecond

// Console is the operator line source.
type Console interface {
	Poll() (string, bool)
	ShowPrompt()
}

// Deps are the parts a Device drives.
type Deps struct {
	Buttons  gpio.Buttons
	Inputs   *logic.Inputs
	Machine  *logic.Machine
	Sampler  *sampler.Sampler
	Commands *command.Interpreter
	Console  Console
	Config   *config.Owner
	Writer   *logfile.Writer
	Tracker  *status.Tracker

	// Now and Sleep default to the wall clock.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// Device is driven from a single goroutine; only the button callbacks run
// elsewhere, and they touch nothing but Inputs.
type Device struct {
	Deps
	log *logger.Logger
}

// New wires a device. Boot must run before Step.
func New(deps Deps, log *logger.Logger) *Device {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	d := &Device{Deps: deps, log: log}
	d.Machine.OnSwitch(d.switched)
	return d
}

// Boot picks the first mode and starts listening to the buttons. Holding red
// through the threshold at power-on enters ConfigEntry.
func (d *Device) Boot() error {
	d.Tracker.SetConfiguration(d.Config.Snapshot())

	configEntry, err := d.redHeldAtBoot()
	if err != nil {
		return fmt.Errorf("boot button check: %w", err)
	}
	d.Machine.Boot(configEntry, d.Now())

	d.Buttons.Watch(func(b logic.Button, pressed bool) {
		d.Inputs.Edge(b, pressed, d.Now())
	})
	return nil
}

// redHeldAtBoot waits, at most the hold threshold, for the red button to be
// released.
func (d *Device) redHeldAtBoot() (bool, error) {
	pressed, err := d.Buttons.Pressed(logic.ButtonRed)
	if err != nil || !pressed {
		return false, err
	}
	deadline := d.Now().Add(d.Inputs.Hold())
	d.log.Infow("red button held at boot", "hold", d.Inputs.Hold())
	for {
		d.Sleep(bootPoll)
		pressed, err = d.Buttons.Pressed(logic.ButtonRed)
		if err != nil {
			return false, err
		}
		if !pressed {
			d.log.Infow("red button released early, booting normally")
			return false, nil
		}
		if !d.Now().Before(deadline) {
			return true, nil
		}
	}
}

// Mode returns the resting mode.
func (d *Device) Mode() logic.Mode {
	return d.Machine.Mode()
}

// Step runs one loop iteration at now. Returned errors are faults (see
// fault.KindOf) or ctx cancellation.
func (d *Device) Step(ctx context.Context, now time.Time) error {
	if d.Machine.HandleInputs(now) {
		return nil
	}
	mode := d.Machine.Mode()
	if mode == logic.ModeConfig {
		return d.stepConfig(now)
	}
	d.discardConsole()
	_, err := d.Sampler.Step(ctx, now, mode, d.Machine.Timers())
	return err
}

func (d *Device) stepConfig(now time.Time) error {
	for {
		line, ok := d.Console.Poll()
		if !ok {
			break
		}
		res, err := d.Commands.Execute(line)
		if err != nil {
			return err
		}
		if res.Accepted {
			d.Machine.TouchConfig(now)
		}
		if res.Exit {
			d.Machine.Switch(logic.ModeStandard, now)
			return nil
		}
		d.Console.ShowPrompt()
	}
	if d.Machine.ConfigExpired(now) {
		d.log.Infow("configuration idle, leaving")
		d.Machine.Switch(logic.ModeStandard, now)
	}
	return nil
}

// discardConsole drops input typed outside ConfigEntry so the reader never
// stalls.
func (d *Device) discardConsole() {
	for {
		line, ok := d.Console.Poll()
		if !ok {
			return
		}
		d.log.Debugw("console input ignored outside configuration", "line", line)
	}
}

func (d *Device) switched(from, to logic.Mode) {
	d.Tracker.SetMode(to, d.Machine.LastNonMaintenance())
	switch to {
	case logic.ModeMaintenance:
		// the card may be pulled while in Maintenance
		if err := d.Writer.Close(); err != nil {
			d.log.Warnw("closing log file failed", "err", err)
		}
	case logic.ModeConfig:
		d.Console.ShowPrompt()
	}
}

// Close releases the log file and the button lines.
func (d *Device) Close() error {
	werr := d.Writer.Close()
	berr := d.Buttons.Close()
	if werr != nil {
		return werr
	}
	return berr
}
