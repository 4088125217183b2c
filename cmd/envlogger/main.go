// Command envlogger runs the environmental data logger: button-selected
// modes, periodic sampling of clock, GPS, light and climate, and a rotating
// log on storage.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/sweeney/envlogger/internal/command"
	"github.com/sweeney/envlogger/internal/config"
	"github.com/sweeney/envlogger/internal/console"
	"github.com/sweeney/envlogger/internal/core"
	"github.com/sweeney/envlogger/internal/fault"
	"github.com/sweeney/envlogger/internal/gpio"
	"github.com/sweeney/envlogger/internal/gps"
	"github.com/sweeney/envlogger/internal/led"
	"github.com/sweeney/envlogger/internal/logfile"
	"github.com/sweeney/envlogger/internal/logger"
	"github.com/sweeney/envlogger/internal/logic"
	"github.com/sweeney/envlogger/internal/rtc"
	"github.com/sweeney/envlogger/internal/sampler"
	"github.com/sweeney/envlogger/internal/sensor"
	"github.com/sweeney/envlogger/internal/settings"
	"github.com/sweeney/envlogger/internal/status"
)

func main() {
	s, err := settings.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "envlogger: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(s.LogLevel)
	defer log.Sync()

	if err := run(s, log); err != nil {
		log.Errorw("fatal", "err", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(s settings.Settings, log *logger.Logger) error {
	buttons, err := gpio.NewRealButtons(s.Chip, gpio.Pins{Green: s.PinGreen, Red: s.PinRed}, s.Debounce)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}

	if s.PrintState {
		defer buttons.Close()
		return printState(buttons)
	}

	indicator, err := led.NewChainableLED(s.Chip, s.LEDClock, s.LEDData)
	if err != nil {
		buttons.Close()
		return fmt.Errorf("init led: %w", err)
	}
	defer indicator.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputs := logic.NewInputs(s.Hold)
	esc := fault.NewEscalator(indicator, inputs, s.BlinkPeriod, log.Named("fault"))
	tracker := status.NewTracker(time.Now(), status.Settings{
		PollMs:         s.Poll.Milliseconds(),
		HoldMs:         s.Hold.Milliseconds(),
		DebounceMs:     s.Debounce.Milliseconds(),
		StorageDir:     s.StorageDir,
		MaintenanceGPS: string(s.MaintenanceGPS),
	})

	// collaborators that fail here latch the matching fault, as a failed
	// read would later
	halt := func(kind fault.Kind, err error) error {
		buttons.Close()
		return escalate(ctx, esc, tracker, fault.New(kind, err), log)
	}

	fs := afero.NewOsFs()
	owner, err := loadConfiguration(fs, s.NVMPath, log)
	if err != nil {
		return halt(fault.KindData, err)
	}

	clock, err := openClock(s.RTCDevice)
	if err != nil {
		return halt(fault.KindClock, err)
	}

	receiver, err := gps.NewSerialReceiver(s.GPSDevice, s.GPSBaud)
	if err != nil {
		return halt(fault.KindGPS, err)
	}
	defer receiver.Close()

	cons := console.Stdio()
	writer := logfile.NewWriter(fs, s.StorageDir, log.Named("logfile"))
	machine := logic.NewMachine(inputs, indicator, s.ConfigTimeout, log.Named("mode"))

	smp := sampler.New(sampler.Deps{
		Config:  owner,
		Clock:   clock,
		Light:   sensor.NewADCLight(fs, s.ADCDevice, s.ADCChannel, s.ADCBits),
		Climate: sensor.NewBME280(fs, s.ClimateDevice),
		GPS:     gps.NewPolicy(receiver, log.Named("gps")),
		Writer:  writer,
		Console: cons,
		Tracker: tracker,
	}, s.MaintenanceGPS, log.Named("sampler"))

	cmds := command.New(command.Deps{
		Config:  owner,
		Clock:   clock,
		Console: cons,
		Tracker: tracker,
	}, log.Named("command"))

	device := core.New(core.Deps{
		Buttons:  buttons,
		Inputs:   inputs,
		Machine:  machine,
		Sampler:  smp,
		Commands: cmds,
		Console:  cons,
		Config:   owner,
		Writer:   writer,
		Tracker:  tracker,
	}, log)
	defer device.Close()

	if err := device.Boot(); err != nil {
		return err
	}
	cons.Start()

	log.Infow("started", "mode", device.Mode(), "poll", s.Poll, "hold", s.Hold,
		"storage", s.StorageDir, "maintenance_gps", s.MaintenanceGPS)

	ticker := time.NewTicker(s.Poll)
	defer ticker.Stop()

	return runLoop(ctx, device, esc, tracker, time.Now, ticker.C, log)
}

func loadConfiguration(fs afero.Fs, path string, log *logger.Logger) (*config.Owner, error) {
	mem, err := config.OpenFileMemory(fs, path, config.DefaultMemorySize)
	if err != nil {
		return nil, err
	}
	store := config.NewStore(mem)
	cfg, first, err := store.Bootstrap()
	if err != nil {
		return nil, err
	}
	if first {
		log.Infow("first run, default configuration written", "path", path)
	}
	return config.NewOwner(cfg, store), nil
}

func openClock(device string) (rtc.Clock, error) {
	if device == "" {
		return rtc.SystemClock{}, nil
	}
	return rtc.NewDeviceClock(device)
}

func printState(buttons gpio.Buttons) error {
	for _, b := range []logic.Button{logic.ButtonGreen, logic.ButtonRed} {
		pressed, err := buttons.Pressed(b)
		if err != nil {
			return fmt.Errorf("read %s: %w", b, err)
		}
		fmt.Printf("%s: %s\n", b, pressedString(pressed))
	}
	return nil
}

func pressedString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}

type stepper interface {
	Step(ctx context.Context, now time.Time) error
}

type halter interface {
	Halt(ctx context.Context, kind fault.Kind) error
}

func runLoop(ctx context.Context, device stepper, esc halter, tracker *status.Tracker, now func() time.Time, tick <-chan time.Time, log *logger.Logger) error {
	for {
		select {
		case <-ctx.Done():
			log.Infow("shutting down", "reason", context.Cause(ctx))
			return nil

		case <-tick:
			if err := device.Step(ctx, now()); err != nil {
				if ctx.Err() != nil {
					continue
				}
				return escalate(ctx, esc, tracker, err, log)
			}
		}
	}
}

// escalate latches a fault into the blink display until ctx is done. Errors
// that carry no fault kind are returned as they are.
func escalate(ctx context.Context, esc halter, tracker *status.Tracker, err error, log *logger.Logger) error {
	kind, ok := fault.KindOf(err)
	if !ok {
		return err
	}
	tracker.SetFault(string(kind))
	log.Errorw("unrecoverable fault", "kind", kind, "err", err)
	if herr := esc.Halt(ctx, kind); herr != nil && ctx.Err() == nil {
		return herr
	}
	return err
}
