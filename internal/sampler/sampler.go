// Package sampler runs the per-mode acquisition cadence: it decides when a
// sample is due, reads the collaborators in a fixed order and hands the
// record to storage or the operator console.
package sampler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sweeney/envlogger/internal/config"
	"github.com/sweeney/envlogger/internal/fault"
	"github.com/sweeney/envlogger/internal/gps"
	"github.com/sweeney/envlogger/internal/logfile"
	"github.com/sweeney/envlogger/internal/logger"
	"github.com/sweeney/envlogger/internal/logic"
	"github.com/sweeney/envlogger/internal/rtc"
	"github.com/sweeney/envlogger/internal/sensor"
	"github.com/sweeney/envlogger/internal/status"
)

// GPSPolicy selects how Maintenance reads the GPS.
type GPSPolicy string

const (
	GPSEvery     GPSPolicy = "every"
	GPSAlternate GPSPolicy = "alternate"
	GPSOff       GPSPolicy = "off"
)

// Valid reports whether p is a known policy.
func (p GPSPolicy) Valid() bool {
	switch p {
	case GPSEvery, GPSAlternate, GPSOff:
		return true
	}
	return false
}

// Cadence is the sampling period of mode for the configured interval.
func Cadence(mode logic.Mode, interval time.Duration) time.Duration {
	if mode == logic.ModeEconomic {
		return 2 * interval
	}
	return interval
}

// Deps are the collaborators a Sampler reads and writes.
type Deps struct {
	Config  *config.Owner
	Clock   rtc.Clock
	Light   sensor.Light
	Climate sensor.Climate
	GPS     *gps.Policy
	Writer  *logfile.Writer
	Console io.Writer
	Tracker *status.Tracker
}

// Sampler is driven from the main loop only.
type Sampler struct {
	Deps
	maintenanceGPS GPSPolicy
	log            *logger.Logger
}

// New creates a sampler. An invalid maintenance policy falls back to every.
func New(deps Deps, maintenanceGPS GPSPolicy, log *logger.Logger) *Sampler {
	if !maintenanceGPS.Valid() {
		maintenanceGPS = GPSEvery
	}
	return &Sampler{Deps: deps, maintenanceGPS: maintenanceGPS, log: log}
}

// Step samples when mode samples and the deadline in timers has passed. It
// returns true when a sample was taken. Errors are *fault.Error values,
// except for ctx cancellation.
func (s *Sampler) Step(ctx context.Context, now time.Time, mode logic.Mode, timers *logic.Timers) (bool, error) {
	if !mode.Samples() {
		return false, nil
	}
	if !timers.NextSample.IsZero() && now.Before(timers.NextSample) {
		return false, nil
	}
	cfg := s.Config.Snapshot()
	timers.NextSample = now.Add(Cadence(mode, cfg.Interval()))

	rec, err := s.sample(ctx, mode, timers, cfg)
	if err != nil {
		return false, err
	}
	line := rec.Line()

	if mode.Persists() {
		if err := s.Writer.Append(line, rec.Timestamp, int(cfg.FileMaxSize)); err != nil {
			return false, err
		}
		s.Tracker.SetFile(s.Writer.Revision(), s.Writer.Size())
		fmt.Fprintf(s.Console, "%sR : %d ; %s\n", strings.TrimSuffix(line, "\n"),
			s.Writer.Revision(), humanize.Bytes(uint64(s.Writer.Size())))
	} else {
		fmt.Fprint(s.Console, line)
	}
	s.Tracker.RecordSample(strings.TrimSuffix(line, "\n"), now, mode.Persists())
	s.log.Debugw("sample taken", "mode", mode, "record", strings.TrimSpace(line))
	return true, nil
}

// readGPS decides whether this pass reads the GPS and advances the
// alternation toggle.
func (s *Sampler) readGPS(mode logic.Mode, timers *logic.Timers) bool {
	alternate := func() bool {
		read := !timers.SkipGPS
		timers.SkipGPS = !timers.SkipGPS
		return read
	}
	switch mode {
	case logic.ModeEconomic:
		return alternate()
	case logic.ModeMaintenance:
		switch s.maintenanceGPS {
		case GPSAlternate:
			return alternate()
		case GPSOff:
			return false
		}
	}
	return true
}

func (s *Sampler) sample(ctx context.Context, mode logic.Mode, timers *logic.Timers, cfg config.Configuration) (Record, error) {
	var rec Record

	ts, err := s.Clock.Now()
	if err != nil {
		return rec, fault.New(fault.KindClock, err)
	}
	rec.Timestamp = ts

	if s.readGPS(mode, timers) {
		pos, err := s.GPS.Read(ctx, cfg.ReadTimeout())
		if err != nil {
			return rec, err
		}
		if pos == gps.NotAvailable {
			s.Tracker.RecordGPSTimeout()
		}
		rec.GPS = pos
	}

	if cfg.LuminosityEnabled {
		v, err := s.Light.Read()
		if err != nil {
			return rec, fault.New(fault.KindSensor, fmt.Errorf("light: %w", err))
		}
		rec.Light = sensor.Classify(v, int(cfg.LuminosityLow), int(cfg.LuminosityHigh))
	}

	if !cfg.ThermometerEnabled && !cfg.HygrometerEnabled && !cfg.PressureEnabled {
		return rec, nil
	}
	r, err := s.Climate.Read()
	if err != nil {
		return rec, fault.New(fault.KindSensor, fmt.Errorf("climate: %w", err))
	}
	if cfg.ThermometerEnabled && cfg.TemperatureValid(r.Temperature) {
		rec.Temperature = &r.Temperature
	}
	if cfg.HygrometerEnabled && cfg.HygrometryAllowed(r.Temperature) {
		rec.Humidity = &r.Humidity
	}
	if cfg.PressureEnabled && cfg.PressureValid(r.Pressure) {
		rec.Pressure = &r.Pressure
	}
	return rec, nil
}
