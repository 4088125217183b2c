// Package command interprets the operator's configuration commands while the
// device is in ConfigEntry.
package command

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sweeney/envlogger/internal/config"
	"github.com/sweeney/envlogger/internal/fault"
	"github.com/sweeney/envlogger/internal/logger"
	"github.com/sweeney/envlogger/internal/rtc"
	"github.com/sweeney/envlogger/internal/status"
)

// Build identifiers reported by VERSION.
const (
	ProgramVersion = 420
	DeviceID       = 69
)

// errValue marks a value the command rejects. It is reported to the
// operator, never escalated.
var errValue = errors.New("invalid value")

// Result describes what a line did.
type Result struct {
	// Accepted is true when the command ran; it pushes out the inactivity
	// deadline.
	Accepted bool
	// Exit asks to leave ConfigEntry.
	Exit bool
}

type command struct {
	name string
	run  func(in *Interpreter, value string) (Result, error)
}

// Deps are the collaborators the interpreter changes or reports on.
type Deps struct {
	Config  *config.Owner
	Clock   rtc.Clock
	Console io.Writer
	Tracker *status.Tracker
}

// Interpreter matches lines against the command table.
type Interpreter struct {
	Deps
	log      *logger.Logger
	commands map[string]command
}

// New creates an interpreter.
func New(deps Deps, log *logger.Logger) *Interpreter {
	in := &Interpreter{Deps: deps, log: log, commands: map[string]command{}}
	for _, c := range table {
		in.commands[c.name] = c
	}
	return in
}

// Execute runs one input line. A returned error is a fault; rejected
// commands are reported on the console and return a zero Result.
func (in *Interpreter) Execute(line string) (Result, error) {
	name, value, _ := strings.Cut(line, "=")
	name = strings.ToUpper(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if name == "" {
		return Result{}, nil
	}

	c, ok := in.commands[name]
	if !ok {
		fmt.Fprintln(in.Console, "Unknown cmd")
		in.log.Debugw("unknown command", "name", name)
		return Result{}, nil
	}

	res, err := c.run(in, value)
	if errors.Is(err, errValue) {
		fmt.Fprintf(in.Console, "Err %s : %s\n", name, value)
		in.log.Infow("command rejected", "name", name, "value", value, "err", err)
		return Result{}, nil
	}
	if err != nil {
		return Result{}, err
	}
	res.Accepted = true
	fmt.Fprintf(in.Console, "%s executed\n", name)
	in.log.Infow("command executed", "name", name, "value", value)
	return res, nil
}

// update applies and persists a configuration change. A persist failure is
// a data fault.
func (in *Interpreter) update(fn func(*config.Configuration)) error {
	if err := in.Config.Update(fn); err != nil {
		return fault.New(fault.KindData, err)
	}
	in.Tracker.SetConfiguration(in.Config.Snapshot())
	return nil
}

func flag(set func(*config.Configuration, bool)) func(*Interpreter, string) (Result, error) {
	return func(in *Interpreter, value string) (Result, error) {
		n, err := strconv.Atoi(value)
		if err != nil || (n != 0 && n != 1) {
			return Result{}, errValue
		}
		return Result{}, in.update(func(c *config.Configuration) { set(c, n == 1) })
	}
}

func ranged(min, max int, set func(*config.Configuration, int)) func(*Interpreter, string) (Result, error) {
	return func(in *Interpreter, value string) (Result, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n < min || n > max {
			return Result{}, errValue
		}
		return Result{}, in.update(func(c *config.Configuration) { set(c, n) })
	}
}

var table = []command{
	{"LUMIN", flag(func(c *config.Configuration, v bool) { c.LuminosityEnabled = v })},
	{"LUMIN_LOW", ranged(0, 1023, func(c *config.Configuration, v int) { c.LuminosityLow = uint16(v) })},
	{"LUMIN_HIGH", ranged(0, 1023, func(c *config.Configuration, v int) { c.LuminosityHigh = uint16(v) })},
	{"TEMP_AIR", flag(func(c *config.Configuration, v bool) { c.ThermometerEnabled = v })},
	{"MIN_TEMP_AIR", ranged(-40, 85, func(c *config.Configuration, v int) { c.TemperatureMin = int16(v) })},
	{"MAX_TEMP_AIR", ranged(-40, 85, func(c *config.Configuration, v int) { c.TemperatureMax = int16(v) })},
	{"HYGR", flag(func(c *config.Configuration, v bool) { c.HygrometerEnabled = v })},
	{"HYGR_MINT", ranged(-40, 85, func(c *config.Configuration, v int) { c.HygrometryMinTemp = int16(v) })},
	{"HYGR_MAXT", ranged(-40, 85, func(c *config.Configuration, v int) { c.HygrometryMaxTemp = int16(v) })},
	{"PRESSURE", flag(func(c *config.Configuration, v bool) { c.PressureEnabled = v })},
	{"PRESSURE_MIN", ranged(300, 1100, func(c *config.Configuration, v int) { c.PressureMin = uint16(v) })},
	{"PRESSURE_MAX", ranged(300, 1100, func(c *config.Configuration, v int) { c.PressureMax = uint16(v) })},
	{"LOG_INTERVALL", ranged(1, 255, func(c *config.Configuration, v int) { c.LogInterval = uint8(v) })},
	{"FILE_MAX_SIZE", ranged(100, 65535, func(c *config.Configuration, v int) { c.FileMaxSize = uint16(v) })},
	{"RESET", reset},
	{"TIMEOUT", ranged(1, 255, func(c *config.Configuration, v int) { c.GPSTimeout = uint16(v) })},
	{"CLOCK", setClock},
	{"DATE", setDate},
	{"DAY", setDay},
	{"VERSION", version},
	{"EXIT", exit},
	{"STATUS", showStatus},
}

func reset(in *Interpreter, _ string) (Result, error) {
	return Result{}, in.update(func(c *config.Configuration) { *c = config.Default() })
}

func version(in *Interpreter, _ string) (Result, error) {
	fmt.Fprintf(in.Console, "%d, ID %d\n", ProgramVersion, DeviceID)
	return Result{}, nil
}

func exit(*Interpreter, string) (Result, error) {
	return Result{Exit: true}, nil
}

func showStatus(in *Interpreter, _ string) (Result, error) {
	fmt.Fprintf(in.Console, "%s\n", status.FormatJSON(in.Tracker.Snapshot()))
	return Result{}, nil
}

// triple parses "A:B:C" into three integers.
func triple(value string) (a, b, c int, ok bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		n[i] = v
	}
	return n[0], n[1], n[2], true
}

// setRTC rewrites the clock with fn applied to its current reading. Clock
// failures are reported like bad values; the operator can retry.
func (in *Interpreter) setRTC(fn func(time.Time) time.Time) error {
	now, err := in.Clock.Now()
	if err != nil {
		in.log.Warnw("clock read failed", "err", err)
		return fmt.Errorf("%w: %v", errValue, err)
	}
	if err := in.Clock.Set(fn(now)); err != nil {
		in.log.Warnw("clock write failed", "err", err)
		return fmt.Errorf("%w: %v", errValue, err)
	}
	return nil
}

func setClock(in *Interpreter, value string) (Result, error) {
	h, m, s, ok := triple(value)
	if !ok || h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return Result{}, errValue
	}
	return Result{}, in.setRTC(func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), h, m, s, 0, t.Location())
	})
}

func setDate(in *Interpreter, value string) (Result, error) {
	mo, d, y, ok := triple(value)
	if !ok || mo < 1 || mo > 12 || y < 2000 || y > 2099 {
		return Result{}, errValue
	}
	// reject days the month does not have instead of normalizing them
	probe := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if d < 1 || probe.Day() != d {
		return Result{}, errValue
	}
	return Result{}, in.setRTC(func(t time.Time) time.Time {
		return time.Date(y, time.Month(mo), d, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
	})
}

func setDay(in *Interpreter, value string) (Result, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 7 {
		return Result{}, errValue
	}
	if err := in.Clock.SetWeekday(n); err != nil {
		in.log.Warnw("clock write failed", "err", err)
		return Result{}, fmt.Errorf("%w: %v", errValue, err)
	}
	return Result{}, nil
}
