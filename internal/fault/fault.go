// Package fault classifies unrecoverable conditions and latches the device
// into the fail-safe blink display.
package fault

import (
	"errors"
	"fmt"
	"time"

	"github.com/sweeney/envlogger/internal/led"
)

// Kind is a class of unrecoverable condition.
type Kind string

const (
	KindClock       Kind = "CLOCK"
	KindGPS         Kind = "GPS"
	KindSensor      Kind = "SENSOR"
	KindData        Kind = "DATA"
	KindStorageFull Kind = "STORAGE_FULL"
	KindStorageRead Kind = "STORAGE_READ"
)

// Kinds lists every fault kind.
var Kinds = []Kind{KindClock, KindGPS, KindSensor, KindData, KindStorageFull, KindStorageRead}

// Error carries a fault kind through ordinary error returns.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind) + " fault"
	}
	return fmt.Sprintf("%s fault: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err as a fault of the given kind.
func New(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the fault kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

// Pattern is a two-color blink. Over one period the first color shows for
// 1/(Ratio+1) and the second for Ratio/(Ratio+1).
type Pattern struct {
	First  led.Color
	Second led.Color
	Ratio  int
}

// Patterns maps every fault kind to its display.
var Patterns = map[Kind]Pattern{
	KindClock:       {First: led.Red, Second: led.Blue, Ratio: 1},
	KindGPS:         {First: led.Red, Second: led.Yellow, Ratio: 1},
	KindSensor:      {First: led.Red, Second: led.Green, Ratio: 1},
	KindData:        {First: led.Red, Second: led.Green, Ratio: 2},
	KindStorageFull: {First: led.Red, Second: led.White, Ratio: 1},
	KindStorageRead: {First: led.Red, Second: led.White, Ratio: 2},
}

// PatternFor returns the display for kind. Unknown kinds show the data
// fault pattern.
func PatternFor(kind Kind) Pattern {
	if p, ok := Patterns[kind]; ok {
		return p
	}
	return Patterns[KindData]
}

// Durations splits period between the two colors.
func (p Pattern) Durations(period time.Duration) (first, second time.Duration) {
	r := p.Ratio
	if r < 1 {
		r = 1
	}
	first = period / time.Duration(r+1)
	second = period * time.Duration(r) / time.Duration(r+1)
	return first, second
}
