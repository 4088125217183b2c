// Package rtc reads and sets the battery-backed real-time clock.
package rtc

import (
	"errors"
	"fmt"
	"time"
)

// DefaultDevice is the first RTC character device.
const DefaultDevice = "/dev/rtc0"

// Clock is the real-time clock collaborator.
type Clock interface {
	// Now returns the current wall time.
	Now() (time.Time, error)
	// Set writes date and time.
	Set(t time.Time) error
	// SetWeekday stores the day of week, 1 (Sunday) to 7 (Saturday).
	SetWeekday(day int) error
}

// ErrReadOnly is returned by clocks that cannot be set.
var ErrReadOnly = errors.New("clock is read-only")

// ErrWeekday is returned for a day of week outside 1..7.
var ErrWeekday = errors.New("weekday out of range")

func checkWeekday(day int) error {
	if day < 1 || day > 7 {
		return fmt.Errorf("%w: %d", ErrWeekday, day)
	}
	return nil
}

// SystemClock reads the host clock. Used when no RTC device is configured.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() (time.Time, error) {
	return time.Now(), nil
}

// Set always fails; the host clock is not ours to change.
func (SystemClock) Set(time.Time) error {
	return ErrReadOnly
}

// SetWeekday always fails.
func (SystemClock) SetWeekday(day int) error {
	if err := checkWeekday(day); err != nil {
		return err
	}
	return ErrReadOnly
}
