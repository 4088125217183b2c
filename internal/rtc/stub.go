//go:build !linux

package rtc

import (
	"errors"
	"time"
)

// DeviceClock is a stub for non-Linux platforms.
type DeviceClock struct{}

// NewDeviceClock returns an error on non-Linux platforms.
func NewDeviceClock(path string) (*DeviceClock, error) {
	return nil, errors.New("RTC devices are only supported on Linux")
}

// Now is a no-op stub.
func (c *DeviceClock) Now() (time.Time, error) {
	return time.Time{}, errors.New("not supported")
}

// Set is a no-op stub.
func (c *DeviceClock) Set(t time.Time) error {
	return errors.New("not supported")
}

// SetWeekday is a no-op stub.
func (c *DeviceClock) SetWeekday(day int) error {
	return errors.New("not supported")
}
