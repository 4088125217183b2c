//go:build linux

package rtc

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// DeviceClock drives a Linux RTC character device through its ioctls.
type DeviceClock struct {
	path string
}

// NewDeviceClock opens path once to make sure the device is usable.
func NewDeviceClock(path string) (*DeviceClock, error) {
	c := &DeviceClock{path: path}
	if _, err := c.read(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *DeviceClock) withFd(flags int, fn func(fd int) error) error {
	fd, err := unix.Open(c.path, flags|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.path, err)
	}
	defer unix.Close(fd)
	return fn(fd)
}

func (c *DeviceClock) read() (*unix.RTCTime, error) {
	var rt *unix.RTCTime
	err := c.withFd(unix.O_RDONLY, func(fd int) error {
		var err error
		rt, err = unix.IoctlGetRTCTime(fd)
		if err != nil {
			return fmt.Errorf("RTC_RD_TIME: %w", err)
		}
		return nil
	})
	return rt, err
}

func (c *DeviceClock) write(rt *unix.RTCTime) error {
	return c.withFd(unix.O_RDWR, func(fd int) error {
		if err := unix.IoctlSetRTCTime(fd, rt); err != nil {
			return fmt.Errorf("RTC_SET_TIME: %w", err)
		}
		return nil
	})
}

// Now reads the RTC. The hardware keeps UTC.
func (c *DeviceClock) Now() (time.Time, error) {
	rt, err := c.read()
	if err != nil {
		return time.Time{}, err
	}
	return fromRTC(rt), nil
}

// Set writes t to the RTC.
func (c *DeviceClock) Set(t time.Time) error {
	return c.write(toRTC(t))
}

// SetWeekday rewrites the stored weekday, keeping date and time.
func (c *DeviceClock) SetWeekday(day int) error {
	if err := checkWeekday(day); err != nil {
		return err
	}
	rt, err := c.read()
	if err != nil {
		return err
	}
	rt.Wday = int32(day - 1)
	return c.write(rt)
}

func fromRTC(rt *unix.RTCTime) time.Time {
	return time.Date(int(rt.Year)+1900, time.Month(rt.Mon+1), int(rt.Mday),
		int(rt.Hour), int(rt.Min), int(rt.Sec), 0, time.UTC)
}

func toRTC(t time.Time) *unix.RTCTime {
	t = t.UTC()
	return &unix.RTCTime{
		Sec:  int32(t.Second()),
		Min:  int32(t.Minute()),
		Hour: int32(t.Hour()),
		Mday: int32(t.Day()),
		Mon:  int32(t.Month()) - 1,
		Year: int32(t.Year()) - 1900,
		Wday: int32(t.Weekday()),
		Yday: int32(t.YearDay()) - 1,
	}
}
