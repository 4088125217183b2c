package rtc

import (
	"sync"
	"time"
)

// FakeClock is a settable clock for tests.
type FakeClock struct {
	mu      sync.Mutex
	t       time.Time
	weekday int
	err     error
}

// NewFakeClock starts at t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{t: t}
}

// Now returns the fake time, or the injected error.
func (f *FakeClock) Now() (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return time.Time{}, f.err
	}
	return f.t, nil
}

// Set replaces the fake time.
func (f *FakeClock) Set(t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.t = t
	return nil
}

// SetWeekday records day.
func (f *FakeClock) SetWeekday(day int) error {
	if err := checkWeekday(day); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.weekday = day
	return nil
}

// Advance moves the fake time forward.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

// Weekday returns the last weekday set.
func (f *FakeClock) Weekday() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.weekday
}

// SetError makes every later call fail with err. Nil clears it.
func (f *FakeClock) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}
