// Package status provides a thread-safe status tracker for the envlogger
// daemon. It is read by the STATUS console command.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/envlogger/internal/config"
	"github.com/sweeney/envlogger/internal/logic"
)

// Settings contains daemon wiring for display.
type Settings struct {
	PollMs         int64
	HoldMs         int64
	DebounceMs     int64
	StorageDir     string
	MaintenanceGPS string
}

// Counts are running totals since start.
type Counts struct {
	Samples     int
	Written     int
	GPSTimeouts int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	Mode          logic.Mode
	LastMode      logic.Mode
	Counts        Counts
	LastRecord    string
	LastSampleAt  time.Time
	Revision      int
	FileSize      int64
	Fault         string
	StartTime     time.Time
	Now           time.Time
	Configuration config.Configuration
	Settings      Settings
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and settings.
func NewTracker(startTime time.Time, settings Settings) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Settings:  settings,
		},
	}
}

// SetMode records the resting mode and the mode Maintenance returns to.
func (t *Tracker) SetMode(mode, last logic.Mode) {
	t.mu.Lock()
	t.snap.Mode = mode
	t.snap.LastMode = last
	t.mu.Unlock()
}

// RecordSample records a completed sample. written reports whether it went
// to storage.
func (t *Tracker) RecordSample(record string, at time.Time, written bool) {
	t.mu.Lock()
	t.snap.Counts.Samples++
	if written {
		t.snap.Counts.Written++
	}
	t.snap.LastRecord = record
	t.snap.LastSampleAt = at
	t.mu.Unlock()
}

// RecordGPSTimeout counts a read that returned no fix.
func (t *Tracker) RecordGPSTimeout() {
	t.mu.Lock()
	t.snap.Counts.GPSTimeouts++
	t.mu.Unlock()
}

// SetFile records the log file revision and in-progress size.
func (t *Tracker) SetFile(rev int, size int64) {
	t.mu.Lock()
	t.snap.Revision = rev
	t.snap.FileSize = size
	t.mu.Unlock()
}

// SetFault records the fault the device latched into.
func (t *Tracker) SetFault(kind string) {
	t.mu.Lock()
	t.snap.Fault = kind
	t.mu.Unlock()
}

// SetConfiguration records the live measurement configuration.
func (t *Tracker) SetConfiguration(cfg config.Configuration) {
	t.mu.Lock()
	t.snap.Configuration = cfg
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
