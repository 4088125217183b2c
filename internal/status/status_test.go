package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/envlogger/internal/config"
	"github.com/sweeney/envlogger/internal/logic"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	settings := Settings{PollMs: 100, HoldMs: 5000, StorageDir: "/var/lib/envlogger"}
	tr := NewTracker(start, settings)

	snap := tr.Snapshot()
	assert.True(t, snap.StartTime.Equal(start))
	assert.EqualValues(t, 100, snap.Settings.PollMs)
	assert.Equal(t, logic.ModeNone, snap.Mode)
	assert.Zero(t, snap.Counts.Samples)
}

func TestRecordSample(t *testing.T) {
	tr := NewTracker(time.Now(), Settings{})
	at := time.Date(2026, 1, 1, 0, 0, 2, 0, time.UTC)

	tr.RecordSample("a ; ", at, true)
	tr.RecordSample("b ; ", at.Add(2*time.Second), false)
	tr.RecordGPSTimeout()

	snap := tr.Snapshot()
	assert.EqualValues(t, 2, snap.Counts.Samples)
	assert.EqualValues(t, 1, snap.Counts.Written)
	assert.EqualValues(t, 1, snap.Counts.GPSTimeouts)
	assert.Equal(t, "b ; ", snap.LastRecord)
	assert.True(t, snap.LastSampleAt.Equal(at.Add(2*time.Second)))
}

func TestSetModeAndFile(t *testing.T) {
	tr := NewTracker(time.Now(), Settings{})
	tr.SetMode(logic.ModeMaintenance, logic.ModeEconomic)
	tr.SetFile(3, 2048)
	tr.SetFault("GPS")

	snap := tr.Snapshot()
	assert.Equal(t, logic.ModeMaintenance, snap.Mode)
	assert.Equal(t, logic.ModeEconomic, snap.LastMode)
	assert.Equal(t, 3, snap.Revision)
	assert.EqualValues(t, 2048, snap.FileSize)
	assert.Equal(t, "GPS", snap.Fault)
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
	}
	assert.Equal(t, 15*time.Minute, snap.Uptime())
}

func TestSnapshotNowIsSet(t *testing.T) {
	tr := NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Settings{})

	before := time.Now()
	snap := tr.Snapshot()
	after := time.Now()

	assert.False(t, snap.Now.Before(before) || snap.Now.After(after),
		"Now (%v) not between %v and %v", snap.Now, before, after)
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(time.Now(), Settings{})
	tr.SetMode(logic.ModeStandard, logic.ModeStandard)

	snap1 := tr.Snapshot()
	tr.SetMode(logic.ModeEconomic, logic.ModeEconomic)

	assert.Equal(t, logic.ModeStandard, snap1.Mode, "snapshot should be a copy")
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Mode:          logic.ModeStandard,
		LastMode:      logic.ModeStandard,
		Counts:        Counts{Samples: 5, Written: 4, GPSTimeouts: 1},
		LastRecord:    "10:00:00-01/01/2026 ; ",
		LastSampleAt:  start.Add(14 * time.Minute),
		Revision:      2,
		FileSize:      4000,
		StartTime:     start,
		Now:           start.Add(15 * time.Minute),
		Configuration: config.Default(),
		Settings:      Settings{PollMs: 100, MaintenanceGPS: "every"},
	}

	var parsed StatusJSON
	require.NoError(t, json.Unmarshal(FormatJSON(snap), &parsed))

	assert.Equal(t, "STANDARD", parsed.Status.Mode)
	assert.EqualValues(t, 900, parsed.Status.UptimeSeconds)
	assert.EqualValues(t, 5, parsed.Status.Counts.Samples)
	assert.Equal(t, "4.0 kB", parsed.Status.File.Human)
	assert.EqualValues(t, 4096, parsed.Status.Configuration.FileMaxSize)
	assert.EqualValues(t, -10, parsed.Status.Configuration.MinTempAir)
	assert.Equal(t, "2026-01-01T00:14:00Z", parsed.Status.LastSample)
	assert.Empty(t, parsed.Status.Fault)
}

func TestFormatJSONUnknownMode(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(FormatJSON(snap), &raw))
	status := raw["status"].(map[string]interface{})
	assert.Equal(t, "UNKNOWN", status["mode"])
	assert.NotContains(t, status, "last_sample", "omitted before the first sample")
	assert.NotContains(t, status, "fault", "omitted when empty")
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Settings{})
	var wg sync.WaitGroup

	// Writer
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.SetMode(logic.ModeStandard, logic.ModeStandard)
			tr.RecordSample("x ; ", time.Now(), i%2 == 0)
			tr.SetFile(1, int64(i))
		}
	}()

	// Reader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := tr.Snapshot()
			_ = FormatJSON(snap)
		}
	}()

	wg.Wait()
}
