package status

import (
	"encoding/json"
	"time"

	"github.com/dustin/go-humanize"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Mode          string            `json:"mode"`
	LastMode      string            `json:"last_mode"`
	Fault         string            `json:"fault,omitempty"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	StartTime     string            `json:"start_time"`
	Timestamp     string            `json:"timestamp"`
	LastSample    string            `json:"last_sample,omitempty"`
	LastRecord    string            `json:"last_record,omitempty"`
	Counts        CountsJSON        `json:"counts"`
	File          FileJSON          `json:"file"`
	Configuration ConfigurationJSON `json:"configuration"`
	Settings      SettingsJSON      `json:"settings"`
}

// CountsJSON is the JSON representation of running totals.
type CountsJSON struct {
	Samples     int `json:"samples"`
	Written     int `json:"written"`
	GPSTimeouts int `json:"gps_timeouts"`
}

// FileJSON describes the in-progress log file.
type FileJSON struct {
	Revision int    `json:"revision"`
	Size     int64  `json:"size"`
	Human    string `json:"size_human"`
}

// ConfigurationJSON is the measurement configuration keyed by command name.
type ConfigurationJSON struct {
	Lumin       bool   `json:"LUMIN"`
	LuminLow    uint16 `json:"LUMIN_LOW"`
	LuminHigh   uint16 `json:"LUMIN_HIGH"`
	TempAir     bool   `json:"TEMP_AIR"`
	MinTempAir  int16  `json:"MIN_TEMP_AIR"`
	MaxTempAir  int16  `json:"MAX_TEMP_AIR"`
	Hygr        bool   `json:"HYGR"`
	HygrMinT    int16  `json:"HYGR_MINT"`
	HygrMaxT    int16  `json:"HYGR_MAXT"`
	Pressure    bool   `json:"PRESSURE"`
	PressureMin uint16 `json:"PRESSURE_MIN"`
	PressureMax uint16 `json:"PRESSURE_MAX"`
	LogInterval uint8  `json:"LOG_INTERVALL"`
	Timeout     uint16 `json:"TIMEOUT"`
	FileMaxSize uint16 `json:"FILE_MAX_SIZE"`
}

// SettingsJSON is the JSON representation of daemon wiring.
type SettingsJSON struct {
	PollMs         int64  `json:"poll_ms"`
	HoldMs         int64  `json:"hold_ms"`
	DebounceMs     int64  `json:"debounce_ms"`
	StorageDir     string `json:"storage_dir"`
	MaintenanceGPS string `json:"maintenance_gps"`
}

func modeName(m string) string {
	if m == "" {
		return "UNKNOWN"
	}
	return m
}

func buildInner(snap Snapshot) StatusInner {
	c := snap.Configuration
	inner := StatusInner{
		Mode:          modeName(string(snap.Mode)),
		LastMode:      modeName(string(snap.LastMode)),
		Fault:         snap.Fault,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		LastRecord:    snap.LastRecord,
		Counts: CountsJSON{
			Samples:     snap.Counts.Samples,
			Written:     snap.Counts.Written,
			GPSTimeouts: snap.Counts.GPSTimeouts,
		},
		File: FileJSON{
			Revision: snap.Revision,
			Size:     snap.FileSize,
			Human:    humanize.Bytes(uint64(snap.FileSize)),
		},
		Configuration: ConfigurationJSON{
			Lumin:       c.LuminosityEnabled,
			LuminLow:    c.LuminosityLow,
			LuminHigh:   c.LuminosityHigh,
			TempAir:     c.ThermometerEnabled,
			MinTempAir:  c.TemperatureMin,
			MaxTempAir:  c.TemperatureMax,
			Hygr:        c.HygrometerEnabled,
			HygrMinT:    c.HygrometryMinTemp,
			HygrMaxT:    c.HygrometryMaxTemp,
			Pressure:    c.PressureEnabled,
			PressureMin: c.PressureMin,
			PressureMax: c.PressureMax,
			LogInterval: c.LogInterval,
			Timeout:     c.GPSTimeout,
			FileMaxSize: c.FileMaxSize,
		},
		Settings: SettingsJSON{
			PollMs:         snap.Settings.PollMs,
			HoldMs:         snap.Settings.HoldMs,
			DebounceMs:     snap.Settings.DebounceMs,
			StorageDir:     snap.Settings.StorageDir,
			MaintenanceGPS: snap.Settings.MaintenanceGPS,
		},
	}
	if !snap.LastSampleAt.IsZero() {
		inner.LastSample = snap.LastSampleAt.UTC().Format(time.RFC3339)
	}
	return inner
}

// FormatJSON returns the indented JSON status printed by STATUS.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
