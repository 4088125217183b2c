// Package gps reads NMEA sentences from the GPS receiver and applies the
// two-strike timeout policy.
package gps

import (
	"context"
	"errors"
	"strings"
)

// NotAvailable is recorded in place of a position when a read times out.
const NotAvailable = "N/A"

var (
	// ErrUnavailable means the serial link is down.
	ErrUnavailable = errors.New("gps link unavailable")
	// ErrTimeout means no fix record arrived in time.
	ErrTimeout = errors.New("gps read timed out")
)

// Receiver is a line-oriented GPS serial link.
type Receiver interface {
	// Available reports whether the link is usable.
	Available() bool
	// ReadLine blocks until a full sentence arrives or ctx is done. On
	// deadline it returns an error matching context.DeadlineExceeded.
	ReadLine(ctx context.Context) (string, error)
}

// IsFixRecord reports whether line is a GGA fix sentence from any talker.
func IsFixRecord(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) >= 6 && line[0] == '$' && line[3:6] == "GGA"
}
