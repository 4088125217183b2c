//go:build !linux

package gps

import (
	"context"
	"errors"
)

// DefaultBaud is the NMEA 0183 line rate.
const DefaultBaud = 9600

// SerialReceiver is a stub for non-Linux platforms.
type SerialReceiver struct{}

// NewSerialReceiver returns an error on non-Linux platforms.
func NewSerialReceiver(path string, baud int) (*SerialReceiver, error) {
	return nil, errors.New("serial GPS is only supported on Linux")
}

// Available always reports false.
func (s *SerialReceiver) Available() bool {
	return false
}

// ReadLine is a no-op stub.
func (s *SerialReceiver) ReadLine(ctx context.Context) (string, error) {
	return "", ErrUnavailable
}

// Close is a no-op stub.
func (s *SerialReceiver) Close() error {
	return nil
}
