//go:build !linux

package gpio

import (
	"errors"
	"time"

	"github.com/sweeney/envlogger/internal/logic"
)

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(chipName string, pins Pins, debounce time.Duration) (*RealButtons, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Pressed is not implemented on non-Linux platforms.
func (r *RealButtons) Pressed(b logic.Button) (bool, error) {
	return false, errors.New("gpio: not supported")
}

// Watch is a no-op on non-Linux platforms.
func (r *RealButtons) Watch(h EdgeHandler) {}

// Close is not implemented on non-Linux platforms.
func (r *RealButtons) Close() error {
	return nil
}
