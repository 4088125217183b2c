//go:build !linux

package led

import "errors"

// ChainableLED is not available on non-Linux platforms.
type ChainableLED struct{}

// NewChainableLED returns an error on non-Linux platforms.
func NewChainableLED(chipName string, clkPin, dataPin int) (*ChainableLED, error) {
	return nil, errors.New("led: not supported on this platform (requires Linux)")
}

// SetColor is not implemented on non-Linux platforms.
func (l *ChainableLED) SetColor(c Color) error {
	return errors.New("led: not supported")
}

// Close is not implemented on non-Linux platforms.
func (l *ChainableLED) Close() error {
	return nil
}
