//go:build linux

package led

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
	"go.uber.org/multierr"
)

// halfPeriod is the clock half period for the P9813 two-wire interface.
const halfPeriod = 20 * time.Microsecond

// ChainableLED drives a single P9813 RGB LED through two GPIO output lines.
type ChainableLED struct {
	mu   sync.Mutex
	chip *gpiocdev.Chip
	clk  *gpiocdev.Line
	data *gpiocdev.Line
}

// NewChainableLED requests the clock and data lines on the given chip.
func NewChainableLED(chipName string, clkPin, dataPin int) (*ChainableLED, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	clk, err := chip.RequestLine(clkPin, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("envlogger"))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request LED clock pin %d: %w", clkPin, err)
	}
	data, err := chip.RequestLine(dataPin, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("envlogger"))
	if err != nil {
		clk.Close()
		chip.Close()
		return nil, fmt.Errorf("request LED data pin %d: %w", dataPin, err)
	}
	return &ChainableLED{chip: chip, clk: clk, data: data}, nil
}

// SetColor clocks a full color update out to the LED.
func (l *ChainableLED) SetColor(c Color) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, bit := range bits(c) {
		v := 0
		if bit {
			v = 1
		}
		if err := l.data.SetValue(v); err != nil {
			return fmt.Errorf("set LED data: %w", err)
		}
		if err := l.clk.SetValue(0); err != nil {
			return fmt.Errorf("set LED clock: %w", err)
		}
		time.Sleep(halfPeriod)
		if err := l.clk.SetValue(1); err != nil {
			return fmt.Errorf("set LED clock: %w", err)
		}
		time.Sleep(halfPeriod)
	}
	return nil
}

// Close turns the LED off and releases the lines.
func (l *ChainableLED) Close() error {
	err := l.SetColor(Off)
	return multierr.Append(err, closeAll(
		namedCloser{"LED clock", l.clk},
		namedCloser{"LED data", l.data},
		namedCloser{"chip", l.chip},
	))
}
