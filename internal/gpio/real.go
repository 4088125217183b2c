//go:build linux

package gpio

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/envlogger/internal/logic"
)

// RealButtons reads buttons from actual hardware using the Linux GPIO
// character device. Edge events arrive on gpiocdev's event goroutine.
type RealButtons struct {
	chip  *gpiocdev.Chip
	green *gpiocdev.Line
	red   *gpiocdev.Line

	mu      sync.RWMutex
	handler EdgeHandler
}

// NewRealButtons requests both button lines as active-low inputs with
// pull-ups, kernel debounce and edge detection on both edges.
func NewRealButtons(chipName string, pins Pins, debounce time.Duration) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	b := &RealButtons{chip: chip}

	b.green, err = chip.RequestLine(pins.Green, b.lineOptions(logic.ButtonGreen, debounce)...)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request green pin %d: %w", pins.Green, err)
	}
	b.red, err = chip.RequestLine(pins.Red, b.lineOptions(logic.ButtonRed, debounce)...)
	if err != nil {
		b.green.Close()
		chip.Close()
		return nil, fmt.Errorf("request red pin %d: %w", pins.Red, err)
	}
	return b, nil
}

func (r *RealButtons) lineOptions(button logic.Button, debounce time.Duration) []gpiocdev.LineReqOption {
	return []gpiocdev.LineReqOption{
		gpiocdev.AsInput,
		gpiocdev.AsActiveLow,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithDebounce(debounce),
		gpiocdev.WithConsumer("envlogger"),
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			r.dispatch(button, evt.Type == gpiocdev.LineEventRisingEdge)
		}),
	}
}

func (r *RealButtons) dispatch(button logic.Button, pressed bool) {
	r.mu.RLock()
	h := r.handler
	r.mu.RUnlock()
	if h != nil {
		h(button, pressed)
	}
}

// Watch installs the edge callback.
func (r *RealButtons) Watch(h EdgeHandler) {
	r.mu.Lock()
	r.handler = h
	r.mu.Unlock()
}

// Pressed returns the logical level of b. The lines are active-low, so a
// logical 1 means the button is held down.
func (r *RealButtons) Pressed(b logic.Button) (bool, error) {
	line := r.green
	if b == logic.ButtonRed {
		line = r.red
	}
	v, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("read %s pin: %w", b, err)
	}
	return v == 1, nil
}

// Close releases GPIO resources.
func (r *RealButtons) Close() error {
	r.Watch(nil)

	var closers []namedCloser
	if r.green != nil {
		closers = append(closers, namedCloser{"green pin", r.green})
	}
	if r.red != nil {
		closers = append(closers, namedCloser{"red pin", r.red})
	}
	if r.chip != nil {
		closers = append(closers, namedCloser{"chip", r.chip})
	}
	return closeAll(closers...)
}
