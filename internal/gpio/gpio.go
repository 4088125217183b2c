// Package gpio provides the front-panel button inputs with hardware
// abstraction. The real implementation uses the Linux GPIO character device;
// the fake one lets tests script presses.
package gpio

import "github.com/sweeney/envlogger/internal/logic"

// EdgeHandler receives debounced logical edges. pressed is true on press.
// It may be called from a goroutine other than the main loop.
type EdgeHandler func(b logic.Button, pressed bool)

// Buttons reads the two active-low buttons.
type Buttons interface {
	// Pressed returns the current logical level of b.
	Pressed(b logic.Button) (bool, error)

	// Watch installs h as the edge callback. Edges before Watch are dropped.
	Watch(h EdgeHandler)

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering).
const (
	DefaultPinGreen = 17
	DefaultPinRed   = 27
)

// Pins maps each button to its BCM line offset.
type Pins struct {
	Green int
	Red   int
}
