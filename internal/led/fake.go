package led

import "sync"

// FakeIndicator records every color it is asked to show.
type FakeIndicator struct {
	mu     sync.Mutex
	colors []Color

	// SetError, if set, is returned by SetColor.
	SetError error
}

// NewFakeIndicator creates an empty FakeIndicator.
func NewFakeIndicator() *FakeIndicator {
	return &FakeIndicator{}
}

// SetColor records c.
func (f *FakeIndicator) SetColor(c Color) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.mu.Lock()
	f.colors = append(f.colors, c)
	f.mu.Unlock()
	return nil
}

// Colors returns a copy of the recorded colors in order.
func (f *FakeIndicator) Colors() []Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Color(nil), f.colors...)
}

// Last returns the most recent color, or Off if none was set.
func (f *FakeIndicator) Last() Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.colors) == 0 {
		return Off
	}
	return f.colors[len(f.colors)-1]
}
