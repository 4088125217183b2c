package gpio

import (
	"errors"
	"sync"

	"github.com/sweeney/envlogger/internal/logic"
)

// FakeButtons is a test double whose levels are set by the test. Press and
// Release deliver edges synchronously to the installed handler.
type FakeButtons struct {
	mu      sync.Mutex
	levels  map[logic.Button]bool
	handler EdgeHandler

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Pressed()
	ReadError error
}

// NewFakeButtons creates FakeButtons with both buttons released.
func NewFakeButtons() *FakeButtons {
	return &FakeButtons{levels: make(map[logic.Button]bool)}
}

// Pressed returns the scripted level of b.
func (f *FakeButtons) Pressed(b logic.Button) (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Closed {
		return false, errors.New("buttons closed")
	}
	return f.levels[b], nil
}

// Watch installs the edge callback.
func (f *FakeButtons) Watch(h EdgeHandler) {
	f.mu.Lock()
	f.handler = h
	f.mu.Unlock()
}

// Press sets b down and delivers a press edge.
func (f *FakeButtons) Press(b logic.Button) {
	f.set(b, true)
}

// Release sets b up and delivers a release edge.
func (f *FakeButtons) Release(b logic.Button) {
	f.set(b, false)
}

// Hold sets the level of b without delivering an edge, as if it was held
// before the lines were requested.
func (f *FakeButtons) Hold(b logic.Button, pressed bool) {
	f.mu.Lock()
	f.levels[b] = pressed
	f.mu.Unlock()
}

func (f *FakeButtons) set(b logic.Button, pressed bool) {
	f.mu.Lock()
	f.levels[b] = pressed
	h := f.handler
	f.mu.Unlock()
	if h != nil {
		h(b, pressed)
	}
}

// Close marks the buttons as closed.
func (f *FakeButtons) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
