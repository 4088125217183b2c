package gps

import (
	"context"
	"sync"
)

// FakeReceiver replays scripted lines. When the script is exhausted ReadLine
// reports a deadline at once, so tests never wait for real timeouts.
type FakeReceiver struct {
	mu          sync.Mutex
	lines       []string
	unavailable bool
	err         error
	reads       int
}

// NewFakeReceiver queues lines.
func NewFakeReceiver(lines ...string) *FakeReceiver {
	return &FakeReceiver{lines: lines}
}

// Push queues more lines.
func (f *FakeReceiver) Push(lines ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, lines...)
}

// SetAvailable toggles the link.
func (f *FakeReceiver) SetAvailable(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unavailable = !ok
}

// SetError makes ReadLine fail with err once the script is exhausted.
func (f *FakeReceiver) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Available reports the scripted link state.
func (f *FakeReceiver) Available() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.unavailable
}

// ReadLine returns the next scripted line.
func (f *FakeReceiver) ReadLine(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.lines) == 0 {
		if f.err != nil {
			return "", f.err
		}
		return "", context.DeadlineExceeded
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

// Reads counts calls to ReadLine.
func (f *FakeReceiver) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}
