package console

import "sync"

// FakeConsole is a scripted line source for tests.
type FakeConsole struct {
	mu      sync.Mutex
	lines   []string
	prompts int
}

// Push queues lines for Poll.
func (f *FakeConsole) Push(lines ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, lines...)
}

// Poll returns the next queued line.
func (f *FakeConsole) Poll() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lines) == 0 {
		return "", false
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, true
}

// ShowPrompt counts prompts.
func (f *FakeConsole) ShowPrompt() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts++
}

// Prompts returns how many prompts were shown.
func (f *FakeConsole) Prompts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompts
}

// Pending returns how many lines are still queued.
func (f *FakeConsole) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lines)
}
