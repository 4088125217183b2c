package sensor

import "sync"

// FakeLight returns a settable light level.
type FakeLight struct {
	mu    sync.Mutex
	value int
	err   error
	reads int
}

// Set changes the value returned by Read.
func (f *FakeLight) Set(v int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

// SetError makes Read fail with err. Nil clears it.
func (f *FakeLight) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Read returns the fake value.
func (f *FakeLight) Read() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.value, f.err
}

// Reads counts calls to Read.
func (f *FakeLight) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

// FakeClimate returns a settable reading.
type FakeClimate struct {
	mu      sync.Mutex
	reading Reading
	err     error
	reads   int
}

// Set changes the reading returned by Read.
func (f *FakeClimate) Set(r Reading) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reading = r
}

// SetError makes Read fail with err. Nil clears it.
func (f *FakeClimate) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Read returns the fake reading.
func (f *FakeClimate) Read() (Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.reading, f.err
}

// Reads counts calls to Read.
func (f *FakeClimate) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}
