package logic

import (
	"sync"
	"time"
)

// Inputs is the button state shared between the GPIO edge callbacks and the
// main loop. Every read-modify-write happens under mu, so the loop never sees
// a request whose button and deadline disagree.
type Inputs struct {
	mu       sync.Mutex
	hold     time.Duration
	green    ButtonState
	red      ButtonState
	request  *TransitionRequest
	disabled bool
}

// NewInputs creates the shared input state. hold is the minimum continuous
// press before a hold counts as a mode-change request.
func NewInputs(hold time.Duration) *Inputs {
	if hold <= 0 {
		hold = DefaultHoldThreshold
	}
	return &Inputs{hold: hold}
}

func (in *Inputs) state(b Button) *ButtonState {
	if b == ButtonGreen {
		return &in.green
	}
	return &in.red
}

// Edge handles one debounced edge of button b. It is safe to call from the
// GPIO event goroutine. Edges are dropped while input is disabled or while
// the other button is held.
func (in *Inputs) Edge(b Button, pressed bool, now time.Time) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.disabled {
		return
	}
	if in.state(b.other()).Pressed {
		return
	}

	st := in.state(b)
	if pressed {
		if st.Pressed {
			// repeated press edge: keep the first hold start
			return
		}
		st.Pressed = true
		st.HoldDeadline = now.Add(in.hold)
		in.request = &TransitionRequest{Button: b, Deadline: st.HoldDeadline}
		return
	}

	st.Pressed = false
	st.HoldDeadline = time.Time{}
	if in.request != nil && in.request.Button == b {
		in.request = nil
	}
}

// PendingButton returns the button whose hold is in progress.
func (in *Inputs) PendingButton() (Button, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.request == nil {
		return "", false
	}
	return in.request.Button, true
}

// Take returns the held button once its hold deadline has passed, clearing
// both pressed flags and the request in the same critical section. It
// returns false while nothing is pending or the hold is still too short.
func (in *Inputs) Take(now time.Time) (Button, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.request == nil || now.Before(in.request.Deadline) {
		return "", false
	}
	b := in.request.Button
	in.request = nil
	in.green = ButtonState{}
	in.red = ButtonState{}
	return b, true
}

// SetEnabled enables or disables edge handling. Disabling also drops any
// pending request and pressed flags.
func (in *Inputs) SetEnabled(enabled bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.disabled = !enabled
	if !enabled {
		in.request = nil
		in.green = ButtonState{}
		in.red = ButtonState{}
	}
}

// Enabled reports whether edges are being handled.
func (in *Inputs) Enabled() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return !in.disabled
}

// Hold returns the hold threshold.
func (in *Inputs) Hold() time.Duration {
	return in.hold
}
