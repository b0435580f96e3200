package testutil

import (
	"sync"
	"time"
)

// FakeTimer is a timer that fires only when the test says so.
type FakeTimer struct {
	Delay time.Duration

	mu      sync.Mutex
	f       func()
	stopped bool
	fired   bool
}

// Stop prevents the timer from firing. Reports whether it was still
// pending, like time.Timer.Stop.
func (t *FakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

// Stopped reports whether Stop was called.
func (t *FakeTimer) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Fire runs the callback synchronously unless the timer was stopped or
// already fired. Reports whether the callback ran.
func (t *FakeTimer) Fire() bool {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.mu.Unlock()
		return false
	}
	t.fired = true
	f := t.f
	t.mu.Unlock()

	f()
	return true
}

// FakeTimers creates FakeTimers and remembers them in creation order.
type FakeTimers struct {
	mu     sync.Mutex
	timers []*FakeTimer
}

// NewFakeTimers returns an empty timer factory.
func NewFakeTimers() *FakeTimers {
	return &FakeTimers{}
}

// AfterFunc registers f to run when the returned timer is fired.
func (ft *FakeTimers) AfterFunc(d time.Duration, f func()) *FakeTimer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &FakeTimer{Delay: d, f: f}
	ft.timers = append(ft.timers, t)
	return t
}

// All returns every timer created so far.
func (ft *FakeTimers) All() []*FakeTimer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	out := make([]*FakeTimer, len(ft.timers))
	copy(out, ft.timers)
	return out
}

// Live returns the timers that are neither stopped nor fired.
func (ft *FakeTimers) Live() []*FakeTimer {
	var out []*FakeTimer
	for _, t := range ft.All() {
		t.mu.Lock()
		live := !t.stopped && !t.fired
		t.mu.Unlock()
		if live {
			out = append(out, t)
		}
	}
	return out
}

// FireAll fires every live timer once, in creation order, and returns how
// many ran. Timers created by the callbacks are not fired in this pass.
func (ft *FakeTimers) FireAll() int {
	n := 0
	for _, t := range ft.Live() {
		if t.Fire() {
			n++
		}
	}
	return n
}
