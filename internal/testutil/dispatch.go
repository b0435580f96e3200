package testutil

import (
	"sync"

	"github.com/roach88/feastverse/internal/state"
)

// RecordingDispatcher captures dispatched actions instead of reducing them.
type RecordingDispatcher struct {
	mu      sync.Mutex
	actions []state.Action
	closed  bool
}

// Dispatch records a. Returns false after Close.
func (d *RecordingDispatcher) Dispatch(a state.Action) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.actions = append(d.actions, a)
	return true
}

// Actions returns a copy of everything dispatched so far.
func (d *RecordingDispatcher) Actions() []state.Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]state.Action, len(d.actions))
	copy(out, d.actions)
	return out
}

// Close makes further dispatches fail, like a stopped store.
func (d *RecordingDispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}
