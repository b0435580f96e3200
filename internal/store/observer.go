package store

import (
	"context"
	"time"

	"github.com/roach88/feastverse/internal/state"
)

// Event describes one processed dispatch.
type Event struct {
	Seq    int64
	Action state.Action // as reduced, i.e. after stamping
	Prev   *state.State
	Next   *state.State
	At     time.Time
}

// Changed reports whether the dispatch replaced the state.
func (e Event) Changed() bool {
	return e.Prev != e.Next
}

// Observer is told about every processed dispatch, in order, on the
// store's loop goroutine. Observers must not call DispatchWait on the same
// store; that would deadlock the loop.
type Observer interface {
	Observe(ctx context.Context, ev Event) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event) error

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}
