package lifecycle

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/roach88/feastverse/internal/state"
)

const (
	// DefaultBase is the delay before the first active order advances.
	DefaultBase = 3 * time.Second

	// DefaultStep is added per position in the active-order list, so that
	// several orders do not all advance at the same instant.
	DefaultStep = 2 * time.Second
)

// Dispatcher is the part of the store the scheduler needs.
type Dispatcher interface {
	Dispatch(a state.Action) bool
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// TimerFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type TimerFunc func(d time.Duration, f func()) Timer

func realTimer(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Scheduler owns the set of pending advancement timers, keyed by order id.
//
// Thread-safety: all methods are safe for concurrent use. Timer callbacks
// only enqueue a dispatch; they never touch state directly.
type Scheduler struct {
	dispatcher Dispatcher
	after      TimerFunc
	base       time.Duration
	step       time.Duration

	mu      sync.Mutex
	pending map[string]*entry
	stopped bool
}

// entry identifies one scheduled timer. fire compares entries by pointer so
// a stale callback cannot consume a newer timer for the same order.
type entry struct {
	timer Timer
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDelays overrides the base delay and per-position step.
func WithDelays(base, step time.Duration) Option {
	return func(s *Scheduler) {
		s.base = base
		s.step = step
	}
}

// WithTimerFunc overrides how timers are created (tests use fakes).
func WithTimerFunc(f TimerFunc) Option {
	return func(s *Scheduler) {
		s.after = f
	}
}

// New creates a Scheduler that dispatches to d.
func New(d Dispatcher, opts ...Option) *Scheduler {
	s := &Scheduler{
		dispatcher: d,
		after:      realTimer,
		base:       DefaultBase,
		step:       DefaultStep,
		pending:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule arranges for orderID to advance one step after delay.
// Returns false if a timer is already pending for the order or the
// scheduler has stopped.
func (s *Scheduler) Schedule(orderID string, delay time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}
	if _, ok := s.pending[orderID]; ok {
		return false
	}

	e := &entry{}
	e.timer = s.after(delay, func() { s.fire(orderID, e) })
	s.pending[orderID] = e
	slog.Debug("order advance scheduled", "order", orderID, "delay", delay)
	return true
}

// fire runs on the timer goroutine. A timer that was cancelled or replaced
// between firing and taking the lock is ignored.
func (s *Scheduler) fire(orderID string, e *entry) {
	s.mu.Lock()
	current, ok := s.pending[orderID]
	if !ok || current != e || s.stopped {
		s.mu.Unlock()
		return
	}
	delete(s.pending, orderID)
	s.mu.Unlock()

	if !s.dispatcher.Dispatch(state.AdvanceOrderStatus{OrderID: orderID}) {
		slog.Debug("order advance dropped, store stopped", "order", orderID)
	}
}

// Cancel stops the pending timer for orderID. Returns false if none was
// pending.
func (s *Scheduler) Cancel(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pending[orderID]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.pending, orderID)
	return true
}

// Pending returns the order ids with a timer outstanding, sorted.
func (s *Scheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Reconcile brings the pending timers in line with st: every active order
// without a timer gets one (delay base + position*step, position counted
// among active orders, newest first) and timers for orders that are
// delivered or gone are cancelled.
func (s *Scheduler) Reconcile(st *state.State) {
	active := st.ActiveOrders()
	want := make(map[string]bool, len(active))
	for _, o := range active {
		want[o.ID] = true
	}

	for _, id := range s.Pending() {
		if !want[id] {
			s.Cancel(id)
		}
	}
	for i, o := range active {
		s.Schedule(o.ID, s.base+time.Duration(i)*s.step)
	}
}

// Stop cancels every pending timer and refuses new ones. Safe to call more
// than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, e := range s.pending {
		e.timer.Stop()
		delete(s.pending, id)
	}
}

// Run reconciles on every state received from updates until ctx is done or
// updates is closed, then stops all timers.
func (s *Scheduler) Run(ctx context.Context, updates <-chan *state.State) {
	defer s.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			s.Reconcile(st)
		}
	}
}
