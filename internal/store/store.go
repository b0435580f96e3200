package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/roach88/feastverse/internal/state"
)

var (
	// ErrStopped is returned when dispatching to a store whose loop has ended.
	ErrStopped = errors.New("store: stopped")

	// ErrAlreadyRunning is returned by a second concurrent call to Run.
	ErrAlreadyRunning = errors.New("store: already running")
)

// Store is the single-writer state container.
//
// Thread-safety model:
//   - Dispatch, DispatchWait, State, Seq, Subscribe: safe from any goroutine
//   - Run: exactly one goroutine; it is the only writer of the state
//
// INVARIANTS:
//   - the installed state is only ever replaced, never modified
//   - seq increases by exactly one per processed dispatch
//   - subscribers are notified only when state identity changes
type Store struct {
	current atomic.Pointer[state.State]
	queue   *dispatchQueue
	clock   *Clock
	ids     IDGenerator
	now     func() time.Time

	observers []Observer

	subMu   sync.Mutex
	subs    map[int]chan *state.State
	nextSub int
	closed  bool

	running atomic.Bool
}

// Option configures a Store.
type Option func(*Store)

// WithInitialState starts the store from s instead of state.Initial().
// Used when resuming from a replayed journal.
func WithInitialState(s *state.State) Option {
	return func(st *Store) {
		if s != nil {
			st.current.Store(s)
		}
	}
}

// WithIDGenerator overrides the order id source (default UUIDv7Generator).
func WithIDGenerator(g IDGenerator) Option {
	return func(st *Store) {
		st.ids = g
	}
}

// WithNow overrides the wall clock used to stamp order creation times.
func WithNow(now func() time.Time) Option {
	return func(st *Store) {
		st.now = now
	}
}

// WithObserver registers an observer. Observers run in registration order.
func WithObserver(o Observer) Option {
	return func(st *Store) {
		st.observers = append(st.observers, o)
	}
}

// WithStartSeq positions the logical clock, so that the first dispatch is
// numbered start+1.
func WithStartSeq(start int64) Option {
	return func(st *Store) {
		st.clock = NewClockAt(start)
	}
}

// New creates a Store holding state.Initial() unless overridden.
func New(opts ...Option) *Store {
	s := &Store{
		queue: newDispatchQueue(),
		clock: NewClock(),
		ids:   UUIDv7Generator{},
		now:   time.Now,
		subs:  make(map[int]chan *state.State),
	}
	s.current.Store(state.Initial())

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the latest installed state. The value is immutable.
func (s *Store) State() *state.State {
	return s.current.Load()
}

// Seq returns the number of the last processed dispatch.
func (s *Store) Seq() int64 {
	return s.clock.Current()
}

// Pending returns the number of queued, not yet processed dispatches.
func (s *Store) Pending() int {
	return s.queue.Len()
}

// Dispatch submits an action for processing by Run and returns immediately.
// Returns false if a is nil or the store has stopped.
func (s *Store) Dispatch(a state.Action) bool {
	if a == nil {
		return false
	}
	return s.queue.Enqueue(request{action: a})
}

// DispatchWait submits an action and blocks until Run has applied it,
// returning the state installed by that dispatch.
func (s *Store) DispatchWait(ctx context.Context, a state.Action) (*state.State, error) {
	if a == nil {
		return nil, errors.New("store: nil action")
	}
	reply := make(chan *state.State, 1)
	if !s.queue.Enqueue(request{action: a, reply: reply}) {
		return nil, ErrStopped
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case next, ok := <-reply:
		if !ok {
			return nil, ErrStopped
		}
		return next, nil
	}
}

// Subscribe returns a channel that receives the latest state whenever its
// identity changes, starting with the current state. The channel holds at
// most one value; a slow reader skips intermediate states and always sees
// the newest. The returned func unsubscribes and closes the channel. The
// channel is also closed when Run returns.
func (s *Store) Subscribe() (<-chan *state.State, func()) {
	ch := make(chan *state.State, 1)

	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.current.Load()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Run processes dispatches until ctx is cancelled.
//
// CRITICAL: call from exactly one goroutine. All reductions, observer calls
// and notifications happen here.
//
// Observer failures are logged and processing continues; the state has
// already been installed and the queue order must not depend on side
// effects.
func (s *Store) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	slog.Info("store starting", "seq", s.clock.Current())

	for {
		if r, ok := s.queue.TryDequeue(); ok {
			s.apply(ctx, r)
			continue
		}

		select {
		case <-ctx.Done():
			slog.Info("store stopping", "seq", s.clock.Current(), "reason", ctx.Err())
			s.shutdown()
			return ctx.Err()
		case <-s.queue.Wait():
		}
	}
}

func (s *Store) apply(ctx context.Context, r request) {
	a := s.stamp(r.action)
	prev := s.current.Load()
	next := state.Reduce(prev, a)
	seq := s.clock.Next()
	s.current.Store(next)

	ev := Event{Seq: seq, Action: a, Prev: prev, Next: next, At: s.now()}
	slog.Debug("dispatch applied", "seq", seq, "action", a.Kind(), "changed", ev.Changed())

	for _, o := range s.observers {
		if err := o.Observe(ctx, ev); err != nil {
			slog.Error("observer failed", "seq", seq, "action", a.Kind(), "error", err)
		}
	}

	if ev.Changed() {
		s.notify(next)
	}
	if r.reply != nil {
		r.reply <- next
	}
}

// stamp fills in the non-deterministic parts of an action so that Reduce
// stays pure and a journal replay reproduces the same state.
func (s *Store) stamp(a state.Action) state.Action {
	po, ok := a.(state.PlaceOrder)
	if !ok {
		return a
	}
	if po.OrderID == "" {
		po.OrderID = s.ids.Generate()
	}
	if po.CreatedAt.IsZero() {
		po.CreatedAt = s.now().UTC()
	}
	return po
}

func (s *Store) notify(next *state.State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- next:
		default:
			// Replace the stale value with the newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
}

func (s *Store) shutdown() {
	for _, r := range s.queue.Close() {
		if r.reply != nil {
			close(r.reply)
		}
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
