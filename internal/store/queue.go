package store

import (
	"sync"

	"github.com/roach88/feastverse/internal/state"
)

// request is one queued dispatch. reply, when set, receives the state
// installed after the action was applied.
type request struct {
	action state.Action
	reply  chan *state.State
}

// dispatchQueue is a thread-safe unbounded FIFO of dispatch requests.
//
// Unbounded so that timer callbacks never block while the loop is busy.
// A buffered signal channel lets Run wait with context awareness.
type dispatchQueue struct {
	mu     sync.Mutex
	items  []request
	closed bool
	signal chan struct{} // buffered, size 1
}

func newDispatchQueue() *dispatchQueue {
	return &dispatchQueue{
		items:  make([]request, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends r. Returns false once the queue is closed.
func (q *dispatchQueue) Enqueue(r request) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.items = append(q.items, r)

	// Non-blocking: the single-slot buffer coalesces wakeups.
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// TryDequeue pops the front request without blocking.
func (q *dispatchQueue) TryDequeue() (request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return request{}, false
	}

	r := q.items[0]
	// Drop the reference so the backing array does not pin old actions.
	q.items[0] = request{}
	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}
	return r, true
}

// Wait signals that requests may be available.
func (q *dispatchQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of queued requests.
func (q *dispatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops further enqueues and wakes waiters. Requests still queued are
// returned so their waiters can be released.
func (q *dispatchQueue) Close() []request {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.signal)

	left := q.items
	q.items = nil
	return left
}
