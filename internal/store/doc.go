// Package store implements the client state container.
//
// A Store owns exactly one *state.State and replaces it wholesale on every
// dispatch. It is constructed explicitly and handed to whoever needs it;
// there is no package-level instance.
//
// ARCHITECTURE:
//
// Single-Writer Dispatch Loop:
// All dispatches are processed by Run in one goroutine, in FIFO order.
// Each dispatch fully completes (stamp, reduce, install, notify) before the
// next one is dequeued. Timer callbacks and UI events therefore never race;
// they are serialized through the same queue.
//
// Dispatch Flow:
//  1. Dispatch / DispatchWait enqueue an action (safe from any goroutine)
//  2. Run dequeues actions one at a time
//  3. PLACE_ORDER is stamped with a fresh order id and creation time
//  4. state.Reduce computes the next state
//  5. The new state is installed; readers see it through State()
//  6. Observers run, then subscribers are notified if identity changed
//
// Readers never block the writer: State() is an atomic pointer load and the
// state it returns is immutable.
package store
