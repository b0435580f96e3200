// Package lifecycle drives order status progression.
//
// Orders move preparing -> pickup -> on the way -> delivered, one step per
// ADVANCE_ORDER_STATUS dispatch. Nothing inside the state tree advances an
// order on its own; the Scheduler here keeps one pending timer per active
// order and dispatches the next step when it fires.
//
// Timers are tracked by order id and every one of them is cancelled on
// Stop, so a torn-down view never dispatches against stale state.
package lifecycle
