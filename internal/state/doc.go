// Package state holds the client state tree and its pure reducer.
//
// State is an immutable aggregate. Every transition goes through Reduce,
// which takes the previous state and an Action and returns the next one:
//
//	next := state.Reduce(prev, state.AddToCart{MenuItem: item, RestaurantID: "rest1"})
//
// Reduce never mutates its input. When an action has no effect (removing an
// absent cart line, advancing a delivered order, an unknown action kind) it
// returns the very same pointer, so consumers detect change with a plain
// pointer comparison. Sub-collections that an action does not touch are
// shared between the old and new state; they are never written after
// construction.
//
// Actions form a closed sum type: Action is sealed by an unexported method
// and every kind has its own statically typed payload struct. The tagged
// record form ({"type": ..., "payload": ...}) is handled by EncodeAction
// and DecodeAction.
package state
