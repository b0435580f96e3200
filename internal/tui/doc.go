// Package tui is the interactive terminal front end: a bubbletea model
// that renders the store's current route and turns key presses into
// dispatched actions.
//
// The model never mutates state itself. It holds the latest snapshot
// delivered on the store's subscription channel and re-renders when a
// new one arrives; every user intent becomes a state.Action handed to a
// Dispatcher.
package tui
