// Package harness runs YAML conformance scenarios against a real store.
//
// A scenario is a list of steps (tagged actions, or "tick" to fire every
// pending order-advance timer once) followed by assertions on the final
// state. Runs are deterministic: order ids come from the scenario (or
// default to ord_1, ord_2, ...), the wall clock is frozen at Epoch, and
// lifecycle timers are fakes fired only by tick steps.
//
// RunWithGolden additionally compares the dispatch trace and the final
// state snapshot against testdata/golden/<name>.golden.
package harness
