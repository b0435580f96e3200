// Package domain provides the shared shapes of the Feastverse client.
//
// This package contains type definitions and small value helpers only.
// Every other internal package imports domain; domain imports nothing
// internal. This keeps it the foundational layer with no cycles.
//
// Key design constraints:
//   - Values are immutable once handed to the state tree
//   - IDSet never mutates in place; Toggle produces a new set
//   - OrderStatus only moves forward, one step at a time
//   - All JSON tags use camelCase to match the client's tagged action records
package domain
