package domain

import "fmt"

// OrderStatus is a step in the order lifecycle.
type OrderStatus string

const (
	StatusPreparing OrderStatus = "preparing"
	StatusPickup    OrderStatus = "pickup"
	StatusOnTheWay  OrderStatus = "on the way"
	StatusDelivered OrderStatus = "delivered"
)

// lifecycle is the fixed forward-only sequence. Terminal status last.
var lifecycle = []OrderStatus{
	StatusPreparing,
	StatusPickup,
	StatusOnTheWay,
	StatusDelivered,
}

// Statuses returns the lifecycle in order.
func Statuses() []OrderStatus {
	out := make([]OrderStatus, len(lifecycle))
	copy(out, lifecycle)
	return out
}

// Next returns the status one step after s.
// Returns (s, false) when s is terminal or not a lifecycle status.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range lifecycle {
		if st == s && i+1 < len(lifecycle) {
			return lifecycle[i+1], true
		}
	}
	return s, false
}

// Terminal reports whether s is the last lifecycle status.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered
}

// Valid reports whether s is one of the lifecycle statuses.
func (s OrderStatus) Valid() bool {
	for _, st := range lifecycle {
		if st == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts a wire string into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return st, nil
}
