package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/feastverse/internal/domain"
	"github.com/roach88/feastverse/internal/state"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

func checkAssertion(s *state.State, a Assertion) error {
	switch a.Type {
	case AssertRoute:
		return assertRoute(s, a)
	case AssertCartLine:
		return assertCartLine(s, a)
	case AssertCartEmpty:
		return assertCartEmpty(s)
	case AssertCartCount:
		return assertCount(a.Type, *a.Count, s.Cart().Count())
	case AssertOrdersCount:
		return assertCount(a.Type, *a.Count, len(s.Orders()))
	case AssertOrderStatus:
		return assertOrderStatus(s, a)
	case AssertSetContains:
		return assertSetContains(s, a)
	case AssertAddress:
		return assertAddress(s, a)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertRoute(s *state.State, a Assertion) error {
	if string(s.Route()) == a.Route {
		return nil
	}
	return &AssertionError{Type: a.Type, Expected: a.Route, Actual: string(s.Route())}
}

// assertCartLine checks a line exists; a non-zero Qty must also match.
func assertCartLine(s *state.State, a Assertion) error {
	line, ok := s.Cart().Get(a.MenuItem)
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("line for %s", a.MenuItem),
			Actual:   fmt.Sprintf("no line (cart has %s)", describeCart(s.Cart())),
		}
	}
	if a.Qty != 0 && line.Qty != a.Qty {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s x%d", a.MenuItem, a.Qty),
			Actual:   fmt.Sprintf("%s x%d", a.MenuItem, line.Qty),
		}
	}
	return nil
}

func assertCartEmpty(s *state.State) error {
	if s.Cart().IsEmpty() {
		return nil
	}
	return &AssertionError{Type: AssertCartEmpty, Expected: "empty cart", Actual: describeCart(s.Cart())}
}

func assertCount(typ string, want, got int) error {
	if want == got {
		return nil
	}
	return &AssertionError{Type: typ, Expected: fmt.Sprintf("%d", want), Actual: fmt.Sprintf("%d", got)}
}

func assertOrderStatus(s *state.State, a Assertion) error {
	var (
		order domain.Order
		ok    bool
	)
	if a.Order == "" {
		if orders := s.Orders(); len(orders) > 0 {
			order, ok = orders[0], true
		}
	} else {
		order, ok = s.Order(a.Order)
	}

	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("order %q with status %q", a.Order, a.Status),
			Actual:   "order not found",
		}
	}
	if string(order.Status) != a.Status {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s %q", order.ID, a.Status),
			Actual:   fmt.Sprintf("%s %q", order.ID, order.Status),
		}
	}
	return nil
}

func assertSetContains(s *state.State, a Assertion) error {
	var set domain.IDSet
	switch a.Set {
	case "likes":
		set = s.Likes()
	case "follows":
		set = s.Follows()
	case "subscriptions":
		set = s.Subscriptions()
	}

	want := a.Present == nil || *a.Present
	if set.Has(a.ID) == want {
		return nil
	}
	verb := "to contain"
	if !want {
		verb = "not to contain"
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%s %s %q", a.Set, verb, a.ID),
		Actual:   fmt.Sprintf("%s = %v", a.Set, set.IDs()),
	}
}

func assertAddress(s *state.State, a Assertion) error {
	if s.Address() == *a.Address {
		return nil
	}
	return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%q", *a.Address), Actual: fmt.Sprintf("%q", s.Address())}
}

func describeCart(c state.Cart) string {
	if c.IsEmpty() {
		return "nothing"
	}
	parts := make([]string, 0, c.Len())
	for _, line := range c.Lines() {
		parts = append(parts, fmt.Sprintf("%s x%d", line.MenuItem.ID, line.Qty))
	}
	return strings.Join(parts, ", ")
}
