package state

import (
	"encoding/json"
	"maps"
	"math"

	"github.com/roach88/feastverse/internal/domain"
)

// State is the whole client state tree (AppState).
//
// Fields are unexported; the accessors return copies or immutable values so
// that a snapshot handed to a reader can never be changed under the store.
type State struct {
	route         domain.Route
	params        Params
	cart          Cart
	orders        []domain.Order
	address       string
	likes         domain.IDSet
	follows       domain.IDSet
	subscriptions domain.IDSet
}

// Initial returns the fixed starting state: feed route, empty cart, no
// orders, empty sets.
func Initial() *State {
	return &State{
		route:  domain.RouteFeed,
		params: Params{},
	}
}

// Route is the current route.
func (s *State) Route() domain.Route { return s.route }

// Params returns a copy of the current route params.
func (s *State) Params() Params { return s.params.clone() }

// Param returns a single route param.
func (s *State) Param(key string) (any, bool) {
	v, ok := s.params[key]
	return v, ok
}

// Cart returns the cart.
func (s *State) Cart() Cart { return s.cart }

// Orders returns the orders, newest first.
func (s *State) Orders() []domain.Order {
	out := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = cloneOrder(o)
	}
	return out
}

// Order looks up an order by id.
func (s *State) Order(id string) (domain.Order, bool) {
	if i := s.orderIndex(id); i >= 0 {
		return cloneOrder(s.orders[i]), true
	}
	return domain.Order{}, false
}

// ActiveOrders returns the orders that are not yet delivered, newest first.
func (s *State) ActiveOrders() []domain.Order {
	var out []domain.Order
	for _, o := range s.orders {
		if o.Active() {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

// Address is the delivery address.
func (s *State) Address() string { return s.address }

// Likes is the set of liked reel ids.
func (s *State) Likes() domain.IDSet { return s.likes }

// Follows is the set of followed restaurant ids.
func (s *State) Follows() domain.IDSet { return s.follows }

// Subscriptions is the set of subscribed restaurant ids.
func (s *State) Subscriptions() domain.IDSet { return s.subscriptions }

func (s *State) orderIndex(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// clone makes a shallow copy. Collections stay shared; callers replace the
// ones they change.
func (s *State) clone() *State {
	c := *s
	return &c
}

func cloneOrder(o domain.Order) domain.Order {
	items := make([]domain.CartLine, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

// Params are route parameters. Their meaning depends on the route
// (restaurant needs "id", checkout carries "total" and "etaMins").
type Params map[string]any

func (p Params) clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// String returns a string param.
func (p Params) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// Float returns a numeric param as float64. Params decoded from JSON carry
// float64 or json.Number; params built in code may carry any Go number.
func (p Params) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Int returns a numeric param truncated to int.
func (p Params) Int(key string) (int, bool) {
	f, ok := p.Float(key)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
