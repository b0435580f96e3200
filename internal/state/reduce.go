package state

import (
	"fmt"
	"math"

	"github.com/roach88/feastverse/internal/domain"
)

// Reduce computes the state that follows s after a.
//
// Reduce is pure and total. It returns s itself when a has no effect, and a
// fresh *State otherwise; s is never modified.
func Reduce(s *State, a Action) *State {
	switch a := a.(type) {
	case Navigate:
		return navigate(s, a)
	case AddToCart:
		return addToCart(s, a)
	case RemoveFromCart:
		if _, ok := s.cart.Get(a.MenuItemID); !ok {
			return s
		}
		next := s.clone()
		next.cart = s.cart.without(a.MenuItemID)
		return next
	case UpdateQty:
		return updateQty(s, a)
	case SetAddress:
		if s.address == a.Address {
			return s
		}
		next := s.clone()
		next.address = a.Address
		return next
	case PlaceOrder:
		return placeOrder(s, a)
	case AdvanceOrderStatus:
		return advanceOrder(s, a.OrderID)
	case ToggleLike:
		next := s.clone()
		next.likes = s.likes.Toggle(a.ReelID)
		return next
	case ToggleFollow:
		next := s.clone()
		next.follows = s.follows.Toggle(a.RestaurantID)
		return next
	case ToggleSubscription:
		next := s.clone()
		next.subscriptions = s.subscriptions.Toggle(a.RestaurantID)
		return next
	default:
		return s
	}
}

func navigate(s *State, a Navigate) *State {
	if !a.Route.Valid() {
		return s
	}
	next := s.clone()
	next.route = a.Route
	next.params = a.Params.clone()
	return next
}

func addToCart(s *State, a AddToCart) *State {
	key := a.MenuItem.ID
	if key == "" {
		return s
	}
	qty := a.Qty
	if qty == 0 {
		qty = 1
	}
	prev, exists := s.cart.Get(key)
	if qty > 0 && prev.Qty > math.MaxInt-qty {
		return s
	}
	total := prev.Qty + qty
	if total <= 0 {
		// A negative add can only shrink a line; keep the qty >= 1 invariant.
		if !exists {
			return s
		}
		next := s.clone()
		next.cart = s.cart.without(key)
		return next
	}
	next := s.clone()
	next.cart = s.cart.with(domain.CartLine{
		MenuItem:     a.MenuItem,
		Qty:          total,
		RestaurantID: a.RestaurantID,
	})
	return next
}

func updateQty(s *State, a UpdateQty) *State {
	line, ok := s.cart.Get(a.MenuItemID)
	if !ok {
		return s
	}
	qty := max(0, a.Qty)
	if qty == line.Qty {
		return s
	}
	next := s.clone()
	if qty == 0 {
		next.cart = s.cart.without(a.MenuItemID)
		return next
	}
	line.Qty = qty
	next.cart = s.cart.with(line)
	return next
}

func placeOrder(s *State, a PlaceOrder) *State {
	id := a.OrderID
	if id == "" {
		id = sequentialOrderID(s)
	}
	order := domain.Order{
		ID:        id,
		Items:     s.cart.Lines(),
		Total:     a.Total,
		EtaMins:   a.EtaMins,
		Status:    domain.StatusPreparing,
		Address:   s.address,
		CreatedAt: a.CreatedAt,
	}
	orders := make([]domain.Order, 0, len(s.orders)+1)
	orders = append(orders, order)
	orders = append(orders, s.orders...)

	next := s.clone()
	next.orders = orders
	next.cart = Cart{}
	return next
}

// sequentialOrderID picks ord_<n> with the smallest n not already in use.
// Orders are never removed, so n starting at len+1 almost always hits.
func sequentialOrderID(s *State) string {
	for n := len(s.orders) + 1; ; n++ {
		id := fmt.Sprintf("ord_%d", n)
		if s.orderIndex(id) < 0 {
			return id
		}
	}
}

func advanceOrder(s *State, id string) *State {
	i := s.orderIndex(id)
	if i < 0 {
		return s
	}
	status, ok := s.orders[i].Status.Next()
	if !ok {
		return s
	}
	orders := make([]domain.Order, len(s.orders))
	copy(orders, s.orders)
	orders[i].Status = status

	next := s.clone()
	next.orders = orders
	return next
}
