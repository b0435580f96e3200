package state

import "github.com/roach88/feastverse/internal/domain"

// Snapshot is a plain, JSON-friendly copy of a State.
type Snapshot struct {
	Route         domain.Route      `json:"currentRoute"`
	RouteParams   Params            `json:"routeParams"`
	CartItems     []domain.CartLine `json:"cartItems"`
	Orders        []domain.Order    `json:"orders"`
	Address       string            `json:"address"`
	Likes         domain.IDSet      `json:"likes"`
	Follows       domain.IDSet      `json:"follows"`
	Subscriptions domain.IDSet      `json:"subscriptions"`
}

// Snapshot exports s.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Route:         s.route,
		RouteParams:   s.params.clone(),
		CartItems:     s.cart.Lines(),
		Orders:        s.Orders(),
		Address:       s.address,
		Likes:         s.likes,
		Follows:       s.follows,
		Subscriptions: s.subscriptions,
	}
}
