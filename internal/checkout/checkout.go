// Package checkout prices a cart and turns a confirmed checkout into the
// actions the store applies.
package checkout

import (
	"errors"
	"math"

	"github.com/roach88/feastverse/internal/api"
	"github.com/roach88/feastverse/internal/domain"
	"github.com/roach88/feastverse/internal/state"
)

// DefaultEtaMins is quoted when the first line's restaurant is unknown.
const DefaultEtaMins = 20

// ErrEmptyCart is returned by Place for a quote with no lines.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// RestaurantLookup finds a restaurant by id.
type RestaurantLookup interface {
	Restaurant(id string) (domain.Restaurant, bool)
}

// Quote is the priced summary of a cart.
type Quote struct {
	Lines        int     `json:"lines"`
	Items        int     `json:"items"`
	Subtotal     float64 `json:"subtotal"`
	DeliveryFee  float64 `json:"deliveryFee"`
	Total        float64 `json:"total"`
	EtaMins      int     `json:"etaMins"`
	RestaurantID string  `json:"restaurantId,omitempty"`

	// MixedRestaurants is set when lines come from more than one
	// restaurant. Fee and ETA still come from the first line only.
	MixedRestaurants bool `json:"mixedRestaurants,omitempty"`
}

// QuoteCart prices cart. Fee and ETA are those of the first line's
// restaurant; an unknown restaurant (or empty cart) quotes no fee and
// DefaultEtaMins.
func QuoteCart(cart state.Cart, restaurants RestaurantLookup) Quote {
	q := Quote{
		Lines:   cart.Len(),
		Items:   cart.Count(),
		EtaMins: DefaultEtaMins,
	}

	for _, line := range cart.Lines() {
		q.Subtotal += line.LineTotal()
	}
	q.Subtotal = roundCents(q.Subtotal)

	if first, ok := cart.First(); ok {
		q.RestaurantID = first.RestaurantID
		if r, ok := restaurants.Restaurant(first.RestaurantID); ok {
			q.DeliveryFee = r.DeliveryFee
			q.EtaMins = r.EtaMins
		}
		for _, line := range cart.Lines() {
			if line.RestaurantID != first.RestaurantID {
				q.MixedRestaurants = true
				break
			}
		}
	}

	q.Total = roundCents(q.Subtotal + q.DeliveryFee)
	return q
}

// Place returns the actions a confirmed checkout dispatches, in order:
// the delivery address, then the order itself.
func Place(address string, q Quote) ([]state.Action, error) {
	if q.Lines == 0 {
		return nil, ErrEmptyCart
	}
	return []state.Action{
		state.SetAddress{Address: address},
		state.PlaceOrder{Total: q.Total, EtaMins: q.EtaMins},
	}, nil
}

// OrderRequest maps a placed order onto the service's order-create body.
func OrderRequest(o domain.Order) api.OrderCreate {
	items := make([]api.OrderItemCreate, len(o.Items))
	for i, line := range o.Items {
		items[i] = api.OrderItemCreate{
			MenuItemID: line.MenuItem.ID,
			Name:       line.MenuItem.Name,
			Quantity:   line.Qty,
			Price:      line.MenuItem.Price,
		}
	}
	return api.OrderCreate{
		Items:   items,
		Total:   o.Total,
		EtaMins: o.EtaMins,
		Address: o.Address,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
