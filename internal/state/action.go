package state

import (
	"encoding/json"
	"time"

	"github.com/roach88/feastverse/internal/domain"
)

// Kind tags an action in its record form.
type Kind string

const (
	KindNavigate           Kind = "NAVIGATE"
	KindAddToCart          Kind = "ADD_TO_CART"
	KindRemoveFromCart     Kind = "REMOVE_FROM_CART"
	KindUpdateQty          Kind = "UPDATE_QTY"
	KindSetAddress         Kind = "SET_ADDRESS"
	KindPlaceOrder         Kind = "PLACE_ORDER"
	KindAdvanceOrderStatus Kind = "ADVANCE_ORDER_STATUS"
	KindToggleLike         Kind = "TOGGLE_LIKE"
	KindToggleFollow       Kind = "TOGGLE_FOLLOW"
	KindToggleSubscription Kind = "TOGGLE_SUBSCRIPTION"
)

// Kinds lists every action kind the reducer understands.
func Kinds() []Kind {
	return []Kind{
		KindNavigate,
		KindAddToCart,
		KindRemoveFromCart,
		KindUpdateQty,
		KindSetAddress,
		KindPlaceOrder,
		KindAdvanceOrderStatus,
		KindToggleLike,
		KindToggleFollow,
		KindToggleSubscription,
	}
}

// Action is a state transition request. The set of implementations is
// closed: only types in this package satisfy it.
type Action interface {
	Kind() Kind
	isAction()
}

// Navigate switches the current route. Nil Params means no params.
type Navigate struct {
	Route  domain.Route
	Params Params
}

// AddToCart upserts a cart line. Qty 0 means 1; quantities accumulate.
type AddToCart struct {
	MenuItem     domain.MenuItem
	RestaurantID string
	Qty          int
}

// RemoveFromCart deletes a cart line.
type RemoveFromCart struct {
	MenuItemID string
}

// UpdateQty sets a line's quantity. Values below zero clamp to zero and zero
// deletes the line.
type UpdateQty struct {
	MenuItemID string
	Qty        int
}

// SetAddress replaces the delivery address verbatim.
type SetAddress struct {
	Address string
}

// PlaceOrder snapshots the cart into a new order and clears the cart.
//
// OrderID and CreatedAt are stamped by the store before reduction so that
// Reduce stays pure. Left empty, Reduce derives a sequential id that is
// unique within the state.
type PlaceOrder struct {
	Total     float64
	EtaMins   int
	OrderID   string
	CreatedAt time.Time
}

// AdvanceOrderStatus moves an order one lifecycle step forward.
type AdvanceOrderStatus struct {
	OrderID string
}

// ToggleLike flips a reel's membership in likes.
type ToggleLike struct {
	ReelID string
}

// ToggleFollow flips a restaurant's membership in follows.
type ToggleFollow struct {
	RestaurantID string
}

// ToggleSubscription flips a restaurant's membership in subscriptions.
type ToggleSubscription struct {
	RestaurantID string
}

// Unknown carries a record whose type the reducer does not know.
// Reducing it is the identity.
type Unknown struct {
	Type    Kind
	Payload json.RawMessage
}

func (Navigate) Kind() Kind           { return KindNavigate }
func (AddToCart) Kind() Kind          { return KindAddToCart }
func (RemoveFromCart) Kind() Kind     { return KindRemoveFromCart }
func (UpdateQty) Kind() Kind          { return KindUpdateQty }
func (SetAddress) Kind() Kind         { return KindSetAddress }
func (PlaceOrder) Kind() Kind         { return KindPlaceOrder }
func (AdvanceOrderStatus) Kind() Kind { return KindAdvanceOrderStatus }
func (ToggleLike) Kind() Kind         { return KindToggleLike }
func (ToggleFollow) Kind() Kind       { return KindToggleFollow }
func (ToggleSubscription) Kind() Kind { return KindToggleSubscription }
func (u Unknown) Kind() Kind          { return u.Type }

func (Navigate) isAction()           {}
func (AddToCart) isAction()          {}
func (RemoveFromCart) isAction()     {}
func (UpdateQty) isAction()          {}
func (SetAddress) isAction()         {}
func (PlaceOrder) isAction()         {}
func (AdvanceOrderStatus) isAction() {}
func (ToggleLike) isAction()         {}
func (ToggleFollow) isAction()       {}
func (ToggleSubscription) isAction() {}
func (Unknown) isAction()            {}
