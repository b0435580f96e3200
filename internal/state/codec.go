package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/feastverse/internal/domain"
)

// DecodeError reports a tagged action record that could not be decoded.
type DecodeError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if e.Kind != "" {
		msg = fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("decode action: %s: %v", msg, e.Err)
	}
	return "decode action: " + msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError returns true if err is (or wraps) a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// record is the tagged wire form {"type": KIND, "payload": ...}.
type record struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type navigatePayload struct {
	Route  domain.Route `json:"route"`
	Params Params       `json:"params,omitempty"`
}

type addToCartPayload struct {
	MenuItem     domain.MenuItem `json:"menuItem"`
	RestaurantID string          `json:"restaurantId"`
	Qty          int             `json:"qty,omitempty"`
}

type menuItemIDPayload struct {
	MenuItemID string `json:"menuItemId"`
}

type updateQtyPayload struct {
	MenuItemID string `json:"menuItemId"`
	Qty        int    `json:"qty"`
}

type placeOrderPayload struct {
	Total     float64    `json:"total"`
	EtaMins   int        `json:"etaMins"`
	OrderID   string     `json:"orderId,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type orderIDPayload struct {
	OrderID string `json:"orderId"`
}

type reelIDPayload struct {
	ReelID string `json:"reelId"`
}

type restaurantIDPayload struct {
	RestaurantID string `json:"restaurantId"`
}

// EncodeAction renders a as a tagged record.
func EncodeAction(a Action) ([]byte, error) {
	var payload any
	switch a := a.(type) {
	case Navigate:
		payload = navigatePayload{Route: a.Route, Params: a.Params}
	case AddToCart:
		payload = addToCartPayload{MenuItem: a.MenuItem, RestaurantID: a.RestaurantID, Qty: a.Qty}
	case RemoveFromCart:
		payload = menuItemIDPayload{MenuItemID: a.MenuItemID}
	case UpdateQty:
		payload = updateQtyPayload{MenuItemID: a.MenuItemID, Qty: a.Qty}
	case SetAddress:
		payload = a.Address
	case PlaceOrder:
		p := placeOrderPayload{Total: a.Total, EtaMins: a.EtaMins, OrderID: a.OrderID}
		if !a.CreatedAt.IsZero() {
			at := a.CreatedAt.UTC()
			p.CreatedAt = &at
		}
		payload = p
	case AdvanceOrderStatus:
		payload = orderIDPayload{OrderID: a.OrderID}
	case ToggleLike:
		payload = reelIDPayload{ReelID: a.ReelID}
	case ToggleFollow:
		payload = restaurantIDPayload{RestaurantID: a.RestaurantID}
	case ToggleSubscription:
		payload = restaurantIDPayload{RestaurantID: a.RestaurantID}
	case Unknown:
		return json.Marshal(record{Type: a.Type, Payload: a.Payload})
	case nil:
		return nil, &DecodeError{Message: "nil action"}
	default:
		return nil, &DecodeError{Kind: a.Kind(), Message: fmt.Sprintf("unsupported action type %T", a)}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", a.Kind(), err)
	}
	return json.Marshal(record{Type: a.Kind(), Payload: raw})
}

// DecodeAction parses a tagged record. Records with an unrecognised type
// decode to Unknown rather than failing, so the reducer can treat them as
// the identity.
func DecodeAction(data []byte) (Action, error) {
	var rec record
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&rec); err != nil {
		return nil, &DecodeError{Message: "malformed record", Err: err}
	}
	if rec.Type == "" {
		return nil, &DecodeError{Message: "missing type"}
	}
	return DecodePayload(rec.Type, rec.Payload)
}

// DecodePayload builds the action for kind from its raw payload.
func DecodePayload(kind Kind, payload json.RawMessage) (Action, error) {
	switch kind {
	case KindNavigate:
		var p navigatePayload
		if err := unmarshalPayload(kind, payload, &p); err != nil {
			return nil, err
		}
		if !p.Route.Valid() {
			return nil, &DecodeError{Kind: kind, Message: fmt.Sprintf("unknown route %q", p.Route)}
		}
		return Navigate{Route: p.Route, Params: p.Params}, nil

	case KindAddToCart:
		var p addToCartPayload
		if err := unmarshalPayload(kind, payload, &p); err != nil {
			return nil, err
		}
		if p.MenuItem.ID == "" {
			return nil, &DecodeError{Kind: kind, Message: "menuItem.id is required"}
		}
		return AddToCart{MenuItem: p.MenuItem, RestaurantID: p.RestaurantID, Qty: p.Qty}, nil

	case KindRemoveFromCart:
		var p menuItemIDPayload
		if err := unmarshalPayload(kind, payload, &p); err != nil {
			return nil, err
		}
		return RemoveFromCart{MenuItemID: p.MenuItemID}, nil

	case KindUpdateQty:
		var p updateQtyPayload
		if err := unmarshalPayload(kind, payload, &p); err != nil {
			return nil, err
		}
		return UpdateQty{MenuItemID: p.MenuItemID, Qty: p.Qty}, nil

	case KindSetAddress:
		var address string
		if err := unmarshalPayload(kind, payload, &address); err != nil {
			return nil, err
		}
		return SetAddress{Address: address}, nil

	case KindPlaceOrder:
		var p placeOrderPayload
		if err := unmarshalPayload(kind, payload, &p); err != nil {
			return nil, err
		}
		a := PlaceOrder{Total: p.Total, EtaMins: p.EtaMins, OrderID: p.OrderID}
		if p.CreatedAt != nil {
			a.CreatedAt = p.CreatedAt.UTC()
		}
		return a, nil

	case KindAdvanceOrderStatus:
		var p orderIDPayload
		if err := unmarshalPayload(kind, payload, &p); err != nil {
			return nil, err
		}
		return AdvanceOrderStatus{OrderID: p.OrderID}, nil

	case KindToggleLike:
		var p reelIDPayload
		if err := unmarshalPayload(kind, payload, &p); err != nil {
			return nil, err
		}
		return ToggleLike{ReelID: p.ReelID}, nil

	case KindToggleFollow:
		var p restaurantIDPayload
		if err := unmarshalPayload(kind, payload, &p); err != nil {
			return nil, err
		}
		return ToggleFollow{RestaurantID: p.RestaurantID}, nil

	case KindToggleSubscription:
		var p restaurantIDPayload
		if err := unmarshalPayload(kind, payload, &p); err != nil {
			return nil, err
		}
		return ToggleSubscription{RestaurantID: p.RestaurantID}, nil

	default:
		raw := make(json.RawMessage, len(payload))
		copy(raw, payload)
		return Unknown{Type: kind, Payload: raw}, nil
	}
}

func unmarshalPayload(kind Kind, payload json.RawMessage, v any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return &DecodeError{Kind: kind, Message: "missing payload"}
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return &DecodeError{Kind: kind, Message: "invalid payload", Err: err}
	}
	return nil
}
