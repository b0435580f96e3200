package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/feastverse/internal/domain"
)

func TestEncodeDecode_AllKinds(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	actions := []Action{
		Navigate{Route: domain.RouteRestaurant, Params: Params{"id": "rest1"}},
		AddToCart{MenuItem: itemA, RestaurantID: "rest1", Qty: 2},
		RemoveFromCart{MenuItemID: "A"},
		UpdateQty{MenuItemID: "A", Qty: -1},
		SetAddress{Address: "1 Loop"},
		PlaceOrder{Total: 13, EtaMins: 20, OrderID: "ord_1", CreatedAt: at},
		AdvanceOrderStatus{OrderID: "ord_1"},
		ToggleLike{ReelID: "r1"},
		ToggleFollow{RestaurantID: "rest1"},
		ToggleSubscription{RestaurantID: "rest1"},
	}

	for _, a := range actions {
		t.Run(string(a.Kind()), func(t *testing.T) {
			data, err := EncodeAction(a)
			require.NoError(t, err)

			got, err := DecodeAction(data)
			require.NoError(t, err)
			assert.Equal(t, a, got)
		})
	}
}

func TestDecodeAction_OriginalPayloadShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Action
	}{
		{
			name: "navigate without params",
			in:   `{"type":"NAVIGATE","payload":{"route":"orders"}}`,
			want: Navigate{Route: domain.RouteOrders},
		},
		{
			name: "set address is a bare string",
			in:   `{"type":"SET_ADDRESS","payload":"123 Main St"}`,
			want: SetAddress{Address: "123 Main St"},
		},
		{
			name: "place order without stamp",
			in:   `{"type":"PLACE_ORDER","payload":{"total":13,"etaMins":20}}`,
			want: PlaceOrder{Total: 13, EtaMins: 20},
		},
		{
			name: "add to cart default qty",
			in:   `{"type":"ADD_TO_CART","payload":{"menuItem":{"id":"m1","name":"Latte","price":4.5},"restaurantId":"rest3"}}`,
			want: AddToCart{MenuItem: domain.MenuItem{ID: "m1", Name: "Latte", Price: 4.5}, RestaurantID: "rest3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAction([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeAction_UnknownType(t *testing.T) {
	a, err := DecodeAction([]byte(`{"type":"SHARE_REEL","payload":{"reelId":"r1"}}`))
	require.NoError(t, err)

	u, ok := a.(Unknown)
	require.True(t, ok)
	assert.Equal(t, Kind("SHARE_REEL"), u.Kind())
	assert.JSONEq(t, `{"reelId":"r1"}`, string(u.Payload))

	s := Initial()
	assert.Same(t, s, Reduce(s, a))
}

func TestDecodeAction_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `nope`},
		{"missing type", `{"payload":{}}`},
		{"missing payload", `{"type":"TOGGLE_LIKE"}`},
		{"bad route", `{"type":"NAVIGATE","payload":{"route":"settings"}}`},
		{"bad payload type", `{"type":"UPDATE_QTY","payload":{"menuItemId":"A","qty":"two"}}`},
		{"menu item without id", `{"type":"ADD_TO_CART","payload":{"menuItem":{"name":"x"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAction([]byte(tt.in))
			require.Error(t, err)
			assert.True(t, IsDecodeError(err))
		})
	}
}

func TestEncodeAction_Nil(t *testing.T) {
	_, err := EncodeAction(nil)
	assert.True(t, IsDecodeError(err))
}

func TestSnapshot(t *testing.T) {
	s := reduceAll(Initial(),
		AddToCart{MenuItem: itemA, RestaurantID: "rest1"},
		ToggleLike{ReelID: "r2"},
		ToggleLike{ReelID: "r1"},
	)
	snap := s.Snapshot()
	assert.Equal(t, domain.RouteFeed, snap.Route)
	require.Len(t, snap.CartItems, 1)
	assert.Equal(t, []string{"r1", "r2"}, snap.Likes.IDs())
	assert.NotNil(t, snap.Orders)
}
