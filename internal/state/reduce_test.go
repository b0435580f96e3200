package state

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/feastverse/internal/domain"
)

var (
	itemA = domain.MenuItem{ID: "A", Name: "Truffle Pasta", Price: 5, Available: true}
	itemB = domain.MenuItem{ID: "B", Name: "Tiramisu", Price: 3, Available: true}
)

func reduceAll(s *State, actions ...Action) *State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func TestInitial(t *testing.T) {
	s := Initial()
	assert.Equal(t, domain.RouteFeed, s.Route())
	assert.Empty(t, s.Params())
	assert.True(t, s.Cart().IsEmpty())
	assert.Empty(t, s.Orders())
	assert.Equal(t, "", s.Address())
	assert.Equal(t, 0, s.Likes().Len())
	assert.Equal(t, 0, s.Follows().Len())
	assert.Equal(t, 0, s.Subscriptions().Len())
}

func TestNavigate_LatestWins(t *testing.T) {
	s := reduceAll(Initial(),
		Navigate{Route: domain.RouteRestaurant, Params: Params{"id": "rest1"}},
		AddToCart{MenuItem: itemA, RestaurantID: "rest1"},
		Navigate{Route: domain.RouteCart},
		ToggleLike{ReelID: "r1"},
	)

	assert.Equal(t, domain.RouteCart, s.Route())
	assert.Empty(t, s.Params(), "params reset when NAVIGATE carries none")
}

func TestNavigate_ParamsCopied(t *testing.T) {
	params := Params{"id": "rest1"}
	s := Reduce(Initial(), Navigate{Route: domain.RouteRestaurant, Params: params})
	params["id"] = "rest2"

	id, ok := s.Params().String("id")
	require.True(t, ok)
	assert.Equal(t, "rest1", id)
}

func TestNavigate_InvalidRouteIsNoop(t *testing.T) {
	s := Initial()
	assert.Same(t, s, Reduce(s, Navigate{Route: "settings"}))
}

func TestAddToCart_Accumulates(t *testing.T) {
	s := reduceAll(Initial(),
		AddToCart{MenuItem: itemA, RestaurantID: "rest1", Qty: 1},
		AddToCart{MenuItem: itemA, RestaurantID: "rest1", Qty: 1},
	)

	require.Equal(t, 1, s.Cart().Len())
	line, ok := s.Cart().Get("A")
	require.True(t, ok)
	assert.Equal(t, 2, line.Qty)
	assert.Equal(t, "rest1", line.RestaurantID)
}

func TestAddToCart_ZeroQtyMeansOne(t *testing.T) {
	s := Reduce(Initial(), AddToCart{MenuItem: itemA, RestaurantID: "rest1"})
	line, _ := s.Cart().Get("A")
	assert.Equal(t, 1, line.Qty)
}

func TestAddToCart_NegativeNeverLeavesNonPositiveLine(t *testing.T) {
	s := Reduce(Initial(), AddToCart{MenuItem: itemA, RestaurantID: "rest1", Qty: 2})
	s = Reduce(s, AddToCart{MenuItem: itemA, RestaurantID: "rest1", Qty: -5})
	assert.True(t, s.Cart().IsEmpty())

	empty := Initial()
	assert.Same(t, empty, Reduce(empty, AddToCart{MenuItem: itemA, Qty: -1}))
}

func TestAddToCart_OverflowIsRejected(t *testing.T) {
	s := Reduce(Initial(), AddToCart{MenuItem: itemA, RestaurantID: "rest1", Qty: 1})
	next := Reduce(s, AddToCart{MenuItem: itemA, RestaurantID: "rest1", Qty: math.MaxInt})
	assert.Same(t, s, next)

	line, ok := next.Cart().Get("A")
	require.True(t, ok)
	assert.Equal(t, 1, line.Qty)

	full := Reduce(Initial(), AddToCart{MenuItem: itemA, RestaurantID: "rest1", Qty: math.MaxInt})
	line, _ = full.Cart().Get("A")
	assert.Equal(t, math.MaxInt, line.Qty)
}

func TestAddToCart_KeepsInsertionOrder(t *testing.T) {
	s := reduceAll(Initial(),
		AddToCart{MenuItem: itemB, RestaurantID: "rest2"},
		AddToCart{MenuItem: itemA, RestaurantID: "rest1"},
		AddToCart{MenuItem: itemB, RestaurantID: "rest2"},
	)

	lines := s.Cart().Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "B", lines[0].MenuItem.ID)
	assert.Equal(t, "A", lines[1].MenuItem.ID)
	assert.Equal(t, 3, s.Cart().Count())
}

func TestAddToCart_DoesNotMutatePrevious(t *testing.T) {
	s1 := Reduce(Initial(), AddToCart{MenuItem: itemA, RestaurantID: "rest1"})
	s2 := Reduce(s1, AddToCart{MenuItem: itemA, RestaurantID: "rest1"})

	l1, _ := s1.Cart().Get("A")
	l2, _ := s2.Cart().Get("A")
	assert.Equal(t, 1, l1.Qty)
	assert.Equal(t, 2, l2.Qty)
}

func TestRemoveFromCart(t *testing.T) {
	s := reduceAll(Initial(),
		AddToCart{MenuItem: itemA, RestaurantID: "rest1"},
		AddToCart{MenuItem: itemB, RestaurantID: "rest1"},
		RemoveFromCart{MenuItemID: "A"},
	)
	_, ok := s.Cart().Get("A")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Cart().Len())
}

func TestRemoveFromCart_MissingIsNoop(t *testing.T) {
	s := Reduce(Initial(), AddToCart{MenuItem: itemA, RestaurantID: "rest1"})
	assert.Same(t, s, Reduce(s, RemoveFromCart{MenuItemID: "nope"}))
}

func TestUpdateQty(t *testing.T) {
	base := Reduce(Initial(), AddToCart{MenuItem: itemA, RestaurantID: "rest1"})

	t.Run("sets quantity", func(t *testing.T) {
		s := Reduce(base, UpdateQty{MenuItemID: "A", Qty: 4})
		line, _ := s.Cart().Get("A")
		assert.Equal(t, 4, line.Qty)
	})

	t.Run("zero removes line", func(t *testing.T) {
		s := Reduce(base, UpdateQty{MenuItemID: "A", Qty: 0})
		assert.True(t, s.Cart().IsEmpty())
	})

	t.Run("negative clamps and removes", func(t *testing.T) {
		s := Reduce(base, UpdateQty{MenuItemID: "A", Qty: -3})
		assert.True(t, s.Cart().IsEmpty())
	})

	t.Run("missing line is noop", func(t *testing.T) {
		assert.Same(t, base, Reduce(base, UpdateQty{MenuItemID: "B", Qty: 2}))
	})

	t.Run("emptied cart equals initial cart", func(t *testing.T) {
		s := Reduce(base, UpdateQty{MenuItemID: "A", Qty: 0})
		assert.Equal(t, Initial().Cart(), s.Cart())
	})
}

func TestSetAddress_Verbatim(t *testing.T) {
	s := Reduce(Initial(), SetAddress{Address: "  12 Main St\nCity  "})
	assert.Equal(t, "  12 Main St\nCity  ", s.Address())
	assert.Same(t, s, Reduce(s, SetAddress{Address: "  12 Main St\nCity  "}))
}

func TestPlaceOrder(t *testing.T) {
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := reduceAll(Initial(),
		AddToCart{MenuItem: itemA, RestaurantID: "rest1", Qty: 2},
		AddToCart{MenuItem: itemB, RestaurantID: "rest1", Qty: 1},
		SetAddress{Address: "1 Loop"},
		PlaceOrder{Total: 13, EtaMins: 20, OrderID: "ord_x", CreatedAt: at},
	)

	require.Len(t, s.Orders(), 1)
	o := s.Orders()[0]
	assert.Equal(t, "ord_x", o.ID)
	assert.Equal(t, domain.StatusPreparing, o.Status)
	assert.InDelta(t, 13.0, o.Total, 1e-9)
	assert.Equal(t, 20, o.EtaMins)
	assert.Equal(t, "1 Loop", o.Address)
	assert.Equal(t, at, o.CreatedAt)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "A", o.Items[0].MenuItem.ID)
	assert.Equal(t, 2, o.Items[0].Qty)
	assert.Equal(t, "B", o.Items[1].MenuItem.ID)
	assert.Equal(t, 1, o.Items[1].Qty)
	assert.True(t, s.Cart().IsEmpty())
}

func TestPlaceOrder_NewestFirst(t *testing.T) {
	s := reduceAll(Initial(),
		PlaceOrder{Total: 1, OrderID: "first"},
		PlaceOrder{Total: 2, OrderID: "second"},
	)
	orders := s.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "second", orders[0].ID)
	assert.Equal(t, "first", orders[1].ID)
}

func TestPlaceOrder_EmptyCartNotBlocked(t *testing.T) {
	s := Reduce(Initial(), PlaceOrder{Total: 0, EtaMins: 20})
	require.Len(t, s.Orders(), 1)
	assert.Empty(t, s.Orders()[0].Items)
}

func TestPlaceOrder_UnstampedIDsAreUnique(t *testing.T) {
	s := reduceAll(Initial(),
		PlaceOrder{OrderID: "ord_2"},
		PlaceOrder{},
		PlaceOrder{},
	)
	seen := map[string]bool{}
	for _, o := range s.Orders() {
		assert.False(t, seen[o.ID], "duplicate id %s", o.ID)
		seen[o.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestPlaceOrder_SnapshotIsolatedFromCart(t *testing.T) {
	s := reduceAll(Initial(),
		AddToCart{MenuItem: itemA, RestaurantID: "rest1"},
		PlaceOrder{OrderID: "o1"},
		AddToCart{MenuItem: itemA, RestaurantID: "rest1", Qty: 7},
	)
	o, ok := s.Order("o1")
	require.True(t, ok)
	assert.Equal(t, 1, o.Items[0].Qty)
}

func TestAdvanceOrderStatus_Lifecycle(t *testing.T) {
	s := Reduce(Initial(), PlaceOrder{OrderID: "o1"})

	s = Reduce(s, AdvanceOrderStatus{OrderID: "o1"})
	o, _ := s.Order("o1")
	assert.Equal(t, domain.StatusPickup, o.Status)

	s = Reduce(s, AdvanceOrderStatus{OrderID: "o1"})
	s = Reduce(s, AdvanceOrderStatus{OrderID: "o1"})
	o, _ = s.Order("o1")
	assert.Equal(t, domain.StatusDelivered, o.Status)

	// fourth and fifth calls stay at the terminal state
	after := Reduce(s, AdvanceOrderStatus{OrderID: "o1"})
	assert.Same(t, s, after)
	after = Reduce(after, AdvanceOrderStatus{OrderID: "o1"})
	o, _ = after.Order("o1")
	assert.Equal(t, domain.StatusDelivered, o.Status)
}

func TestAdvanceOrderStatus_OnlyTargetOrder(t *testing.T) {
	s := reduceAll(Initial(),
		PlaceOrder{OrderID: "o1"},
		PlaceOrder{OrderID: "o2"},
		AdvanceOrderStatus{OrderID: "o1"},
	)
	o1, _ := s.Order("o1")
	o2, _ := s.Order("o2")
	assert.Equal(t, domain.StatusPickup, o1.Status)
	assert.Equal(t, domain.StatusPreparing, o2.Status)
}

func TestAdvanceOrderStatus_DoesNotMutatePrevious(t *testing.T) {
	s1 := Reduce(Initial(), PlaceOrder{OrderID: "o1"})
	s2 := Reduce(s1, AdvanceOrderStatus{OrderID: "o1"})

	o1, _ := s1.Order("o1")
	o2, _ := s2.Order("o1")
	assert.Equal(t, domain.StatusPreparing, o1.Status)
	assert.Equal(t, domain.StatusPickup, o2.Status)
}

func TestAdvanceOrderStatus_UnknownIsNoop(t *testing.T) {
	s := Reduce(Initial(), PlaceOrder{OrderID: "o1"})
	assert.Same(t, s, Reduce(s, AdvanceOrderStatus{OrderID: "missing"}))
}

func TestToggles_Involution(t *testing.T) {
	base := reduceAll(Initial(), ToggleLike{ReelID: "r0"}, ToggleFollow{RestaurantID: "rest0"})

	tests := []struct {
		name string
		a    Action
	}{
		{"like", ToggleLike{ReelID: "r1"}},
		{"follow", ToggleFollow{RestaurantID: "rest1"}},
		{"subscription", ToggleSubscription{RestaurantID: "rest1"}},
		{"like existing", ToggleLike{ReelID: "r0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Reduce(base, tt.a)
			assert.NotSame(t, base, once)
			twice := Reduce(once, tt.a)
			assert.Equal(t, base, twice)
		})
	}
}

func TestToggles_Independent(t *testing.T) {
	s := reduceAll(Initial(),
		ToggleFollow{RestaurantID: "rest1"},
		ToggleSubscription{RestaurantID: "rest2"},
		ToggleLike{ReelID: "rest1"},
	)
	assert.True(t, s.Follows().Has("rest1"))
	assert.False(t, s.Follows().Has("rest2"))
	assert.True(t, s.Subscriptions().Has("rest2"))
	assert.False(t, s.Subscriptions().Has("rest1"))
	assert.True(t, s.Likes().Has("rest1"))
}

func TestUnknownAction_Identity(t *testing.T) {
	s := Reduce(Initial(), AddToCart{MenuItem: itemA, RestaurantID: "rest1"})
	assert.Same(t, s, Reduce(s, Unknown{Type: "SHARE_REEL"}))
	assert.Same(t, s, Reduce(s, nil))
}

func TestOrders_AccessorReturnsCopy(t *testing.T) {
	s := reduceAll(Initial(),
		AddToCart{MenuItem: itemA, RestaurantID: "rest1"},
		PlaceOrder{OrderID: "o1"},
	)
	orders := s.Orders()
	orders[0].Status = domain.StatusDelivered
	orders[0].Items[0].Qty = 99

	o, _ := s.Order("o1")
	assert.Equal(t, domain.StatusPreparing, o.Status)
	assert.Equal(t, 1, o.Items[0].Qty)
}

func TestActiveOrders(t *testing.T) {
	s := reduceAll(Initial(),
		PlaceOrder{OrderID: "o1"},
		PlaceOrder{OrderID: "o2"},
		AdvanceOrderStatus{OrderID: "o1"},
		AdvanceOrderStatus{OrderID: "o1"},
		AdvanceOrderStatus{OrderID: "o1"},
	)
	active := s.ActiveOrders()
	require.Len(t, active, 1)
	assert.Equal(t, "o2", active[0].ID)
}

func TestParams_TypedGetters(t *testing.T) {
	p := Params{"total": 13.5, "etaMins": 20, "id": "rest1"}

	total, ok := p.Float("total")
	require.True(t, ok)
	assert.InDelta(t, 13.5, total, 1e-9)

	eta, ok := p.Int("etaMins")
	require.True(t, ok)
	assert.Equal(t, 20, eta)

	_, ok = p.Int("id")
	assert.False(t, ok)

	_, ok = p.String("missing")
	assert.False(t, ok)
}
