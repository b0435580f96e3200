package domain

import "fmt"

// Route names a screen of the client.
type Route string

const (
	RouteFeed        Route = "feed"
	RouteRestaurants Route = "restaurants"
	RouteRestaurant  Route = "restaurant"
	RouteCart        Route = "cart"
	RouteCheckout    Route = "checkout"
	RouteOrders      Route = "orders"
	RouteProfile     Route = "profile"
)

var routes = []Route{
	RouteFeed,
	RouteRestaurants,
	RouteRestaurant,
	RouteCart,
	RouteCheckout,
	RouteOrders,
	RouteProfile,
}

// Routes returns every known route.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Valid reports whether r is a known route.
func (r Route) Valid() bool {
	for _, known := range routes {
		if known == r {
			return true
		}
	}
	return false
}

// ParseRoute converts a string into a Route.
func ParseRoute(s string) (Route, error) {
	r := Route(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown route %q", s)
	}
	return r, nil
}
