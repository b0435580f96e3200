package domain

import "time"

// MenuItem is a single orderable dish on a restaurant menu.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Available   bool    `json:"available"`
}

// Restaurant is a catalog entry with its menu.
type Restaurant struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Cuisine     string     `json:"cuisine"`
	Rating      float64    `json:"rating"`
	DeliveryFee float64    `json:"deliveryFee"`
	EtaMins     int        `json:"etaMins"`
	Image       string     `json:"image,omitempty"`
	Description string     `json:"description,omitempty"`
	Menu        []MenuItem `json:"menu,omitempty"`
}

// MenuItem returns the menu entry with the given id.
func (r Restaurant) MenuItem(id string) (MenuItem, bool) {
	for _, item := range r.Menu {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

// Reel is a short video in the feed, optionally tied to a restaurant.
type Reel struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	RestaurantID string `json:"restaurantId,omitempty"`
	Likes        int    `json:"likes"`
}

// CartLine is one entry of the cart: a menu item, how many, and who sells it.
type CartLine struct {
	MenuItem     MenuItem `json:"menuItem"`
	Qty          int      `json:"qty"`
	RestaurantID string   `json:"restaurantId"`
}

// LineTotal is price × qty for the line.
func (l CartLine) LineTotal() float64 {
	return l.MenuItem.Price * float64(l.Qty)
}

// Order is a placed order. Items are a snapshot of the cart at placement.
//
// An order is immutable once its status is StatusDelivered.
type Order struct {
	ID        string      `json:"id"`
	Items     []CartLine  `json:"items"`
	Total     float64     `json:"total"`
	EtaMins   int         `json:"etaMins"`
	Status    OrderStatus `json:"status"`
	Address   string      `json:"address,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Active reports whether the order still has lifecycle steps ahead of it.
func (o Order) Active() bool {
	return !o.Status.Terminal()
}
