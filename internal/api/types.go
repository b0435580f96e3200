package api

import (
	"time"

	"github.com/roach88/feastverse/internal/domain"
)

// User is an account as the service returns it.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	Username  string    `json:"username,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Website   string    `json:"website,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicProfile is the shareable subset of a user.
type PublicProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Website  *string `json:"website,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// Token is the result of a login or signup.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
	IsNewUser   bool   `json:"is_new_user"`
}

// UsernameCheck reports availability and alternatives.
type UsernameCheck struct {
	Available   bool     `json:"available"`
	Suggestions []string `json:"suggestions"`
}

// MenuItem is a dish on the wire.
type MenuItem struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Description  string  `json:"description,omitempty"`
	Image        string  `json:"image,omitempty"`
	Available    bool    `json:"available"`
}

// Domain converts to the domain type.
func (m MenuItem) Domain() domain.MenuItem {
	return domain.MenuItem{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		Image:       m.Image,
		Available:   m.Available,
	}
}

// Restaurant is a restaurant on the wire.
type Restaurant struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Cuisine     string     `json:"cuisine"`
	Rating      float64    `json:"rating"`
	DeliveryFee float64    `json:"delivery_fee"`
	EtaMins     int        `json:"eta_mins"`
	Image       string     `json:"image"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	MenuItems   []MenuItem `json:"menu_items"`
}

// Domain converts to the domain type.
func (r Restaurant) Domain() domain.Restaurant {
	out := domain.Restaurant{
		ID:          r.ID,
		Name:        r.Name,
		Cuisine:     r.Cuisine,
		Rating:      r.Rating,
		DeliveryFee: r.DeliveryFee,
		EtaMins:     r.EtaMins,
		Image:       r.Image,
		Description: r.Description,
	}
	if len(r.MenuItems) > 0 {
		out.Menu = make([]domain.MenuItem, len(r.MenuItems))
		for i, m := range r.MenuItems {
			out.Menu[i] = m.Domain()
		}
	}
	return out
}

// Reel is a short video on the wire.
type Reel struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Likes        int       `json:"likes"`
	UserName     string    `json:"user_name,omitempty"`
	UserUsername string    `json:"user_username,omitempty"`
	UserPicture  string    `json:"user_picture,omitempty"`
}

// Domain converts to the domain type.
func (r Reel) Domain() domain.Reel {
	return domain.Reel{
		ID:           r.ID,
		Title:        r.Title,
		VideoURL:     r.VideoURL,
		ThumbnailURL: r.ThumbnailURL,
		RestaurantID: r.RestaurantID,
		Likes:        r.Likes,
	}
}

// Story is an expiring image post.
type Story struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserName     string    `json:"user_name,omitempty"`
	UserUsername string    `json:"user_username,omitempty"`
	UserPicture  string    `json:"user_picture,omitempty"`
}

// Review is a restaurant review.
type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
	UserName     string    `json:"user_name,omitempty"`
	UserAvatar   string    `json:"user_avatar,omitempty"`
}

// ReviewCreate is the body for CreateReview.
type ReviewCreate struct {
	RestaurantID string `json:"restaurant_id"`
	Rating       int    `json:"rating"`
	Text         string `json:"text"`
}

// OrderItemCreate is one line of an order request.
type OrderItemCreate struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// OrderCreate is the body for CreateOrder.
type OrderCreate struct {
	Items   []OrderItemCreate `json:"items"`
	Total   float64           `json:"total"`
	EtaMins int               `json:"eta_mins"`
	Address string            `json:"address,omitempty"`
}

// OrderItem is one line of a stored order.
type OrderItem struct {
	ID         int     `json:"id"`
	OrderID    string  `json:"order_id"`
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Order is a stored order.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Total     float64     `json:"total"`
	EtaMins   int         `json:"eta_mins"`
	Address   string      `json:"address,omitempty"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// Domain converts to the domain type. The service does not echo restaurant
// ids per line, so CartLine.RestaurantID is left empty. An unrecognised
// status is reported as an error.
func (o Order) Domain() (domain.Order, error) {
	status, err := domain.ParseOrderStatus(o.Status)
	if err != nil {
		return domain.Order{}, err
	}
	out := domain.Order{
		ID:        o.ID,
		Total:     o.Total,
		EtaMins:   o.EtaMins,
		Status:    status,
		Address:   o.Address,
		CreatedAt: o.CreatedAt,
		Items:     make([]domain.CartLine, len(o.Items)),
	}
	for i, it := range o.Items {
		out.Items[i] = domain.CartLine{
			MenuItem: domain.MenuItem{ID: it.MenuItemID, Name: it.Name, Price: it.Price, Available: true},
			Qty:      it.Quantity,
		}
	}
	return out, nil
}
