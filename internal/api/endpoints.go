package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/roach88/feastverse/internal/domain"
)

// =============================================================================
// Auth
// =============================================================================

// GoogleAuth logs in an existing user with a Google ID token and stores the
// returned access token. A 404 means the user must sign up first.
func (c *Client) GoogleAuth(ctx context.Context, googleToken string) (*Token, error) {
	var tok Token
	body := map[string]string{"token": googleToken}
	if err := c.do(ctx, http.MethodPost, "/auth/google-login", body, &tok, requestOptions{skipAuth: true}); err != nil {
		return nil, err
	}
	if err := c.SetToken(ctx, tok.AccessToken); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Signup creates an account for a Google identity under username and
// stores the returned access token.
func (c *Client) Signup(ctx context.Context, googleToken, username string) (*Token, error) {
	var tok Token
	body := map[string]string{"google_token": googleToken, "username": username}
	if err := c.do(ctx, http.MethodPost, "/auth/google-signup", body, &tok, requestOptions{skipAuth: true}); err != nil {
		return nil, err
	}
	if err := c.SetToken(ctx, tok.AccessToken); err != nil {
		return nil, err
	}
	return &tok, nil
}

// CheckUsername asks whether username is free.
func (c *Client) CheckUsername(ctx context.Context, username string) (*UsernameCheck, error) {
	var out UsernameCheck
	body := map[string]string{"username": username}
	if err := c.do(ctx, http.MethodPost, "/auth/check-username", body, &out, requestOptions{skipAuth: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u, requestOptions{}); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile patches the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPatch, "/auth/me", upd, &u, requestOptions{}); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserByUsername fetches a public profile. No authentication is sent.
func (c *Client) UserByUsername(ctx context.Context, username string) (*PublicProfile, error) {
	var p PublicProfile
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, &p, requestOptions{skipAuth: true}); err != nil {
		return nil, err
	}
	return &p, nil
}

// =============================================================================
// Restaurants
// =============================================================================

// Restaurants lists every restaurant with its menu.
func (c *Client) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var rs []Restaurant
	if err := c.do(ctx, http.MethodGet, "/restaurants/", nil, &rs, requestOptions{}); err != nil {
		return nil, err
	}
	out := make([]domain.Restaurant, len(rs))
	for i, r := range rs {
		out[i] = r.Domain()
	}
	return out, nil
}

// Restaurant fetches one restaurant with its menu.
func (c *Client) Restaurant(ctx context.Context, id string) (domain.Restaurant, error) {
	var r Restaurant
	if err := c.do(ctx, http.MethodGet, "/restaurants/"+url.PathEscape(id), nil, &r, requestOptions{}); err != nil {
		return domain.Restaurant{}, err
	}
	return r.Domain(), nil
}

// Follow follows a restaurant.
func (c *Client) Follow(ctx context.Context, restaurantID string) error {
	return c.do(ctx, http.MethodPost, restaurantPath(restaurantID, "follow"), nil, nil, requestOptions{})
}

// Unfollow stops following a restaurant.
func (c *Client) Unfollow(ctx context.Context, restaurantID string) error {
	return c.do(ctx, http.MethodDelete, restaurantPath(restaurantID, "follow"), nil, nil, requestOptions{})
}

// Subscribe subscribes to a restaurant.
func (c *Client) Subscribe(ctx context.Context, restaurantID string) error {
	return c.do(ctx, http.MethodPost, restaurantPath(restaurantID, "subscribe"), nil, nil, requestOptions{})
}

// Unsubscribe cancels a restaurant subscription.
func (c *Client) Unsubscribe(ctx context.Context, restaurantID string) error {
	return c.do(ctx, http.MethodDelete, restaurantPath(restaurantID, "subscribe"), nil, nil, requestOptions{})
}

func restaurantPath(id, action string) string {
	return "/restaurants/" + url.PathEscape(id) + "/" + action
}

// =============================================================================
// Reviews
// =============================================================================

// RestaurantReviews lists the reviews of a restaurant.
func (c *Client) RestaurantReviews(ctx context.Context, restaurantID string) ([]Review, error) {
	var out []Review
	if err := c.do(ctx, http.MethodGet, "/reviews/restaurant/"+url.PathEscape(restaurantID), nil, &out, requestOptions{}); err != nil {
		return nil, err
	}
	return out, nil
}

// MyReviews lists the authenticated user's reviews.
func (c *Client) MyReviews(ctx context.Context) ([]Review, error) {
	var out []Review
	if err := c.do(ctx, http.MethodGet, "/reviews/user/me", nil, &out, requestOptions{}); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReview posts a review.
func (c *Client) CreateReview(ctx context.Context, rc ReviewCreate) (*Review, error) {
	if rc.Rating < 1 || rc.Rating > 5 {
		return nil, fmt.Errorf("review rating %d out of range 1-5", rc.Rating)
	}
	var out Review
	if err := c.do(ctx, http.MethodPost, "/reviews/", rc, &out, requestOptions{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReview removes one of the user's reviews.
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, nil, requestOptions{})
}

// =============================================================================
// Reels
// =============================================================================

// Reels lists the feed.
func (c *Client) Reels(ctx context.Context) ([]domain.Reel, error) {
	var rs []Reel
	if err := c.do(ctx, http.MethodGet, "/reels/", nil, &rs, requestOptions{}); err != nil {
		return nil, err
	}
	out := make([]domain.Reel, len(rs))
	for i, r := range rs {
		out[i] = r.Domain()
	}
	return out, nil
}

// LikeReel likes a reel and returns its new like count.
func (c *Client) LikeReel(ctx context.Context, id string) (int, error) {
	return c.likeCount(ctx, http.MethodPost, id)
}

// UnlikeReel removes a like and returns the new like count.
func (c *Client) UnlikeReel(ctx context.Context, id string) (int, error) {
	return c.likeCount(ctx, http.MethodDelete, id)
}

func (c *Client) likeCount(ctx context.Context, method, id string) (int, error) {
	body, err := c.raw(ctx, method, "/reels/"+url.PathEscape(id)+"/like")
	if err != nil {
		return 0, err
	}
	return int(gjson.GetBytes(body, "likes").Int()), nil
}

// DeleteReel removes one of the user's reels.
func (c *Client) DeleteReel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reels/"+url.PathEscape(id), nil, nil, requestOptions{})
}

// =============================================================================
// Orders
// =============================================================================

// Orders lists the user's orders, newest first.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/orders/", nil, &out, requestOptions{}); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder submits an order.
func (c *Client) CreateOrder(ctx context.Context, oc OrderCreate) (*Order, error) {
	if len(oc.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}
	var out Order
	if err := c.do(ctx, http.MethodPost, "/orders/", oc, &out, requestOptions{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdvanceOrder moves a stored order one lifecycle step forward. Advancing a
// delivered order is accepted by the service and changes nothing.
func (c *Client) AdvanceOrder(ctx context.Context, id string) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", nil, &out, requestOptions{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// Stories
// =============================================================================

// Stories lists unexpired stories.
func (c *Client) Stories(ctx context.Context) ([]Story, error) {
	var out []Story
	if err := c.do(ctx, http.MethodGet, "/stories/", nil, &out, requestOptions{}); err != nil {
		return nil, err
	}
	return out, nil
}
