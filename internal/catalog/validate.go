package catalog

import (
	"fmt"
	"strings"

	"github.com/roach88/feastverse/internal/domain"
)

// ValidationError is one broken catalog rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every rule a catalog breaks.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks restaurants and reels and returns all problems found, in
// catalog order. A nil result means the data is valid.
//
// Menu item ids must be unique across the whole catalog, since cart lines
// are keyed by menu item id alone.
func Validate(restaurants []domain.Restaurant, reels []domain.Reel) ValidationErrors {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	restaurantIDs := make(map[string]bool, len(restaurants))
	itemIDs := make(map[string]string)

	for i, r := range restaurants {
		field := fmt.Sprintf("restaurants[%d]", i)
		switch {
		case r.ID == "":
			add(field+".id", "id is required")
		case restaurantIDs[r.ID]:
			add(field+".id", "duplicate restaurant id %q", r.ID)
		}
		restaurantIDs[r.ID] = true

		if strings.TrimSpace(r.Name) == "" {
			add(field+".name", "name is required")
		}
		if r.Rating < 0 || r.Rating > 5 {
			add(field+".rating", "rating %.1f out of range 0-5", r.Rating)
		}
		if r.DeliveryFee < 0 {
			add(field+".deliveryFee", "delivery fee cannot be negative")
		}
		if r.EtaMins <= 0 {
			add(field+".etaMins", "eta must be positive")
		}

		for j, m := range r.Menu {
			mf := fmt.Sprintf("%s.menu[%d]", field, j)
			switch {
			case m.ID == "":
				add(mf+".id", "id is required")
			case itemIDs[m.ID] != "":
				add(mf+".id", "menu item id %q already used by %s", m.ID, itemIDs[m.ID])
			default:
				itemIDs[m.ID] = r.ID
			}
			if strings.TrimSpace(m.Name) == "" {
				add(mf+".name", "name is required")
			}
			if m.Price < 0 {
				add(mf+".price", "price cannot be negative")
			}
		}
	}

	reelIDs := make(map[string]bool, len(reels))
	for i, r := range reels {
		field := fmt.Sprintf("reels[%d]", i)
		switch {
		case r.ID == "":
			add(field+".id", "id is required")
		case reelIDs[r.ID]:
			add(field+".id", "duplicate reel id %q", r.ID)
		}
		reelIDs[r.ID] = true

		if r.VideoURL == "" {
			add(field+".videoUrl", "video url is required")
		}
		if r.Likes < 0 {
			add(field+".likes", "likes cannot be negative")
		}
		if r.RestaurantID != "" && !restaurantIDs[r.RestaurantID] {
			add(field+".restaurantId", "unknown restaurant %q", r.RestaurantID)
		}
	}
	return errs
}
