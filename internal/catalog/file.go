package catalog

import "github.com/roach88/feastverse/internal/domain"

// The file types mirror the on-disk layout shared by CUE, JSON and YAML
// catalogs. They differ from the domain types only where a field is
// optional with a non-zero default.

type fileMenuItem struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string  `json:"image,omitempty" yaml:"image,omitempty"`
	Available   *bool   `json:"available,omitempty" yaml:"available,omitempty"`
}

type fileRestaurant struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Cuisine     string         `json:"cuisine" yaml:"cuisine"`
	Rating      float64        `json:"rating" yaml:"rating"`
	DeliveryFee float64        `json:"deliveryFee" yaml:"deliveryFee"`
	EtaMins     int            `json:"etaMins" yaml:"etaMins"`
	Image       string         `json:"image,omitempty" yaml:"image,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Menu        []fileMenuItem `json:"menu" yaml:"menu"`
}

type fileReel struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	VideoURL     string `json:"videoUrl" yaml:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty" yaml:"thumbnailUrl,omitempty"`
	RestaurantID string `json:"restaurantId,omitempty" yaml:"restaurantId,omitempty"`
	Likes        int    `json:"likes" yaml:"likes"`
}

type fileCatalog struct {
	Restaurants []fileRestaurant `json:"restaurants" yaml:"restaurants"`
	Reels       []fileReel       `json:"reels" yaml:"reels"`
}

func (f fileCatalog) domain() ([]domain.Restaurant, []domain.Reel) {
	restaurants := make([]domain.Restaurant, len(f.Restaurants))
	for i, r := range f.Restaurants {
		menu := make([]domain.MenuItem, len(r.Menu))
		for j, m := range r.Menu {
			available := true
			if m.Available != nil {
				available = *m.Available
			}
			menu[j] = domain.MenuItem{
				ID:          m.ID,
				Name:        m.Name,
				Price:       m.Price,
				Description: m.Description,
				Image:       m.Image,
				Available:   available,
			}
		}
		restaurants[i] = domain.Restaurant{
			ID:          r.ID,
			Name:        r.Name,
			Cuisine:     r.Cuisine,
			Rating:      r.Rating,
			DeliveryFee: r.DeliveryFee,
			EtaMins:     r.EtaMins,
			Image:       r.Image,
			Description: r.Description,
			Menu:        menu,
		}
	}

	reels := make([]domain.Reel, len(f.Reels))
	for i, r := range f.Reels {
		reels[i] = domain.Reel(r)
	}
	return restaurants, reels
}

func toFile(restaurants []domain.Restaurant, reels []domain.Reel) fileCatalog {
	f := fileCatalog{
		Restaurants: make([]fileRestaurant, len(restaurants)),
		Reels:       make([]fileReel, len(reels)),
	}
	for i, r := range restaurants {
		menu := make([]fileMenuItem, len(r.Menu))
		for j, m := range r.Menu {
			fm := fileMenuItem{
				ID:          m.ID,
				Name:        m.Name,
				Price:       m.Price,
				Description: m.Description,
				Image:       m.Image,
			}
			if !m.Available {
				unavailable := false
				fm.Available = &unavailable
			}
			menu[j] = fm
		}
		f.Restaurants[i] = fileRestaurant{
			ID:          r.ID,
			Name:        r.Name,
			Cuisine:     r.Cuisine,
			Rating:      r.Rating,
			DeliveryFee: r.DeliveryFee,
			EtaMins:     r.EtaMins,
			Image:       r.Image,
			Description: r.Description,
			Menu:        menu,
		}
	}
	for i, r := range reels {
		f.Reels[i] = fileReel(r)
	}
	return f
}
