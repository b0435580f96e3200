package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/feastverse/internal/api"
	"github.com/roach88/feastverse/internal/catalog"
	"github.com/roach88/feastverse/internal/checkout"
	"github.com/roach88/feastverse/internal/domain"
	"github.com/roach88/feastverse/internal/state"
)

// Dispatcher accepts actions for the store.
type Dispatcher interface {
	Dispatch(a state.Action) bool
}

// ReviewSource lists a restaurant's reviews from the remote service.
type ReviewSource interface {
	RestaurantReviews(ctx context.Context, restaurantID string) ([]api.Review, error)
}

const reviewFetchTimeout = 5 * time.Second

// stateMsg carries a new store snapshot into the update loop.
type stateMsg struct {
	state *state.State
}

// reviewsMsg is the result of a review fetch.
type reviewsMsg struct {
	restaurantID string
	reviews      []api.Review
	err          error
}

// reviewPanel is what the restaurant screen knows about one
// restaurant's reviews.
type reviewPanel struct {
	restaurantID string
	loaded       bool
	reviews      []api.Review
	err          error
}

// Model is the top-level bubbletea model.
type Model struct {
	dispatcher Dispatcher
	catalog    *catalog.Catalog
	theme      Theme
	keys       KeyMap

	state   *state.State
	updates <-chan *state.State

	width  int
	height int

	// cursor is the selected row on list screens. It resets whenever
	// the route changes.
	cursor int

	// Address editing on the checkout screen.
	editing bool
	draft   []rune

	notice      string
	noticeLevel slog.Level

	// Remote reviews for the open restaurant, when signed in.
	reviewSource ReviewSource
	reviews      reviewPanel
}

// NewModel creates a model showing initial and following updates until
// the channel closes. A nil channel renders initial forever.
func NewModel(d Dispatcher, c *catalog.Catalog, initial *state.State, updates <-chan *state.State) Model {
	if initial == nil {
		initial = state.Initial()
	}
	return Model{
		dispatcher: d,
		catalog:    c,
		theme:      DefaultTheme,
		keys:       DefaultKeyMap,
		state:      initial,
		updates:    updates,
		width:      80,
		height:     24,
	}
}

// WithReviews makes the restaurant screen list the restaurant's reviews
// from src.
func (model Model) WithReviews(src ReviewSource) Model {
	model.reviewSource = src
	return model
}

// State is the snapshot the model currently renders.
func (model Model) State() *state.State { return model.state }

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return tea.Batch(model.listen(), model.loadReviews())
}

func (model Model) listen() tea.Cmd {
	if model.updates == nil {
		return nil
	}
	return listenForState(model.updates)
}

// loadReviews fetches the open restaurant's reviews unless the panel
// already holds them. Leaving the restaurant screen empties the panel.
func (model *Model) loadReviews() tea.Cmd {
	if model.reviewSource == nil {
		return nil
	}
	id, ok := model.openRestaurantID()
	if !ok {
		model.reviews = reviewPanel{}
		return nil
	}
	if model.reviews.restaurantID == id {
		return nil
	}
	model.reviews = reviewPanel{restaurantID: id}
	return fetchReviews(model.reviewSource, id)
}

func fetchReviews(src ReviewSource, restaurantID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reviewFetchTimeout)
		defer cancel()
		reviews, err := src.RestaurantReviews(ctx, restaurantID)
		return reviewsMsg{restaurantID: restaurantID, reviews: reviews, err: err}
	}
}

// listenForState blocks until the store publishes a new snapshot.
func listenForState(updates <-chan *state.State) tea.Cmd {
	return func() tea.Msg {
		next, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg{state: next}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case stateMsg:
		if message.state.Route() != model.state.Route() {
			model.cursor = 0
		}
		model.state = message.state
		model.clampCursor()
		return model, tea.Batch(model.listen(), model.loadReviews())

	case reviewsMsg:
		// A late answer for a restaurant no longer on screen is dropped.
		if id, ok := model.openRestaurantID(); !ok || id != message.restaurantID {
			return model, nil
		}
		if message.err != nil {
			slog.Debug("review fetch failed", "restaurant", message.restaurantID, "error", message.err)
		}
		model.reviews = reviewPanel{
			restaurantID: message.restaurantID,
			loaded:       true,
			reviews:      message.reviews,
			err:          message.err,
		}
		return model, nil

	case logRecordMsg:
		model.notice = message.Summary
		model.noticeLevel = message.Level
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{}
		})

	case logRecordFadeMsg:
		model.notice = ""
		return model, nil

	case tea.KeyMsg:
		if model.editing {
			return model.handleAddressKeys(message)
		}
		return model.handleKeys(message)
	}
	return model, nil
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Feed):
		model.navigate(domain.RouteFeed, nil)
	case key.Matches(message, model.keys.Restaurants):
		model.navigate(domain.RouteRestaurants, nil)
	case key.Matches(message, model.keys.Orders):
		model.navigate(domain.RouteOrders, nil)
	case key.Matches(message, model.keys.Profile):
		model.navigate(domain.RouteProfile, nil)
	case key.Matches(message, model.keys.Cart):
		model.navigate(domain.RouteCart, nil)
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.cursor < model.rows()-1 {
			model.cursor++
		}
	default:
		return model.handleRouteKeys(message)
	}
	return model, nil
}

// handleRouteKeys handles the bindings that only mean something on the
// current screen.
func (model Model) handleRouteKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.state.Route() {
	case domain.RouteFeed:
		reel, ok := model.selectedReel()
		if !ok {
			break
		}
		switch {
		case key.Matches(message, model.keys.Select):
			if reel.RestaurantID != "" {
				model.navigate(domain.RouteRestaurant, state.Params{"id": reel.RestaurantID})
			}
		case key.Matches(message, model.keys.Like):
			model.dispatch(state.ToggleLike{ReelID: reel.ID})
		case key.Matches(message, model.keys.Follow):
			if reel.RestaurantID != "" {
				model.dispatch(state.ToggleFollow{RestaurantID: reel.RestaurantID})
			}
		}

	case domain.RouteRestaurants:
		if key.Matches(message, model.keys.Select) {
			restaurants := model.catalog.Restaurants()
			if model.cursor < len(restaurants) {
				model.navigate(domain.RouteRestaurant, state.Params{"id": restaurants[model.cursor].ID})
			}
		}

	case domain.RouteRestaurant:
		r, ok := model.currentRestaurant()
		switch {
		case key.Matches(message, model.keys.Back):
			model.navigate(domain.RouteRestaurants, nil)
		case !ok:
		case key.Matches(message, model.keys.Select):
			if model.cursor < len(r.Menu) && r.Menu[model.cursor].Available {
				model.dispatch(state.AddToCart{MenuItem: r.Menu[model.cursor], RestaurantID: r.ID, Qty: 1})
			}
		case key.Matches(message, model.keys.Follow):
			model.dispatch(state.ToggleFollow{RestaurantID: r.ID})
		case key.Matches(message, model.keys.Subscribe):
			model.dispatch(state.ToggleSubscription{RestaurantID: r.ID})
		}

	case domain.RouteCart:
		lines := model.state.Cart().Lines()
		if len(lines) == 0 || model.cursor >= len(lines) {
			break
		}
		line := lines[model.cursor]
		switch {
		case key.Matches(message, model.keys.Increase):
			model.dispatch(state.UpdateQty{MenuItemID: line.MenuItem.ID, Qty: line.Qty + 1})
		case key.Matches(message, model.keys.Decrease):
			model.dispatch(state.UpdateQty{MenuItemID: line.MenuItem.ID, Qty: line.Qty - 1})
		case key.Matches(message, model.keys.Remove):
			model.dispatch(state.RemoveFromCart{MenuItemID: line.MenuItem.ID})
		case key.Matches(message, model.keys.Select):
			q := model.quote()
			model.navigate(domain.RouteCheckout, state.Params{"total": q.Total, "etaMins": q.EtaMins})
		}

	case domain.RouteCheckout:
		switch {
		case key.Matches(message, model.keys.Back):
			model.navigate(domain.RouteCart, nil)
		case key.Matches(message, model.keys.EditAddress):
			model.editing = true
			model.draft = []rune(model.state.Address())
		case key.Matches(message, model.keys.Select):
			model.placeOrder(model.state.Address())
		}
	}
	return model, nil
}

// handleAddressKeys edits the delivery address in place. Enter places
// the order with the draft; Esc discards it.
func (model Model) handleAddressKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit
	case tea.KeyEsc:
		model.editing = false
		model.draft = nil
	case tea.KeyEnter:
		address := string(model.draft)
		model.editing = false
		model.draft = nil
		model.placeOrder(address)
	case tea.KeyBackspace:
		if len(model.draft) > 0 {
			model.draft = model.draft[:len(model.draft)-1]
		}
	case tea.KeySpace:
		model.draft = append(model.draft, ' ')
	case tea.KeyRunes:
		model.draft = append(model.draft, message.Runes...)
	}
	return model, nil
}

// placeOrder dispatches the checkout pair and moves to the orders
// screen. Total and ETA come from the route params the cart screen set,
// falling back to a fresh quote.
func (model *Model) placeOrder(address string) {
	q := model.quote()
	params := model.state.Params()
	if total, ok := params.Float("total"); ok {
		q.Total = total
	}
	if eta, ok := params.Int("etaMins"); ok {
		q.EtaMins = eta
	}

	actions, err := checkout.Place(address, q)
	if err != nil {
		model.notice = err.Error()
		model.noticeLevel = slog.LevelWarn
		return
	}
	for _, a := range actions {
		model.dispatch(a)
	}
	model.navigate(domain.RouteOrders, nil)
}

func (model *Model) navigate(route domain.Route, params state.Params) {
	model.dispatch(state.Navigate{Route: route, Params: params})
}

func (model *Model) dispatch(a state.Action) {
	if !model.dispatcher.Dispatch(a) {
		model.notice = "store is shut down"
		model.noticeLevel = slog.LevelError
	}
}

func (model Model) quote() checkout.Quote {
	return checkout.QuoteCart(model.state.Cart(), model.catalog)
}

func (model Model) selectedReel() (domain.Reel, bool) {
	reels := model.catalog.Reels()
	if model.cursor >= len(reels) {
		return domain.Reel{}, false
	}
	return reels[model.cursor], true
}

func (model Model) currentRestaurant() (domain.Restaurant, bool) {
	id, ok := model.state.Params().String("id")
	if !ok {
		return domain.Restaurant{}, false
	}
	return model.catalog.Restaurant(id)
}

// openRestaurantID is the restaurant the screen shows, if any.
func (model Model) openRestaurantID() (string, bool) {
	if model.state.Route() != domain.RouteRestaurant {
		return "", false
	}
	id, ok := model.state.Params().String("id")
	return id, ok && id != ""
}

// rows is the number of selectable rows on the current screen.
func (model Model) rows() int {
	switch model.state.Route() {
	case domain.RouteFeed:
		return len(model.catalog.Reels())
	case domain.RouteRestaurants:
		return len(model.catalog.Restaurants())
	case domain.RouteRestaurant:
		r, _ := model.currentRestaurant()
		return len(r.Menu)
	case domain.RouteCart:
		return model.state.Cart().Len()
	case domain.RouteOrders:
		return len(model.state.Orders())
	default:
		return 0
	}
}

func (model *Model) clampCursor() {
	if n := model.rows(); model.cursor >= n {
		model.cursor = max(n-1, 0)
	}
}
