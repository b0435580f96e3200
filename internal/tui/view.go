package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/feastverse/internal/domain"
)

// View implements tea.Model.
func (model Model) View() string {
	var body string
	switch model.state.Route() {
	case domain.RouteFeed:
		body = model.renderFeed()
	case domain.RouteRestaurants:
		body = model.renderRestaurants()
	case domain.RouteRestaurant:
		body = model.renderRestaurant()
	case domain.RouteCart:
		body = model.renderCart()
	case domain.RouteCheckout:
		body = model.renderCheckout()
	case domain.RouteOrders:
		body = model.renderOrders()
	case domain.RouteProfile:
		body = model.renderProfile()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		model.renderHeader(),
		body,
		model.renderStatusBar(),
	)
}

// renderHeader is the bottom-nav equivalent: one tab per top-level
// screen plus the cart badge.
func (model Model) renderHeader() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Padding(0, 1)

	tabs := []struct {
		route domain.Route
		label string
	}{
		{domain.RouteFeed, "1 Feed"},
		{domain.RouteRestaurants, "2 Restaurants"},
		{domain.RouteOrders, "3 Orders"},
		{domain.RouteProfile, "4 Profile"},
	}

	current := model.state.Route()
	if current == domain.RouteRestaurant {
		current = domain.RouteRestaurants
	}

	var parts []string
	for _, tab := range tabs {
		if tab.route == current {
			parts = append(parts, active.Render(tab.label))
		} else {
			parts = append(parts, inactive.Render(tab.label))
		}
	}

	cart := fmt.Sprintf("c Cart (%d)", model.state.Cart().Count())
	if current == domain.RouteCart || current == domain.RouteCheckout {
		parts = append(parts, active.Render(cart))
	} else {
		parts = append(parts, inactive.Render(cart))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(model.theme.BorderColor).
		Width(model.width).
		Render(bar)
}

func (model Model) renderStatusBar() string {
	if model.notice != "" {
		color := model.theme.HelpText
		if model.noticeLevel >= slog.LevelWarn {
			color = model.theme.ErrorText
		}
		return lipgloss.NewStyle().Foreground(color).Render(model.notice)
	}

	bindings := []key.Binding{model.keys.Up, model.keys.Down}
	switch model.state.Route() {
	case domain.RouteFeed:
		bindings = append(bindings, model.keys.Select, model.keys.Like, model.keys.Follow)
	case domain.RouteRestaurants:
		bindings = append(bindings, model.keys.Select)
	case domain.RouteRestaurant:
		bindings = append(bindings, model.keys.Select, model.keys.Follow, model.keys.Subscribe, model.keys.Back)
	case domain.RouteCart:
		bindings = append(bindings, model.keys.Increase, model.keys.Decrease, model.keys.Remove, model.keys.Select)
	case domain.RouteCheckout:
		bindings = []key.Binding{model.keys.EditAddress, model.keys.Select, model.keys.Back}
	}
	bindings = append(bindings, model.keys.Quit)

	var parts []string
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(strings.Join(parts, "  "))
}

func (model Model) row(index int, text string) string {
	if index == model.cursor {
		return lipgloss.NewStyle().
			Foreground(model.theme.SelectedForeground).
			Background(model.theme.SelectedBackground).
			Render("> " + text)
	}
	return lipgloss.NewStyle().Foreground(model.theme.NormalText).Render("  " + text)
}

func (model Model) title(text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(text)
}

func (model Model) faint(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func (model Model) renderFeed() string {
	reels := model.catalog.Reels()
	if len(reels) == 0 {
		return model.faint("No reels yet.")
	}

	lines := []string{model.title("Reels")}
	for i, reel := range reels {
		liked := model.state.Likes().Has(reel.ID)
		likes := reel.Likes
		heart := "♡"
		if liked {
			likes++
			heart = "♥"
		}

		text := fmt.Sprintf("%s %d  %s", heart, likes, reel.Title)
		if r, ok := model.catalog.Restaurant(reel.RestaurantID); ok {
			text += "  @" + r.Name
			if model.state.Follows().Has(r.ID) {
				text += " (following)"
			}
		}
		lines = append(lines, model.row(i, text))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderRestaurants() string {
	restaurants := model.catalog.Restaurants()
	if len(restaurants) == 0 {
		return model.faint("No restaurants.")
	}

	lines := []string{model.title("Restaurants")}
	for i, r := range restaurants {
		text := fmt.Sprintf("%s  %s  ★ %.1f  %d min  %s delivery",
			r.Name, r.Cuisine, r.Rating, r.EtaMins, fee(r.DeliveryFee))
		lines = append(lines, model.row(i, text))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderRestaurant() string {
	r, ok := model.currentRestaurant()
	if !ok {
		return model.faint("Restaurant not found.")
	}

	var badges []string
	if model.state.Follows().Has(r.ID) {
		badges = append(badges, "following")
	}
	if model.state.Subscriptions().Has(r.ID) {
		badges = append(badges, "subscribed")
	}

	header := model.title(r.Name)
	if len(badges) > 0 {
		header += "  " + lipgloss.NewStyle().Foreground(model.theme.Accent).Render(strings.Join(badges, ", "))
	}
	lines := []string{
		header,
		model.faint(fmt.Sprintf("%s  ★ %.1f  %d min  %s delivery", r.Cuisine, r.Rating, r.EtaMins, fee(r.DeliveryFee))),
	}
	if r.Description != "" {
		lines = append(lines, model.faint(r.Description))
	}
	lines = append(lines, "")

	price := lipgloss.NewStyle().Foreground(model.theme.Price)
	for i, item := range r.Menu {
		text := fmt.Sprintf("%s  %s", item.Name, price.Render(money(item.Price)))
		if !item.Available {
			text += "  (sold out)"
		}
		if line, ok := model.state.Cart().Get(item.ID); ok {
			text += fmt.Sprintf("  [%d in cart]", line.Qty)
		}
		lines = append(lines, model.row(i, text))
	}
	if model.reviewSource != nil {
		lines = append(lines, "", model.title("Reviews"))
		lines = append(lines, model.renderReviews(r.ID)...)
	}
	return strings.Join(lines, "\n")
}

// maxReviews caps the reviews shown under a menu.
const maxReviews = 5

func (model Model) renderReviews(restaurantID string) []string {
	panel := model.reviews
	switch {
	case panel.restaurantID != restaurantID || !panel.loaded:
		return []string{model.faint("Loading reviews...")}
	case panel.err != nil:
		return []string{model.faint("Reviews unavailable.")}
	case len(panel.reviews) == 0:
		return []string{model.faint("No reviews yet.")}
	}

	accent := lipgloss.NewStyle().Foreground(model.theme.Accent)
	var lines []string
	for _, rv := range panel.reviews[:min(len(panel.reviews), maxReviews)] {
		text := accent.Render(stars(rv.Rating))
		if rv.UserName != "" {
			text += "  " + rv.UserName
		}
		if rv.Text != "" {
			text += "  " + model.faint(rv.Text)
		}
		lines = append(lines, text)
	}
	if more := len(panel.reviews) - maxReviews; more > 0 {
		lines = append(lines, model.faint(fmt.Sprintf("and %d more", more)))
	}
	return lines
}

func stars(rating int) string {
	rating = min(max(rating, 0), 5)
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func (model Model) renderCart() string {
	cart := model.state.Cart()
	if cart.IsEmpty() {
		return model.faint("Your cart is empty.")
	}

	lines := []string{model.title("Your Cart")}
	for i, line := range cart.Lines() {
		text := fmt.Sprintf("%-24s  - %d +  %s", line.MenuItem.Name, line.Qty, money(line.LineTotal()))
		lines = append(lines, model.row(i, text))
	}

	q := model.quote()
	lines = append(lines,
		"",
		fmt.Sprintf("Subtotal  %s", money(q.Subtotal)),
		fmt.Sprintf("Delivery  %s", fee(q.DeliveryFee)),
		model.title(fmt.Sprintf("Total     %s", money(q.Total))),
	)
	if q.MixedRestaurants {
		lines = append(lines, model.faint("Items from several restaurants: fee and ETA use the first one."))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderCheckout() string {
	q := model.quote()
	params := model.state.Params()
	if total, ok := params.Float("total"); ok {
		q.Total = total
	}
	if eta, ok := params.Int("etaMins"); ok {
		q.EtaMins = eta
	}

	address := model.state.Address()
	if model.editing {
		address = string(model.draft) + "█"
	} else if address == "" {
		address = model.faint("123 Main St, City, ZIP")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Width(max(model.width-4, 20))

	return strings.Join([]string{
		model.title("Checkout"),
		"Delivery Address",
		box.Render(address),
		fmt.Sprintf("ETA: %d mins", q.EtaMins),
		fmt.Sprintf("Total: %s", money(q.Total)),
	}, "\n")
}

func (model Model) renderOrders() string {
	orders := model.state.Orders()
	if len(orders) == 0 {
		return model.faint("No orders yet.")
	}

	var blocks []string
	for i, o := range orders {
		status := lipgloss.NewStyle().
			Bold(true).
			Foreground(model.theme.StatusColor(o.Status)).
			Render(string(o.Status))

		lines := []string{model.row(i, o.ID+"  "+status)}
		for _, item := range o.Items {
			lines = append(lines, fmt.Sprintf("    %d × %s  %s", item.Qty, item.MenuItem.Name, money(item.LineTotal())))
		}
		lines = append(lines, model.faint(fmt.Sprintf("    ETA: %d mins  Total: %s", o.EtaMins, money(o.Total))))
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func (model Model) renderProfile() string {
	s := model.state
	active := len(s.ActiveOrders())

	address := s.Address()
	if address == "" {
		address = "not set"
	}
	return strings.Join([]string{
		model.title("Profile"),
		fmt.Sprintf("Following      %d", s.Follows().Len()),
		fmt.Sprintf("Subscriptions  %d", s.Subscriptions().Len()),
		fmt.Sprintf("Liked reels    %d", s.Likes().Len()),
		fmt.Sprintf("Orders         %d (%d active)", len(s.Orders()), active),
		fmt.Sprintf("Address        %s", address),
	}, "\n")
}

func fee(v float64) string {
	if v == 0 {
		return "Free"
	}
	return money(v)
}
