package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/feastverse/internal/domain"
)

// Theme defines the color palette for the TUI. Colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	Accent lipgloss.Color
	Price  lipgloss.Color

	// Order status colors.
	StatusPreparing lipgloss.Color
	StatusPickup    lipgloss.Color
	StatusOnTheWay  lipgloss.Color
	StatusDelivered lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color
}

// StatusColor returns the color for an order status, FaintText for
// unknown values.
func (theme Theme) StatusColor(status domain.OrderStatus) lipgloss.Color {
	switch status {
	case domain.StatusPreparing:
		return theme.StatusPreparing
	case domain.StatusPickup:
		return theme.StatusPickup
	case domain.StatusOnTheWay:
		return theme.StatusOnTheWay
	case domain.StatusDelivered:
		return theme.StatusDelivered
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	Accent: lipgloss.Color("203"), // tomato
	Price:  lipgloss.Color("114"),

	StatusPreparing: lipgloss.Color("220"), // amber
	StatusPickup:    lipgloss.Color("141"), // light purple
	StatusOnTheWay:  lipgloss.Color("75"),  // blue
	StatusDelivered: lipgloss.Color("114"), // green

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorText:        lipgloss.Color("196"),
}
