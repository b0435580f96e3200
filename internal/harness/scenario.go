package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/feastverse/internal/domain"
	"github.com/roach88/feastverse/internal/state"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// OrderIDs are handed out, in order, to PLACE_ORDER steps that do not
	// carry an orderId. Defaults to ord_1, ord_2, ...
	OrderIDs []string `yaml:"order_ids,omitempty"`

	// Steps run in order against one store.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is either a dispatched action or a lifecycle tick.
type Step struct {
	// Action is the action kind, e.g. "ADD_TO_CART".
	Action string `yaml:"action,omitempty"`

	// Payload is the kind-specific payload, in the tagged record's shape.
	Payload any `yaml:"payload,omitempty"`

	// Tick reconciles the order scheduler with the current state and fires
	// every pending timer once.
	Tick bool `yaml:"tick,omitempty"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Route is the expected current route (route).
	Route string `yaml:"route,omitempty"`

	// MenuItem and Qty identify a cart line (cart_line).
	MenuItem string `yaml:"menu_item,omitempty"`
	Qty      int    `yaml:"qty,omitempty"`

	// Count is the expected number of items or orders (cart_count,
	// orders_count).
	Count *int `yaml:"count,omitempty"`

	// Order is an order id; empty means the newest order (order_status).
	Order  string `yaml:"order,omitempty"`
	Status string `yaml:"status,omitempty"`

	// Set is likes, follows or subscriptions; Present defaults to true
	// (set_contains).
	Set     string `yaml:"set,omitempty"`
	ID      string `yaml:"id,omitempty"`
	Present *bool  `yaml:"present,omitempty"`

	// Address is the expected delivery address (address).
	Address *string `yaml:"address,omitempty"`
}

// Assertion type constants.
const (
	AssertRoute       = "route"
	AssertCartLine    = "cart_line"
	AssertCartEmpty   = "cart_empty"
	AssertCartCount   = "cart_count"
	AssertOrdersCount = "orders_count"
	AssertOrderStatus = "order_status"
	AssertSetContains = "set_contains"
	AssertAddress     = "address"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "assertion:" vs "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	placements := 0
	for i, step := range s.Steps {
		switch {
		case step.Tick && step.Action != "":
			return fmt.Errorf("step %d: tick and action are mutually exclusive", i)
		case !step.Tick && step.Action == "":
			return fmt.Errorf("step %d: action is required", i)
		case step.Action == string(state.KindPlaceOrder):
			placements++
		}
	}
	if len(s.OrderIDs) > 0 && len(s.OrderIDs) < placements {
		return fmt.Errorf("order_ids has %d ids for %d PLACE_ORDER steps", len(s.OrderIDs), placements)
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d (%s): %w", i, a.Type, err)
		}
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertRoute:
		if _, err := domain.ParseRoute(a.Route); err != nil {
			return err
		}
	case AssertCartLine:
		if a.MenuItem == "" {
			return fmt.Errorf("menu_item is required")
		}
	case AssertCartEmpty:
	case AssertCartCount, AssertOrdersCount:
		if a.Count == nil {
			return fmt.Errorf("count is required")
		}
	case AssertOrderStatus:
		if _, err := domain.ParseOrderStatus(a.Status); err != nil {
			return err
		}
	case AssertSetContains:
		switch a.Set {
		case "likes", "follows", "subscriptions":
		default:
			return fmt.Errorf("set must be likes, follows or subscriptions, got %q", a.Set)
		}
		if a.ID == "" {
			return fmt.Errorf("id is required")
		}
	case AssertAddress:
		if a.Address == nil {
			return fmt.Errorf("address is required")
		}
	default:
		return fmt.Errorf("unknown assertion type")
	}
	return nil
}
