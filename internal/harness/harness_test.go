package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/feastverse/internal/domain"
	"github.com/roach88/feastverse/internal/state"
)

func intPtr(n int) *int { return &n }

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRunWithGolden_CheckoutFlow(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "checkout_flow.yaml"))
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "lifecycle_delivered.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := MarshalGolden(scenario.Name, first)
	require.NoError(t, err)
	b, err := MarshalGolden(scenario.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_TickAdvancesEachActiveOrderOnce(t *testing.T) {
	scenario := &Scenario{
		Name:        "tick",
		Description: "two orders, one tick",
		Steps: []Step{
			{Action: "PLACE_ORDER", Payload: map[string]any{"total": 1, "etaMins": 5}},
			{Action: "PLACE_ORDER", Payload: map[string]any{"total": 2, "etaMins": 5}},
			{Tick: true},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	for _, id := range []string{"ord_1", "ord_2"} {
		o, ok := result.Final.Order(id)
		require.True(t, ok)
		assert.Equal(t, domain.StatusPickup, o.Status, id)
	}
	require.Len(t, result.Trace, 4)
	assert.Equal(t, state.KindAdvanceOrderStatus, result.Trace[2].Action)
	assert.Equal(t, state.KindAdvanceOrderStatus, result.Trace[3].Action)
}

func TestRun_FailedAssertionsAreReported(t *testing.T) {
	present := true
	addr := "somewhere"
	scenario := &Scenario{
		Name:        "failing",
		Description: "every assertion fails",
		Steps: []Step{
			{Action: "ADD_TO_CART", Payload: map[string]any{
				"menuItem":     map[string]any{"id": "m1", "name": "Pasta", "price": 10},
				"restaurantId": "rest1",
			}},
		},
		Assertions: []Assertion{
			{Type: AssertRoute, Route: "cart"},
			{Type: AssertCartLine, MenuItem: "m1", Qty: 5},
			{Type: AssertCartLine, MenuItem: "m2"},
			{Type: AssertCartEmpty},
			{Type: AssertCartCount, Count: intPtr(0)},
			{Type: AssertOrdersCount, Count: intPtr(1)},
			{Type: AssertOrderStatus, Status: "pickup"},
			{Type: AssertSetContains, Set: "likes", ID: "r1", Present: &present},
			{Type: AssertAddress, Address: &addr},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 9)
	assert.Contains(t, result.Errors[1], "m1 x5")
	assert.Contains(t, result.Errors[2], "m1 x1")
}

func TestRun_BadPayload(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad",
		Description: "navigate nowhere",
		Steps: []Step{
			{Action: "NAVIGATE", Payload: map[string]any{"route": "nowhere"}},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 0")
	assert.True(t, state.IsDecodeError(err))
}
