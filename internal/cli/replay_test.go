package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestReplay_EmptyJournal(t *testing.T) {
	out := mustExecute(t, "replay", "--db", tempDB(t))
	assert.Contains(t, out, "Replayed 0 action(s) through seq 0")
	assert.Contains(t, out, "Route: feed")
	assert.Contains(t, out, "Cart: 0 item(s)")
}

func TestReplay_RebuildsState(t *testing.T) {
	db := tempDB(t)
	mustExecute(t, "dispatch", "--db", db, addPasta, addPasta, addLatte, goToCart, likeReelOne)

	out := mustExecute(t, "replay", "--db", db)
	assert.Contains(t, out, "Replayed 5 action(s) through seq 5")
	assert.Contains(t, out, "Route: cart")
	assert.Contains(t, out, "Cart: 3 item(s)")
	assert.Contains(t, out, "2 × Truffle Pasta (m1) $33.00")
	assert.Contains(t, out, "Likes: r1")
	assert.NotContains(t, out, "verified")
}

func TestReplay_Verify(t *testing.T) {
	db := tempDB(t)
	mustExecute(t, "dispatch", "--db", db, addPasta, setAddress)
	mustExecute(t, "checkout", "--db", db)

	out := mustExecute(t, "replay", "--db", db, "--verify")
	assert.Contains(t, out, "✓ Replay verified deterministic")
	assert.Contains(t, out, "Orders: 1")

	out = mustExecute(t, "replay", "--db", db, "--verify", "--format", "json")
	assert.Equal(t, "ok", gjson.Get(out, "status").String())
	assert.True(t, gjson.Get(out, "data.verified").Bool())
	assert.True(t, gjson.Get(out, "data.deterministic").Bool())
	assert.Equal(t, int64(5), gjson.Get(out, "data.entries").Int())
	orders := gjson.Get(out, "data.state.orders").Array()
	require.Len(t, orders, 1)
	assert.Equal(t, "preparing", orders[0].Get("status").String())
	assert.Equal(t, "1 Main St", orders[0].Get("address").String())
}
