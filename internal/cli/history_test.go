package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestHistory_Empty(t *testing.T) {
	out := mustExecute(t, "history", "--db", tempDB(t))
	assert.Equal(t, "No actions journaled.\n", out)
}

func TestHistory_ListsEntriesInOrder(t *testing.T) {
	db := tempDB(t)
	mustExecute(t, "dispatch", "--db", db, goToCart, setAddress, likeReelOne, likeReelOne)

	out := mustExecute(t, "history", "--db", db)
	assert.Contains(t, out, `[1] `)
	assert.Contains(t, out, `NAVIGATE {"route":"cart"`)
	assert.Contains(t, out, `SET_ADDRESS "1 Main St"`)
	assert.Contains(t, out, "Total: 4 action(s), last seq 4")
	assert.Regexp(t, `TOGGLE_LIKE\s+2`, out)
}

func TestHistory_KindFilterJSON(t *testing.T) {
	db := tempDB(t)
	mustExecute(t, "dispatch", "--db", db, goToCart, likeReelOne, setAddress, likeReelOne)

	out := mustExecute(t, "history", "--db", db, "--kind", "TOGGLE_LIKE", "--format", "json")
	entries := gjson.Get(out, "data.entries").Array()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, int64(2), entries[0].Get("seq").Int())
		assert.Equal(t, int64(4), entries[1].Get("seq").Int())
		assert.Equal(t, "r1", entries[0].Get("payload.reelId").String())
	}
	assert.Equal(t, int64(4), gjson.Get(out, "data.last_seq").Int())
	assert.Equal(t, int64(1), gjson.Get(out, "data.counts.NAVIGATE").Int())
	assert.Equal(t, int64(2), gjson.Get(out, "data.counts.TOGGLE_LIKE").Int())
}
