package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSet_ZeroValueIsEmpty(t *testing.T) {
	var s IDSet
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("r1"))
	assert.Empty(t, s.IDs())
}

func TestIDSet_ToggleIsCopyOnWrite(t *testing.T) {
	orig := NewIDSet("r1")
	next := orig.Toggle("r2")

	assert.True(t, next.Has("r1"))
	assert.True(t, next.Has("r2"))
	assert.False(t, orig.Has("r2"), "toggle must not mutate the receiver")
}

func TestIDSet_ToggleTwiceIsInvolution(t *testing.T) {
	orig := NewIDSet("a", "b")
	back := orig.Toggle("c").Toggle("c")
	assert.True(t, orig.Equal(back))

	back = orig.Toggle("a").Toggle("a")
	assert.True(t, orig.Equal(back))
}

func TestIDSet_IDsSorted(t *testing.T) {
	s := NewIDSet("rest3", "rest1", "rest2", "rest1")
	assert.Equal(t, []string{"rest1", "rest2", "rest3"}, s.IDs())
	assert.Equal(t, 3, s.Len())
}

func TestIDSet_JSON(t *testing.T) {
	s := NewIDSet("b", "a")
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))

	var got IDSet
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, s.Equal(got))
}

func TestCartLine_LineTotal(t *testing.T) {
	l := CartLine{MenuItem: MenuItem{ID: "m1", Price: 5}, Qty: 3}
	assert.InDelta(t, 15.0, l.LineTotal(), 1e-9)
}

func TestRestaurant_MenuItem(t *testing.T) {
	r := Restaurant{ID: "rest1", Menu: []MenuItem{{ID: "m1"}, {ID: "m2"}}}
	item, ok := r.MenuItem("m2")
	require.True(t, ok)
	assert.Equal(t, "m2", item.ID)

	_, ok = r.MenuItem("m9")
	assert.False(t, ok)
}
