package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it wrote to
// stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// mustExecute is execute for commands expected to succeed.
func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, "", args...)
	require.NoError(t, err, out)
	return out
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "feastverse.db")
}

const (
	addPasta    = `{"type":"ADD_TO_CART","payload":{"menuItem":{"id":"m1","name":"Truffle Pasta","price":16.5,"available":true},"restaurantId":"rest1"}}`
	addLatte    = `{"type":"ADD_TO_CART","payload":{"menuItem":{"id":"m7","name":"Latte","price":4.5,"available":true},"restaurantId":"rest3"}}`
	goToCart    = `{"type":"NAVIGATE","payload":{"route":"cart"}}`
	setAddress  = `{"type":"SET_ADDRESS","payload":"1 Main St"}`
	likeReelOne = `{"type":"TOGGLE_LIKE","payload":{"reelId":"r1"}}`
)
