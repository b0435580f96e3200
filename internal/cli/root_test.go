package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "feastverse", cmd.Use)
	assert.Contains(t, cmd.Long, "journal")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{
		"browse", "dispatch", "history", "replay", "quote", "checkout",
		"test", "catalog", "login", "logout", "whoami",
		"profile", "review", "reviews", "stories", "reel",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestNestedSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	for _, path := range [][]string{
		{"profile", "show"}, {"profile", "update"}, {"review", "delete"}, {"reel", "delete"},
	} {
		found, _, err := cmd.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[1], found.Name())
	}
}

func TestCatalogSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	for _, sub := range []string{"validate", "show", "pull"} {
		found, _, err := cmd.Find([]string{"catalog", sub})
		require.NoError(t, err)
		assert.Equal(t, sub, found.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("env"))
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		path []string
		flag string
	}{
		{[]string{"browse"}, "offline"},
		{[]string{"dispatch"}, "reset"},
		{[]string{"history"}, "kind"},
		{[]string{"replay"}, "verify"},
		{[]string{"checkout"}, "address"},
		{[]string{"test"}, "update"},
		{[]string{"test"}, "filter"},
		{[]string{"test"}, "golden"},
		{[]string{"catalog", "show"}, "search"},
		{[]string{"catalog", "pull"}, "output"},
		{[]string{"login"}, "google-token"},
		{[]string{"login"}, "username"},
	}

	for _, tt := range tests {
		cmd := NewRootCommand()
		sub, _, err := cmd.Find(tt.path)
		require.NoError(t, err)
		assert.NotNil(t, sub.Flags().Lookup(tt.flag), "%v --%s", tt.path, tt.flag)
	}
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "", "history", "--db", tempDB(t), "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
}
