package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const scenariosDir = "../harness/testdata/scenarios"

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := execute(t, "", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := execute(t, "", "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyDir(t *testing.T) {
	out := mustExecute(t, "test", t.TempDir())
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommandGoldenLifecycle(t *testing.T) {
	goldenDir := filepath.Join(t.TempDir(), "golden")

	out := mustExecute(t, "test", scenariosDir, "--golden", goldenDir)
	assert.Contains(t, out, "✓ checkout_flow")
	assert.Contains(t, out, "✓ All scenarios passed")

	out = mustExecute(t, "test", scenariosDir, "--golden", goldenDir, "--update")
	assert.Contains(t, out, "✓ checkout_flow (golden updated)")
	_, err := os.Stat(filepath.Join(goldenDir, "checkout_flow.golden"))
	require.NoError(t, err)

	out = mustExecute(t, "test", scenariosDir, "--golden", goldenDir, "--format", "json")
	scenarios := gjson.Get(out, "data.scenarios").Array()
	require.NotEmpty(t, scenarios)
	for _, sr := range scenarios {
		assert.Equal(t, "match", sr.Get("golden").String(), sr.Get("name").String())
	}
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	goldenDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(goldenDir, "checkout_flow.golden"), []byte("stale\n"), 0o644))

	out, err := execute(t, "", "test", scenariosDir, "--golden", goldenDir, "--filter", "checkout_*")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ checkout_flow")
	assert.Contains(t, out, "does not match golden file")
	assert.Contains(t, out, "Test Summary: 0 passed, 1 failed, 1 total")
}

func TestTestCommandFilter(t *testing.T) {
	out := mustExecute(t, "test", scenariosDir, "--golden", t.TempDir(), "--filter", "cart_*", "--format", "json")
	assert.Equal(t, int64(1), gjson.Get(out, "data.total").Int())
	assert.Equal(t, "cart_arithmetic", gjson.Get(out, "data.scenarios.0.name").String())
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	scenario := `name: wrong_route
description: Expects the wrong route.
steps:
  - action: NAVIGATE
    payload: {route: cart}
assertions:
  - {type: route, route: orders}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong_route.yaml"), []byte(scenario), 0o644))

	out, err := execute(t, "", "test", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "error", gjson.Get(out, "status").String())
	assert.Equal(t, "E_TEST_FAILED", gjson.Get(out, "error.code").String())
	assert.Equal(t, int64(1), gjson.Get(out, "data.failed").Int())
	assert.NotEmpty(t, gjson.Get(out, "data.scenarios.0.errors").Array())
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = findScenarioFiles(dir, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.yml")}, files)

	_, err = findScenarioFiles(dir, "[")
	require.Error(t, err)
}
