package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookupMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 3*time.Second, cfg.AdvanceBase)
	assert.Equal(t, 2*time.Second, cfg.AdvanceStep)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(lookupMap(map[string]string{
		EnvAPIURL:      "https://api.example.com",
		EnvDatabase:    "/tmp/fv.db",
		EnvCatalog:     "catalog.cue",
		EnvAPIRPS:      "2.5",
		EnvAPIBurst:    "3",
		EnvAdvanceBase: "100ms",
		EnvAdvanceStep: "50ms",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "/tmp/fv.db", cfg.Database)
	assert.Equal(t, "catalog.cue", cfg.CatalogPath)
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.Equal(t, 3, cfg.Burst)
	assert.Equal(t, 100*time.Millisecond, cfg.AdvanceBase)
	assert.Equal(t, 50*time.Millisecond, cfg.AdvanceStep)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		EnvAPIRPS:      "fast",
		EnvAPIBurst:    "0",
		EnvAdvanceBase: "soon",
		EnvAdvanceStep: "-1s",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := FromEnv(lookupMap(map[string]string{key: value}))
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FEASTVERSE_API_URL=http://from-file:9000\nFEASTVERSE_API_BURST=7\n"), 0o644))
	t.Setenv(EnvAPIURL, "")
	os.Unsetenv(EnvAPIURL)
	t.Setenv(EnvAPIBurst, "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-file:9000", cfg.APIURL)
	assert.Equal(t, 2, cfg.Burst, "process environment wins over the file")
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoad_DefaultFileOptional(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("")
	assert.NoError(t, err)
}
