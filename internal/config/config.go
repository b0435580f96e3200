// Package config loads runtime settings from the environment, optionally
// seeded from a dotenv file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIURL      = "FEASTVERSE_API_URL"
	EnvDatabase    = "FEASTVERSE_DB"
	EnvCatalog     = "FEASTVERSE_CATALOG"
	EnvLogFile     = "FEASTVERSE_LOG_FILE"
	EnvAPIRPS      = "FEASTVERSE_API_RPS"
	EnvAPIBurst    = "FEASTVERSE_API_BURST"
	EnvAdvanceBase = "FEASTVERSE_ADVANCE_BASE"
	EnvAdvanceStep = "FEASTVERSE_ADVANCE_STEP"
)

// DefaultEnvFile is read when no explicit file is given. Its absence is not
// an error.
const DefaultEnvFile = ".env"

// Config holds runtime settings.
type Config struct {
	APIURL            string
	Database          string
	CatalogPath       string
	LogFile           string
	RequestsPerSecond float64
	Burst             int
	AdvanceBase       time.Duration
	AdvanceStep       time.Duration
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		APIURL:            "http://localhost:8000",
		Database:          "feastverse.db",
		LogFile:           "feastverse.log",
		RequestsPerSecond: 10,
		Burst:             5,
		AdvanceBase:       3 * time.Second,
		AdvanceStep:       2 * time.Second,
	}
}

// Load reads envFile (if non-empty) into the process environment without
// overriding variables already set, then builds a Config from defaults and
// the environment. An empty envFile means DefaultEnvFile, which may be
// missing; an explicitly named file must exist.
func Load(envFile string) (Config, error) {
	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env (%s): %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from defaults overlaid with the variables lookup
// finds. Malformed numeric or duration values are errors.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := lookup(EnvDatabase); ok && v != "" {
		cfg.Database = v
	}
	if v, ok := lookup(EnvCatalog); ok {
		cfg.CatalogPath = v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		cfg.LogFile = v
	}

	if v, ok := lookup(EnvAPIRPS); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return Config{}, fmt.Errorf("%s: invalid rate %q", EnvAPIRPS, v)
		}
		cfg.RequestsPerSecond = rps
	}
	if v, ok := lookup(EnvAPIBurst); ok && v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 1 {
			return Config{}, fmt.Errorf("%s: invalid burst %q", EnvAPIBurst, v)
		}
		cfg.Burst = burst
	}

	var err error
	if cfg.AdvanceBase, err = duration(lookup, EnvAdvanceBase, cfg.AdvanceBase); err != nil {
		return Config{}, err
	}
	if cfg.AdvanceStep, err = duration(lookup, EnvAdvanceStep, cfg.AdvanceStep); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func duration(lookup func(string) (string, bool), key string, def time.Duration) (time.Duration, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}
