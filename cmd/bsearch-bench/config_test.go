package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/branchless/internal/bsearch"
	berrors "github.com/23skdu/branchless/internal/errors"
)

func TestValidateConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, ValidateConfig(&cfg))
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero size", func(c *Config) { c.Size = 0 }, ErrInvalidSize},
		{"negative size", func(c *Config) { c.Size = -1 }, ErrInvalidSize},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, ErrInvalidIterations},
		{"negative workers", func(c *Config) { c.Workers = -2 }, ErrInvalidWorkers},
		{"empty strategies", func(c *Config) { c.Strategies = " , " }, ErrInvalidStrategies},
		{"unknown strategy", func(c *Config) { c.Strategies = "scalar,quantum" }, ErrInvalidStrategies},
		{"odd vector width", func(c *Config) { c.VectorBits = 100 }, ErrInvalidVectorBits},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, ErrInvalidLogFormat},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, ErrInvalidLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, ValidateConfig(&cfg), tt.want)
		})
	}
}

func TestValidateConfig_VectorWidths(t *testing.T) {
	for _, bits := range []int{-1, 0, 64, 128, 256, 512} {
		cfg := DefaultConfig()
		cfg.VectorBits = bits
		assert.NoError(t, ValidateConfig(&cfg), "bits=%d", bits)
	}
}

func TestParseStrategies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategies = "masked, vector,,scalar"
	got, err := cfg.ParseStrategies()
	require.NoError(t, err)
	assert.Equal(t, []bsearch.Strategy{bsearch.StrategyMasked, bsearch.StrategyVectorized, bsearch.StrategyScalar}, got)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BSEARCH_SEED=7\nBSEARCH_ITERATIONS=5\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("BSEARCH_SEED")
		os.Unsetenv("BSEARCH_ITERATIONS")
	})
	t.Setenv("BSEARCH_SIZE", "99")
	t.Setenv("BSEARCH_STRATEGIES", "unrolled")

	cfg, err := LoadConfig(envFile, []string{"-strategies", "masked,scalar", "-workers", "2"})
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 5, cfg.Iterations)
	assert.Equal(t, 99, cfg.Size)
	assert.Equal(t, "masked,scalar", cfg.Strategies)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadConfig_MissingEnvFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"), nil)
	assert.NoError(t, err)
}

func TestLoadConfig_Errors(t *testing.T) {
	configErr := &berrors.StructuredError{Type: berrors.ErrorTypeConfiguration}

	t.Setenv("BSEARCH_SIZE", "many")
	_, err := LoadConfig("", nil)
	assert.ErrorIs(t, err, configErr)

	t.Setenv("BSEARCH_SIZE", "10")
	_, err = LoadConfig("", []string{"-log-level", "trace"})
	assert.ErrorIs(t, err, configErr)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)

	_, err = LoadConfig("", []string{"-no-such-flag"})
	assert.ErrorIs(t, err, configErr)

	_, err = LoadConfig("", []string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)

	t.Setenv("BSEARCH_SIZE", "0")
	_, err = LoadConfig("", nil)
	var se *berrors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, berrors.ErrorTypeConfiguration, se.Type)
	assert.Equal(t, "LoadConfig", se.Operation)
	assert.Equal(t, ErrInvalidSize, se.Cause)
}

func TestLoadConfig_BadEnvFile(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadConfig(dir, nil)
	assert.ErrorIs(t, err, &berrors.StructuredError{Type: berrors.ErrorTypeConfiguration})
}
