package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/23skdu/branchless/internal/bsearch"
	berrors "github.com/23skdu/branchless/internal/errors"
)

// envPrefix namespaces every environment variable, e.g. BSEARCH_SIZE.
const envPrefix = "BSEARCH"

const loadConfigOp = "LoadConfig"

// Config validation errors
var (
	ErrInvalidSize       = errors.New("size must be positive")
	ErrInvalidIterations = errors.New("iterations must be positive")
	ErrInvalidWorkers    = errors.New("workers cannot be negative")
	ErrInvalidStrategies = errors.New("strategies must name at least one of scalar, unrolled, vectorized, masked")
	ErrInvalidVectorBits = errors.New("vector_bits must be -1, 0, 64, 128, 256 or 512")
	ErrInvalidLogFormat  = errors.New("log_format must be 'json' or 'console'")
	ErrInvalidLogLevel   = errors.New("log_level must be debug, info, warn, or error")
)

// Config holds the harness settings. Values come from DefaultConfig, then
// BSEARCH_* environment variables (a .env file is loaded first), then flags.
type Config struct {
	Size         int    `envconfig:"SIZE"`
	Iterations   int    `envconfig:"ITERATIONS"`
	Seed         uint64 `envconfig:"SEED"`
	Strategies   string `envconfig:"STRATEGIES"`
	Workers      int    `envconfig:"WORKERS"`
	MinPartition int    `envconfig:"MIN_PARTITION"`
	VectorBits   int    `envconfig:"VECTOR_BITS"` // -1 keeps the detected width
	Fixture      string `envconfig:"FIXTURE"`
	MetricsAddr  string `envconfig:"METRICS_ADDR"`
	LogFormat    string `envconfig:"LOG_FORMAT"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
}

// DefaultConfig returns the settings of the reference benchmark suite: 1023
// values with 1023 hit keys and 1023 miss keys.
func DefaultConfig() Config {
	return Config{
		Size:         1023,
		Iterations:   10000,
		Seed:         0,
		Strategies:   "scalar,unrolled,vectorized,masked",
		Workers:      0,
		MinPartition: 4096,
		VectorBits:   -1,
		LogFormat:    "console",
		LogLevel:     "info",
	}
}

// ValidateConfig validates the configuration and returns an error if invalid
func ValidateConfig(cfg *Config) error {
	if cfg.Size <= 0 {
		return ErrInvalidSize
	}
	if cfg.Iterations <= 0 {
		return ErrInvalidIterations
	}
	if cfg.Workers < 0 {
		return ErrInvalidWorkers
	}
	if _, err := cfg.ParseStrategies(); err != nil {
		return ErrInvalidStrategies
	}
	switch cfg.VectorBits {
	case -1, 0, 64, 128, 256, 512:
	default:
		return ErrInvalidVectorBits
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return ErrInvalidLogFormat
	}
	if cfg.LogLevel != "debug" && cfg.LogLevel != "info" && cfg.LogLevel != "warn" && cfg.LogLevel != "error" {
		return ErrInvalidLogLevel
	}
	return nil
}

// ParseStrategies splits the comma-separated strategy list.
func (c *Config) ParseStrategies() ([]bsearch.Strategy, error) {
	var out []bsearch.Strategy
	for _, name := range strings.Split(c.Strategies, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s, err := bsearch.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, ErrInvalidStrategies
	}
	return out, nil
}

// LoadConfig resolves the configuration from envFile (skipped when absent),
// the environment and args, and validates the result. Failures are
// configuration errors wrapping the underlying cause, including the
// ErrInvalid* sentinels and flag.ErrHelp.
func LoadConfig(envFile string, args []string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, berrors.WrapConfigurationError(err, loadConfigOp, "load env file").
				WithContext("path", envFile)
		}
	}

	cfg := DefaultConfig()
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, berrors.WrapConfigurationError(err, loadConfigOp, "process environment")
	}

	fs := flag.NewFlagSet("bsearch-bench", flag.ContinueOnError)
	fs.IntVar(&cfg.Size, "size", cfg.Size, "Number of sorted values (and of hit and miss keys)")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "Batch searches per strategy and workload")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Fixture generator seed")
	fs.StringVar(&cfg.Strategies, "strategies", cfg.Strategies, "Comma-separated strategies to run")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel workers for the partitioned run (0 = GOMAXPROCS, 1 = skip)")
	fs.IntVar(&cfg.MinPartition, "min-partition", cfg.MinPartition, "Smallest key partition handed to a worker")
	fs.IntVar(&cfg.VectorBits, "vector-bits", cfg.VectorBits, "Override the vector width in bits (-1 = detected)")
	fs.StringVar(&cfg.Fixture, "fixture", cfg.Fixture, "Parquet fixture file, generated when missing")
	fs.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Address to serve Prometheus metrics on while running")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: json or console")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return Config{}, berrors.WrapConfigurationError(err, loadConfigOp, "parse flags")
	}

	if err := ValidateConfig(&cfg); err != nil {
		return Config{}, berrors.WrapConfigurationError(err, loadConfigOp, "invalid configuration")
	}
	return cfg, nil
}
