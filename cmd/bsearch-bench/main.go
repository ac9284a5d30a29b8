// Command bsearch-bench times the batch binary search kernels on a hit and a
// miss workload and prints ns/key and throughput per strategy.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/23skdu/branchless/internal/bsearch"
	"github.com/23skdu/branchless/internal/logging"
)

func main() {
	cfg, err := LoadConfig(".env", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "bsearch-bench: %v\n", err)
		os.Exit(2)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Format = cfg.LogFormat
	logCfg.Level = cfg.LogLevel
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bsearch-bench: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger *zap.Logger, out io.Writer) error {
	if cfg.VectorBits >= 0 {
		prev := bsearch.SetVectorBits(cfg.VectorBits)
		defer bsearch.SetVectorBits(prev)
	}

	features := bsearch.GetCPUFeatures()
	logger.Info("cpu",
		zap.String("vendor", features.Vendor),
		zap.String("implementation", bsearch.GetImplementation()),
		zap.Int("vector_bits", bsearch.VectorBits()),
		zap.Stringer("preferred", bsearch.Preferred()),
	)

	if cfg.MetricsAddr != "" {
		srv := startMetricsServer(cfg.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	fx, err := loadFixture(cfg, logger)
	if err != nil {
		return err
	}
	results, err := runSuite(ctx, cfg, fx, logger)
	if err != nil {
		return err
	}
	writeReport(out, fx, results)
	return nil
}

func startMetricsServer(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("Starting metrics server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start metrics server", zap.Error(err))
		}
	}()
	return srv
}
