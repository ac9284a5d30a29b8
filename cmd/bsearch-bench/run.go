package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/23skdu/branchless/internal/bsearch"
	"github.com/23skdu/branchless/internal/column"
	"github.com/23skdu/branchless/internal/fixtures"
	"github.com/23skdu/branchless/internal/metrics"
	"github.com/23skdu/branchless/internal/parallel"
)

// result is one strategy timed over one workload.
type result struct {
	Name       string
	Workload   string
	Keys       int
	Iterations int
	Elapsed    time.Duration
	Hits       int
}

// NsPerKey is the mean cost of one key lookup.
func (r result) NsPerKey() float64 {
	n := r.Keys * r.Iterations
	if n == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(n)
}

// KeysPerSecond is the lookup throughput.
func (r result) KeysPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Keys*r.Iterations) / r.Elapsed.Seconds()
}

type workload struct {
	name string
	keys []int32
}

// loadFixture generates the scenario, or reads it from cfg.Fixture. A
// missing fixture file is generated and written so later runs reuse it.
func loadFixture(cfg Config, logger *zap.Logger) (fixtures.Fixture, error) {
	if cfg.Fixture == "" {
		return fixtures.NewFixture(cfg.Size, cfg.Seed), nil
	}
	if _, err := os.Stat(cfg.Fixture); err == nil {
		fx, err := fixtures.Load(cfg.Fixture)
		if err != nil {
			return fixtures.Fixture{}, err
		}
		logger.Info("fixture loaded", zap.String("path", cfg.Fixture), zap.Int("size", len(fx.Sorted)))
		return fx, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fixtures.Fixture{}, err
	}

	fx := fixtures.NewFixture(cfg.Size, cfg.Seed)
	if err := fixtures.Save(cfg.Fixture, fx); err != nil {
		return fixtures.Fixture{}, err
	}
	logger.Info("fixture written", zap.String("path", cfg.Fixture), zap.Int("size", len(fx.Sorted)))
	return fx, nil
}

// runSuite times every configured strategy over the hit and miss workloads,
// then the partitioned searcher unless cfg.Workers is 1.
func runSuite(ctx context.Context, cfg Config, fx fixtures.Fixture, logger *zap.Logger) ([]result, error) {
	strategies, err := cfg.ParseStrategies()
	if err != nil {
		return nil, err
	}
	workloads := []workload{{"hit", fx.Hits}, {"miss", fx.Misses}}

	var out []result
	for _, w := range workloads {
		want, err := columnHits(fx.Sorted, w.keys)
		if err != nil {
			return nil, fmt.Errorf("%s workload: %w", w.name, err)
		}
		for _, s := range strategies {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			r := timeKernel(s.Resolve(), fx.Sorted, w.keys, cfg.Iterations)
			r.Workload = w.name
			if r.Hits != want {
				return out, fmt.Errorf("%s/%s: %d hits, column lookup found %d", r.Name, w.name, r.Hits, want)
			}
			logger.Debug("strategy done", zap.String("strategy", r.Name), zap.String("workload", w.name), zap.Duration("elapsed", r.Elapsed))
			out = append(out, r)
		}
		if cfg.Workers == 1 {
			continue
		}
		for _, s := range strategies {
			searcher := parallel.NewSearcher[int32](parallel.Config{
				Workers:      cfg.Workers,
				MinPartition: cfg.MinPartition,
				Strategy:     s,
			}, logger)
			r, err := timeParallel(ctx, searcher, fx.Sorted, w.keys, cfg.Iterations)
			if err != nil {
				return out, err
			}
			r.Workload = w.name
			if r.Hits != want {
				return out, fmt.Errorf("%s/%s: %d hits, column lookup found %d", r.Name, w.name, r.Hits, want)
			}
			out = append(out, r)
		}
	}
	return out, nil
}

func timeKernel(s bsearch.Strategy, sorted, keys []int32, iterations int) result {
	kernel := bsearch.Kernel[int32](s)
	results := make([]int, len(keys))
	kernel(sorted, 0, len(sorted), keys, 0, len(keys), results)

	start := time.Now()
	for i := 0; i < iterations; i++ {
		kernel(sorted, 0, len(sorted), keys, 0, len(keys), results)
	}
	elapsed := time.Since(start)

	hits := countHits(results)
	label := s.String()
	metrics.BatchKeysTotal.WithLabelValues(label).Add(float64(len(keys) * (iterations + 1)))
	metrics.BatchHitsTotal.WithLabelValues(label).Add(float64(hits * (iterations + 1)))
	metrics.BatchDurationSeconds.WithLabelValues(label).Observe(elapsed.Seconds() / float64(iterations))
	return result{Name: label, Keys: len(keys), Iterations: iterations, Elapsed: elapsed, Hits: hits}
}

func timeParallel(ctx context.Context, searcher *parallel.Searcher[int32], sorted, keys []int32, iterations int) (result, error) {
	results := make([]int, len(keys))
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := searcher.SearchAll(ctx, sorted, 0, len(sorted), keys, 0, len(keys), results); err != nil {
			return result{}, err
		}
	}
	return result{
		Name:       "parallel/" + searcher.Strategy().String(),
		Keys:       len(keys),
		Iterations: iterations,
		Elapsed:    time.Since(start),
		Hits:       countHits(results),
	}, nil
}

func countHits(results []int) int {
	n := 0
	for _, r := range results {
		if r >= 0 {
			n++
		}
	}
	return n
}

// columnHits counts the found keys through the Arrow adaptor, which also
// checks that the fixture is sorted.
func columnHits(sorted, keys []int32) (int, error) {
	mem := memory.NewGoAllocator()
	sb := array.NewInt32Builder(mem)
	defer sb.Release()
	sb.AppendValues(sorted, nil)
	sortedArr := sb.NewInt32Array()
	defer sortedArr.Release()

	kb := array.NewInt32Builder(mem)
	defer kb.Release()
	kb.AppendValues(keys, nil)
	keysArr := kb.NewInt32Array()
	defer keysArr.Release()

	res, err := column.SearchInt32(mem, sortedArr, keysArr, column.Options{Strategy: bsearch.StrategyScalar, VerifySorted: true})
	if err != nil {
		return 0, err
	}
	defer res.Release()
	return int(column.Hits(res).GetCardinality()), nil
}

// writeReport prints one line per result in the layout of a benchmark table.
func writeReport(w io.Writer, fx fixtures.Fixture, results []result) {
	fmt.Fprintf(w, "\nSorted values: %s, keys per batch: %s\n",
		humanize.Comma(int64(len(fx.Sorted))), humanize.Comma(int64(len(fx.Hits))))
	fmt.Fprintf(w, "%-24s %-6s %12s %16s %8s\n", "strategy", "load", "ns/key", "throughput", "hits")
	for _, r := range results {
		fmt.Fprintf(w, "%-24s %-6s %12.2f %16s %8s\n",
			r.Name, r.Workload, r.NsPerKey(),
			humanize.SIWithDigits(r.KeysPerSecond(), 2, "keys/s"),
			humanize.Comma(int64(r.Hits)))
	}
}
