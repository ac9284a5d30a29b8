// Package parallel partitions a batch of keys across goroutines. The kernels
// in bsearch are single-threaded and share nothing, so a batch splits into
// contiguous key windows that are searched independently against the same
// read-only array.
package parallel

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/23skdu/branchless/internal/bsearch"
	"github.com/23skdu/branchless/internal/errors"
	"github.com/23skdu/branchless/internal/logging"
	"github.com/23skdu/branchless/internal/metrics"
)

const (
	// DefaultMinPartition is the smallest key window worth a goroutine.
	DefaultMinPartition = 4096

	// partitions are rounded to this many keys so every worker but the
	// last runs whole vectors with no tail
	partitionAlign = bsearch.MaxLanes
)

// Config controls how a batch is split.
type Config struct {
	// Workers caps concurrent partitions; 0 means GOMAXPROCS.
	Workers int
	// MinPartition is the smallest number of keys given to one worker;
	// 0 means DefaultMinPartition.
	MinPartition int
	// Strategy selects the kernel every partition runs.
	Strategy bsearch.Strategy
}

// Searcher runs one batch kernel over key partitions. It holds no per-call
// state and is safe for concurrent use.
type Searcher[T bsearch.Signed] struct {
	cfg      Config
	strategy bsearch.Strategy
	kernel   bsearch.BatchFunc[T]
	logger   *zap.Logger
}

// NewSearcher applies defaults to cfg. A nil logger discards output.
func NewSearcher[T bsearch.Signed](cfg Config, logger *zap.Logger) *Searcher[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.MinPartition <= 0 {
		cfg.MinPartition = DefaultMinPartition
	}
	if logger == nil {
		logger = logging.DiscardLogger()
	}
	strategy := cfg.Strategy.Resolve()
	return &Searcher[T]{
		cfg:      cfg,
		strategy: strategy,
		kernel:   bsearch.Kernel[T](strategy),
		logger:   logger.With(zap.String("component", "parallel"), zap.Stringer("strategy", strategy)),
	}
}

// Strategy returns the resolved kernel strategy.
func (s *Searcher[T]) Strategy() bsearch.Strategy {
	return s.strategy
}

// Partition is one contiguous key window [From, To).
type Partition struct {
	From, To int
}

// Plan splits [keysFrom, keysTo) into at most Workers partitions of at
// least MinPartition keys each.
func (s *Searcher[T]) Plan(keysFrom, keysTo int) []Partition {
	n := keysTo - keysFrom
	if n <= 0 {
		return nil
	}
	parts := min(s.cfg.Workers, (n+s.cfg.MinPartition-1)/s.cfg.MinPartition)
	parts = max(parts, 1)

	chunk := (n + parts - 1) / parts
	chunk = (chunk + partitionAlign - 1) / partitionAlign * partitionAlign

	plan := make([]Partition, 0, parts)
	for lo := keysFrom; lo < keysTo; lo += chunk {
		plan = append(plan, Partition{From: lo, To: min(lo+chunk, keysTo)})
	}
	return plan
}

// SearchAll validates the inputs, then searches a[from:to] for
// keys[keysFrom:keysTo] and writes the result of keys[i] to
// results[i-keysFrom]. The results are identical to a single kernel call.
//
// Cancellation is checked before each partition starts; partitions already
// running complete. On cancellation the content of results is undefined.
func (s *Searcher[T]) SearchAll(ctx context.Context, a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) error {
	const op = "parallel.SearchAll"
	if err := errors.ValidateBatch(op, len(a), from, to, len(keys), keysFrom, keysTo, len(results)); err != nil {
		metrics.ValidationErrorsTotal.WithLabelValues(op).Inc()
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.WrapCancelled(err, op)
	}

	start := time.Now()
	label := s.strategy.String()
	defer func() {
		metrics.BatchDurationSeconds.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()
	metrics.BatchKeysTotal.WithLabelValues(label).Add(float64(keysTo - keysFrom))

	plan := s.Plan(keysFrom, keysTo)
	s.logger.Debug("search plan",
		zap.Int("keys", keysTo-keysFrom),
		zap.Int("range", to-from),
		zap.Int("partitions", len(plan)),
	)

	if len(plan) <= 1 {
		s.kernel(a, from, to, keys, keysFrom, keysTo, results)
		metrics.ParallelPartitionsTotal.Add(float64(len(plan)))
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for _, p := range plan {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			s.kernel(a, from, to, keys, p.From, p.To, results[p.From-keysFrom:p.To-keysFrom])
			metrics.ParallelPartitionsTotal.Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("search cancelled", zap.Error(err))
		return errors.WrapCancelled(err, op)
	}
	if err := ctx.Err(); err != nil {
		return errors.WrapCancelled(err, op)
	}
	return nil
}
