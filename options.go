package sparsego

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/sparsego/bag"
)

type options struct {
	workers          int
	seedSource       SeedSource
	reducer          BagReducer
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Kernel construction.
type Option func(*options)

// WithWorkers sets the number of goroutines every kernel operation uses.
// All operations share this one setting; there are no per-call overrides.
// New fails for values below 1.
//
// The default is runtime.GOMAXPROCS(0). Lower values trade throughput for
// less scheduler pressure when the kernel shares a machine with the
// training loop.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithSeedSource sets the source of per-worker RNG seeds. A fixed-seed
// source (NewSeedSource) makes sampling reproducible for a given worker
// count. Pass nil to restore the default process-wide source, which is
// seeded from crypto/rand at startup.
func WithSeedSource(s SeedSource) Option {
	return func(o *options) {
		if s == nil {
			s = defaultSeedSource
		}
		o.seedSource = s
	}
}

// WithReducer replaces the segmented-sum implementation CoalesceBags
// delegates to. Pass nil to restore the default bag package reducer.
func WithReducer(r BagReducer) Option {
	return func(o *options) {
		if r == nil {
			r = bag.Reducer{}
		}
		o.reducer = r
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// kernel operations. Pass nil to restore the no-op collector.
//
// Example with BasicMetricsCollector:
//
//	metrics := &sparsego.BasicMetricsCollector{}
//	k, _ := sparsego.New(sparsego.WithMetricsCollector(metrics))
//	// ... use k ...
//	stats := metrics.GetStats()
//	fmt.Printf("Coalesces: %d, Avg latency: %dns\n", stats.CoalesceCount, stats.CoalesceAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for kernel operations. Pass
// nil to disable logging.
//
// Example with JSON logging:
//
//	logger := sparsego.NewJSONLogger(slog.LevelDebug)
//	k, _ := sparsego.New(sparsego.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		workers:          runtime.GOMAXPROCS(0),
		seedSource:       defaultSeedSource,
		reducer:          bag.Reducer{},
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
