package sparsego

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    coalesceCounter   prometheus.Counter
//	    coalesceHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordCoalesce(algorithm string, entries, segments int, duration time.Duration) {
//	    p.coalesceCounter.Inc()
//	    p.coalesceHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordSample is called after each Gaussian sampling operation.
	// rows and dim describe the produced matrix.
	RecordSample(rows, dim int, duration time.Duration)

	// RecordUnique is called after each deduplication operation.
	// in and distinct are the input and output counts.
	RecordUnique(in, distinct int, duration time.Duration)

	// RecordCoalesce is called after each coalescing operation.
	// entries and segments are the entry counts before and after merging.
	RecordCoalesce(algorithm string, entries, segments int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSample(int, int, time.Duration)           {}
func (NoopMetricsCollector) RecordUnique(int, int, time.Duration)           {}
func (NoopMetricsCollector) RecordCoalesce(string, int, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SampleCount        atomic.Int64
	SampleRows         atomic.Int64
	SampleTotalNanos   atomic.Int64
	UniqueCount        atomic.Int64
	UniqueTotalNanos   atomic.Int64
	CoalesceCount      atomic.Int64
	CoalesceEntries    atomic.Int64
	CoalesceSegments   atomic.Int64
	CoalesceTotalNanos atomic.Int64
}

// RecordSample implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSample(rows, dim int, duration time.Duration) {
	b.SampleCount.Add(1)
	b.SampleRows.Add(int64(rows))
	b.SampleTotalNanos.Add(duration.Nanoseconds())
}

// RecordUnique implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnique(in, distinct int, duration time.Duration) {
	b.UniqueCount.Add(1)
	b.UniqueTotalNanos.Add(duration.Nanoseconds())
}

// RecordCoalesce implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCoalesce(algorithm string, entries, segments int, duration time.Duration) {
	b.CoalesceCount.Add(1)
	b.CoalesceEntries.Add(int64(entries))
	b.CoalesceSegments.Add(int64(segments))
	b.CoalesceTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SampleCount:      b.SampleCount.Load(),
		SampleRows:       b.SampleRows.Load(),
		SampleAvgNanos:   b.getAvgSampleNanos(),
		UniqueCount:      b.UniqueCount.Load(),
		UniqueAvgNanos:   b.getAvgUniqueNanos(),
		CoalesceCount:    b.CoalesceCount.Load(),
		CoalesceEntries:  b.CoalesceEntries.Load(),
		CoalesceSegments: b.CoalesceSegments.Load(),
		CoalesceAvgNanos: b.getAvgCoalesceNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgSampleNanos() int64 {
	count := b.SampleCount.Load()
	if count == 0 {
		return 0
	}
	return b.SampleTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgUniqueNanos() int64 {
	count := b.UniqueCount.Load()
	if count == 0 {
		return 0
	}
	return b.UniqueTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgCoalesceNanos() int64 {
	count := b.CoalesceCount.Load()
	if count == 0 {
		return 0
	}
	return b.CoalesceTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SampleCount      int64
	SampleRows       int64
	SampleAvgNanos   int64
	UniqueCount      int64
	UniqueAvgNanos   int64
	CoalesceCount    int64
	CoalesceEntries  int64
	CoalesceSegments int64
	CoalesceAvgNanos int64
}
