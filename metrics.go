package pvec

import (
	"errors"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting transient metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordTransient is called when a transient is derived from a vector
	// of the given size.
	RecordTransient(size int)

	// RecordFreeze is called after a transient is frozen. cloned is the
	// number of shared nodes the transient had to copy, duration is the
	// lifetime of the transient.
	RecordFreeze(size, cloned int, duration time.Duration)

	// RecordViolation is called when an ownership check rejects an operation.
	RecordViolation(op string, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTransient(int)                  {}
func (NoopMetricsCollector) RecordFreeze(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordViolation(string, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	TransientCount        atomic.Int64
	FreezeCount           atomic.Int64
	FreezeElements        atomic.Int64
	ClonedNodes           atomic.Int64
	FreezeTotalNanos      atomic.Int64
	NonOwnerViolations    atomic.Int64
	AfterFreezeViolations atomic.Int64
}

// RecordTransient implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTransient(int) {
	b.TransientCount.Add(1)
}

// RecordFreeze implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFreeze(size, cloned int, duration time.Duration) {
	b.FreezeCount.Add(1)
	b.FreezeElements.Add(int64(size))
	b.ClonedNodes.Add(int64(cloned))
	b.FreezeTotalNanos.Add(duration.Nanoseconds())
}

// RecordViolation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordViolation(_ string, err error) {
	switch {
	case errors.Is(err, ErrUsedAfterFreeze):
		b.AfterFreezeViolations.Add(1)
	case errors.Is(err, ErrUsedByNonOwner):
		b.NonOwnerViolations.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		TransientCount:        b.TransientCount.Load(),
		FreezeCount:           b.FreezeCount.Load(),
		FreezeElements:        b.FreezeElements.Load(),
		ClonedNodes:           b.ClonedNodes.Load(),
		FreezeAvgNanos:        b.getAvgFreezeNanos(),
		NonOwnerViolations:    b.NonOwnerViolations.Load(),
		AfterFreezeViolations: b.AfterFreezeViolations.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgFreezeNanos() int64 {
	count := b.FreezeCount.Load()
	if count == 0 {
		return 0
	}
	return b.FreezeTotalNanos.Load() / count
}

// BasicMetricsStats is a point-in-time copy of BasicMetricsCollector.
type BasicMetricsStats struct {
	TransientCount        int64
	FreezeCount           int64
	FreezeElements        int64
	ClonedNodes           int64
	FreezeAvgNanos        int64
	NonOwnerViolations    int64
	AfterFreezeViolations int64
}
