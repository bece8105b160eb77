package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// QueryStats holds query execution statistics.
type QueryStats struct {
	// TotalQueries is the total number of row queries executed.
	TotalQueries atomic.Int64
	// TotalExecs is the total number of exec statements executed.
	TotalExecs atomic.Int64
	// TotalDuration is the total time spent executing statements.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowQueries is the count of statements exceeding the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the count of failed statements. A query that selects no
	// rows is not a failure.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of query statistics.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgQueryDuration returns the average statement duration.
func (s StatsSnapshot) AvgQueryDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgQueryDuration(),
		s.SlowQueries, s.Errors,
	)
}

// defaultSlowThreshold is the slow statement threshold of a new Backing.
const defaultSlowThreshold = 100 * time.Millisecond

// observer records statistics and logs the statements of a Backing.
type observer struct {
	stats  QueryStats
	logger *slog.Logger

	mu            sync.RWMutex
	slowThreshold time.Duration
}

func newObserver(logger *slog.Logger, threshold time.Duration) *observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &observer{logger: logger, slowThreshold: threshold}
}

func (o *observer) threshold() time.Duration {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.slowThreshold
}

func (o *observer) setThreshold(d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.slowThreshold = d
}

func (o *observer) record(ctx context.Context, query string, args []any, start time.Time, err error, isQuery bool) {
	if o == nil {
		return
	}
	duration := time.Since(start)
	if isQuery {
		o.stats.TotalQueries.Add(1)
	} else {
		o.stats.TotalExecs.Add(1)
	}
	o.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		o.stats.Errors.Add(1)
	}
	o.logger.DebugContext(ctx, "statement executed", "query", query, "args", args, "duration", duration, "error", err)

	if threshold := o.threshold(); threshold > 0 && duration > threshold {
		o.stats.SlowQueries.Add(1)
		o.logger.WarnContext(ctx, "slow query detected", "duration", duration, "query", query, "args", args)
	}
}
