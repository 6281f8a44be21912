package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultSlowThreshold is the duration above which a statement is counted
// as slow.
const DefaultSlowThreshold = 100 * time.Millisecond

// QueryStats counts the statements sent through a stats connection.
type QueryStats struct {
	queries, execs, slow, errors atomic.Int64
	elapsed                      atomic.Int64
}

// Stats returns a snapshot of the counters.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.queries.Load(),
		TotalExecs:    s.execs.Load(),
		TotalDuration: time.Duration(s.elapsed.Load()),
		SlowQueries:   s.slow.Load(),
		Errors:        s.errors.Load(),
	}
}

// StatsSnapshot is a point-in-time copy of QueryStats. It is logged as a
// group by slog.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

func (s StatsSnapshot) String() string {
	return fmt.Sprintf("queries=%d execs=%d duration=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.SlowQueries, s.Errors)
}

// LogValue implements slog.LogValuer.
func (s StatsSnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("queries", s.TotalQueries),
		slog.Int64("execs", s.TotalExecs),
		slog.Duration("duration", s.TotalDuration),
		slog.Int64("slow", s.SlowQueries),
		slog.Int64("errors", s.Errors),
	)
}

// SlowQueryHook is called for every statement slower than the threshold.
type SlowQueryHook func(ctx context.Context, query string, args []any, d time.Duration)

// statsConn records every statement of the wrapped ExecQuerier.
type statsConn struct {
	ExecQuerier
	stats     *QueryStats
	threshold time.Duration
	hook      SlowQueryHook
}

// StatsOption configures the statistics of Driver.WithStats.
type StatsOption func(*statsConn)

// WithSlowThreshold overrides DefaultSlowThreshold.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *statsConn) { s.threshold = d }
}

// WithSlowQueryHook sets the hook called for slow statements.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *statsConn) { s.hook = hook }
}

// WithSlowQueryLog logs slow statements as warnings. A nil logger means
// slog.Default.
func WithSlowQueryLog(logger *slog.Logger) StatsOption {
	if logger == nil {
		logger = slog.Default()
	}
	return WithSlowQueryHook(func(ctx context.Context, query string, args []any, d time.Duration) {
		logger.WarnContext(ctx, "slow query", "duration", d, "query", query, "args", args)
	})
}

func (s *statsConn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.ExecQuerier.QueryContext(ctx, query, args...)
	s.stats.queries.Add(1)
	s.record(ctx, query, args, start, err)
	return rows, err
}

func (s *statsConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := s.ExecQuerier.ExecContext(ctx, query, args...)
	s.stats.execs.Add(1)
	s.record(ctx, query, args, start, err)
	return res, err
}

func (s *statsConn) record(ctx context.Context, query string, args []any, start time.Time, err error) {
	d := time.Since(start)
	s.stats.elapsed.Add(int64(d))
	if err != nil {
		s.stats.errors.Add(1)
	}
	if d > s.threshold {
		s.stats.slow.Add(1)
		if s.hook != nil {
			s.hook(ctx, query, args, d)
		}
	}
}
