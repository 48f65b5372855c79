// Package stats accumulates per-run counters and exposes them as structured
// log fields, so a run's outcome is visible without opening the output.
package stats

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Run collects counters for a single generator run.
type Run struct {
	started time.Time

	StatesFetched  atomic.Int64
	StatesEmbedded atomic.Int64
	SheetsBuilt    atomic.Int64
	PagesWritten   atomic.Int64
	BytesWritten   atomic.Int64
	FetchFailures  atomic.Int64
}

// NewRun starts a run clock.
func NewRun() *Run {
	return &Run{started: time.Now()}
}

// Elapsed returns time since the run started.
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.started)
}

// Fields returns the counters as zap fields for the end-of-run summary.
func (r *Run) Fields() []zap.Field {
	return []zap.Field{
		zap.Int64("states_fetched", r.StatesFetched.Load()),
		zap.Int64("states_embedded", r.StatesEmbedded.Load()),
		zap.Int64("sheets_built", r.SheetsBuilt.Load()),
		zap.Int64("pages_written", r.PagesWritten.Load()),
		zap.Int64("bytes_written", r.BytesWritten.Load()),
		zap.Int64("fetch_failures", r.FetchFailures.Load()),
		zap.Duration("elapsed", r.Elapsed()),
	}
}
