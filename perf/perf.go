// Package perf measures request timings against a performance ceiling and
// fans the resulting metrics out to pluggable sinks.
package perf

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Metric is one timed observation of a labeled operation, typically an API
// endpoint call.
type Metric struct {
	Label     string        `json:"label"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
	Status    int           `json:"status"`
	Ceiling   time.Duration `json:"ceiling"`
	Exceeded  bool          `json:"exceeded"`
}

// Sink receives metrics as they are recorded.
// Implementations can use Prometheus, Redis, MySQL, or other backends.
type Sink interface {
	Record(ctx context.Context, m Metric) error
}

// NoopSink discards all metrics.
type NoopSink struct{}

var _ Sink = (*NoopSink)(nil)

func (NoopSink) Record(ctx context.Context, m Metric) error { return nil }

// Summary aggregates a set of durations.
type Summary struct {
	Count  int
	Total  time.Duration
	Avg    time.Duration
	Min    time.Duration
	Max    time.Duration
	Median time.Duration
}

// Stats computes summary statistics over the given durations. A nil or empty
// input yields a zero summary.
func Stats(durations []time.Duration) Summary {
	if len(durations) == 0 {
		return Summary{}
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	var median time.Duration
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	return Summary{
		Count:  len(sorted),
		Total:  total,
		Avg:    total / time.Duration(len(sorted)),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: median,
	}
}

// Recorder times labeled operations and keeps every finished metric for
// later aggregation. A metric whose duration exceeds the ceiling is flagged,
// never treated as a failure. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	started map[string]time.Time
	metrics []Metric
	sinks   []Sink
	now     func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithSink adds a sink that receives every finished metric.
func WithSink(sink Sink) RecorderOption {
	return func(r *Recorder) {
		r.sinks = append(r.sinks, sink)
	}
}

// WithClock overrides the time source. Useful in tests.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a Recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		started: make(map[string]time.Time),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start marks the beginning of a labeled measurement. Starting the same
// label again before ending it overwrites the pending start.
func (r *Recorder) Start(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started[label] = r.now()
}

// End finishes a labeled measurement and records the metric. It reports
// false when the label has no pending start.
func (r *Recorder) End(ctx context.Context, label string, status int, ceiling time.Duration) (Metric, bool) {
	r.mu.Lock()
	start, ok := r.started[label]
	if !ok {
		r.mu.Unlock()
		return Metric{}, false
	}
	delete(r.started, label)
	now := r.now()
	r.mu.Unlock()

	return r.Observe(ctx, label, now.Sub(start), status, ceiling), true
}

// Observe records an already-measured duration under a label and forwards
// the metric to every sink. Sink failures are ignored here; sinks that need
// error visibility log on their own.
func (r *Recorder) Observe(ctx context.Context, label string, duration time.Duration, status int, ceiling time.Duration) Metric {
	m := Metric{
		Label:     label,
		Duration:  duration,
		Timestamp: r.now(),
		Status:    status,
		Ceiling:   ceiling,
		Exceeded:  ceiling > 0 && duration > ceiling,
	}

	r.mu.Lock()
	r.metrics = append(r.metrics, m)
	sinks := r.sinks
	r.mu.Unlock()

	for _, sink := range sinks {
		_ = sink.Record(ctx, m)
	}
	return m
}

// Metrics returns a copy of every recorded metric in order.
func (r *Recorder) Metrics() []Metric {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Metric, len(r.metrics))
	copy(out, r.metrics)
	return out
}

// Durations returns the recorded durations for one label.
func (r *Recorder) Durations(label string) []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []time.Duration
	for _, m := range r.metrics {
		if m.Label == label {
			out = append(out, m.Duration)
		}
	}
	return out
}

// Exceeded returns every metric that went over its ceiling.
func (r *Recorder) Exceeded() []Metric {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Metric
	for _, m := range r.metrics {
		if m.Exceeded {
			out = append(out, m)
		}
	}
	return out
}

// SummaryFor aggregates the recorded durations of one label.
func (r *Recorder) SummaryFor(label string) Summary {
	return Stats(r.Durations(label))
}
