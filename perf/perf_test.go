package perf

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeClock returns strictly increasing instants, one step per call.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

type captureSink struct {
	mu      sync.Mutex
	metrics []Metric
}

func (s *captureSink) Record(ctx context.Context, m Metric) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
	return nil
}

func TestStats(t *testing.T) {
	tests := []struct {
		name      string
		durations []time.Duration
		want      Summary
	}{
		{
			name: "empty",
			want: Summary{},
		},
		{
			name:      "single",
			durations: []time.Duration{100 * time.Millisecond},
			want: Summary{
				Count: 1, Total: 100 * time.Millisecond, Avg: 100 * time.Millisecond,
				Min: 100 * time.Millisecond, Max: 100 * time.Millisecond, Median: 100 * time.Millisecond,
			},
		},
		{
			name:      "odd count unsorted",
			durations: []time.Duration{300 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond},
			want: Summary{
				Count: 3, Total: 600 * time.Millisecond, Avg: 200 * time.Millisecond,
				Min: 100 * time.Millisecond, Max: 300 * time.Millisecond, Median: 200 * time.Millisecond,
			},
		},
		{
			name:      "even count median averages middle pair",
			durations: []time.Duration{400 * time.Millisecond, 100 * time.Millisecond, 300 * time.Millisecond, 200 * time.Millisecond},
			want: Summary{
				Count: 4, Total: time.Second, Avg: 250 * time.Millisecond,
				Min: 100 * time.Millisecond, Max: 400 * time.Millisecond, Median: 250 * time.Millisecond,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stats(tt.durations); got != tt.want {
				t.Errorf("Stats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStats_DoesNotMutateInput(t *testing.T) {
	durations := []time.Duration{3, 1, 2}
	Stats(durations)
	if durations[0] != 3 || durations[1] != 1 || durations[2] != 2 {
		t.Errorf("input slice was reordered: %v", durations)
	}
}

func TestRecorder_StartEnd(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0), step: 50 * time.Millisecond}
	r := NewRecorder(WithClock(clock.Now))

	r.Start("getWallet")
	m, ok := r.End(context.Background(), "getWallet", 200, time.Second)
	if !ok {
		t.Fatal("expected a pending start for getWallet")
	}
	if m.Duration != 50*time.Millisecond {
		t.Errorf("duration = %v, want 50ms", m.Duration)
	}
	if m.Status != 200 || m.Exceeded {
		t.Errorf("unexpected metric: %+v", m)
	}
}

func TestRecorder_EndWithoutStart(t *testing.T) {
	r := NewRecorder()

	if _, ok := r.End(context.Background(), "never-started", 200, time.Second); ok {
		t.Error("ending an unstarted label should report false")
	}
}

func TestRecorder_StartOverwritesPending(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0), step: 100 * time.Millisecond}
	r := NewRecorder(WithClock(clock.Now))

	r.Start("login")
	r.Start("login") // restart, the first mark is discarded
	m, ok := r.End(context.Background(), "login", 200, time.Second)
	if !ok {
		t.Fatal("expected pending start")
	}
	if m.Duration != 100*time.Millisecond {
		t.Errorf("duration = %v, want 100ms from the second start", m.Duration)
	}
}

func TestRecorder_CeilingFlag(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	slow := r.Observe(ctx, "createTransaction", 6*time.Second, 201, 5*time.Second)
	if !slow.Exceeded {
		t.Error("6s against a 5s ceiling should be flagged")
	}

	fast := r.Observe(ctx, "createTransaction", time.Second, 201, 5*time.Second)
	if fast.Exceeded {
		t.Error("1s against a 5s ceiling should not be flagged")
	}

	unbounded := r.Observe(ctx, "createTransaction", time.Hour, 201, 0)
	if unbounded.Exceeded {
		t.Error("a zero ceiling disables the check")
	}

	exceeded := r.Exceeded()
	if len(exceeded) != 1 || exceeded[0].Duration != 6*time.Second {
		t.Errorf("Exceeded() = %+v, want the one slow metric", exceeded)
	}
}

func TestRecorder_SinkFanout(t *testing.T) {
	first := &captureSink{}
	second := &captureSink{}
	r := NewRecorder(WithSink(first), WithSink(second))

	r.Observe(context.Background(), "health", 10*time.Millisecond, 200, time.Second)

	for i, sink := range []*captureSink{first, second} {
		if len(sink.metrics) != 1 {
			t.Errorf("sink %d received %d metrics, want 1", i, len(sink.metrics))
		}
	}
}

func TestRecorder_SummaryFor(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	r.Observe(ctx, "getTransaction", 100*time.Millisecond, 200, 0)
	r.Observe(ctx, "getTransaction", 300*time.Millisecond, 200, 0)
	r.Observe(ctx, "getWallet", time.Second, 200, 0)

	summary := r.SummaryFor("getTransaction")
	if summary.Count != 2 || summary.Avg != 200*time.Millisecond {
		t.Errorf("summary = %+v", summary)
	}

	if got := r.SummaryFor("unknown"); got != (Summary{}) {
		t.Errorf("unknown label summary = %+v, want zero", got)
	}
}

func TestRecorder_ConcurrentObserve(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Observe(ctx, "burst", time.Millisecond, 200, 0)
		}()
	}
	wg.Wait()

	if got := len(r.Metrics()); got != 50 {
		t.Errorf("recorded %d metrics, want 50", got)
	}
}
