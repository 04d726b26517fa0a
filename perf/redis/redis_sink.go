// Package redis provides a Redis implementation of the perf.Sink interface,
// appending metrics to a capped list so recent timings survive across runs.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"walletprobe/perf"
)

// RedisSink appends JSON-encoded metrics to a Redis list.
type RedisSink struct {
	client  redis.Cmdable
	key     string
	maxSize int64
}

var _ perf.Sink = (*RedisSink)(nil)

// Option is a functional option for configuring RedisSink.
type Option func(*RedisSink)

// WithKey sets the list key metrics are appended to.
func WithKey(key string) Option {
	return func(s *RedisSink) {
		s.key = key
	}
}

// WithMaxSize caps the list length; older entries are trimmed away. Zero
// disables trimming.
func WithMaxSize(n int64) Option {
	return func(s *RedisSink) {
		s.maxSize = n
	}
}

// NewRedisSink creates a new Redis-backed metric sink.
func NewRedisSink(client redis.Cmdable, opts ...Option) *RedisSink {
	s := &RedisSink{
		client:  client,
		key:     "walletprobe:metrics",
		maxSize: 10_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends one metric to the list and trims it to the configured cap.
func (s *RedisSink) Record(ctx context.Context, m perf.Metric) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode metric: %w", err)
	}

	if err := s.client.RPush(ctx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to append metric: %w", err)
	}

	if s.maxSize > 0 {
		if err := s.client.LTrim(ctx, s.key, -s.maxSize, -1).Err(); err != nil {
			return fmt.Errorf("failed to trim metric list: %w", err)
		}
	}
	return nil
}

// Recent returns up to n of the most recently recorded metrics, oldest first.
func (s *RedisSink) Recent(ctx context.Context, n int64) ([]perf.Metric, error) {
	raw, err := s.client.LRange(ctx, s.key, -n, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read metric list: %w", err)
	}

	metrics := make([]perf.Metric, 0, len(raw))
	for _, entry := range raw {
		var m perf.Metric
		if err := json.Unmarshal([]byte(entry), &m); err != nil {
			return nil, fmt.Errorf("failed to decode metric entry: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

// Clear deletes the metric list.
func (s *RedisSink) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
