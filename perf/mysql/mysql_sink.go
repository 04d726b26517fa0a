// Package mysql provides a MySQL implementation of the perf.Sink interface
// for durable metric retention across probe runs.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"walletprobe/perf"
)

// MySQLSink persists metrics into a single table.
type MySQLSink struct {
	db    *sql.DB
	table string
}

var _ perf.Sink = (*MySQLSink)(nil)

// Option is a functional option for configuring MySQLSink.
type Option func(*MySQLSink)

// WithTable overrides the table name.
func WithTable(table string) Option {
	return func(s *MySQLSink) {
		s.table = table
	}
}

// New creates a new MySQLSink with the given database connection.
func New(db *sql.DB, opts ...Option) *MySQLSink {
	s := &MySQLSink{
		db:    db,
		table: "probe_metrics",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSchema creates the metrics table if it does not exist.
func (s *MySQLSink) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			label VARCHAR(128) NOT NULL,
			duration_ms BIGINT NOT NULL,
			recorded_at DATETIME(3) NOT NULL,
			status INT NOT NULL,
			ceiling_ms BIGINT NOT NULL,
			exceeded TINYINT(1) NOT NULL,
			INDEX idx_label (label),
			INDEX idx_recorded_at (recorded_at)
		)
	`, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create metrics table: %w", err)
	}
	return nil
}

// Record inserts one metric row.
func (s *MySQLSink) Record(ctx context.Context, m perf.Metric) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (label, duration_ms, recorded_at, status, ceiling_ms, exceeded)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.table)

	_, err := s.db.ExecContext(ctx, query,
		m.Label, m.Duration.Milliseconds(), m.Timestamp, m.Status,
		m.Ceiling.Milliseconds(), m.Exceeded,
	)
	if err != nil {
		return fmt.Errorf("insert metric: %w", err)
	}
	return nil
}

// DurationsSince returns the durations recorded for a label after the cutoff,
// oldest first.
func (s *MySQLSink) DurationsSince(ctx context.Context, label string, cutoff time.Time) ([]time.Duration, error) {
	query := fmt.Sprintf(`
		SELECT duration_ms FROM %s
		WHERE label = ? AND recorded_at >= ?
		ORDER BY recorded_at ASC
	`, s.table)

	rows, err := s.db.QueryContext(ctx, query, label, cutoff)
	if err != nil {
		return nil, fmt.Errorf("query metrics: %w", err)
	}
	defer rows.Close()

	var durations []time.Duration
	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return nil, fmt.Errorf("scan metric row: %w", err)
		}
		durations = append(durations, time.Duration(ms)*time.Millisecond)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metric rows: %w", err)
	}
	return durations, nil
}

// ExceededCount returns how many recorded metrics for a label went over
// their ceiling.
func (s *MySQLSink) ExceededCount(ctx context.Context, label string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE label = ? AND exceeded = 1`, s.table)

	var count int64
	if err := s.db.QueryRowContext(ctx, query, label).Scan(&count); err != nil {
		return 0, fmt.Errorf("count exceeded metrics: %w", err)
	}
	return count, nil
}
