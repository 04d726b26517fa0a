package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"walletprobe/perf"
)

func newTestSink(t *testing.T) (*MySQLSink, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return New(db), mock, func() { db.Close() }
}

func TestMySQLSink_EnsureSchema(t *testing.T) {
	sink, mock, cleanup := newTestSink(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS probe_metrics").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := sink.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMySQLSink_Record(t *testing.T) {
	sink, mock, cleanup := newTestSink(t)
	defer cleanup()

	recorded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO probe_metrics").
		WithArgs("getWallet", int64(350), recorded, 200, int64(5000), true).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := sink.Record(context.Background(), perf.Metric{
		Label:     "getWallet",
		Duration:  350 * time.Millisecond,
		Timestamp: recorded,
		Status:    200,
		Ceiling:   5 * time.Second,
		Exceeded:  true,
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMySQLSink_DurationsSince(t *testing.T) {
	sink, mock, cleanup := newTestSink(t)
	defer cleanup()

	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"duration_ms"}).AddRow(100).AddRow(250).AddRow(90)
	mock.ExpectQuery("SELECT duration_ms FROM probe_metrics").
		WithArgs("login", cutoff).
		WillReturnRows(rows)

	durations, err := sink.DurationsSince(context.Background(), "login", cutoff)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(durations) != 3 {
		t.Fatalf("expected 3 durations, got %d", len(durations))
	}
	if durations[1] != 250*time.Millisecond {
		t.Errorf("duration = %v, want 250ms", durations[1])
	}

	summary := perf.Stats(durations)
	if summary.Min != 90*time.Millisecond || summary.Max != 250*time.Millisecond {
		t.Errorf("summary = %+v", summary)
	}
}

func TestMySQLSink_ExceededCount(t *testing.T) {
	sink, mock, cleanup := newTestSink(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("createTransaction").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := sink.ExceededCount(context.Background(), "createTransaction")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
}

func TestMySQLSink_CustomTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	sink := New(db, WithTable("run_metrics"))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS run_metrics").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := sink.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
