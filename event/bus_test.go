package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventTxSubmitted).
		WithTransactionID("tx-1").
		WithEndpoint("createTransaction").
		WithCurrency("USD").
		WithData("amount", 100.50)

	if e.Type != EventTxSubmitted {
		t.Errorf("type = %s, want %s", e.Type, EventTxSubmitted)
	}
	if e.TransactionID != "tx-1" || e.Endpoint != "createTransaction" || e.Currency != "USD" {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
	if e.Data["amount"] != 100.50 {
		t.Errorf("data = %v", e.Data)
	}
}

func TestMemoryEventBus_Subscribe(t *testing.T) {
	bus := NewMemoryEventBus()
	ctx := context.Background()

	var received []Event
	bus.Subscribe(EventTxFinished, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	bus.Publish(ctx, NewEvent(EventTxFinished).WithTransactionID("tx-1"))
	bus.Publish(ctx, NewEvent(EventTxSubmitted).WithTransactionID("tx-2"))

	if len(received) != 1 {
		t.Fatalf("received %d events, want 1", len(received))
	}
	if received[0].TransactionID != "tx-1" {
		t.Errorf("received wrong event: %+v", received[0])
	}
}

func TestMemoryEventBus_SubscribeAll(t *testing.T) {
	bus := NewMemoryEventBus()
	ctx := context.Background()

	var count int
	bus.SubscribeAll(func(ctx context.Context, e Event) error {
		count++
		return nil
	})

	bus.Publish(ctx, NewEvent(EventTxSubmitted))
	bus.Publish(ctx, NewEvent(EventValidationFailed))
	bus.Publish(ctx, NewEvent(EventAlertWarning))

	if count != 3 {
		t.Errorf("all-handler saw %d events, want 3", count)
	}
}

func TestMemoryEventBus_MultipleHandlers(t *testing.T) {
	bus := NewMemoryEventBus()
	ctx := context.Background()

	var order []string
	for _, name := range []string{"first", "second"} {
		name := name
		bus.Subscribe(EventTxTimeout, func(ctx context.Context, e Event) error {
			order = append(order, name)
			return nil
		})
	}

	bus.Publish(ctx, NewEvent(EventTxTimeout))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("handlers ran in order %v", order)
	}
}

func TestMemoryEventBus_HandlerErrorDoesNotPropagate(t *testing.T) {
	logger := &recordingLogger{}
	bus := NewMemoryEventBus(WithLogger(logger))
	ctx := context.Background()

	bus.Subscribe(EventTransportError, func(ctx context.Context, e Event) error {
		return errors.New("observer failed")
	})

	if err := bus.Publish(ctx, NewEvent(EventTransportError).WithTransactionID("tx-9")); err != nil {
		t.Fatalf("publish should not fail: %v", err)
	}
	if len(logger.lines) != 1 {
		t.Fatalf("expected 1 logged line, got %d", len(logger.lines))
	}
}

func TestMemoryEventBus_HandlerPanicIsContained(t *testing.T) {
	logger := &recordingLogger{}
	bus := NewMemoryEventBus(WithLogger(logger))
	ctx := context.Background()

	bus.Subscribe(EventMetricRecorded, func(ctx context.Context, e Event) error {
		panic("boom")
	})

	var after int
	bus.Subscribe(EventMetricRecorded, func(ctx context.Context, e Event) error {
		after++
		return nil
	})

	bus.Publish(ctx, NewEvent(EventMetricRecorded))

	if after != 1 {
		t.Error("handler after a panicking one should still run")
	}
	if len(logger.lines) != 1 {
		t.Errorf("panic should be logged, got %v", logger.lines)
	}
}

func TestMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewMemoryEventBus()

	bus.Subscribe(EventTxDenied, func(ctx context.Context, e Event) error { return nil })
	bus.Subscribe(EventTxDenied, func(ctx context.Context, e Event) error { return nil })
	if got := bus.HandlerCount(EventTxDenied); got != 2 {
		t.Fatalf("handler count = %d, want 2", got)
	}

	bus.Unsubscribe(EventTxDenied)
	if got := bus.HandlerCount(EventTxDenied); got != 0 {
		t.Errorf("handler count after unsubscribe = %d, want 0", got)
	}

	bus.SubscribeAll(func(ctx context.Context, e Event) error { return nil })
	bus.UnsubscribeAll()
	if got := bus.AllHandlerCount(); got != 0 {
		t.Errorf("all-handler count after reset = %d, want 0", got)
	}
}

func TestMemoryEventBus_ConcurrentPublish(t *testing.T) {
	bus := NewMemoryEventBus()
	ctx := context.Background()

	var mu sync.Mutex
	var count int
	bus.Subscribe(EventTxSubmitted, func(ctx context.Context, e Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(ctx, NewEvent(EventTxSubmitted))
		}()
	}
	wg.Wait()

	if count != 20 {
		t.Errorf("handled %d events, want 20", count)
	}
}

func TestNoOpEventBus(t *testing.T) {
	var bus NoOpEventBus
	ctx := context.Background()

	if err := bus.Publish(ctx, NewEvent(EventTxSubmitted)); err != nil {
		t.Errorf("publish = %v", err)
	}
	if err := bus.Subscribe(EventTxSubmitted, nil); err != nil {
		t.Errorf("subscribe = %v", err)
	}
	if err := bus.SubscribeAll(nil); err != nil {
		t.Errorf("subscribeAll = %v", err)
	}
}
