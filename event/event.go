// Package event provides event definitions and an event bus for observing
// probe runs against the wallet service.
package event

import (
	"time"
)

// EventType identifies a probe lifecycle event.
type EventType string

const (
	// Transaction lifecycle events
	EventTxSubmitted EventType = "tx.submitted"
	EventTxFinished  EventType = "tx.finished"
	EventTxDenied    EventType = "tx.denied"
	EventTxTimeout   EventType = "tx.timeout"

	// Validation events
	EventValidationFailed EventType = "validation.failed"

	// Transport events
	EventTransportError EventType = "transport.error"

	// Performance events
	EventMetricRecorded EventType = "metric.recorded"

	// Alert events
	EventAlertWarning EventType = "alert.warning"
)

// Event carries what happened during a probe run.
type Event struct {
	Type          EventType
	TransactionID string
	Endpoint      string
	Currency      string
	Timestamp     time.Time
	Data          map[string]any
	Error         error
}

// NewEvent creates a new event with the given type and automatically sets the timestamp.
func NewEvent(eventType EventType) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      make(map[string]any),
	}
}

// WithTransactionID sets the transaction ID on the event.
func (e Event) WithTransactionID(id string) Event {
	e.TransactionID = id
	return e
}

// WithEndpoint sets the API endpoint on the event.
func (e Event) WithEndpoint(endpoint string) Event {
	e.Endpoint = endpoint
	return e
}

// WithCurrency sets the currency on the event.
func (e Event) WithCurrency(currency string) Event {
	e.Currency = currency
	return e
}

// WithError sets the error on the event.
func (e Event) WithError(err error) Event {
	e.Error = err
	return e
}

// WithData sets a key-value pair in the event data.
func (e Event) WithData(key string, value any) Event {
	if e.Data == nil {
		e.Data = make(map[string]any)
	}
	e.Data[key] = value
	return e
}

// String returns the string representation of the event type.
func (t EventType) String() string {
	return string(t)
}
