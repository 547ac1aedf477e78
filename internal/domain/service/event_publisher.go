package service

import (
	"context"
	"time"
)

// Field event types published to the activity stream.
const (
	EventMeetingLogged  = "meeting_logged"
	EventSampleRecorded = "sample_recorded"
	EventSaleRecorded   = "sale_recorded"
	EventDayStarted     = "day_started"
	EventDayEnded       = "day_ended"
)

// FieldEvent represents an activity event emitted after a record is stored.
// Downstream consumers (dashboards, exports) subscribe to the stream.
type FieldEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	EventType  string    `json:"event_type"`
	RecordID   string    `json:"record_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	ProductSKU string    `json:"product_sku,omitempty"`
	State      string    `json:"state,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishFieldEvent publishes an activity event for async processing
	PublishFieldEvent(ctx context.Context, event *FieldEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
